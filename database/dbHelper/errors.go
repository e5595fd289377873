package dbHelper

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrInsufficientStock = errors.New("requested quantity not available")
	ErrProductNotFound   = errors.New("product not found")
	ErrCartItemNotFound  = errors.New("product is not in the cart")
)

// IsUniqueViolation reports whether err comes from a unique index, on
// postgres or sqlite.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
