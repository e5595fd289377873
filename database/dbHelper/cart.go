package dbHelper

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plant_nursery/model"
)

func CreateCart(db sqlx.Ext, userId string) (string, error) {
	SQL := `INSERT INTO carts(id, user_id) VALUES ($1, $2)`
	cartId := uuid.NewString()
	_, err := db.Exec(SQL, cartId, userId)
	return cartId, err
}

// IsCartExist returns the id of the user's cart, if one was created already.
func IsCartExist(db sqlx.Queryer, userId string) (string, bool, error) {
	SQL := `SELECT id FROM carts WHERE user_id = $1`
	var id string
	err := sqlx.Get(db, &id, SQL, userId)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", false, err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	return id, true, nil
}

// GetOrCreateCart must run inside a transaction to avoid two carts per user.
func GetOrCreateCart(tx *sqlx.Tx, userId string) (string, error) {
	cartId, exist, err := IsCartExist(tx, userId)
	if err != nil || exist {
		return cartId, err
	}
	return CreateCart(tx, userId)
}

// GetCartWithProduct lists the cart lines in insertion order.
func GetCartWithProduct(db sqlx.Queryer, userId string) ([]model.CartItem, error) {
	SQL := `SELECT ci.product_id,
				   p.name,
				   p.price,
				   p.stock,
				   COALESCE((SELECT pi.url FROM product_images pi WHERE pi.product_id = p.id ORDER BY pi.position LIMIT 1), '') AS image,
				   ci.quantity,
				   ci.added_at
			FROM cart_items ci
				INNER JOIN carts c ON ci.cart_id = c.id
				INNER JOIN products p ON ci.product_id = p.id
			WHERE c.user_id = $1
			ORDER BY ci.seq`
	list := make([]model.CartItem, 0)
	err := sqlx.Select(db, &list, SQL, userId)
	return list, err
}

func GetCartProductQuantity(db sqlx.Queryer, cartId, productId string) (int, error) {
	SQL := `SELECT quantity FROM cart_items WHERE cart_id = $1 AND product_id = $2`
	var quantity int
	err := sqlx.Get(db, &quantity, SQL, cartId, productId)
	return quantity, err
}

func CreateProductInCart(db sqlx.Ext, cartId, productId string, quantity int) error {
	SQL := `INSERT INTO cart_items(cart_id, product_id, quantity) VALUES ($1, $2, $3)`
	_, err := db.Exec(SQL, cartId, productId, quantity)
	return err
}

func SetProductQuantityInCart(db sqlx.Ext, cartId, productId string, quantity int) error {
	SQL := `UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND product_id = $3`
	err := expectAffected(db.Exec(SQL, quantity, cartId, productId))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCartItemNotFound
	}
	return err
}

func DeleteProductFromCart(db sqlx.Ext, userId, productId string) error {
	SQL := `DELETE FROM cart_items
			WHERE product_id = $1
			  AND cart_id IN (SELECT id FROM carts WHERE user_id = $2)`
	err := expectAffected(db.Exec(SQL, productId, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCartItemNotFound
	}
	return err
}

func ClearCart(db sqlx.Ext, userId string) error {
	SQL := `DELETE FROM cart_items WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)`
	_, err := db.Exec(SQL, userId)
	return err
}
