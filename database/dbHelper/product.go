package dbHelper

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plant_nursery/model"
)

const productColumns = `p.id, p.name, p.description, p.price, p.original_price, p.stock,
	p.category_id, p.size, p.rating, p.created_at`

var productOrderBy = map[string]string{
	"price-low":  `p.price ASC, p.name ASC`,
	"price-high": `p.price DESC, p.name ASC`,
	"popularity": `p.rating DESC, p.name ASC`,
	"name":       `p.name ASC`,
	"":           `p.created_at DESC, p.name ASC`,
}

func CreateProduct(db sqlx.Ext, body model.ProductsRequest) (string, error) {
	SQL := `INSERT INTO products(id, name, description, price, original_price, stock, category_id, size)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	productId := uuid.NewString()
	_, err := db.Exec(SQL, productId, body.Name, body.Description, body.Price, body.OriginalPrice,
		body.Stock, body.CategoryId, body.Size)
	if err != nil {
		return "", err
	}
	return productId, ReplaceProductImages(db, productId, body.Images)
}

func UpdateProduct(db sqlx.Ext, productId string, body model.ProductsRequest) error {
	SQL := `UPDATE products
			SET name = $1, description = $2, price = $3, original_price = $4, stock = $5, category_id = $6, size = $7
			WHERE id = $8 AND archived_at IS NULL`
	err := expectAffected(db.Exec(SQL, body.Name, body.Description, body.Price, body.OriginalPrice,
		body.Stock, body.CategoryId, body.Size, productId))
	if err != nil {
		return err
	}
	return ReplaceProductImages(db, productId, body.Images)
}

func ReplaceProductImages(db sqlx.Ext, productId string, images []string) error {
	if _, err := db.Exec(`DELETE FROM product_images WHERE product_id = $1`, productId); err != nil {
		return err
	}
	SQL := `INSERT INTO product_images(product_id, position, url) VALUES ($1, $2, $3)`
	for position, url := range images {
		if _, err := db.Exec(SQL, productId, position, url); err != nil {
			return err
		}
	}
	return nil
}

func IsProductExist(db sqlx.Queryer, name string) (bool, error) {
	SQL := `SELECT id FROM products WHERE LOWER(name) = LOWER($1) AND archived_at IS NULL`
	var id string
	err := sqlx.Get(db, &id, SQL, name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return true, nil
}

// GetAllProduct applies the server-side catalog filters. Parameters are
// numbered in order of appearance so the statement also runs on sqlite.
func GetAllProduct(db sqlx.Ext, filter model.ProductFilter) ([]model.Products, error) {
	var (
		where = []string{"p.archived_at IS NULL"}
		args  []interface{}
	)
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		where = append(where, fmt.Sprintf("(LOWER(p.name) LIKE %s OR LOWER(p.description) LIKE %s)", next(pattern), next(pattern)))
	}
	if filter.CategoryId != "" {
		where = append(where, "p.category_id = "+next(filter.CategoryId))
	}
	if filter.MinPrice != nil {
		where = append(where, "p.price >= "+next(*filter.MinPrice))
	}
	if filter.PriceBelow != nil {
		where = append(where, "p.price < "+next(*filter.PriceBelow))
	}
	orderBy, ok := productOrderBy[filter.Sort]
	if !ok {
		orderBy = productOrderBy[""]
	}

	SQL := `SELECT ` + productColumns + ` FROM products p WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + orderBy
	list := make([]model.Products, 0)
	if err := sqlx.Select(db, &list, SQL, args...); err != nil {
		return nil, err
	}
	return list, attachImages(db, list)
}

func GetProductById(db sqlx.Ext, productId string) (model.Products, error) {
	SQL := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1 AND p.archived_at IS NULL`
	var product model.Products
	if err := sqlx.Get(db, &product, SQL, productId); err != nil {
		return product, err
	}
	list := []model.Products{product}
	err := attachImages(db, list)
	return list[0], err
}

func attachImages(db sqlx.Ext, products []model.Products) error {
	if len(products) == 0 {
		return nil
	}
	index := make(map[string]int, len(products))
	ids := make([]string, 0, len(products))
	for i := range products {
		products[i].Images = []string{}
		index[products[i].ProductId] = i
		ids = append(ids, products[i].ProductId)
	}
	query, args, err := sqlx.In(`SELECT product_id, position, url FROM product_images WHERE product_id IN (?) ORDER BY product_id, position`, ids)
	if err != nil {
		return err
	}
	images := make([]model.ProductImage, 0)
	if err := sqlx.Select(db, &images, db.Rebind(query), args...); err != nil {
		return err
	}
	for _, image := range images {
		i := index[image.ProductId]
		products[i].Images = append(products[i].Images, image.URL)
	}
	return nil
}

func DeleteProduct(db sqlx.Ext, productId string) error {
	SQL := `UPDATE products SET archived_at = CURRENT_TIMESTAMP WHERE id = $1 AND archived_at IS NULL`
	return expectAffected(db.Exec(SQL, productId))
}

// DecreaseProductStock fails with ErrInsufficientStock instead of letting
// stock go negative.
func DecreaseProductStock(db sqlx.Ext, productId string, quantity int) error {
	SQL := `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $3 AND archived_at IS NULL`
	err := expectAffected(db.Exec(SQL, quantity, productId, quantity))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInsufficientStock
	}
	return err
}

func IncreaseProductStock(db sqlx.Ext, productId string, quantity int) error {
	SQL := `UPDATE products SET stock = stock + $1 WHERE id = $2`
	_, err := db.Exec(SQL, quantity, productId)
	return err
}

func RefreshProductRating(db sqlx.Ext, productId string) error {
	SQL := `UPDATE products
			SET rating = COALESCE((SELECT AVG(CAST(r.rating AS REAL)) FROM reviews r WHERE r.product_id = $1), 0)
			WHERE id = $2`
	_, err := db.Exec(SQL, productId, productId)
	return err
}
