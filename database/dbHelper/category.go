package dbHelper

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plant_nursery/model"
)

func CreateCategory(db sqlx.Ext, name string, categoryType model.CategoryType, description string) (string, error) {
	SQL := `INSERT INTO categories(id, name, type, description) VALUES ($1, $2, $3, $4)`
	id := uuid.NewString()
	_, err := db.Exec(SQL, id, name, categoryType, description)
	return id, err
}

func IsCategoryExist(db sqlx.Queryer, name string) (bool, error) {
	SQL := `SELECT id FROM categories WHERE LOWER(name) = LOWER($1) AND archived_at IS NULL`
	var id string
	err := sqlx.Get(db, &id, SQL, name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func GetAllCategory(db sqlx.Queryer) ([]model.Category, error) {
	SQL := `SELECT id, name, type, description FROM categories WHERE archived_at IS NULL ORDER BY name`
	list := make([]model.Category, 0)
	err := sqlx.Select(db, &list, SQL)
	return list, err
}

func GetCategoryById(db sqlx.Queryer, id string) (model.Category, error) {
	SQL := `SELECT id, name, type, description FROM categories WHERE id = $1 AND archived_at IS NULL`
	var category model.Category
	err := sqlx.Get(db, &category, SQL, id)
	return category, err
}

func UpdateCategory(db sqlx.Ext, id, name string, categoryType model.CategoryType, description string) error {
	SQL := `UPDATE categories SET name = $1, type = $2, description = $3 WHERE id = $4 AND archived_at IS NULL`
	return expectAffected(db.Exec(SQL, name, categoryType, description, id))
}

// DeleteCategory archives the category only; products keep their reference.
func DeleteCategory(db sqlx.Ext, id string) error {
	SQL := `UPDATE categories SET archived_at = CURRENT_TIMESTAMP WHERE id = $1 AND archived_at IS NULL`
	return expectAffected(db.Exec(SQL, id))
}
