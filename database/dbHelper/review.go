package dbHelper

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"plant_nursery/model"
)

const reviewColumns = `r.id, r.user_id, u.name AS user_name, r.product_id, r.rating, r.comment, r.created_at`

func CreateReview(db sqlx.Ext, userId string, body model.ReviewRequest) (string, error) {
	SQL := `INSERT INTO reviews(id, user_id, product_id, rating, comment) VALUES ($1, $2, $3, $4, $5)`
	id := uuid.NewString()
	_, err := db.Exec(SQL, id, userId, body.ProductId, body.Rating, body.Comment)
	return id, err
}

func GetReviewById(db sqlx.Queryer, reviewId string) (model.Review, error) {
	SQL := `SELECT ` + reviewColumns + ` FROM reviews r INNER JOIN users u ON u.id = r.user_id WHERE r.id = $1`
	var review model.Review
	err := sqlx.Get(db, &review, SQL, reviewId)
	return review, err
}

func GetReviewsByProduct(db sqlx.Queryer, productId string) ([]model.Review, error) {
	SQL := `SELECT ` + reviewColumns + `
			FROM reviews r INNER JOIN users u ON u.id = r.user_id
			WHERE r.product_id = $1
			ORDER BY r.created_at DESC`
	list := make([]model.Review, 0)
	err := sqlx.Select(db, &list, SQL, productId)
	return list, err
}

func GetAllReview(db sqlx.Queryer) ([]model.Review, error) {
	SQL := `SELECT ` + reviewColumns + ` FROM reviews r INNER JOIN users u ON u.id = r.user_id ORDER BY r.created_at DESC`
	list := make([]model.Review, 0)
	err := sqlx.Select(db, &list, SQL)
	return list, err
}

func HasReviewed(db sqlx.Queryer, userId, productId string) (bool, error) {
	SQL := `SELECT COUNT(*) FROM reviews WHERE user_id = $1 AND product_id = $2`
	var count int
	err := sqlx.Get(db, &count, SQL, userId, productId)
	return count > 0, err
}

func UpdateReview(db sqlx.Ext, reviewId string, rating int, comment string) error {
	SQL := `UPDATE reviews SET rating = $1, comment = $2 WHERE id = $3`
	return expectAffected(db.Exec(SQL, rating, comment, reviewId))
}

func DeleteReview(db sqlx.Ext, reviewId string) error {
	SQL := `DELETE FROM reviews WHERE id = $1`
	return expectAffected(db.Exec(SQL, reviewId))
}
