package handler

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"plant_nursery/database"
	"plant_nursery/database/dbHelper"
	"plant_nursery/model"
	"plant_nursery/utils"
)

func GetProductReviews(w http.ResponseWriter, r *http.Request) {
	list, err := dbHelper.GetReviewsByProduct(database.Nursery, urlParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get reviews")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func GetAllReview(w http.ResponseWriter, r *http.Request) {
	list, err := dbHelper.GetAllReview(database.Nursery)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get reviews")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func canReview(db sqlx.Queryer, userId, productId string) (bool, error) {
	delivered, err := dbHelper.HasDeliveredProduct(db, userId, productId)
	if err != nil || !delivered {
		return false, err
	}
	reviewed, err := dbHelper.HasReviewed(db, userId, productId)
	return !reviewed, err
}

// CanReview tells whether the caller received the product and has not
// reviewed it yet.
func CanReview(w http.ResponseWriter, r *http.Request) {
	ok, err := canReview(database.Nursery, getUserId(r), urlParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to check review eligibility")
		return
	}
	utils.RespondJSON(w, http.StatusOK, model.CanReviewResponse{CanReview: ok})
}

func CreateReview(w http.ResponseWriter, r *http.Request) {
	var body model.ReviewRequest
	if !parseAndValidate(w, r, &body) {
		return
	}
	userId := getUserId(r)

	ok, err := canReview(database.Nursery, userId, body.ProductId)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to check review eligibility")
		return
	}
	if !ok {
		utils.RespondError(w, http.StatusConflict, nil, "product already reviewed or not delivered yet")
		return
	}

	var reviewId string
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		reviewId, err = dbHelper.CreateReview(tx, userId, body)
		if err != nil {
			return err
		}
		return dbHelper.RefreshProductRating(tx, body.ProductId)
	})
	if dbHelper.IsUniqueViolation(txErr) {
		utils.RespondError(w, http.StatusConflict, nil, "product already reviewed or not delivered yet")
		return
	}
	if txErr != nil {
		utils.RespondError(w, http.StatusInternalServerError, txErr, "Failed to create review")
		return
	}
	review, err := dbHelper.GetReviewById(database.Nursery, reviewId)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to load review")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, review)
}

// loadOwnReview lets admins act on any review and users on their own only.
func loadOwnReview(w http.ResponseWriter, r *http.Request) (model.Review, bool) {
	review, err := dbHelper.GetReviewById(database.Nursery, urlParam(r, "id"))
	if isNotFound(err) {
		utils.RespondError(w, http.StatusNotFound, nil, "Review not found")
		return review, false
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to load review")
		return review, false
	}
	if review.UserId != getUserId(r) && getRole(r) != model.RoleAdmin {
		utils.RespondError(w, http.StatusForbidden, nil, "not your review")
		return review, false
	}
	return review, true
}

func UpdateReview(w http.ResponseWriter, r *http.Request) {
	var body model.ReviewRequest
	if !parseAndValidate(w, r, &body) {
		return
	}
	review, ok := loadOwnReview(w, r)
	if !ok {
		return
	}
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		if err := dbHelper.UpdateReview(tx, review.Id, body.Rating, body.Comment); err != nil {
			return err
		}
		return dbHelper.RefreshProductRating(tx, review.ProductId)
	})
	if txErr != nil {
		utils.RespondError(w, http.StatusInternalServerError, txErr, "Failed to update review")
		return
	}
	review.Rating = body.Rating
	review.Comment = body.Comment
	utils.RespondJSON(w, http.StatusOK, review)
}

func DeleteReview(w http.ResponseWriter, r *http.Request) {
	review, ok := loadOwnReview(w, r)
	if !ok {
		return
	}
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		if err := dbHelper.DeleteReview(tx, review.Id); err != nil {
			return err
		}
		return dbHelper.RefreshProductRating(tx, review.ProductId)
	})
	if txErr != nil {
		utils.RespondError(w, http.StatusInternalServerError, txErr, "Failed to delete review")
		return
	}
	utils.RespondJSON(w, http.StatusOK, model.Message{Message: "Review deleted successfully"})
}
