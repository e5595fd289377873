package handler

import (
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"plant_nursery/database"
	"plant_nursery/database/dbHelper"
	"plant_nursery/model"
	"plant_nursery/utils"
)

type productListResponse struct {
	Products []model.Products `json:"products"`
	Total    int              `json:"total"`
}

// ParsePriceRange turns a bucket such as "500-999" or "5000+" into an
// inclusive lower and an exclusive upper bound. Buckets name whole rupees, so
// "0-499" is everything under 500 and 499.50 still falls in it.
func ParsePriceRange(bucket string) (*decimal.Decimal, *decimal.Decimal, bool) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" || bucket == "all" {
		return nil, nil, true
	}
	if strings.HasSuffix(bucket, "+") {
		low, err := decimal.NewFromString(strings.TrimSuffix(bucket, "+"))
		if err != nil {
			return nil, nil, false
		}
		return &low, nil, true
	}
	parts := strings.SplitN(bucket, "-", 2)
	if len(parts) != 2 {
		return nil, nil, false
	}
	low, err := decimal.NewFromString(parts[0])
	if err != nil {
		return nil, nil, false
	}
	high, err := decimal.NewFromString(parts[1])
	if err != nil || high.LessThan(low) {
		return nil, nil, false
	}
	below := high.Truncate(0).Add(decimal.NewFromInt(1))
	return &low, &below, true
}

func GetAllProduct(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minPrice, priceBelow, ok := ParsePriceRange(q.Get("price"))
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, nil, "invalid price range")
		return
	}
	list, err := dbHelper.GetAllProduct(database.Nursery, model.ProductFilter{
		Search:     q.Get("search"),
		CategoryId: q.Get("category"),
		MinPrice:   minPrice,
		PriceBelow: priceBelow,
		Sort:       q.Get("sort"),
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get products")
		return
	}
	utils.RespondJSON(w, http.StatusOK, productListResponse{Products: list, Total: len(list)})
}

func GetProductById(w http.ResponseWriter, r *http.Request) {
	productDetail, err := dbHelper.GetProductById(database.Nursery, urlParam(r, "id"))
	if isNotFound(err) {
		utils.RespondError(w, http.StatusNotFound, nil, "Product not found!")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, productDetail)
}

func validateProduct(w http.ResponseWriter, body model.ProductsRequest) bool {
	if !body.Price.IsPositive() {
		utils.RespondError(w, http.StatusBadRequest, nil, "price must be positive")
		return false
	}
	if body.OriginalPrice.Valid && body.OriginalPrice.Decimal.LessThan(body.Price) {
		utils.RespondError(w, http.StatusBadRequest, nil, "original price cannot be below price")
		return false
	}
	if _, err := dbHelper.GetCategoryById(database.Nursery, body.CategoryId); err != nil {
		if isNotFound(err) {
			utils.RespondError(w, http.StatusBadRequest, nil, "category does not exist")
			return false
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to check category")
		return false
	}
	return true
}

func CreateProduct(w http.ResponseWriter, r *http.Request) {
	var body model.ProductsRequest
	if !parseAndValidate(w, r, &body) || !validateProduct(w, body) {
		return
	}

	exist, existErr := dbHelper.IsProductExist(database.Nursery, body.Name)
	if existErr != nil {
		utils.RespondError(w, http.StatusInternalServerError, existErr, "Failed to check product existence")
		return
	}
	if exist {
		utils.RespondError(w, http.StatusConflict, nil, "Product already exist")
		return
	}

	var productId string
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		var err error
		productId, err = dbHelper.CreateProduct(tx, body)
		return err
	})
	if txErr != nil {
		utils.RespondError(w, http.StatusInternalServerError, txErr, "Failed to create product")
		return
	}

	product, err := dbHelper.GetProductById(database.Nursery, productId)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to load product")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, product)
}

func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var body model.ProductsRequest
	if !parseAndValidate(w, r, &body) || !validateProduct(w, body) {
		return
	}
	productId := urlParam(r, "id")
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		return dbHelper.UpdateProduct(tx, productId, body)
	})
	if isNotFound(txErr) {
		utils.RespondError(w, http.StatusNotFound, nil, "Product not found!")
		return
	}
	if txErr != nil {
		utils.RespondError(w, http.StatusInternalServerError, txErr, "Failed to update product")
		return
	}
	GetProductById(w, r)
}

func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := dbHelper.DeleteProduct(database.Nursery, urlParam(r, "id"))
	if isNotFound(err) {
		utils.RespondError(w, http.StatusNotFound, nil, "Product not found!")
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to delete product")
		return
	}
	utils.RespondJSON(w, http.StatusOK, model.Message{Message: "Product deleted successfully"})
}
