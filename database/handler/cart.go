package handler

import (
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"

	"plant_nursery/database"
	"plant_nursery/database/dbHelper"
	"plant_nursery/model"
	"plant_nursery/utils"
)

func respondCart(w http.ResponseWriter, userId string, status int) {
	items, err := dbHelper.GetCartWithProduct(database.Nursery, userId)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get cart")
		return
	}
	cart := model.Cart{Items: items}
	utils.RespondJSON(w, status, model.CartResponse{Cart: cart, Count: cart.Count()})
}

func GetCart(w http.ResponseWriter, r *http.Request) {
	respondCart(w, getUserId(r), http.StatusOK)
}

// cartStockCheck loads the product and compares the wanted line quantity
// with what is on the shelf.
func cartStockCheck(db sqlx.Ext, productId string, wanted int) error {
	product, err := dbHelper.GetProductById(db, productId)
	if isNotFound(err) {
		return dbHelper.ErrProductNotFound
	}
	if err != nil {
		return err
	}
	if wanted > product.Stock {
		return dbHelper.ErrInsufficientStock
	}
	return nil
}

func respondCartError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, dbHelper.ErrProductNotFound), errors.Is(err, dbHelper.ErrCartItemNotFound):
		utils.RespondError(w, http.StatusNotFound, err, err.Error())
	case errors.Is(err, dbHelper.ErrInsufficientStock):
		utils.RespondError(w, http.StatusBadRequest, err, "Requested quantity not available")
	default:
		utils.RespondError(w, http.StatusInternalServerError, err, message)
	}
}

// AddProductToCart adds quantity to the line, creating cart and line as needed.
func AddProductToCart(w http.ResponseWriter, r *http.Request) {
	var body model.CartRequest
	if !parseAndValidate(w, r, &body) {
		return
	}
	userId := getUserId(r)

	txErr := database.Tx(func(tx *sqlx.Tx) error {
		cartId, err := dbHelper.GetOrCreateCart(tx, userId)
		if err != nil {
			return err
		}
		current, err := dbHelper.GetCartProductQuantity(tx, cartId, body.ProductId)
		if err != nil && !isNotFound(err) {
			return err
		}
		if err := cartStockCheck(tx, body.ProductId, current+body.Quantity); err != nil {
			return err
		}
		if current > 0 {
			return dbHelper.SetProductQuantityInCart(tx, cartId, body.ProductId, current+body.Quantity)
		}
		return dbHelper.CreateProductInCart(tx, cartId, body.ProductId, body.Quantity)
	})
	if txErr != nil {
		respondCartError(w, txErr, "Failed to add product")
		return
	}
	respondCart(w, userId, http.StatusCreated)
}

// UpdateCartQuantity sets an existing line to an absolute quantity (>= 1).
func UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	var body model.CartRequest
	if !parseAndValidate(w, r, &body) {
		return
	}
	userId := getUserId(r)

	txErr := database.Tx(func(tx *sqlx.Tx) error {
		cartId, exist, err := dbHelper.IsCartExist(tx, userId)
		if err != nil {
			return err
		}
		if !exist {
			return dbHelper.ErrCartItemNotFound
		}
		if err := cartStockCheck(tx, body.ProductId, body.Quantity); err != nil {
			return err
		}
		return dbHelper.SetProductQuantityInCart(tx, cartId, body.ProductId, body.Quantity)
	})
	if txErr != nil {
		respondCartError(w, txErr, "Failed to update quantity")
		return
	}
	respondCart(w, userId, http.StatusOK)
}

func RemoveProductFromCart(w http.ResponseWriter, r *http.Request) {
	userId := getUserId(r)
	if err := dbHelper.DeleteProductFromCart(database.Nursery, userId, urlParam(r, "id")); err != nil {
		respondCartError(w, err, "Failed to remove product")
		return
	}
	respondCart(w, userId, http.StatusOK)
}
