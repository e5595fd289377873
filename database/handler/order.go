package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"plant_nursery/database"
	"plant_nursery/database/dbHelper"
	"plant_nursery/model"
	"plant_nursery/utils"
)

var (
	errOrderNotOwned   = errors.New("order does not belong to the user")
	errOrderNotPending = errors.New("only pending unpaid orders can be cancelled")
	errBadTransition   = errors.New("order status transition not allowed")
)

func GetMyOrders(w http.ResponseWriter, r *http.Request) {
	list, err := dbHelper.GetOrdersByUser(database.Nursery, getUserId(r))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get orders")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func GetAllOrder(w http.ResponseWriter, r *http.Request) {
	list, err := dbHelper.GetAllOrder(database.Nursery)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get orders")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// mergeItems folds repeated products into one line, keeping first-seen order.
func mergeItems(items []model.ProductMinimalDetails) []model.ProductMinimalDetails {
	merged := make([]model.ProductMinimalDetails, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if i, ok := index[item.ProductId]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductId] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// CreateOrder reserves stock for every line and stores the order in one
// transaction. Orders placed from the cart empty it in the same transaction.
func CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body model.OrderRequest
	if !parseAndValidate(w, r, &body) {
		return
	}
	userId := getUserId(r)

	var order model.Order
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		lines := make([]model.OrderItem, 0, len(body.Items))
		for _, item := range mergeItems(body.Items) {
			product, err := dbHelper.GetProductById(tx, item.ProductId)
			if isNotFound(err) {
				return dbHelper.ErrProductNotFound
			}
			if err != nil {
				return err
			}
			if err := dbHelper.DecreaseProductStock(tx, item.ProductId, item.Quantity); err != nil {
				return err
			}
			lines = append(lines, model.OrderItem{
				ProductId: product.ProductId,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  item.Quantity,
			})
		}
		var err error
		order, err = dbHelper.CreateOrder(tx, userId, lines)
		if err != nil {
			return err
		}
		if body.FromCart {
			return dbHelper.ClearCart(tx, userId)
		}
		return nil
	})
	if txErr != nil {
		respondCartError(w, txErr, "Failed to create order")
		return
	}

	if stored, err := dbHelper.GetOrderById(database.Nursery, order.Id); err == nil {
		order = stored
	}
	logrus.WithFields(logrus.Fields{"order": order.OrderNumber, "user": userId}).Info("CreateOrder: order placed")
	utils.RespondJSON(w, http.StatusCreated, order)
}

func loadOwnedOrder(db sqlx.Ext, orderId, userId string) (model.Order, error) {
	order, err := dbHelper.GetOrderById(db, orderId)
	if err != nil {
		return order, err
	}
	if order.UserId != userId {
		return order, errOrderNotOwned
	}
	return order, nil
}

func restock(tx *sqlx.Tx, order model.Order) error {
	for _, item := range order.Items {
		if err := dbHelper.IncreaseProductStock(tx, item.ProductId, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func respondOrderError(w http.ResponseWriter, err error, message string) {
	switch {
	case isNotFound(err), errors.Is(err, errOrderNotOwned):
		utils.RespondError(w, http.StatusNotFound, nil, "Order not found")
	case errors.Is(err, errOrderNotPending), errors.Is(err, errBadTransition):
		utils.RespondError(w, http.StatusBadRequest, err, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err, message)
	}
}

func CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderId := urlParam(r, "id")
	userId := getUserId(r)

	var order model.Order
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		var err error
		order, err = loadOwnedOrder(tx, orderId, userId)
		if err != nil {
			return err
		}
		if order.Status != model.OrderStatusPending || order.PaymentStatus != model.PaymentStatusUnpaid {
			return errOrderNotPending
		}
		if err := dbHelper.UpdateOrderStatus(tx, orderId, model.OrderStatusCancelled); err != nil {
			return err
		}
		return restock(tx, order)
	})
	if txErr != nil {
		respondOrderError(w, txErr, "Failed to cancel order")
		return
	}
	order.Status = model.OrderStatusCancelled
	utils.RespondJSON(w, http.StatusOK, order)
}

// CheckoutSignature is the value the hosted checkout posts back for a
// completed payment: hex(HMAC-SHA256(orderId|reference)).
func CheckoutSignature(secret, orderId, reference string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderId + "|" + reference))
	return hex.EncodeToString(mac.Sum(nil))
}

// PayOrder marks an order paid. Checkout payments must carry a valid
// signature. UPI QR payments are asserted by the customer and are recorded
// as such without verification.
func PayOrder(w http.ResponseWriter, r *http.Request) {
	var body model.PaymentRequest
	if !parseAndValidate(w, r, &body) {
		return
	}
	orderId := urlParam(r, "id")
	userId := getUserId(r)

	order, err := loadOwnedOrder(database.Nursery, orderId, userId)
	if err != nil {
		respondOrderError(w, err, "Failed to load order")
		return
	}
	if order.Status == model.OrderStatusCancelled {
		utils.RespondError(w, http.StatusBadRequest, nil, "cancelled orders cannot be paid")
		return
	}
	if order.PaymentStatus == model.PaymentStatusPaid {
		utils.RespondError(w, http.StatusConflict, nil, "order is already paid")
		return
	}

	switch body.Method {
	case model.PaymentMethodCheckout:
		secret := options().WebhookSecret
		if secret == "" {
			utils.RespondError(w, http.StatusServiceUnavailable, nil, "checkout payments are not configured")
			return
		}
		expected := CheckoutSignature(secret, orderId, body.Reference)
		if body.Reference == "" || !hmac.Equal([]byte(expected), []byte(body.Signature)) {
			utils.RespondError(w, http.StatusBadRequest, nil, "payment signature mismatch")
			return
		}
	case model.PaymentMethodUPIQR:
		logrus.WithFields(logrus.Fields{"order": order.OrderNumber, "user": userId}).
			Warn("PayOrder: UPI QR payment is customer-asserted and unverified")
	}

	if err := dbHelper.MarkOrderPaid(database.Nursery, orderId, body.Method, body.Reference); err != nil {
		if isNotFound(err) {
			utils.RespondError(w, http.StatusConflict, nil, "order is already paid")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to mark order paid")
		return
	}
	order.PaymentStatus = model.PaymentStatusPaid
	order.PaymentMethod = string(body.Method)
	order.PaymentReference = body.Reference
	utils.RespondJSON(w, http.StatusOK, order)
}

func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body model.OrderStatusRequest
	if !parseAndValidate(w, r, &body) {
		return
	}
	orderId := urlParam(r, "id")

	var order model.Order
	txErr := database.Tx(func(tx *sqlx.Tx) error {
		var err error
		order, err = dbHelper.GetOrderById(tx, orderId)
		if err != nil {
			return err
		}
		if !order.Status.CanTransition(body.Status) {
			return errBadTransition
		}
		if err := dbHelper.UpdateOrderStatus(tx, orderId, body.Status); err != nil {
			return err
		}
		if body.Status == model.OrderStatusCancelled {
			return restock(tx, order)
		}
		return nil
	})
	if txErr != nil {
		respondOrderError(w, txErr, "Failed to update order status")
		return
	}
	order.Status = body.Status
	utils.RespondJSON(w, http.StatusOK, order)
}
