package dbHelper

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/teris-io/shortid"

	"plant_nursery/model"
)

const orderColumns = `o.id, o.order_number, o.user_id, o.status, o.payment_status, o.payment_method,
	o.payment_reference, o.total, o.created_at`

// CreateOrder stores the order header and its lines; the caller owns the
// transaction and the stock bookkeeping.
func CreateOrder(db sqlx.Ext, userId string, items []model.OrderItem) (model.Order, error) {
	orderNumber, err := shortid.Generate()
	if err != nil {
		return model.Order{}, err
	}
	order := model.Order{
		Id:            uuid.NewString(),
		OrderNumber:   "ORD-" + orderNumber,
		UserId:        userId,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusUnpaid,
		Total:         decimal.Zero,
		Items:         items,
	}
	for _, item := range items {
		order.Total = order.Total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	SQL := `INSERT INTO orders(id, order_number, user_id, status, payment_status, total) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := db.Exec(SQL, order.Id, order.OrderNumber, userId, order.Status, order.PaymentStatus, order.Total); err != nil {
		return model.Order{}, err
	}

	itemSQL := `INSERT INTO order_items(order_id, position, product_id, name, price, quantity) VALUES ($1, $2, $3, $4, $5, $6)`
	for position, item := range items {
		if _, err := db.Exec(itemSQL, order.Id, position, item.ProductId, item.Name, item.Price, item.Quantity); err != nil {
			return model.Order{}, err
		}
	}
	return order, nil
}

func GetOrdersByUser(db sqlx.Ext, userId string) ([]model.Order, error) {
	SQL := `SELECT ` + orderColumns + ` FROM orders o WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.order_number`
	list := make([]model.Order, 0)
	if err := sqlx.Select(db, &list, SQL, userId); err != nil {
		return nil, err
	}
	return list, attachOrderItems(db, list)
}

func GetAllOrder(db sqlx.Ext) ([]model.Order, error) {
	SQL := `SELECT ` + orderColumns + ` FROM orders o ORDER BY o.created_at DESC, o.order_number`
	list := make([]model.Order, 0)
	if err := sqlx.Select(db, &list, SQL); err != nil {
		return nil, err
	}
	return list, attachOrderItems(db, list)
}

func GetOrderById(db sqlx.Ext, orderId string) (model.Order, error) {
	SQL := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`
	var order model.Order
	if err := sqlx.Get(db, &order, SQL, orderId); err != nil {
		return order, err
	}
	list := []model.Order{order}
	err := attachOrderItems(db, list)
	return list[0], err
}

type orderItemRow struct {
	OrderId string `db:"order_id"`
	model.OrderItem
}

func attachOrderItems(db sqlx.Ext, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	index := make(map[string]int, len(orders))
	ids := make([]string, 0, len(orders))
	for i := range orders {
		orders[i].Items = []model.OrderItem{}
		index[orders[i].Id] = i
		ids = append(ids, orders[i].Id)
	}
	query, args, err := sqlx.In(`SELECT order_id, product_id, name, price, quantity FROM order_items WHERE order_id IN (?) ORDER BY order_id, position`, ids)
	if err != nil {
		return err
	}
	rows := make([]orderItemRow, 0)
	if err := sqlx.Select(db, &rows, db.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range rows {
		i := index[row.OrderId]
		orders[i].Items = append(orders[i].Items, row.OrderItem)
	}
	return nil
}

func UpdateOrderStatus(db sqlx.Ext, orderId string, status model.OrderStatus) error {
	SQL := `UPDATE orders SET status = $1 WHERE id = $2`
	return expectAffected(db.Exec(SQL, status, orderId))
}

func MarkOrderPaid(db sqlx.Ext, orderId string, method model.PaymentMethod, reference string) error {
	SQL := `UPDATE orders SET payment_status = $1, payment_method = $2, payment_reference = $3
			WHERE id = $4 AND payment_status = $5`
	return expectAffected(db.Exec(SQL, model.PaymentStatusPaid, method, reference, orderId, model.PaymentStatusUnpaid))
}

// HasDeliveredProduct reports whether the user received the product in any
// delivered order; only such users may review it.
func HasDeliveredProduct(db sqlx.Queryer, userId, productId string) (bool, error) {
	SQL := `SELECT COUNT(*)
			FROM orders o
				INNER JOIN order_items oi ON oi.order_id = o.id
			WHERE o.user_id = $1 AND oi.product_id = $2 AND o.status = $3`
	var count int
	err := sqlx.Get(db, &count, SQL, userId, productId, model.OrderStatusDelivered)
	return count > 0, err
}

func GetStats(db sqlx.Queryer) (model.Stats, error) {
	SQL := `SELECT
				(SELECT COUNT(*) FROM products WHERE archived_at IS NULL) AS products,
				(SELECT COUNT(*) FROM orders) AS orders,
				(SELECT COUNT(*) FROM users WHERE archived_at IS NULL) AS users,
				(SELECT COUNT(*) FROM orders WHERE status = $1) AS pending_orders,
				(SELECT COALESCE(SUM(total), 0) FROM orders WHERE payment_status = $2) AS revenue`
	var stats model.Stats
	err := sqlx.Get(db, &stats, SQL, model.OrderStatusPending, model.PaymentStatusPaid)
	return stats, err
}
