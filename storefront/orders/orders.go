// Package orders is the customer's order list with its client-gated actions
// and the two payment paths.
package orders

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"plant_nursery/model"
	"plant_nursery/storefront/api"
	"plant_nursery/storefront/toast"
)

type Action string

const (
	ActionView    Action = "view"
	ActionReorder Action = "reorder"
	ActionCancel  Action = "cancel"
	ActionPay     Action = "pay"
	ActionReview  Action = "review"
)

var (
	ErrActionNotAllowed = errors.New("orders: action not offered for this order")
	ErrOrderNotFound    = errors.New("orders: order not in list")
)

// Actions lists what the order card offers. Mutating actions exist only for
// pending unpaid orders; review only for delivered ones.
func Actions(o model.Order) []Action {
	actions := []Action{ActionView, ActionReorder}
	switch {
	case o.Status == model.OrderStatusPending && o.PaymentStatus == model.PaymentStatusUnpaid:
		actions = append(actions, ActionCancel, ActionPay)
	case o.Status == model.OrderStatusDelivered:
		actions = append(actions, ActionReview)
	}
	return actions
}

func Allows(o model.Order, action Action) bool {
	for _, a := range Actions(o) {
		if a == action {
			return true
		}
	}
	return false
}

// ReviewTarget is the product the review action opens: the first line only.
func ReviewTarget(o model.Order) (model.OrderItem, bool) {
	if !Allows(o, ActionReview) || len(o.Items) == 0 {
		return model.OrderItem{}, false
	}
	return o.Items[0], true
}

type OrderAPI interface {
	Orders(ctx context.Context) ([]model.Order, error)
	PlaceOrder(ctx context.Context, body model.OrderRequest) (model.Order, error)
	CancelOrder(ctx context.Context, id string) (model.Order, error)
	PayOrder(ctx context.Context, id string, body model.PaymentRequest) (model.Order, error)
}

// Receipt is what the hosted checkout hands back once the shopper paid.
type Receipt struct {
	Reference string
	Signature string
}

// Checkout opens the hosted checkout for an order and waits for its
// completion callback.
type Checkout interface {
	Pay(ctx context.Context, order model.Order) (Receipt, error)
}

type Book struct {
	api    OrderAPI
	notify toast.Notifier

	mu     sync.RWMutex
	orders []model.Order
}

func NewBook(orderAPI OrderAPI, notify toast.Notifier) *Book {
	return &Book{api: orderAPI, notify: notify}
}

func (b *Book) Load(ctx context.Context) error {
	list, err := b.api.Orders(ctx)
	if err != nil {
		b.notify.Error(api.Message(err))
		return err
	}
	b.mu.Lock()
	b.orders = list
	b.mu.Unlock()
	return nil
}

func (b *Book) Orders() []model.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]model.Order(nil), b.orders...)
}

func (b *Book) Get(id string) (model.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.orders {
		if o.Id == id {
			return o, nil
		}
	}
	return model.Order{}, ErrOrderNotFound
}

// patch replaces the order in the local list with the server's copy.
func (b *Book) patch(updated model.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].Id == updated.Id {
			b.orders[i] = updated
			return
		}
	}
}

func (b *Book) gated(id string, action Action) (model.Order, error) {
	order, err := b.Get(id)
	if err != nil {
		return order, err
	}
	if !Allows(order, action) {
		return order, ErrActionNotAllowed
	}
	return order, nil
}

func (b *Book) Cancel(ctx context.Context, id string) error {
	if _, err := b.gated(id, ActionCancel); err != nil {
		return err
	}
	updated, err := b.api.CancelOrder(ctx, id)
	if err != nil {
		b.notify.Error(api.Message(err))
		return err
	}
	b.patch(updated)
	b.notify.Success("Order cancelled")
	return nil
}

// Reorder places the same lines again as a new order. Stock is left for
// the server to check.
func (b *Book) Reorder(ctx context.Context, id string) (model.Order, error) {
	order, err := b.Get(id)
	if err != nil {
		return model.Order{}, err
	}
	body := model.OrderRequest{Items: make([]model.ProductMinimalDetails, 0, len(order.Items))}
	for _, item := range order.Items {
		body.Items = append(body.Items, model.ProductMinimalDetails{ProductId: item.ProductId, Quantity: item.Quantity})
	}
	created, err := b.api.PlaceOrder(ctx, body)
	if err != nil {
		b.notify.Error(api.Message(err))
		return model.Order{}, err
	}
	b.mu.Lock()
	b.orders = append([]model.Order{created}, b.orders...)
	b.mu.Unlock()
	b.notify.Success("Order placed again")
	return created, nil
}

// PayWithCheckout runs the hosted checkout and reports its signed receipt;
// the server verifies the signature.
func (b *Book) PayWithCheckout(ctx context.Context, id string, checkout Checkout) error {
	order, err := b.gated(id, ActionPay)
	if err != nil {
		return err
	}
	receipt, err := checkout.Pay(ctx, order)
	if err != nil {
		b.notify.Error("Payment was not completed")
		return err
	}
	return b.markPaid(ctx, id, model.PaymentRequest{
		Method:    model.PaymentMethodCheckout,
		Reference: receipt.Reference,
		Signature: receipt.Signature,
	})
}

// ConfirmQRPayment is called when the shopper says they paid through the
// UPI link. Nothing verifies the claim; the server records it as upi_qr.
func (b *Book) ConfirmQRPayment(ctx context.Context, id, reference string) error {
	if _, err := b.gated(id, ActionPay); err != nil {
		return err
	}
	return b.markPaid(ctx, id, model.PaymentRequest{Method: model.PaymentMethodUPIQR, Reference: reference})
}

func (b *Book) markPaid(ctx context.Context, id string, body model.PaymentRequest) error {
	updated, err := b.api.PayOrder(ctx, id, body)
	if err != nil {
		b.notify.Error(api.Message(err))
		return err
	}
	b.patch(updated)
	b.notify.Success("Payment recorded")
	return nil
}

// UPILink is the deep link shown next to the static QR image.
func UPILink(payeeID, payeeName string, order model.Order) string {
	values := url.Values{}
	values.Set("pa", payeeID)
	values.Set("pn", payeeName)
	values.Set("am", order.Total.StringFixed(2))
	values.Set("cu", "INR")
	values.Set("tn", order.OrderNumber)
	return "upi://pay?" + values.Encode()
}
