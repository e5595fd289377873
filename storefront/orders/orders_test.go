package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plant_nursery/model"
	"plant_nursery/storefront/api"
	"plant_nursery/storefront/internal/fakeapi"
	"plant_nursery/storefront/toast"
)

func TestActions(t *testing.T) {
	tests := []struct {
		name   string
		order  model.Order
		expect []Action
	}{
		{"pending unpaid", model.Order{Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusUnpaid},
			[]Action{ActionView, ActionReorder, ActionCancel, ActionPay}},
		{"pending paid", model.Order{Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusPaid},
			[]Action{ActionView, ActionReorder}},
		{"delivered", model.Order{Status: model.OrderStatusDelivered, PaymentStatus: model.PaymentStatusPaid},
			[]Action{ActionView, ActionReorder, ActionReview}},
		{"shipped", model.Order{Status: model.OrderStatusShipped, PaymentStatus: model.PaymentStatusUnpaid},
			[]Action{ActionView, ActionReorder}},
		{"cancelled", model.Order{Status: model.OrderStatusCancelled, PaymentStatus: model.PaymentStatusUnpaid},
			[]Action{ActionView, ActionReorder}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, Actions(tt.order))
		})
	}
}

func TestReviewTargetIsFirstItem(t *testing.T) {
	order := model.Order{
		Status: model.OrderStatusDelivered,
		Items:  []model.OrderItem{{ProductId: "tulsi"}, {ProductId: "areca"}},
	}
	item, ok := ReviewTarget(order)
	require.True(t, ok)
	assert.Equal(t, "tulsi", item.ProductId)

	order.Status = model.OrderStatusShipped
	_, ok = ReviewTarget(order)
	assert.False(t, ok)
}

func TestUPILink(t *testing.T) {
	order := model.Order{OrderNumber: "ORD-x1", Total: decimal.RequireFromString("320.5")}
	assert.Equal(t, "upi://pay?am=320.50&cu=INR&pa=greenleaf%40upi&pn=Greenleaf+Nursery&tn=ORD-x1",
		UPILink("greenleaf@upi", "Greenleaf Nursery", order))
}

type fakeCheckout struct {
	receipt Receipt
	err     error
}

func (f fakeCheckout) Pay(ctx context.Context, order model.Order) (Receipt, error) {
	return f.receipt, f.err
}

func setup(t *testing.T) (*fakeapi.Backend, *Book, *toast.Recorder) {
	backend := fakeapi.New()
	backend.AddProduct(model.Products{ProductId: "tulsi", Name: "Tulsi", Price: decimal.NewFromInt(120), Stock: 3})
	backend.AddOrder(model.Order{
		Id: "o-pending", OrderNumber: "ORD-1", Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusUnpaid,
		Items: []model.OrderItem{{ProductId: "tulsi", Name: "Tulsi", Price: decimal.NewFromInt(120), Quantity: 2}},
	})
	backend.AddOrder(model.Order{Id: "o-done", Status: model.OrderStatusDelivered, PaymentStatus: model.PaymentStatusPaid})
	srv := backend.Start(t)
	toasts := &toast.Recorder{}
	book := NewBook(api.New(srv.URL, fakeapi.BasePath, nil, api.WithHTTPClient(srv.Client())), toasts)
	require.NoError(t, book.Load(context.Background()))
	return backend, book, toasts
}

func TestCancelIsGatedAndPatchesList(t *testing.T) {
	backend, book, _ := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, book.Cancel(ctx, "o-done"), ErrActionNotAllowed)
	assert.Zero(t, backend.CountRequests("PUT /orders/cancel"))

	require.NoError(t, book.Cancel(ctx, "o-pending"))
	order, err := book.Get("o-pending")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, order.Status)
	assert.ErrorIs(t, book.Cancel(ctx, "o-pending"), ErrActionNotAllowed)
}

func TestPayWithCheckout(t *testing.T) {
	_, book, toasts := setup(t)
	ctx := context.Background()

	err := book.PayWithCheckout(ctx, "o-pending", fakeCheckout{receipt: Receipt{Reference: "pay_1", Signature: "forged"}})
	require.Error(t, err)
	last, _ := toasts.Last()
	assert.Equal(t, "payment signature mismatch", last.Text)

	closed := errors.New("widget closed")
	assert.ErrorIs(t, book.PayWithCheckout(ctx, "o-pending", fakeCheckout{err: closed}), closed)

	require.NoError(t, book.PayWithCheckout(ctx, "o-pending", fakeCheckout{receipt: Receipt{Reference: "pay_1", Signature: "sig-pay_1"}}))
	order, _ := book.Get("o-pending")
	assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, string(model.PaymentMethodCheckout), order.PaymentMethod)
	assert.NotContains(t, Actions(order), ActionPay)
}

func TestConfirmQRPayment(t *testing.T) {
	_, book, _ := setup(t)
	require.NoError(t, book.ConfirmQRPayment(context.Background(), "o-pending", "UTR123"))
	order, _ := book.Get("o-pending")
	assert.Equal(t, string(model.PaymentMethodUPIQR), order.PaymentMethod)
	assert.ErrorIs(t, book.ConfirmQRPayment(context.Background(), "o-pending", "UTR124"), ErrActionNotAllowed)
}

func TestReorderLeavesStockToServer(t *testing.T) {
	backend, book, toasts := setup(t)
	ctx := context.Background()

	created, err := book.Reorder(ctx, "o-pending")
	require.NoError(t, err)
	assert.Equal(t, created.Id, book.Orders()[0].Id)
	assert.Equal(t, 1, backend.Stock("tulsi"))

	_, err = book.Reorder(ctx, "o-pending")
	require.Error(t, err)
	last, _ := toasts.Last()
	assert.Equal(t, toast.KindError, last.Kind)
	assert.Len(t, book.Orders(), 3)
}
