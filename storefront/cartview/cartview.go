// Package cartview is the cart page. It never patches its item list
// locally: every line mutation is followed by a fetch of the whole cart.
package cartview

import (
	"context"
	"errors"
	"sync"

	"plant_nursery/model"
	"plant_nursery/storefront/api"
	"plant_nursery/storefront/cartcount"
	"plant_nursery/storefront/toast"
)

var (
	// ErrDecrementDisabled is returned when decrementing a line at quantity 1;
	// removal is the only way to zero.
	ErrDecrementDisabled = errors.New("cartview: decrement disabled at quantity 1")
	ErrItemNotFound      = errors.New("cartview: item not in cart")
	ErrEmptyCart         = errors.New("cartview: cart is empty")
)

type CartAPI interface {
	Cart(ctx context.Context) (model.Cart, error)
	UpdateCartItem(ctx context.Context, productId string, quantity int) error
	RemoveFromCart(ctx context.Context, productId string) error
	PlaceOrder(ctx context.Context, body model.OrderRequest) (model.Order, error)
}

type View struct {
	api     CartAPI
	counter *cartcount.Store
	notify  toast.Notifier

	mu    sync.RWMutex
	items []model.CartItem
}

func New(cartAPI CartAPI, counter *cartcount.Store, notify toast.Notifier) *View {
	return &View{api: cartAPI, counter: counter, notify: notify}
}

// Load fetches the authoritative cart and sets the badge to its total.
func (v *View) Load(ctx context.Context) error {
	cart, err := v.api.Cart(ctx)
	if err != nil {
		v.notify.Error(api.Message(err))
		return err
	}
	v.mu.Lock()
	v.items = cart.Items
	v.mu.Unlock()
	v.counter.Dispatch(cartcount.Set(cart.Count()))
	return nil
}

func (v *View) Items() []model.CartItem {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]model.CartItem(nil), v.items...)
}

func (v *View) Cart() model.Cart {
	return model.Cart{Items: v.Items()}
}

func (v *View) item(productId string) (model.CartItem, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, item := range v.items {
		if item.ProductId == productId {
			return item, nil
		}
	}
	return model.CartItem{}, ErrItemNotFound
}

// CanDecrement reports whether the decrement control is enabled.
func CanDecrement(item model.CartItem) bool {
	return item.Quantity > 1
}

func (v *View) Increment(ctx context.Context, productId string) error {
	item, err := v.item(productId)
	if err != nil {
		return err
	}
	return v.mutate(ctx, cartcount.Increment(1), "Quantity updated", func() error {
		return v.api.UpdateCartItem(ctx, productId, item.Quantity+1)
	})
}

func (v *View) Decrement(ctx context.Context, productId string) error {
	item, err := v.item(productId)
	if err != nil {
		return err
	}
	if !CanDecrement(item) {
		return ErrDecrementDisabled
	}
	return v.mutate(ctx, cartcount.Decrement(1), "Quantity updated", func() error {
		return v.api.UpdateCartItem(ctx, productId, item.Quantity-1)
	})
}

// Remove deletes the whole line; the badge drops by the line quantity.
func (v *View) Remove(ctx context.Context, productId string) error {
	item, err := v.item(productId)
	if err != nil {
		return err
	}
	return v.mutate(ctx, cartcount.Decrement(item.Quantity), "Item removed from cart", func() error {
		return v.api.RemoveFromCart(ctx, productId)
	})
}

// mutate sends one request, moves the badge only on success, then refetches.
func (v *View) mutate(ctx context.Context, action cartcount.Action, success string, send func() error) error {
	if err := send(); err != nil {
		v.notify.Error(api.Message(err))
		return err
	}
	v.counter.Dispatch(action)
	v.notify.Success(success)
	return v.Load(ctx)
}

// PlaceOrder orders the fetched snapshot. On success the local cart is
// emptied without asking the server again.
func (v *View) PlaceOrder(ctx context.Context) (model.Order, error) {
	items := v.Items()
	if len(items) == 0 {
		return model.Order{}, ErrEmptyCart
	}
	body := model.OrderRequest{FromCart: true, Items: make([]model.ProductMinimalDetails, 0, len(items))}
	for _, item := range items {
		body.Items = append(body.Items, model.ProductMinimalDetails{ProductId: item.ProductId, Quantity: item.Quantity})
	}
	order, err := v.api.PlaceOrder(ctx, body)
	if err != nil {
		v.notify.Error(api.Message(err))
		return model.Order{}, err
	}
	v.mu.Lock()
	v.items = []model.CartItem{}
	v.mu.Unlock()
	v.counter.Dispatch(cartcount.Set(0))
	v.notify.Success("Order placed successfully")
	return order, nil
}
