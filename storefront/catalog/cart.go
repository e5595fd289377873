package catalog

import (
	"context"
	"errors"

	"plant_nursery/model"
	"plant_nursery/storefront/cartcount"
)

var ErrOutOfStock = errors.New("catalog: product is out of stock")

type CartAdder interface {
	AddToCart(ctx context.Context, productId string, quantity int) error
}

// AddToCart adds one unit from a product card and bumps the cart badge.
// Nothing is sent for an out-of-stock product, and a failed request leaves
// the badge alone.
func AddToCart(ctx context.Context, cart CartAdder, counter *cartcount.Store, product model.Products) error {
	if StockBadge(product.Stock).AddDisabled {
		return ErrOutOfStock
	}
	if err := cart.AddToCart(ctx, product.ProductId, 1); err != nil {
		return err
	}
	counter.Dispatch(cartcount.Increment(1))
	return nil
}
