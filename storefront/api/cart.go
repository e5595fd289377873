package api

import (
	"context"
	"net/http"
	"net/url"

	"plant_nursery/model"
)

func (c *Client) Cart(ctx context.Context) (model.Cart, error) {
	var out CartEnvelope
	err := c.do(ctx, http.MethodGet, "/cart", nil, &out)
	return out.Cart, err
}

func (c *Client) AddToCart(ctx context.Context, productId string, quantity int) error {
	return c.do(ctx, http.MethodPost, "/cart/add", model.CartRequest{ProductId: productId, Quantity: quantity}, nil)
}

// UpdateCartItem sets the line to an absolute quantity.
func (c *Client) UpdateCartItem(ctx context.Context, productId string, quantity int) error {
	return c.do(ctx, http.MethodPut, "/cart/update", model.CartRequest{ProductId: productId, Quantity: quantity}, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, productId string) error {
	return c.do(ctx, http.MethodDelete, "/cart/remove/"+url.PathEscape(productId), nil, nil)
}
