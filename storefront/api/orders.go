package api

import (
	"context"
	"net/http"
	"net/url"

	"plant_nursery/model"
)

func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	out := make([]model.Order, 0)
	err := c.do(ctx, http.MethodGet, "/orders", nil, &out)
	return out, err
}

func (c *Client) AllOrders(ctx context.Context) ([]model.Order, error) {
	out := make([]model.Order, 0)
	err := c.do(ctx, http.MethodGet, "/orders/all", nil, &out)
	return out, err
}

func (c *Client) PlaceOrder(ctx context.Context, body model.OrderRequest) (model.Order, error) {
	var out model.Order
	err := c.do(ctx, http.MethodPost, "/orders", body, &out)
	return out, err
}

func (c *Client) CancelOrder(ctx context.Context, id string) (model.Order, error) {
	var out model.Order
	err := c.do(ctx, http.MethodPut, "/orders/cancel/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) PayOrder(ctx context.Context, id string, body model.PaymentRequest) (model.Order, error) {
	var out model.Order
	err := c.do(ctx, http.MethodPut, "/orders/pay/"+url.PathEscape(id), body, &out)
	return out, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (model.Order, error) {
	var out model.Order
	err := c.do(ctx, http.MethodPut, "/orders/status/"+url.PathEscape(id), model.OrderStatusRequest{Status: status}, &out)
	return out, err
}
