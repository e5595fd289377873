package api

import (
	"context"
	"net/http"
	"net/url"

	"plant_nursery/model"
)

func (c *Client) ProductReviews(ctx context.Context, productId string) ([]model.Review, error) {
	out := make([]model.Review, 0)
	err := c.do(ctx, http.MethodGet, "/reviews/product/"+url.PathEscape(productId), nil, &out)
	return out, err
}

func (c *Client) CanReview(ctx context.Context, productId string) (bool, error) {
	var out model.CanReviewResponse
	err := c.do(ctx, http.MethodGet, "/reviews/can-review/"+url.PathEscape(productId), nil, &out)
	return out.CanReview, err
}

func (c *Client) CreateReview(ctx context.Context, body model.ReviewRequest) (model.Review, error) {
	var out model.Review
	err := c.do(ctx, http.MethodPost, "/reviews", body, &out)
	return out, err
}

func (c *Client) UpdateReview(ctx context.Context, id string, body model.ReviewRequest) (model.Review, error) {
	var out model.Review
	err := c.do(ctx, http.MethodPut, "/reviews/"+url.PathEscape(id), body, &out)
	return out, err
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AllReviews(ctx context.Context) ([]model.Review, error) {
	out := make([]model.Review, 0)
	err := c.do(ctx, http.MethodGet, "/reviews", nil, &out)
	return out, err
}
