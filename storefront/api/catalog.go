package api

import (
	"context"
	"net/http"
	"net/url"

	"plant_nursery/model"
)

// ProductQuery holds the server-side catalog filters; empty fields are
// left out of the query string.
type ProductQuery struct {
	Search   string
	Category string
	Price    string
	Sort     string
}

func (q ProductQuery) encode() string {
	values := url.Values{}
	for key, value := range map[string]string{"search": q.Search, "category": q.Category, "price": q.Price, "sort": q.Sort} {
		if value != "" {
			values.Set(key, value)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func (c *Client) Products(ctx context.Context, q ProductQuery) ([]model.Products, error) {
	var out ProductList
	if err := c.do(ctx, http.MethodGet, "/products"+q.encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) Product(ctx context.Context, id string) (model.Products, error) {
	var out model.Products
	err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, body model.ProductsRequest) (model.Products, error) {
	var out model.Products
	err := c.do(ctx, http.MethodPost, "/products", body, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, id string, body model.ProductsRequest) (model.Products, error) {
	var out model.Products
	err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), body, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0)
	err := c.do(ctx, http.MethodGet, "/categories", nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, body model.CategoryRequest) (model.Category, error) {
	var out model.Category
	err := c.do(ctx, http.MethodPost, "/categories", body, &out)
	return out, err
}

func (c *Client) UpdateCategory(ctx context.Context, id string, body model.CategoryRequest) (model.Category, error) {
	var out model.Category
	err := c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), body, &out)
	return out, err
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}
