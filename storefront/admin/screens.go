package admin

import (
	"context"

	"plant_nursery/model"
	"plant_nursery/storefront/api"
	"plant_nursery/storefront/toast"
)

func Categories(c *api.Client, notify toast.Notifier) *Screen[model.Category, model.CategoryRequest] {
	return NewScreen(Endpoints[model.Category, model.CategoryRequest]{
		List: c.Categories,
		Create: func(ctx context.Context, body model.CategoryRequest) error {
			_, err := c.CreateCategory(ctx, body)
			return err
		},
		Update: func(ctx context.Context, id string, body model.CategoryRequest) error {
			_, err := c.UpdateCategory(ctx, id, body)
			return err
		},
		Delete: c.DeleteCategory,
	}, notify)
}

func Products(c *api.Client, notify toast.Notifier) *Screen[model.Products, model.ProductsRequest] {
	return NewScreen(Endpoints[model.Products, model.ProductsRequest]{
		List: func(ctx context.Context) ([]model.Products, error) {
			return c.Products(ctx, api.ProductQuery{})
		},
		Create: func(ctx context.Context, body model.ProductsRequest) error {
			_, err := c.CreateProduct(ctx, body)
			return err
		},
		Update: func(ctx context.Context, id string, body model.ProductsRequest) error {
			_, err := c.UpdateProduct(ctx, id, body)
			return err
		},
		Delete: c.DeleteProduct,
	}, notify)
}

// Users edits the role only.
func Users(c *api.Client, notify toast.Notifier) *Screen[model.User, model.Role] {
	return NewScreen(Endpoints[model.User, model.Role]{
		List: c.Users,
		Update: func(ctx context.Context, id string, role model.Role) error {
			_, err := c.UpdateUserRole(ctx, id, role)
			return err
		},
		Delete: c.DeleteUser,
	}, notify)
}

// Orders edits the status only.
func Orders(c *api.Client, notify toast.Notifier) *Screen[model.Order, model.OrderStatus] {
	return NewScreen(Endpoints[model.Order, model.OrderStatus]{
		List: c.AllOrders,
		Update: func(ctx context.Context, id string, status model.OrderStatus) error {
			_, err := c.UpdateOrderStatus(ctx, id, status)
			return err
		},
	}, notify)
}

func Reviews(c *api.Client, notify toast.Notifier) *Screen[model.Review, struct{}] {
	return NewScreen(Endpoints[model.Review, struct{}]{
		List:   c.AllReviews,
		Delete: c.DeleteReview,
	}, notify)
}
