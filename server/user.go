package server

import (
	"github.com/go-chi/chi/v5"

	"plant_nursery/database/handler"
)

// Routes are registered flat rather than through Route: public, user and
// admin groups share prefixes such as /products and /reviews, and a mounted
// subrouter would shadow the sibling group's handlers.

func UserRoute(r chi.Router) {
	r.Get("/auth/profile", handler.GetProfile)
	r.Put("/auth/profile", handler.UpdateProfile)
	r.Put("/auth/password", handler.ChangePassword)

	r.Get("/cart", handler.GetCart)
	r.Post("/cart/add", handler.AddProductToCart)
	r.Put("/cart/update", handler.UpdateCartQuantity)
	r.Delete("/cart/remove/{id}", handler.RemoveProductFromCart)

	r.Get("/orders", handler.GetMyOrders)
	r.Post("/orders", handler.CreateOrder)
	r.Put("/orders/cancel/{id}", handler.CancelOrder)
	r.Put("/orders/pay/{id}", handler.PayOrder)

	r.Get("/reviews/can-review/{id}", handler.CanReview)
	r.Post("/reviews", handler.CreateReview)
	r.Put("/reviews/{id}", handler.UpdateReview)
	r.Delete("/reviews/{id}", handler.DeleteReview)
}
