package server

import (
	"github.com/go-chi/chi/v5"

	"plant_nursery/database/handler"
)

func AdminRoute(r chi.Router) {
	r.Post("/products", handler.CreateProduct)
	r.Put("/products/{id}", handler.UpdateProduct)
	r.Delete("/products/{id}", handler.DeleteProduct)

	r.Post("/categories", handler.CreateCategory)
	r.Put("/categories/{id}", handler.UpdateCategory)
	r.Delete("/categories/{id}", handler.DeleteCategory)

	r.Get("/orders/all", handler.GetAllOrder)
	r.Put("/orders/status/{id}", handler.UpdateOrderStatus)

	r.Get("/reviews", handler.GetAllReview)

	r.Route("/admin", func(admin chi.Router) {
		admin.Get("/users", handler.GetAllUser)
		admin.Put("/users/{id}/role", handler.UpdateUserRole)
		admin.Delete("/users/{id}", handler.DeleteUser)
		admin.Get("/stats", handler.GetStats)
	})

	r.Post("/staff/attendance", handler.MarkAttendance)
	r.Put("/staff/salary/{id}", handler.UpdateSalary)
}

// StaffRoute is read-only and open to admins and staff; staff see their own
// rows only. Paths are flat because AdminRoute shares the /staff prefix.
func StaffRoute(r chi.Router) {
	r.Get("/staff/attendance", handler.GetAttendance)
	r.Get("/staff/salary/{id}", handler.GetSalary)
}
