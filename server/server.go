package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"plant_nursery/database/handler"
	"plant_nursery/middleware"
)

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

type Server struct {
	chi.Router
	server *http.Server
}

// SetupRoutes mounts every route under basePath, e.g. "/api".
func SetupRoutes(basePath string) *Server {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.LoggerMiddleware)
	router.Use(middleware.RecoverMiddleware)

	router.Route(basePath, func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		api.Group(PublicRoute)
		api.Group(func(user chi.Router) {
			user.Use(middleware.AuthMiddleware)
			user.Group(UserRoute)
			user.Group(func(admin chi.Router) {
				admin.Use(middleware.AdminMiddleware)
				admin.Group(AdminRoute)
			})
			user.Group(func(staff chi.Router) {
				staff.Use(middleware.StaffMiddleware)
				staff.Group(StaffRoute)
			})
		})
	})
	return &Server{
		Router: router,
	}
}

// PublicRoute needs no token.
func PublicRoute(r chi.Router) {
	r.Post("/auth/signup", handler.Signup)
	r.Post("/auth/login", handler.Login)
	r.Get("/products", handler.GetAllProduct)
	r.Get("/products/{id}", handler.GetProductById)
	r.Get("/categories", handler.GetAllCategory)
	r.Get("/reviews/product/{id}", handler.GetProductReviews)
	r.Get("/settings", handler.GetSettings)
}

// Handler is the traced root handler.
func (srv *Server) Handler() http.Handler {
	return otelhttp.NewHandler(srv.Router, "plant-nursery")
}

func (srv *Server) Run(port string) error {
	srv.server = &http.Server{
		Addr:              port,
		Handler:           srv.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return srv.server.ListenAndServe()
}

func (srv *Server) Stop(timeout time.Duration) error {
	if srv.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.server.Shutdown(ctx)
}
