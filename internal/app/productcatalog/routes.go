// Package productcatalog предоставляет маршруты для основного приложения.
package productcatalog

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/maksyutenko/product-catalog/internal/api/handlers/auth/login"
	"github.com/maksyutenko/product-catalog/internal/api/handlers/auth/register"
	"github.com/maksyutenko/product-catalog/internal/api/handlers/health"
	"github.com/maksyutenko/product-catalog/internal/api/handlers/product/create"
	"github.com/maksyutenko/product-catalog/internal/api/handlers/product/list"
	"github.com/maksyutenko/product-catalog/internal/api/handlers/product/read"
	"github.com/maksyutenko/product-catalog/internal/api/handlers/product/remove"
	"github.com/maksyutenko/product-catalog/internal/api/handlers/product/update"
	"github.com/maksyutenko/product-catalog/internal/api/middlewarectx"
	"github.com/maksyutenko/product-catalog/internal/cache"
	authservice "github.com/maksyutenko/product-catalog/internal/services/auth"
	productservice "github.com/maksyutenko/product-catalog/internal/services/product"
	"github.com/maksyutenko/product-catalog/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, productService *productservice.ProductService, db *storage.Storage, rabbit *amqp.Connection, cacheRedis *cache.Cache) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/products", list.New(logger, productService).ServeHTTP)
			r.Post("/products", create.New(logger, productService).ServeHTTP)
			r.Get("/products/{id}", read.New(logger, productService).ServeHTTP)
			r.Put("/products/{id}", update.New(logger, productService).ServeHTTP)
			r.Delete("/products/{id}", remove.New(logger, productService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db, rabbit, cacheRedis).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
