// Package productcatalog собирает и запускает HTTP-приложение каталога товаров.
package productcatalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/maksyutenko/product-catalog/internal/cache"
	"github.com/maksyutenko/product-catalog/internal/config"
	"github.com/maksyutenko/product-catalog/internal/lib/jwt"
	"github.com/maksyutenko/product-catalog/internal/migrations"
	"github.com/maksyutenko/product-catalog/internal/rabbitmq"
	authservice "github.com/maksyutenko/product-catalog/internal/services/auth"
	productservice "github.com/maksyutenko/product-catalog/internal/services/product"
	"github.com/maksyutenko/product-catalog/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	rabbit *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitConnection, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, []rabbitmq.QueueConfig{
		{QueueName: "product-events", RoutingKey: productservice.EventProductCreated},
		{QueueName: "product-events", RoutingKey: productservice.EventProductUpdated},
		{QueueName: "product-events", RoutingKey: productservice.EventProductDeleted},
	})
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	productService := productservice.NewProductService(db, cacheRedis, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, productService, db, rabbitConn, cacheRedis)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		rabbit: rabbitConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.rabbit.Close(); cerr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database connection", slog.Any("err", cerr))
		}
		return err
	}
}
