package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/streadway/amqp"

	"github.com/maksyutenko/product-catalog/internal/api/response"
	"github.com/maksyutenko/product-catalog/internal/cache"
	"github.com/maksyutenko/product-catalog/internal/storage"
)

type Handler struct {
	log     *slog.Logger
	storage *storage.Storage
	rabbit  *amqp.Connection
	cache   *cache.Cache
}

func New(log *slog.Logger, storage *storage.Storage, rabbit *amqp.Connection, cache *cache.Cache) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
		rabbit:  rabbit,
		cache:   cache,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.storage.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database is not ready", slog.String("op", op))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database is not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
