// Package read реализует HTTP-обработчик получения товара по ID.
//
// Несуществующий товар и синтаксически некорректный ID неразличимы для клиента:
// оба случая дают HTTP 404.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/maksyutenko/product-catalog/internal/api/response"
	"github.com/maksyutenko/product-catalog/internal/lib/sl"
	"github.com/maksyutenko/product-catalog/internal/models"
	"github.com/maksyutenko/product-catalog/internal/storage"
)

// Handler обрабатывает HTTP-запросы на получение товара по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения товара.
type Service interface {
	Get(ctx context.Context, id string) (*models.ProductWithOwner, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить товар по ID
// @Description Возвращает товар вместе с публичными данными владельца
// @Tags Products
// @Security BearerAuth
// @Produce  json
// @Param id path string true "ID товара"
// @Success 200 {object} response.OKResponse "Товар найден"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка при чтении"
// @Router /products/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("product not found"))
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			log.Error("product not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to get product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get product"))
		return
	}

	log.Info("success to get product", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"product": product,
	}))
}
