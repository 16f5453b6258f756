// Package remove реализует HTTP-обработчик удаления товара по ID.
//
// Удалять товар может только его владелец. Чужой и несуществующий товар
// неразличимы для клиента: оба случая дают HTTP 404.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/maksyutenko/product-catalog/internal/api/middlewarectx"
	"github.com/maksyutenko/product-catalog/internal/api/response"
	"github.com/maksyutenko/product-catalog/internal/lib/sl"
	"github.com/maksyutenko/product-catalog/internal/storage"
)

// Handler обрабатывает HTTP-запросы на удаление товара по идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для удаления товара
}

// Service описывает интерфейс бизнес-логики удаления товара.
type Service interface {
	Delete(ctx context.Context, callerUID, id string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить товар по ID
// @Description Удаляет товар текущего пользователя по его идентификатору.
// @Tags Products
// @Security BearerAuth
// @Produce  json
// @Param id path string true "ID товара"
// @Success 200 {object} response.OKResponse "Товар успешно удален"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка при удалении"
// @Router /products/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller, ok := middlewarectx.CallerFromContext(r.Context())
	if !ok {
		log.Error("caller missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("product not found"))
		return
	}

	if err := h.service.Delete(r.Context(), caller.UID, id); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			log.Error("product not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to delete product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete product"))
		return
	}

	log.Info("success to delete product", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "product deleted successfully",
	}))
}
