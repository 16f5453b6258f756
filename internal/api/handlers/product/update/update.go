// Package update реализует HTTP-обработчик частичного обновления товара.
//
// Обновлять товар может только его владелец. Чужой и несуществующий товар
// неразличимы для клиента: оба случая дают HTTP 404.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/maksyutenko/product-catalog/internal/api/middlewarectx"
	"github.com/maksyutenko/product-catalog/internal/api/response"
	"github.com/maksyutenko/product-catalog/internal/lib/sl"
	"github.com/maksyutenko/product-catalog/internal/models"
	"github.com/maksyutenko/product-catalog/internal/storage"
)

// Handler обрабатывает HTTP-запросы на обновление товара.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления товара.
type Service interface {
	Update(ctx context.Context, callerUID, id string, req models.UpdateProductRequest) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить товар
// @Description Частично обновляет товар текущего пользователя
// @Tags Products
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path string true "ID товара"
// @Param request body models.UpdateProductRequest true "Изменяемые поля"
// @Success 200 {object} response.OKResponse "Товар обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка при обновлении"
// @Router /products/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.update"

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

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if req.Price != nil && !models.HasCentPrecision(*req.Price) {
		log.Error("price has more than two decimal places", slog.Float64("price", *req.Price))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("price must have at most two decimal places"))
		return
	}

	if err := h.service.Update(r.Context(), caller.UID, id, req); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			log.Error("product not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("product not found"))
			return
		}
		log.Error("failed to update product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update product"))
		return
	}

	log.Info("success to update product", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"product_id": id,
		"message":    "product updated successfully",
	}))
}
