// Package create реализует HTTP-обработчик создания нового товара.
//
// Владельцем товара становится аутентифицированный пользователь из контекста запроса.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/maksyutenko/product-catalog/internal/api/middlewarectx"
	"github.com/maksyutenko/product-catalog/internal/api/response"
	"github.com/maksyutenko/product-catalog/internal/lib/sl"
	"github.com/maksyutenko/product-catalog/internal/models"
)

// Handler обрабатывает HTTP-запросы на создание товара.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания товара.
type Service interface {
	Create(ctx context.Context, caller *models.User, req models.CreateProductRequest) (*models.ProductWithOwner, error)
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
// @Summary Создать товар
// @Description Создает новый товар, владельцем становится текущий пользователь
// @Tags Products
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.CreateProductRequest true "Данные нового товара"
// @Success 201 {object} response.OKResponse "Товар создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка при создании"
// @Router /products [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.create"

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

	var req models.CreateProductRequest
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
	if !models.HasCentPrecision(req.Price) {
		log.Error("price has more than two decimal places", slog.Float64("price", req.Price))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("price must have at most two decimal places"))
		return
	}

	product, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		log.Error("failed to create product", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create product"))
		return
	}

	log.Info("success to create product", slog.String("id", product.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"product": product,
	}))
}
