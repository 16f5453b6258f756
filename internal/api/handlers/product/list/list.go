// Package list реализует HTTP-обработчик постраничного списка товаров.
//
// Поддерживает фильтрацию по подстроке названия и по владельцу. Некорректные
// значения page и page_size не являются ошибкой: сервис приводит их к допустимым.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/maksyutenko/product-catalog/internal/api/response"
	"github.com/maksyutenko/product-catalog/internal/lib/sl"
	"github.com/maksyutenko/product-catalog/internal/models"
)

// Handler обрабатывает HTTP-запросы на получение списка товаров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка товаров.
type Service interface {
	List(ctx context.Context, filter models.ListFilter, page, pageSize int) (*models.ProductPage, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список товаров
// @Description Возвращает страницу товаров всех пользователей с фильтрацией
// @Tags Products
// @Security BearerAuth
// @Produce  json
// @Param page query int false "Номер страницы (с 1)"
// @Param page_size query int false "Размер страницы (1-50, по умолчанию 10)"
// @Param title query string false "Подстрока названия, без учета регистра"
// @Param owner_id query string false "ID владельца"
// @Success 200 {object} response.OKResponse "Страница товаров"
// @Failure 422 {object} response.ErrorResponse "Некорректный owner_id"
// @Failure 500 {object} response.ErrorResponse "Ошибка при чтении"
// @Router /products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	var filter models.ListFilter
	if title := query.Get("title"); title != "" {
		filter.Title = &title
	}
	if ownerID := query.Get("owner_id"); ownerID != "" {
		if _, err := uuid.Parse(ownerID); err != nil {
			log.Error("invalid owner_id format", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("owner_id must be a valid uuid"))
			return
		}
		filter.OwnerUID = &ownerID
	}

	result, err := h.service.List(r.Context(), filter, page, pageSize)
	if err != nil {
		log.Error("failed to list products", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list products"))
		return
	}

	log.Info("success to list products",
		slog.Int("page", result.Page),
		slog.Int("total", result.Total))
	render.JSON(w, r, response.OKWithData(result))
}
