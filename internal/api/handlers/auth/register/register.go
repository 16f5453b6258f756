// Package register реализует HTTP-обработчик для регистрации новых пользователей.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/maksyutenko/product-catalog/internal/api/response"
	"github.com/maksyutenko/product-catalog/internal/lib/sl"
	"github.com/maksyutenko/product-catalog/internal/storage"
)

// Request — входные данные для регистрации
type Request struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// Handler обрабатывает HTTP-запросы регистрации пользователей.
//
// Включает логгер для записи операций, сервис аутентификации
// и валидатор для проверки входящих данных.
type Handler struct {
	log      *slog.Logger
	service  AuthService
	validate *validator.Validate
}

// AuthService определяет методы бизнес-логики для работы с пользователями.
type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (string, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисом аутентификации.
//
// Инициализирует валидатор для проверки входных данных запросов.
func New(log *slog.Logger, service AuthService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация нового пользователя
// @Description Создает нового пользователя и возвращает токен доступа
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} response.OKResponse "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при регистрации"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	token, err := h.service.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Error("email already taken", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("email already taken"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("register success", slog.String("email", req.Email))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"access_token": token,
	}))
}
