// Package login реализует HTTP-обработчик входа пользователей по email и паролю.
package login

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
	services "github.com/maksyutenko/product-catalog/internal/services/auth"
)

// Request — входные данные для входа
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы входа пользователей.
type Handler struct {
	log      *slog.Logger
	service  AuthService
	validate *validator.Validate
}

// AuthService определяет методы бизнес-логики для аутентификации пользователей.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// New создает новый экземпляр Handler с заданным логгером и сервисом аутентификации.
func New(log *slog.Logger, service AuthService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль, возвращает токен доступа
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.OKResponse "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Error("invalid credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid email or password"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to login"))
		return
	}

	log.Info("login success", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"access_token": token,
	}))
}
