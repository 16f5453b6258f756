// Package middlewarectx содержит HTTP middleware для обработки и проверки JWT токенов.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization,
// разрешает его в пользователя через сервис аутентификации, и в случае успеха
// добавляет пользователя в контекст для дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/maksyutenko/product-catalog/internal/api/response"
	"github.com/maksyutenko/product-catalog/internal/lib/sl"
	"github.com/maksyutenko/product-catalog/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Caller — ключ для аутентифицированного пользователя в контексте.
const Caller Key = "caller"

// TokenResolver описывает интерфейс сервиса для разрешения JWT токена в пользователя.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден и пользователь существует, добавляет пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(resolver TokenResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.JWTMiddleware"

			log = log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			caller, err := resolver.ResolveToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), Caller, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext извлекает аутентифицированного пользователя из контекста запроса.
func CallerFromContext(ctx context.Context) (*models.User, bool) {
	caller, ok := ctx.Value(Caller).(*models.User)
	return caller, ok && caller != nil
}
