package login

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	services "github.com/maksyutenko/product-catalog/internal/services/auth"
)

// MockService реализует интерфейс login.AuthService
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			requestBody: Request{
				Email:    "anna@example.com",
				Password: "secret123",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "anna@example.com", "secret123").
					Return("token-abc", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"access_token":"token-abc"}}`,
		},
		{
			name: "неверный пароль",
			requestBody: Request{
				Email:    "anna@example.com",
				Password: "wrongpass",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "anna@example.com", "wrongpass").
					Return("", services.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid email or password"}`,
		},
		{
			name: "несуществующий email",
			requestBody: Request{
				Email:    "ghost@example.com",
				Password: "secret123",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "ghost@example.com", "secret123").
					Return("", services.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid email or password"}`,
		},
		{
			name: "пустой пароль",
			requestBody: Request{
				Email: "anna@example.com",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field Password is a required field"}`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка сервиса",
			requestBody: Request{
				Email:    "anna@example.com",
				Password: "secret123",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "anna@example.com", "secret123").
					Return("", assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to login"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
