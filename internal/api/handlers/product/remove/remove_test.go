package remove

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maksyutenko/product-catalog/internal/api/middlewarectx"
	"github.com/maksyutenko/product-catalog/internal/models"
	"github.com/maksyutenko/product-catalog/internal/storage"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, callerUID, id string) error {
	args := m.Called(ctx, callerUID, id)
	return args.Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	productID := "3a4b5c6d-7e8f-4a1b-9c2d-3e4f5a6b7c8d"
	caller := &models.User{UID: "71c3d9a0-2b4e-4f5a-8c6d-1e2f3a4b5c6d"}

	tests := []struct {
		name           string
		id             string
		withCaller     bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "успешное удаление товара",
			id:         productID,
			withCaller: true,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, caller.UID, productID).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"message":"product deleted successfully"}}`,
		},
		{
			name:       "товар не найден или чужой",
			id:         productID,
			withCaller: true,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, caller.UID, productID).
					Return(storage.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"product not found"}`,
		},
		{
			name:           "некорректный формат id",
			id:             "not-a-uuid",
			withCaller:     true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"product not found"}`,
		},
		{
			name:           "отсутствует авторизация",
			id:             productID,
			withCaller:     false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"missing or invalid authorization header"}`,
		},
		{
			name:       "ошибка сервиса",
			id:         productID,
			withCaller: true,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, caller.UID, productID).Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to delete product"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+tt.id, nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			if tt.withCaller {
				ctx = context.WithValue(ctx, middlewarectx.Caller, caller)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
