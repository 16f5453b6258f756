package list

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maksyutenko/product-catalog/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, filter models.ListFilter, page, pageSize int) (*models.ProductPage, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductPage), args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ownerUID := "71c3d9a0-2b4e-4f5a-8c6d-1e2f3a4b5c6d"
	page := &models.ProductPage{
		Items: []models.ProductListItem{
			{ID: "p1", Title: "Widget", Quantity: 5},
			{ID: "p2", Title: "Widget Pro", Quantity: 2},
		},
		Total:      2,
		Page:       1,
		PageSize:   10,
		TotalPages: 1,
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "список без параметров",
			query: "",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.ListFilter{}, 0, 0).Return(page, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"items":[{"id":"p1","title":"Widget","quantity":5},{"id":"p2","title":"Widget Pro","quantity":2}],"total":2,"page":1,"page_size":10,"total_pages":1}}`,
		},
		{
			name:  "пагинация и фильтр по названию",
			query: "?page=2&page_size=5&title=wid",
			setupMock: func(m *MockService) {
				title := "wid"
				m.On("List", mock.Anything, models.ListFilter{Title: &title}, 2, 5).Return(page, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "фильтр по владельцу",
			query: "?owner_id=" + ownerUID,
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, mock.MatchedBy(func(f models.ListFilter) bool {
					return f.OwnerUID != nil && *f.OwnerUID == ownerUID
				}), 0, 0).Return(page, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "нечисловые параметры пагинации игнорируются",
			query: "?page=abc&page_size=xyz",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.ListFilter{}, 0, 0).Return(page, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "некорректный owner_id",
			query:          "?owner_id=not-a-uuid",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"owner_id must be a valid uuid"}`,
		},
		{
			name:  "ошибка сервиса",
			query: "",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.ListFilter{}, 0, 0).Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to list products"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/products"+tt.query, nil)

			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			mockService.AssertExpectations(t)
		})
	}
}
