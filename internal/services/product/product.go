// Package services содержит бизнес-логику для управления товарами,
// включая пагинацию, кеширование и публикацию событий об изменениях.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maksyutenko/product-catalog/internal/lib/sl"
	"github.com/maksyutenko/product-catalog/internal/models"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 50

	cacheTTL = time.Hour
)

// Ключи маршрутизации событий каталога.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductRepository определяет методы для работы с товарами в хранилище.
type ProductRepository interface {
	// CreateProduct добавляет новый товар и возвращает созданную запись.
	CreateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	// GetProductWithOwner возвращает товар с публичными полями владельца.
	GetProductWithOwner(ctx context.Context, id string) (*models.ProductWithOwner, error)
	// ListProducts возвращает страницу товаров и общее число записей под фильтром.
	ListProducts(ctx context.Context, filter models.ListFilter, limit, offset int) ([]models.ProductListItem, int, error)
	// GetOwnedProduct возвращает товар, принадлежащий указанному владельцу.
	GetOwnedProduct(ctx context.Context, id, ownerUID string) (*models.Product, error)
	// UpdateProduct сохраняет изменённый товар.
	UpdateProduct(ctx context.Context, product models.Product) error
	// DeleteOwnedProduct удаляет товар, принадлежащий владельцу.
	DeleteOwnedProduct(ctx context.Context, id, ownerUID string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventPublisher публикует события об изменениях каталога.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// ProductService реализует бизнес-логику работы с товарами.
// Ошибки кеша и публикации событий не прерывают запрос — только warning в лог.
type ProductService struct {
	repo   ProductRepository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
}

// NewProductService создает новый экземпляр ProductService.
func NewProductService(repo ProductRepository, cache Cache, events EventPublisher, log *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

// List возвращает страницу товаров под фильтром. Номер страницы меньше 1
// приводится к 1, нулевой размер страницы — к 10, размер вне [1, 50]
// прижимается к границам. Выборка не ограничивается владельцем: любой
// аутентифицированный пользователь видит товары всех пользователей.
func (s *ProductService) List(ctx context.Context, filter models.ListFilter, page, pageSize int) (*models.ProductPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.repo.ListProducts(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ProductListItem{}
	}

	return &models.ProductPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// Get возвращает товар по ID вместе с владельцем, используя кеш или хранилище.
func (s *ProductService) Get(ctx context.Context, id string) (*models.ProductWithOwner, error) {
	var cached models.ProductWithOwner
	cacheKey := productCacheKey(id)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}
	result, err := s.repo.GetProductWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache product", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// Create создает новый товар, владельцем которого становится вызывающий,
// и возвращает созданную запись с блоком владельца.
func (s *ProductService) Create(ctx context.Context, caller *models.User, req models.CreateProductRequest) (*models.ProductWithOwner, error) {
	product := models.Product{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		OwnerUID:    &caller.UID,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new product", slog.String("id", created.ID))

	result := &models.ProductWithOwner{
		Product: *created,
		Owner: &models.Owner{
			UID:       caller.UID,
			FirstName: caller.FirstName,
			LastName:  caller.LastName,
		},
	}

	cacheKey := productCacheKey(created.ID)
	if err := s.cache.Set(cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache product", slog.String("key", cacheKey), sl.Err(err))
	}
	if err := s.events.Publish(EventProductCreated, created); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", EventProductCreated), sl.Err(err))
	}

	return result, nil
}

// Update применяет частичное обновление к товару вызывающего.
// Товар другого владельца и несуществующий товар неразличимы:
// оба дают storage.ErrProductNotFound.
func (s *ProductService) Update(ctx context.Context, callerUID, id string, req models.UpdateProductRequest) error {
	existing, err := s.repo.GetOwnedProduct(ctx, id, callerUID)
	if err != nil {
		return err
	}

	updated := mergeProduct(*existing, req)
	if err := s.repo.UpdateProduct(ctx, updated); err != nil {
		return err
	}
	s.log.Info("updated product", slog.String("id", id))

	cacheKey := productCacheKey(id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if err := s.events.Publish(EventProductUpdated, updated); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", EventProductUpdated), sl.Err(err))
	}
	return nil
}

// Delete удаляет товар вызывающего и инвалидирует кеш.
func (s *ProductService) Delete(ctx context.Context, callerUID, id string) error {
	if err := s.repo.DeleteOwnedProduct(ctx, id, callerUID); err != nil {
		return err
	}
	s.log.Info("deleted product", slog.String("id", id))

	cacheKey := productCacheKey(id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if err := s.events.Publish(EventProductDeleted, map[string]string{"id": id}); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", EventProductDeleted), sl.Err(err))
	}
	return nil
}

// mergeProduct возвращает копию existing с применёнными полями из req.
// Поля, равные nil, остаются без изменений; existing не модифицируется.
func mergeProduct(existing models.Product, req models.UpdateProductRequest) models.Product {
	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Quantity != nil {
		existing.Quantity = *req.Quantity
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	return existing
}

func productCacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
