package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/maksyutenko/product-catalog/internal/models"
)

// CreateProduct вставляет новый товар и возвращает созданную запись
// с проставленными базой id, created_at и updated_at.
func (s *Storage) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	const op = "storage.CreateProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO products (title, description, quantity, price, owner_uid)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at, updated_at`
	created := product
	err := s.DB.QueryRowContext(ctx, query,
		product.Title, product.Description, product.Quantity, product.Price,
		product.OwnerUID).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetProductWithOwner возвращает товар по ID вместе с публичными полями
// владельца. Владелец может отсутствовать — тогда блок owner равен nil.
func (s *Storage) GetProductWithOwner(ctx context.Context, id string) (*models.ProductWithOwner, error) {
	const op = "storage.GetProductWithOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.title, p.description, p.quantity, p.price, p.owner_uid,
			      p.created_at, p.updated_at,
			      u.uid, u.first_name, u.last_name
			  FROM products p
			  LEFT JOIN users u ON u.uid = p.owner_uid
			  WHERE p.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.ProductWithOwner
	var ownerUID, ownerFirstName, ownerLastName sql.NullString
	if err := row.Scan(&result.ID, &result.Title, &result.Description, &result.Quantity,
		&result.Price, &result.OwnerUID, &result.CreatedAt, &result.UpdatedAt,
		&ownerUID, &ownerFirstName, &ownerLastName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if ownerUID.Valid {
		result.Owner = &models.Owner{
			UID:       ownerUID.String,
			FirstName: ownerFirstName.String,
			LastName:  ownerLastName.String,
		}
	}
	return &result, nil
}

// ListProducts возвращает страницу товаров в сокращённой проекции
// (id, название, количество) и общее число записей под фильтром.
// Фильтр по названию — подстрока без учёта регистра, по владельцу — точное совпадение.
func (s *Storage) ListProducts(ctx context.Context, filter models.ListFilter, limit, offset int) ([]models.ProductListItem, int, error) {
	const op = "storage.ListProducts"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, quantity, COUNT(*) OVER () AS total
			  FROM products
			  WHERE ($1::text IS NULL OR title ILIKE '%' || $1 || '%')
			    AND ($2::uuid IS NULL OR owner_uid = $2::uuid)
			  ORDER BY created_at, id
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, filter.Title, filter.OwnerUID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.ProductListItem
	var total int
	for rows.Next() {
		var item models.ProductListItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Quantity, &total); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	// Страница за пределами выборки: строк нет, но записи под фильтром есть.
	if result == nil && offset > 0 {
		countQuery := `SELECT COUNT(*)
				  FROM products
				  WHERE ($1::text IS NULL OR title ILIKE '%' || $1 || '%')
				    AND ($2::uuid IS NULL OR owner_uid = $2::uuid)`
		if err := s.DB.QueryRowContext(ctx, countQuery, filter.Title, filter.OwnerUID).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
	}
	return result, total, nil
}

// GetOwnedProduct возвращает товар по ID, принадлежащий указанному владельцу.
// Отсутствие товара и чужой товар неразличимы: оба дают ErrProductNotFound.
func (s *Storage) GetOwnedProduct(ctx context.Context, id, ownerUID string) (*models.Product, error) {
	const op = "storage.GetOwnedProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, quantity, price, owner_uid, created_at, updated_at
			  FROM products
			  WHERE id = $1 AND owner_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, ownerUID)

	var result models.Product
	if err := row.Scan(&result.ID, &result.Title, &result.Description, &result.Quantity,
		&result.Price, &result.OwnerUID, &result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateProduct сохраняет изменённый товар. Проверка владельца входит
// в предикат запроса, поэтому проверка и изменение — одна операция.
func (s *Storage) UpdateProduct(ctx context.Context, product models.Product) error {
	const op = "storage.UpdateProduct"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE products
			  SET title = $1, description = $2, quantity = $3, price = $4, updated_at = now()
			  WHERE id = $5 AND owner_uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		product.Title, product.Description, product.Quantity, product.Price,
		product.ID, product.OwnerUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteOwnedProduct удаляет товар по ID, если он принадлежит владельцу.
func (s *Storage) DeleteOwnedProduct(ctx context.Context, id, ownerUID string) error {
	const op = "storage.DeleteOwnedProduct"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM products WHERE id = $1 AND owner_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, ownerUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
