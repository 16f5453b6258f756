// Package storage реализует хранилище данных на основе PostgreSQL
// для управления пользователями и товарами. Предоставляет методы
// создания, чтения, обновления и удаления записей с учётом владельца.
package storage

import (
	"context"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"database/sql"
)

// Ошибки хранилища. Конфликт уникальности email и отсутствие записей
// отдаются наверх как сигнальные ошибки, бизнес-логика сопоставляет
// их с ответами клиенту.
var (
	// ErrUserExists — нарушение уникальности email при регистрации.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound — товар не найден либо не принадлежит вызывающему.
	ErrProductNotFound = errors.New("product not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и товарами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'products'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table products missing or query error: %w", err)
	}
	return nil
}
