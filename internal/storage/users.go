package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/maksyutenko/product-catalog/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
//
// Уникальность email обеспечивается ограничением в базе: при гонке двух
// регистраций с одним email ровно одна завершится ErrUserExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, password_hash, first_name, last_name)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает только uid и хэш пароля пользователя —
// минимальная проекция для проверки учётных данных при входе.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, password_hash
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUID возвращает публичные поля пользователя по его UID.
// Хэш пароля в эту проекцию не входит.
func (s *Storage) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, first_name, last_name, created_at
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, uid)
	if err := row.Scan(&u.UID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
