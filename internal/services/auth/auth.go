// Package services содержит логику бизнес-уровня для регистрации,
// входа пользователей и разрешения bearer-токенов.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/maksyutenko/product-catalog/internal/lib/jwt"
	"github.com/maksyutenko/product-catalog/internal/lib/password"
	"github.com/maksyutenko/product-catalog/internal/models"
	"github.com/maksyutenko/product-catalog/internal/storage"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Несуществующий email и неверный пароль для вызывающего неразличимы.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken возвращается, когда токен не прошёл проверку либо
// ссылается на уже не существующего пользователя.
var ErrInvalidToken = errors.New("invalid token")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает uid и хэш пароля пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByUID возвращает публичные поля пользователя по UID.
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход и разрешение JWT в пользователя.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и сразу
// выпускает для него токен доступа.
//
// Уникальность email решает ограничение в базе: storage.ErrUserExists
// пробрасывается как есть, проверки "существует ли" перед вставкой нет.
func (s *AuthService) Register(ctx context.Context, email, rawPassword, firstName, lastName string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    firstName,
		LastName:     lastName,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", err
	}
	return s.jwtMaker.GenerateToken(uid)
}

// Login проверяет пароль пользователя и выпускает токен доступа.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.UID)
}

// ResolveToken проверяет JWT и возвращает пользователя, которому он выдан.
// Токен, ссылающийся на удалённого пользователя, недействителен.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.ResolveToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	user, err := s.users.GetUserByUID(ctx, claims.UserUID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
		return nil, err
	}
	return user, nil
}
