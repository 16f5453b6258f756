// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Claims расширяет стандартные claims JWT, добавляя идентификатор пользователя.
//
// Методы GenerateToken и ParseToken реализуют создание и валидацию JWT токена с заданными claims.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает пользовательские данные, хранящиеся в JWT.
type Claims struct {
	UserUID              string `json:"user_uid"` // Идентификатор пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает контракт выпуска и проверки токенов.
type Maker interface {
	GenerateToken(userUID string) (string, error)
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl подписывает токены симметричным ключом HS256.
// Ключ задаётся один раз при старте процесса; его смена
// делает недействительными все ранее выпущенные токены.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создает MakerImpl с секретным ключом и временем жизни токена.
func NewJWTMaker(secretKey string, tokenTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
	}
}

// GenerateToken создает JWT токен с идентификатором пользователя,
// подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(userUID string) (string, error) {
	claims := Claims{
		UserUID: userUID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия,
// возвращает Claims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
