// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash заполняется только в выборках для проверки пароля
// и никогда не попадает в JSON-ответы.
type User struct {
	UID          string    `json:"id"`         // Уникальный идентификатор пользователя
	Email        string    `json:"email"`      // Электронная почта (уникальная, логин)
	PasswordHash string    `json:"-"`          // Хэш пароля пользователя
	FirstName    string    `json:"first_name"` // Имя
	LastName     string    `json:"last_name"`  // Фамилия
	CreatedAt    time.Time `json:"created_at"` // Дата регистрации
}

// Owner — публичная проекция владельца товара, прикрепляемая к ответам
// на чтение товара. Содержит только открытые поля пользователя.
type Owner struct {
	UID       string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
