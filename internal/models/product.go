// Package models содержит доменные структуры, описывающие товар,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"math"
	"time"
)

// Product представляет собой основную модель товара,
// используемую в бизнес-логике и хранилище.
// Поле OwnerUID может быть nil — товар сохранился после удаления владельца.
type Product struct {
	ID          string    `json:"id"`                 // Уникальный идентификатор товара
	Title       string    `json:"title"`              // Название товара
	Description string    `json:"description"`        // Описание товара
	Quantity    int       `json:"quantity"`           // Количество на складе (>= 0)
	Price       float64   `json:"price"`              // Цена, не более двух знаков после запятой
	OwnerUID    *string   `json:"owner_id,omitempty"` // Идентификатор владельца (nil, если владелец удалён)
	CreatedAt   time.Time `json:"created_at"`         // Дата создания, проставляется хранилищем
	UpdatedAt   time.Time `json:"updated_at"`         // Дата изменения, обновляется хранилищем
}

// ProductWithOwner — товар вместе с публичными полями владельца,
// возвращается при чтении одного товара.
type ProductWithOwner struct {
	Product
	Owner *Owner `json:"owner,omitempty"`
}

// ProductListItem — сокращённая проекция товара для списочных выборок:
// только id, название и количество.
type ProductListItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// ProductPage — страница списка товаров с метаданными пагинации.
type ProductPage struct {
	Items      []ProductListItem `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// CreateProductRequest используется для приёма данных из JSON-запроса
// на создание товара до их валидации.
type CreateProductRequest struct {
	Title       string  `json:"title" validate:"required"`          // Название
	Description string  `json:"description" validate:"required"`    // Описание
	Quantity    int     `json:"quantity" validate:"required,min=1"` // Количество (>= 1)
	Price       float64 `json:"price" validate:"min=0"`             // Цена (>= 0)
}

// UpdateProductRequest используется для частичного обновления товара.
// Незаполненные поля (nil) остаются без изменений.
type UpdateProductRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
}

// ListFilter — параметры фильтрации списка товаров, передаваемые
// в слой доступа к данным. Поля nil означают отсутствие фильтра.
type ListFilter struct {
	Title    *string // Подстрока названия без учёта регистра
	OwnerUID *string // Точное совпадение владельца
}

// HasCentPrecision сообщает, укладывается ли цена в два знака после запятой.
func HasCentPrecision(price float64) bool {
	cents := price * 100
	return math.Abs(cents-math.Round(cents)) < 1e-9
}
