// Package models содержит доменные структуры сервиса стримингового кинотеатра:
// пользователей, фильмы, подписки, платежи и отзывы, а также вспомогательные
// типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей системы.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int       // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная)
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, admin или user
	AgeConfirmed bool      // Подтверждение совершеннолетия
	CreatedAt    time.Time // Дата создания записи
	UpdatedAt    time.Time // Дата последнего изменения
}

// DummyUserUpdate используется для приёма частичного обновления профиля
// из JSON-запроса. Поля-указатели: nil означает "не менять".
type DummyUserUpdate struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// UserUpdate передаётся в слой хранилища при частичном обновлении пользователя.
type UserUpdate struct {
	Email        *string
	Username     *string
	PasswordHash *string
}
