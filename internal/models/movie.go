package models

import "time"

// Movie представляет фильм каталога.
// RequiredSubscription хранит название тарифа, необходимого для просмотра;
// nil означает, что фильм доступен без подписки.
type Movie struct {
	ID                   int        // Уникальный идентификатор фильма
	Title                string     // Название
	Description          *string    // Описание (опционально)
	ReleaseDate          *time.Time // Дата выхода (опционально)
	DurationMinutes      int        // Продолжительность в минутах
	Rating               float64    // Рейтинг от 0 до 10
	Genre                *string    // Жанр (опционально)
	Country              *string    // Страна (опционально)
	Type                 *string    // Тип: фильм, сериал и т.п. (опционально)
	AgeRating            *int       // Возрастное ограничение (опционально)
	RequiredSubscription *string    // Тариф, требуемый для просмотра (nil — бесплатно)
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DummyMovie используется для приёма данных нового фильма из JSON-запроса.
// Дата выхода приходит строкой в формате 2006-01-02.
type DummyMovie struct {
	Title                string  `json:"title" validate:"required"`
	Description          *string `json:"description,omitempty"`
	ReleaseDate          string  `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DurationMinutes      int     `json:"duration_minutes" validate:"required,gt=0"`
	Rating               float64 `json:"rating" validate:"gte=0,lte=10"`
	Genre                *string `json:"genre,omitempty"`
	Country              *string `json:"country,omitempty"`
	Type                 *string `json:"type,omitempty"`
	AgeRating            *int    `json:"age_rating,omitempty" validate:"omitempty,gte=0"`
	RequiredSubscription *string `json:"required_subscription,omitempty"`
}

// DummyMovieUpdate используется для частичного обновления фильма.
type DummyMovieUpdate struct {
	Title                *string  `json:"title,omitempty"`
	Description          *string  `json:"description,omitempty"`
	ReleaseDate          *string  `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DurationMinutes      *int     `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	Rating               *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=10"`
	Genre                *string  `json:"genre,omitempty"`
	Country              *string  `json:"country,omitempty"`
	Type                 *string  `json:"type,omitempty"`
	AgeRating            *int     `json:"age_rating,omitempty" validate:"omitempty,gte=0"`
	RequiredSubscription *string  `json:"required_subscription,omitempty"`
}

// MovieUpdate передаётся в слой хранилища при частичном обновлении фильма.
type MovieUpdate struct {
	Title                *string
	Description          *string
	ReleaseDate          *time.Time
	DurationMinutes      *int
	Rating               *float64
	Genre                *string
	Country              *string
	Type                 *string
	AgeRating            *int
	RequiredSubscription *string
}
