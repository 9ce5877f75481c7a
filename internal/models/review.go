package models

import "time"

// Review представляет отзыв пользователя к фильму.
// Отзывы не удаляются физически: администратор помечает их флагом IsDeleted.
type Review struct {
	ID        int     // Уникальный идентификатор отзыва
	MovieID   int     // Фильм, к которому оставлен отзыв
	UserID    int     // Автор отзыва
	Rating    int     // Оценка от 1 до 10
	Comment   *string // Текст отзыва (опционально)
	IsDeleted bool    // Флаг мягкого удаления
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DummyReview используется для приёма нового отзыва из JSON-запроса.
type DummyReview struct {
	MovieID int     `json:"movie_id" validate:"required,gt=0"`
	Rating  int     `json:"rating" validate:"required,gte=1,lte=10"`
	Comment *string `json:"comment,omitempty"`
}

// DummyReviewUpdate используется для частичного обновления отзыва.
type DummyReviewUpdate struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=10"`
	Comment *string `json:"comment,omitempty"`
}
