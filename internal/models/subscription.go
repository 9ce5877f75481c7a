package models

import (
	"fmt"
	"strings"
	"time"
)

// SubscriptionStatus — закрытое перечисление статусов подписки.
// Сравнение статусов выполняется только через значения этого типа,
// нормализация строк происходит один раз в ParseSubscriptionStatus.
type SubscriptionStatus string

// Статусы жизненного цикла подписки.
const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// ParseSubscriptionStatus приводит строку к нижнему регистру и проверяет,
// что значение принадлежит перечислению.
func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	switch st := SubscriptionStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case SubscriptionStatusPending, SubscriptionStatusActive,
		SubscriptionStatusExpired, SubscriptionStatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// IsOpen сообщает, удерживает ли подписка слот пользователя:
// одновременно у пользователя может быть не больше одной подписки
// в статусе pending или active.
func (s SubscriptionStatus) IsOpen() bool {
	return s == SubscriptionStatusPending || s == SubscriptionStatusActive
}

// Subscription представляет подписку пользователя на тариф.
// EndDate может быть nil — дата окончания не задана.
type Subscription struct {
	ID        int                // Уникальный идентификатор подписки
	UserID    int                // Владелец подписки
	Plan      string             // Название тарифа, например "Basic" или "Premium"
	StartDate time.Time          // Дата начала
	EndDate   *time.Time         // Дата окончания (опционально)
	Status    SubscriptionStatus // Текущий статус
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DummySubscription используется для приёма запроса на оформление подписки.
// Даты приходят строками в формате 2006-01-02, отсутствующая дата начала
// означает "с текущего момента", отсутствующая дата окончания — 30 дней.
type DummySubscription struct {
	Plan      string `json:"plan" validate:"required"`
	StartDate string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// DummySubscriptionUpdate используется для частичного обновления подписки.
type DummySubscriptionUpdate struct {
	Plan    *string `json:"plan,omitempty"`
	EndDate *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status  *string `json:"status,omitempty"`
}

// SubscriptionUpdate передаётся в слой хранилища при частичном обновлении.
type SubscriptionUpdate struct {
	Plan    *string
	EndDate *time.Time
	Status  *SubscriptionStatus
}
