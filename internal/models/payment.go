package models

import (
	"fmt"
	"strings"
	"time"
)

// PaymentStatus — закрытое перечисление статусов платежа.
type PaymentStatus string

// Статусы платежа.
const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// ParsePaymentStatus приводит строку к нижнему регистру и проверяет,
// что значение принадлежит перечислению.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch st := PaymentStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Payment представляет платёж пользователя. SubscriptionID заполняется,
// когда платёж оплачивает конкретную подписку; перевод платежа в статус
// completed выполняется только обработчиком вебхука платёжного шлюза.
type Payment struct {
	ID             int           // Уникальный идентификатор платежа
	UserID         int           // Плательщик
	SubscriptionID *int          // Оплачиваемая подписка (опционально)
	Amount         float64       // Сумма
	Currency       string        // Валюта, например "RUB"
	PaymentMethod  string        // Способ оплаты
	Status         PaymentStatus // Текущий статус
	TransactionID  *string       // Идентификатор платежа у шлюза (опционально)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DummyPayment используется для приёма запроса на инициацию платежа.
type DummyPayment struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Currency       string  `json:"currency,omitempty"`
	PaymentMethod  string  `json:"payment_method" validate:"required"`
	SubscriptionID *int    `json:"subscription_id,omitempty" validate:"omitempty,gt=0"`
}

// DummyPaymentUpdate используется для частичного обновления платежа.
type DummyPaymentUpdate struct {
	Status        *string `json:"status,omitempty"`
	TransactionID *string `json:"transaction_id,omitempty"`
}

// PaymentUpdate передаётся в слой хранилища при частичном обновлении.
type PaymentUpdate struct {
	Status        *PaymentStatus
	TransactionID *string
}
