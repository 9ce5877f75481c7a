package models

import "errors"

// Доменные ошибки сервиса. Слои выше сравнивают их через errors.Is
// и переводят в HTTP-статус на границе.
var (
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists — пользователь с таким email или username уже существует.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMovieNotFound — фильм не найден.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrSubscriptionNotFound — подписка не найдена.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrSubscriptionExists — у пользователя уже есть подписка в статусе
	// pending или active; гарантируется частичным уникальным индексом.
	ErrSubscriptionExists = errors.New("user already has a pending or active subscription")
	// ErrInvalidSubscriptionDates — дата окончания раньше даты начала.
	ErrInvalidSubscriptionDates = errors.New("subscription end date is before start date")

	// ErrPaymentNotFound — платёж не найден.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrReviewNotFound — отзыв не найден.
	ErrReviewNotFound = errors.New("review not found")

	// ErrAccessDenied — операция запрещена для роли пользователя.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus — строка не принадлежит закрытому перечислению статусов.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidSortField — поле сортировки вне списка разрешённых.
	ErrInvalidSortField = errors.New("invalid sort field")
)
