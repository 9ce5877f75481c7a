// Package subscription содержит бизнес-логику оформления и сопровождения подписок.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Repository определяет методы для работы с подписками в хранилище.
type Repository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// GetSubscriptionByID возвращает подписку по ID.
	GetSubscriptionByID(ctx context.Context, id int) (*models.Subscription, error)
	// GetActiveSubscription возвращает активную подписку пользователя.
	GetActiveSubscription(ctx context.Context, userID int) (*models.Subscription, error)
	// GetOpenSubscription возвращает подписку пользователя в статусе pending или active.
	GetOpenSubscription(ctx context.Context, userID int) (*models.Subscription, error)
	// UpdateSubscription обновляет данные подписки по ID.
	UpdateSubscription(ctx context.Context, id int, upd models.SubscriptionUpdate) (*models.Subscription, error)
}

// Service реализует бизнес-логику подписок.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Длительность подписки по умолчанию, когда дата окончания не указана.
const defaultTerm = 30 * 24 * time.Hour

// Purchase оформляет подписку в статусе pending. Подписка станет активной
// только после подтверждения оплаты вебхуком платёжного шлюза.
// Уникальный слот "одна открытая подписка на пользователя" обеспечивает
// частичный индекс в базе, конфликт возвращается как ErrSubscriptionExists.
func (s *Service) Purchase(ctx context.Context, userID int, req models.DummySubscription) (*models.Subscription, error) {
	const op = "services.subscription.Purchase"

	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid start date: %w", op, err)
		}
		startDate = parsed
	}
	endDate := startDate.Add(defaultTerm)
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid end date: %w", op, err)
		}
		endDate = parsed
	}
	if endDate.Before(startDate) {
		return nil, models.ErrInvalidSubscriptionDates
	}

	sub := models.Subscription{
		UserID:    userID,
		Plan:      req.Plan,
		StartDate: startDate,
		EndDate:   &endDate,
		Status:    models.SubscriptionStatusPending,
	}
	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	s.log.Info("created pending subscription",
		slog.Int("id", id),
		slog.Int("user_id", userID),
		slog.String("plan", sub.Plan))

	return s.repo.GetSubscriptionByID(ctx, id)
}

// GetCurrent возвращает открытую подписку пользователя (pending или active).
func (s *Service) GetCurrent(ctx context.Context, userID int) (*models.Subscription, error) {
	return s.repo.GetOpenSubscription(ctx, userID)
}

// GetActive возвращает активную подписку пользователя.
func (s *Service) GetActive(ctx context.Context, userID int) (*models.Subscription, error) {
	return s.repo.GetActiveSubscription(ctx, userID)
}

// Get возвращает подписку по ID.
func (s *Service) Get(ctx context.Context, id int) (*models.Subscription, error) {
	return s.repo.GetSubscriptionByID(ctx, id)
}

// Update применяет частичное обновление подписки. Статус проходит через
// ParseSubscriptionStatus, произвольные строки отклоняются.
func (s *Service) Update(ctx context.Context, id int, req models.DummySubscriptionUpdate) (*models.Subscription, error) {
	const op = "services.subscription.Update"

	upd := models.SubscriptionUpdate{Plan: req.Plan}
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid end date: %w", op, err)
		}
		upd.EndDate = &parsed
	}
	if req.Status != nil {
		status, err := models.ParseSubscriptionStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		upd.Status = &status
	}

	sub, err := s.repo.UpdateSubscription(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated subscription", slog.Int("id", id))
	return sub, nil
}
