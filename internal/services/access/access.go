// Package access решает, может ли пользователь смотреть фильм.
package access

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Причины отказа в просмотре.
const (
	DenyReasonAgeNotConfirmed      = "age_not_confirmed"
	DenyReasonSubscriptionRequired = "subscription_required"
	DenyReasonPlanMismatch         = "plan_mismatch"
)

// Decision — результат проверки доступа к фильму.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// CanWatch проверяет правила доступа к фильму. Фильм с возрастным
// ограничением 18+ требует подтверждённого совершеннолетия; фильм с
// required_subscription требует активной подписки на этот тариф
// (название тарифа сравнивается без учёта регистра),
// nil означает свободный просмотр. activeSub — активная подписка
// пользователя или nil, если её нет.
func CanWatch(ageConfirmed bool, movie *models.Movie, activeSub *models.Subscription) Decision {
	if movie.AgeRating != nil && *movie.AgeRating >= 18 && !ageConfirmed {
		return Decision{Reason: DenyReasonAgeNotConfirmed}
	}
	if movie.RequiredSubscription == nil {
		return Decision{Allowed: true}
	}
	if activeSub == nil {
		return Decision{Reason: DenyReasonSubscriptionRequired}
	}
	if !strings.EqualFold(activeSub.Plan, *movie.RequiredSubscription) {
		return Decision{Reason: DenyReasonPlanMismatch}
	}
	return Decision{Allowed: true}
}

// Repository определяет методы хранилища для проверки доступа.
type Repository interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetMovieByID(ctx context.Context, id int) (*models.Movie, error)
	GetActiveSubscription(ctx context.Context, userID int) (*models.Subscription, error)
}

// Service загружает данные и применяет правила CanWatch.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CheckWatch возвращает решение о доступе пользователя к фильму.
// Отсутствие активной подписки не является ошибкой.
func (s *Service) CheckWatch(ctx context.Context, userID, movieID int) (Decision, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	movie, err := s.repo.GetMovieByID(ctx, movieID)
	if err != nil {
		return Decision{}, err
	}
	activeSub, err := s.repo.GetActiveSubscription(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrSubscriptionNotFound) {
		return Decision{}, err
	}

	decision := CanWatch(user.AgeConfirmed, movie, activeSub)
	if !decision.Allowed {
		s.log.Info("watch denied",
			slog.Int("user_id", userID),
			slog.Int("movie_id", movieID),
			slog.String("reason", decision.Reason))
	}
	return decision, nil
}
