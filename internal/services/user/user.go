// Package user реализует бизнес-логику работы с профилем пользователя.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/movie-streaming/internal/lib/password"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Repository определяет методы для работы с пользователями в хранилище.
type Repository interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateUser(ctx context.Context, id int, upd models.UserUpdate) (*models.User, error)
	ConfirmUserAge(ctx context.Context, id int) error
}

// Service реализует бизнес-логику профиля пользователя.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Get возвращает пользователя по ID.
func (s *Service) Get(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// Update применяет частичное обновление профиля. Новый пароль
// хэшируется до записи в хранилище.
func (s *Service) Update(ctx context.Context, id int, req models.DummyUserUpdate) (*models.User, error) {
	const op = "services.user.Update"
	upd := models.UserUpdate{
		Email:    req.Email,
		Username: req.Username,
	}
	if req.Password != nil {
		hashed, err := password.GetHash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		upd.PasswordHash = &hashed
	}
	user, err := s.repo.UpdateUser(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated user profile", slog.Int("id", id))
	return user, nil
}

// ConfirmAge помечает пользователя как подтвердившего совершеннолетие.
// Флаг сохраняется в профиле, подтверждение достаточно выполнить один раз.
func (s *Service) ConfirmAge(ctx context.Context, id int) error {
	if err := s.repo.ConfirmUserAge(ctx, id); err != nil {
		return err
	}
	s.log.Info("confirmed user age", slog.Int("id", id))
	return nil
}
