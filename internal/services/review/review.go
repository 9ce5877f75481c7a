// Package review содержит бизнес-логику отзывов к фильмам.
package review

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Repository определяет методы для работы с отзывами в хранилище.
type Repository interface {
	CreateReview(ctx context.Context, review models.Review) (int, error)
	GetReviewByID(ctx context.Context, id int) (*models.Review, error)
	ListReviewsByMovie(ctx context.Context, movieID int) ([]*models.Review, error)
	UpdateReview(ctx context.Context, id int, rating *int, comment *string) (*models.Review, error)
	SoftDeleteReview(ctx context.Context, id int) error

	GetMovieByID(ctx context.Context, id int) (*models.Movie, error)
}

// Service реализует бизнес-логику отзывов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create добавляет отзыв от имени пользователя и возвращает его ID.
// Фильм должен существовать.
func (s *Service) Create(ctx context.Context, userID int, req models.DummyReview) (int, error) {
	if _, err := s.repo.GetMovieByID(ctx, req.MovieID); err != nil {
		return 0, err
	}
	review := models.Review{
		MovieID: req.MovieID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	id, err := s.repo.CreateReview(ctx, review)
	if err != nil {
		return 0, err
	}
	s.log.Info("created review",
		slog.Int("id", id),
		slog.Int("movie_id", req.MovieID),
		slog.Int("user_id", userID))
	return id, nil
}

// ListForMovie возвращает неудалённые отзывы к фильму.
func (s *Service) ListForMovie(ctx context.Context, movieID int) ([]*models.Review, error) {
	if _, err := s.repo.GetMovieByID(ctx, movieID); err != nil {
		return nil, err
	}
	return s.repo.ListReviewsByMovie(ctx, movieID)
}

// Update изменяет отзыв. Разрешено автору отзыва и администратору.
func (s *Service) Update(ctx context.Context, id, requesterID int, requesterRole string, req models.DummyReviewUpdate) (*models.Review, error) {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != requesterID && requesterRole != models.RoleAdmin {
		return nil, models.ErrAccessDenied
	}
	return s.repo.UpdateReview(ctx, id, req.Rating, req.Comment)
}

// Remove помечает отзыв удалённым. Физического удаления не происходит,
// отзыв исчезает из выдачи ListForMovie.
func (s *Service) Remove(ctx context.Context, id int) error {
	if err := s.repo.SoftDeleteReview(ctx, id); err != nil {
		return err
	}
	s.log.Info("soft-deleted review", slog.Int("id", id))
	return nil
}
