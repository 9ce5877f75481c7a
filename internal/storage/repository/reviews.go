package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

const reviewColumns = `id, movie_id, user_id, rating, comment, is_deleted,
			      created_at, updated_at`

// CreateReview вставляет новый отзыв и возвращает его ID.
func (s *Storage) CreateReview(ctx context.Context, review models.Review) (int, error) {
	const op = "storage.CreateReview"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO reviews (movie_id, user_id, rating, comment)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		review.MovieID, review.UserID, review.Rating, review.Comment).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetReviewByID возвращает отзыв по его ID.
func (s *Storage) GetReviewByID(ctx context.Context, id int) (*models.Review, error) {
	const op = "storage.GetReviewByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	r, err := scanReview(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrReviewNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// ListReviewsByMovie возвращает отзывы к фильму без мягко удалённых.
func (s *Storage) ListReviewsByMovie(ctx context.Context, movieID int) ([]*models.Review, error) {
	const op = "storage.ListReviewsByMovie"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + reviewColumns + `
			  FROM reviews
			  WHERE movie_id = $1 AND is_deleted = FALSE
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateReview применяет частичное обновление отзыва: nil-поля не меняются.
func (s *Storage) UpdateReview(ctx context.Context, id int, rating *int, comment *string) (*models.Review, error) {
	const op = "storage.UpdateReview"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reviews
			  SET rating = COALESCE($1, rating),
			      comment = COALESCE($2, comment),
			      updated_at = now()
			  WHERE id = $3
			  RETURNING ` + reviewColumns
	r, err := scanReview(s.DB.QueryRowContext(ctx, query, rating, comment, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrReviewNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// SoftDeleteReview помечает отзыв удалённым, не удаляя строку.
func (s *Storage) SoftDeleteReview(ctx context.Context, id int) error {
	const op = "storage.SoftDeleteReview"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE reviews SET is_deleted = TRUE, updated_at = now() WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrReviewNotFound)
	}
	return nil
}

func scanReview(row scanner) (*models.Review, error) {
	r := &models.Review{}
	var comment sql.NullString
	if err := row.Scan(&r.ID, &r.MovieID, &r.UserID, &r.Rating, &comment,
		&r.IsDeleted, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if comment.Valid {
		r.Comment = &comment.String
	}
	return r, nil
}
