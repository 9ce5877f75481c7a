package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

const subscriptionColumns = `id, user_id, plan, start_date, end_date, status,
			      created_at, updated_at`

// CreateSubscription вставляет новую подписку и возвращает её ID.
// Частичный уникальный индекс (один pending/active на пользователя)
// превращает гонку двух одновременных покупок в models.ErrSubscriptionExists.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_id, plan, start_date, end_date, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserID, sub.Plan, sub.StartDate, sub.EndDate, sub.Status).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, models.ErrSubscriptionExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSubscriptionByID возвращает подписку по её ID.
func (s *Storage) GetSubscriptionByID(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// GetActiveSubscription возвращает активную подписку пользователя.
func (s *Storage) GetActiveSubscription(ctx context.Context, userID int) (*models.Subscription, error) {
	const op = "storage.GetActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_id = $1 AND status = $2`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, userID,
		models.SubscriptionStatusActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// GetOpenSubscription возвращает подписку пользователя в статусе pending или active.
func (s *Storage) GetOpenSubscription(ctx context.Context, userID int) (*models.Subscription, error) {
	const op = "storage.GetOpenSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_id = $1 AND status IN ($2, $3)`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, userID,
		models.SubscriptionStatusPending, models.SubscriptionStatusActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// UpdateSubscription применяет частичное обновление подписки: nil-поля не меняются.
func (s *Storage) UpdateSubscription(ctx context.Context, id int, upd models.SubscriptionUpdate) (*models.Subscription, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET plan = COALESCE($1, plan),
			      end_date = COALESCE($2, end_date),
			      status = COALESCE($3, status),
			      updated_at = now()
			  WHERE id = $4
			  RETURNING ` + subscriptionColumns
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query,
		upd.Plan, upd.EndDate, upd.Status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ActivateSubscription переводит подписку из pending в active.
// Условный UPDATE делает операцию идемпотентной: повторный вебхук по уже
// активной подписке не меняет ни одной строки. Возвращает true, если
// подписка была активирована именно этим вызовом.
func (s *Storage) ActivateSubscription(ctx context.Context, id int) (bool, error) {
	const op = "storage.ActivateSubscription"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = $1, updated_at = now()
			  WHERE id = $2 AND status = $3`
	result, err := s.DB.ExecContext(ctx, query,
		models.SubscriptionStatusActive, id, models.SubscriptionStatusPending)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected == 1, nil
}

func scanSubscription(row scanner) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var endDate sql.NullTime
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.Plan, &sub.StartDate, &endDate,
		&sub.Status, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}
	if endDate.Valid {
		sub.EndDate = &endDate.Time
	}
	return sub, nil
}
