package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

const paymentColumns = `id, user_id, subscription_id, amount, currency, payment_method,
			      status, transaction_id, created_at, updated_at`

// CreatePayment вставляет новый платёж и возвращает его ID.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_id, subscription_id, amount, currency,
			      payment_method, status, transaction_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		payment.UserID, payment.SubscriptionID, payment.Amount, payment.Currency,
		payment.PaymentMethod, payment.Status, payment.TransactionID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPaymentByID возвращает платёж по его ID.
func (s *Storage) GetPaymentByID(ctx context.Context, id int) (*models.Payment, error) {
	const op = "storage.GetPaymentByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrPaymentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListPaymentsByUser возвращает платежи пользователя с пагинацией.
func (s *Storage) ListPaymentsByUser(ctx context.Context, userID, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + paymentColumns + `
			  FROM payments
			  WHERE user_id = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePayment применяет частичное обновление платежа: nil-поля не меняются.
func (s *Storage) UpdatePayment(ctx context.Context, id int, upd models.PaymentUpdate) (*models.Payment, error) {
	const op = "storage.UpdatePayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = COALESCE($1, status),
			      transaction_id = COALESCE($2, transaction_id),
			      updated_at = now()
			  WHERE id = $3
			  RETURNING ` + paymentColumns
	p, err := scanPayment(s.DB.QueryRowContext(ctx, query, upd.Status, upd.TransactionID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrPaymentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// CompletePayment переводит платёж из pending в completed и сохраняет
// идентификатор транзакции шлюза. Условный UPDATE делает операцию
// идемпотентной: повторный вебхук по уже завершённому платежу не меняет
// ни одной строки. Возвращает true, если платёж был завершён именно
// этим вызовом.
func (s *Storage) CompletePayment(ctx context.Context, id int, transactionID *string) (bool, error) {
	const op = "storage.CompletePayment"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1,
			      transaction_id = COALESCE($2, transaction_id),
			      updated_at = now()
			  WHERE id = $3 AND status = $4`
	result, err := s.DB.ExecContext(ctx, query,
		models.PaymentStatusCompleted, transactionID, id, models.PaymentStatusPending)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected == 1, nil
}

// FailPayment переводит платёж из pending в failed.
func (s *Storage) FailPayment(ctx context.Context, id int) (bool, error) {
	const op = "storage.FailPayment"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1, updated_at = now()
			  WHERE id = $2 AND status = $3`
	result, err := s.DB.ExecContext(ctx, query,
		models.PaymentStatusFailed, id, models.PaymentStatusPending)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected == 1, nil
}

func scanPayment(row scanner) (*models.Payment, error) {
	p := &models.Payment{}
	var subscriptionID sql.NullInt64
	var transactionID sql.NullString
	if err := row.Scan(&p.ID, &p.UserID, &subscriptionID, &p.Amount, &p.Currency,
		&p.PaymentMethod, &p.Status, &transactionID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if subscriptionID.Valid {
		id := int(subscriptionID.Int64)
		p.SubscriptionID = &id
	}
	if transactionID.Valid {
		p.TransactionID = &transactionID.String
	}
	return p, nil
}
