// Package payment содержит бизнес-логику платежей: инициацию через
// платёжный шлюз и обработку его webhook-уведомлений.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/magabrotheeeer/movie-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
	"github.com/magabrotheeeer/movie-streaming/internal/paymentprovider"
)

// Repository определяет методы хранилища, нужные платёжному сервису.
type Repository interface {
	CreatePayment(ctx context.Context, payment models.Payment) (int, error)
	GetPaymentByID(ctx context.Context, id int) (*models.Payment, error)
	ListPaymentsByUser(ctx context.Context, userID, limit, offset int) ([]*models.Payment, error)
	UpdatePayment(ctx context.Context, id int, upd models.PaymentUpdate) (*models.Payment, error)
	// CompletePayment переводит платёж pending -> completed и сообщает,
	// был ли переход выполнен этим вызовом.
	CompletePayment(ctx context.Context, id int, transactionID *string) (bool, error)
	// FailPayment переводит платёж pending -> failed.
	FailPayment(ctx context.Context, id int) (bool, error)

	GetSubscriptionByID(ctx context.Context, id int) (*models.Subscription, error)
	// ActivateSubscription переводит подписку pending -> active и сообщает,
	// была ли подписка активирована этим вызовом.
	ActivateSubscription(ctx context.Context, id int) (bool, error)

	GetUserByID(ctx context.Context, id int) (*models.User, error)
}

// Provider описывает клиент платёжного шлюза.
type Provider interface {
	CreatePayment(ctx context.Context, req paymentprovider.CreatePaymentRequest) (*paymentprovider.CreatePaymentResponse, error)
	ReturnURL() string
}

// EventPublisher отправляет события активации подписки воркеру уведомлений.
type EventPublisher interface {
	PublishSubscriptionActivated(event any) error
}

// Service реализует бизнес-логику платежей.
type Service struct {
	repo      Repository
	provider  Provider
	publisher EventPublisher
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, provider Provider, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		provider:  provider,
		publisher: publisher,
		log:       log,
	}
}

const defaultCurrency = "RUB"

// Initiate создает платёж в статусе pending и регистрирует его у платёжного
// шлюза. Возвращает платёж и ссылку подтверждения, на которую нужно
// отправить пользователя.
func (s *Service) Initiate(ctx context.Context, userID int, req models.DummyPayment) (*models.Payment, string, error) {
	const op = "services.payment.Initiate"

	if req.SubscriptionID != nil {
		sub, err := s.repo.GetSubscriptionByID(ctx, *req.SubscriptionID)
		if err != nil {
			return nil, "", err
		}
		if sub.UserID != userID {
			return nil, "", models.ErrAccessDenied
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	payment := models.Payment{
		UserID:         userID,
		SubscriptionID: req.SubscriptionID,
		Amount:         req.Amount,
		Currency:       currency,
		PaymentMethod:  req.PaymentMethod,
		Status:         models.PaymentStatusPending,
	}
	id, err := s.repo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, "", err
	}

	metadata := map[string]string{"order_id": strconv.Itoa(id)}
	if req.SubscriptionID != nil {
		metadata["subscription_id"] = strconv.Itoa(*req.SubscriptionID)
	}
	resp, err := s.provider.CreatePayment(ctx, paymentprovider.CreatePaymentRequest{
		Amount: paymentprovider.Amount{
			Value:    strconv.FormatFloat(req.Amount, 'f', 2, 64),
			Currency: currency,
		},
		Confirmation: paymentprovider.Confirmation{
			Type:      "redirect",
			ReturnURL: s.provider.ReturnURL(),
		},
		Capture:     true,
		Description: fmt.Sprintf("payment #%d", id),
		Metadata:    metadata,
	})
	if err != nil {
		// Платёж остаётся pending, шлюз недоступен. Пользователь может
		// инициировать оплату повторно.
		s.log.Error("failed to register payment at provider", slog.Int("id", id), sl.Err(err))
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdatePayment(ctx, id, models.PaymentUpdate{TransactionID: &resp.ID})
	if err != nil {
		return nil, "", err
	}
	s.log.Info("initiated payment",
		slog.Int("id", id),
		slog.Int("user_id", userID),
		slog.String("transaction_id", resp.ID))

	return updated, resp.Confirmation.ConfirmationURL, nil
}

// Get возвращает платёж. Пользователь видит только свои платежи,
// администратор — любые.
func (s *Service) Get(ctx context.Context, id, requesterID int, requesterRole string) (*models.Payment, error) {
	payment, err := s.repo.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.UserID != requesterID && requesterRole != models.RoleAdmin {
		return nil, models.ErrAccessDenied
	}
	return payment, nil
}

// List возвращает платежи пользователя с пагинацией.
func (s *Service) List(ctx context.Context, userID, limit, offset int) ([]*models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListPaymentsByUser(ctx, userID, limit, offset)
}

// Update применяет административное частичное обновление платежа.
func (s *Service) Update(ctx context.Context, id int, req models.DummyPaymentUpdate) (*models.Payment, error) {
	upd := models.PaymentUpdate{TransactionID: req.TransactionID}
	if req.Status != nil {
		status, err := models.ParsePaymentStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		upd.Status = &status
	}
	return s.repo.UpdatePayment(ctx, id, upd)
}

// ProcessWebhookEvent обрабатывает уведомление платёжного шлюза.
// Обработка идемпотентна: переходы статусов выполняются условными
// UPDATE-ами, повторное уведомление не меняет данные и не порождает
// повторного события активации.
func (s *Service) ProcessWebhookEvent(ctx context.Context, event paymentprovider.WebhookEvent) error {
	const op = "services.payment.ProcessWebhookEvent"

	orderID, err := strconv.Atoi(event.Object.Metadata["order_id"])
	if err != nil {
		return fmt.Errorf("%s: invalid order_id in metadata: %w", op, err)
	}

	switch event.Event {
	case paymentprovider.EventPaymentSucceeded:
		return s.handlePaymentSucceeded(ctx, orderID, event.Object.ID)
	case paymentprovider.EventPaymentCanceled:
		failed, err := s.repo.FailPayment(ctx, orderID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if failed {
			s.log.Info("payment failed by provider", slog.Int("id", orderID))
		}
		return nil
	default:
		s.log.Info("ignoring unknown webhook event", slog.String("event", event.Event))
		return nil
	}
}

func (s *Service) handlePaymentSucceeded(ctx context.Context, paymentID int, transactionID string) error {
	const op = "services.payment.handlePaymentSucceeded"

	completed, err := s.repo.CompletePayment(ctx, paymentID, &transactionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if completed {
		s.log.Info("payment completed", slog.Int("id", paymentID))
	} else {
		s.log.Info("payment already completed", slog.Int("id", paymentID))
	}

	// Активация выполняется на каждом succeeded-уведомлении, а не только на
	// первом: если предыдущая доставка завершила платёж, но активация
	// оборвалась, повтор от шлюза доводит подписку до active.
	payment, err := s.repo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if payment.Status != models.PaymentStatusCompleted || payment.SubscriptionID == nil {
		return nil
	}

	activated, err := s.repo.ActivateSubscription(ctx, *payment.SubscriptionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !activated {
		return nil
	}
	s.log.Info("subscription activated",
		slog.Int("subscription_id", *payment.SubscriptionID),
		slog.Int("user_id", payment.UserID))

	s.publishActivated(ctx, payment)
	return nil
}

// publishActivated отправляет уведомление об активации. Ошибка публикации
// не откатывает активацию, уведомление только логируется.
func (s *Service) publishActivated(ctx context.Context, payment *models.Payment) {
	sub, err := s.repo.GetSubscriptionByID(ctx, *payment.SubscriptionID)
	if err != nil {
		s.log.Error("failed to load subscription for notification", sl.Err(err))
		return
	}
	user, err := s.repo.GetUserByID(ctx, payment.UserID)
	if err != nil {
		s.log.Error("failed to load user for notification", sl.Err(err))
		return
	}
	event := models.SubscriptionActivatedEvent{
		Email:    user.Email,
		Username: user.Username,
		Plan:     sub.Plan,
	}
	if sub.EndDate != nil {
		event.EndDate = sub.EndDate.Format("2006-01-02")
	}
	if err := s.publisher.PublishSubscriptionActivated(event); err != nil {
		s.log.Error("failed to publish activation event", sl.Err(err))
	}
}
