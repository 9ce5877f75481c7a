// Package notifier собирает воркер почтовых уведомлений: подключение
// к брокеру, очереди и потребителя событий активации подписки.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/movie-streaming/internal/config"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/smtp"
	"github.com/magabrotheeeer/movie-streaming/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/movie-streaming/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.Connection, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.New(logger, newTransport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.SubscriptionActivatedQueue, a.senderService.SendSubscriptionActivated, a.logger)
	if err != nil {
		a.logger.Error("failed to start subscription activated consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Notifier service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
