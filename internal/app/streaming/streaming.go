// Package streaming собирает HTTP-приложение стримингового кинотеатра:
// хранилище, миграции, кеш, брокер уведомлений, сервисы и маршруты.
package streaming

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/movie-streaming/internal/cache"
	"github.com/magabrotheeeer/movie-streaming/internal/config"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/jwt"
	"github.com/magabrotheeeer/movie-streaming/internal/migrations"
	"github.com/magabrotheeeer/movie-streaming/internal/paymentprovider"
	"github.com/magabrotheeeer/movie-streaming/internal/rabbitmq"
	accessservice "github.com/magabrotheeeer/movie-streaming/internal/services/access"
	authservice "github.com/magabrotheeeer/movie-streaming/internal/services/auth"
	movieservice "github.com/magabrotheeeer/movie-streaming/internal/services/movie"
	paymentservice "github.com/magabrotheeeer/movie-streaming/internal/services/payment"
	reviewservice "github.com/magabrotheeeer/movie-streaming/internal/services/review"
	subscriptionservice "github.com/magabrotheeeer/movie-streaming/internal/services/subscription"
	userservice "github.com/magabrotheeeer/movie-streaming/internal/services/user"
	"github.com/magabrotheeeer/movie-streaming/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.Connection, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	providerClient := paymentprovider.NewClient(cfg.PaymentProvider)
	publisher := rabbitmq.NewNotificationPublisher(ch)

	authService := authservice.New(db, jwtMaker)
	userService := userservice.New(db, logger)
	movieService := movieservice.New(db, cacheRedis, logger)
	subscriptionService := subscriptionservice.New(db, logger)
	paymentService := paymentservice.New(db, providerClient, publisher, logger)
	reviewService := reviewservice.New(db, logger)
	accessService := accessservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:          authService,
		User:          userService,
		Movie:         movieService,
		Subscription:  subscriptionService,
		Payment:       paymentService,
		Review:        reviewService,
		Access:        accessService,
		WebhookSecret: cfg.PaymentProvider.WebhookSecret,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
