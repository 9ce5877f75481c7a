// Package streaming предоставляет маршруты для основного приложения.
package streaming

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/movie-streaming/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/movie-streaming/internal/http/handlers/auth/register"
	moviecreate "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/movie/create"
	movielist "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/movie/list"
	movieread "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/movie/read"
	movieupdate "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/movie/update"
	moviewatch "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/movie/watch"
	paymentinitiate "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/payment/initiate"
	paymentlist "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/payment/list"
	paymentread "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/payment/read"
	paymentupdate "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/payment/update"
	paymentwebhook "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/payment/webhook"
	reviewcreate "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/review/create"
	reviewlist "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/review/list"
	reviewremove "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/review/remove"
	reviewupdate "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/review/update"
	subscriptionme "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/subscription/me"
	subscriptionpurchase "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/subscription/purchase"
	subscriptionupdate "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/subscription/update"
	userconfirmage "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/user/confirmage"
	userread "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/user/read"
	userupdate "github.com/magabrotheeeer/movie-streaming/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/movie-streaming/internal/http/middlewarectx"
	accessservice "github.com/magabrotheeeer/movie-streaming/internal/services/access"
	authservice "github.com/magabrotheeeer/movie-streaming/internal/services/auth"
	movieservice "github.com/magabrotheeeer/movie-streaming/internal/services/movie"
	paymentservice "github.com/magabrotheeeer/movie-streaming/internal/services/payment"
	reviewservice "github.com/magabrotheeeer/movie-streaming/internal/services/review"
	subscriptionservice "github.com/magabrotheeeer/movie-streaming/internal/services/subscription"
	userservice "github.com/magabrotheeeer/movie-streaming/internal/services/user"
)

// Services объединяет сервисы, которыми пользуются обработчики.
type Services struct {
	Auth          *authservice.Service
	User          *userservice.Service
	Movie         *movieservice.Service
	Subscription  *subscriptionservice.Service
	Payment       *paymentservice.Service
	Review        *reviewservice.Service
	Access        *accessservice.Service
	WebhookSecret string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/movies", movielist.New(logger, s.Movie).ServeHTTP)
		r.Get("/movies/{id}", movieread.New(logger, s.Movie).ServeHTTP)
		r.Get("/movies/{id}/reviews", reviewlist.New(logger, s.Review).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/users/{id}", userread.New(logger, s.User).ServeHTTP)
			r.Put("/users/{id}", userupdate.New(logger, s.User).ServeHTTP)
			r.Post("/users/confirm-age", userconfirmage.New(logger, s.User).ServeHTTP)

			r.Get("/movies/{id}/watch", moviewatch.New(logger, s.Access).ServeHTTP)

			r.Post("/subscriptions/purchase", subscriptionpurchase.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/me", subscriptionme.New(logger, s.Subscription).ServeHTTP)

			r.Post("/payments", paymentinitiate.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, s.Payment).ServeHTTP)
			r.Get("/payments/{id}", paymentread.New(logger, s.Payment).ServeHTTP)

			r.Post("/reviews", reviewcreate.New(logger, s.Review).ServeHTTP)
			r.Put("/reviews/{id}", reviewupdate.New(logger, s.Review).ServeHTTP)

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Post("/movies", moviecreate.New(logger, s.Movie).ServeHTTP)
				r.Put("/movies/{id}", movieupdate.New(logger, s.Movie).ServeHTTP)
				r.Put("/subscriptions/{id}", subscriptionupdate.New(logger, s.Subscription).ServeHTTP)
				r.Put("/payments/{id}", paymentupdate.New(logger, s.Payment).ServeHTTP)
				r.Delete("/reviews/{id}", reviewremove.New(logger, s.Review).ServeHTTP)
			})
		})

		// Webhook endpoint (без аутентификации, подпись проверяется в обработчике)
		r.Post("/payments/webhook", paymentwebhook.New(logger, s.Payment, s.WebhookSecret).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
