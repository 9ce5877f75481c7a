// Package purchase реализует HTTP-обработчик оформления подписки.
//
// Handler принимает JSON-запрос с тарифом и датами, валидирует их,
// вызывает бизнес-логику оформления через сервис и возвращает созданную
// подписку в статусе pending. Активация происходит после подтверждения
// оплаты платёжным шлюзом.
package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/movie-streaming/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-streaming/internal/http/response"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Handler управляет HTTP-запросами на оформление подписки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подписок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики оформления подписки.
type Service interface {
	Purchase(ctx context.Context, userID int, req models.DummySubscription) (*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оформить подписку
// @Description Создает подписку в статусе pending для текущего пользователя. У пользователя может быть только одна открытая подписка.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body models.DummySubscription true "Тариф и даты подписки"
// @Success 201 {object} response.Response "Созданная подписка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или даты"
// @Failure 409 {object} response.ErrorResponse "Уже есть открытая подписка"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Security BearerAuth
// @Router /subscriptions/purchase [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.purchase"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("plan", req.Plan))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	sub, err := h.service.Purchase(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSubscriptionExists):
			log.Error("user already has open subscription", slog.Int("user_id", userID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("user already has a pending or active subscription"))
		case errors.Is(err, models.ErrInvalidSubscriptionDates):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("end date must not be earlier than start date"))
		default:
			log.Error("failed to purchase subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not purchase subscription"))
		}
		return
	}

	log.Info("subscription purchased", slog.Int("id", sub.ID), slog.Int("user_id", userID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscription": sub,
	}))
}
