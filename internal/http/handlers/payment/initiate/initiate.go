// Package initiate реализует HTTP-обработчик инициации платежа.
//
// Handler создает платёж в статусе pending, регистрирует его у платёжного
// шлюза и возвращает ссылку подтверждения, на которую нужно отправить
// пользователя. Завершение платежа выполняется только вебхуком шлюза.
package initiate

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

// Handler управляет HTTP-запросами на инициацию платежа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики инициации платежа.
type Service interface {
	Initiate(ctx context.Context, userID int, req models.DummyPayment) (*models.Payment, string, error)
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
// @Summary Инициировать платёж
// @Description Создает платёж в статусе pending и возвращает ссылку подтверждения платёжного шлюза.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body models.DummyPayment true "Данные платежа"
// @Success 201 {object} response.Response "Платёж и ссылка подтверждения"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Чужая подписка"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Платёжный шлюз недоступен"
// @Security BearerAuth
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.initiate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

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

	payment, confirmationURL, err := h.service.Initiate(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSubscriptionNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
		case errors.Is(err, models.ErrAccessDenied):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("subscription belongs to another user"))
		default:
			log.Error("failed to initiate payment", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("could not initiate payment"))
		}
		return
	}

	log.Info("payment initiated", slog.Int("id", payment.ID), slog.Int("user_id", userID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment":          payment,
		"confirmation_url": confirmationURL,
	}))
}
