// Package webhook реализует HTTP-обработчик уведомлений платёжного шлюза.
//
// Handler проверяет подпись тела запроса, разбирает событие и передает его
// бизнес-логике платежей. Обработка идемпотентна: повторная доставка того же
// уведомления отвечает 200 и не меняет данные. Шлюз повторяет доставку при
// любом ответе кроме 2xx.
package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-streaming/internal/http/response"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/movie-streaming/internal/paymentprovider"
)

// SignatureHeader — заголовок с подписью тела уведомления.
const SignatureHeader = "X-Api-Signature"

// Handler обрабатывает webhook-уведомления платёжного шлюза.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string
}

// Service описывает интерфейс бизнес-логики обработки события платежа.
type Service interface {
	ProcessWebhookEvent(ctx context.Context, event paymentprovider.WebhookEvent) error
}

// New создает новый Handler с переданными логгером, сервисом и секретом подписи.
func New(log *slog.Logger, service Service, webhookSecret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: webhookSecret,
	}
}

// ServeHTTP godoc
// @Summary Вебхук платёжного шлюза
// @Description Принимает уведомление об изменении статуса платежа. Тело должно быть подписано HMAC-SHA256.
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректное тело"
// @Failure 401 {object} response.ErrorResponse "Неверная подпись"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	signature := r.Header.Get(SignatureHeader)
	if !paymentprovider.VerifyWebhookSignature(body, signature, h.webhookSecret) {
		log.Error("invalid webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid signature"))
		return
	}

	var event paymentprovider.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Error("failed to decode webhook event", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("webhook event received",
		slog.String("event", event.Event),
		slog.String("transaction_id", event.Object.ID))

	if err := h.service.ProcessWebhookEvent(r.Context(), event); err != nil {
		log.Error("failed to process webhook event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process event"))
		return
	}

	render.JSON(w, r, response.OK())
}
