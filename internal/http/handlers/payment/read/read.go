// Package read реализует HTTP-обработчик получения платежа по ID.
//
// Пользователь видит только собственные платежи, администратор — любые.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-streaming/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-streaming/internal/http/response"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Handler обрабатывает запросы на чтение платежа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения платежа.
type Service interface {
	Get(ctx context.Context, id, requesterID int, requesterRole string) (*models.Payment, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	requesterID, _ := r.Context().Value(middlewarectx.UserID).(int)
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	payment, err := h.service.Get(r.Context(), id, requesterID, role)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPaymentNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("payment not found"))
		case errors.Is(err, models.ErrAccessDenied):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		default:
			log.Error("failed to read payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read payment"))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment": payment,
	}))
}
