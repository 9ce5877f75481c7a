// Package update реализует HTTP-обработчик изменения отзыва.
//
// Изменять отзыв может его автор или администратор.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/movie-streaming/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-streaming/internal/http/response"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Handler обрабатывает запросы на изменение отзыва.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики изменения отзыва.
type Service interface {
	Update(ctx context.Context, id, requesterID int, requesterRole string, req models.DummyReviewUpdate) (*models.Review, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.update"

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

	var req models.DummyReviewUpdate
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

	requesterID, _ := r.Context().Value(middlewarectx.UserID).(int)
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	review, err := h.service.Update(r.Context(), id, requesterID, role, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrReviewNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("review not found"))
		case errors.Is(err, models.ErrAccessDenied):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("only the author or admin can edit a review"))
		default:
			log.Error("failed to update review", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update review"))
		}
		return
	}

	log.Info("review updated", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"review": review,
	}))
}
