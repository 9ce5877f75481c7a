// Package read реализует HTTP-обработчик получения карточки фильма по ID.
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

	"github.com/magabrotheeeer/movie-streaming/internal/http/response"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Handler обрабатывает запросы на получение фильма по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения карточки фильма.
type Service interface {
	Get(ctx context.Context, id int) (*models.Movie, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.read"

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

	movie, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrMovieNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("movie not found"))
			return
		}
		log.Error("failed to read movie", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read movie"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"movie": movie,
	}))
}
