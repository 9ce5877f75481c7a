// Package watch реализует HTTP-обработчик проверки доступа к просмотру фильма.
//
// Handler вызывает бизнес-логику контроля доступа и возвращает решение:
// разрешён просмотр или нет, и причину отказа. Отказ возвращается со
// статусом 403 и машиночитаемой причиной.
package watch

import (
	"context"
	"errors"
	"fmt"
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
	"github.com/magabrotheeeer/movie-streaming/internal/services/access"
)

// Handler обрабатывает запросы на просмотр фильма.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики контроля доступа.
type Service interface {
	CheckWatch(ctx context.Context, userID, movieID int) (access.Decision, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// streamURLFormat — шаблон ссылки на поток. Отдачей контента занимается
// отдельный сервис, здесь только формируется адрес.
const streamURLFormat = "http://example.com/stream/%d"

// watchResponse — тело ответа на разрешённый просмотр.
type watchResponse struct {
	access.Decision
	StreamURL string `json:"stream_url"`
}

// ServeHTTP godoc
// @Summary Смотреть фильм
// @Description Проверяет право текущего пользователя на просмотр фильма: возрастное ограничение и требуемый тариф подписки.
// @Tags Movies
// @Produce json
// @Param id path int true "ID фильма"
// @Success 200 {object} response.Response "Просмотр разрешён, в data ссылка на поток"
// @Failure 403 {object} response.Response "Просмотр запрещён, в data причина отказа"
// @Failure 404 {object} response.ErrorResponse "Фильм не найден"
// @Security BearerAuth
// @Router /movies/{id}/watch [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.watch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	movieID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(int)
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	decision, err := h.service.CheckWatch(r.Context(), userID, movieID)
	if err != nil {
		if errors.Is(err, models.ErrMovieNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("movie not found"))
			return
		}
		log.Error("failed to check watch access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check watch access"))
		return
	}

	if !decision.Allowed {
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Response{
			Status: response.StatusError,
			Error:  "watch denied",
			Data:   decision,
		})
		return
	}

	log.Info("watch allowed", slog.Int("user_id", userID), slog.Int("movie_id", movieID))
	render.JSON(w, r, response.OKWithData(watchResponse{
		Decision:  decision,
		StreamURL: fmt.Sprintf(streamURLFormat, movieID),
	}))
}
