// Package list реализует HTTP-обработчик выборки каталога фильмов.
//
// Handler разбирает параметры фильтрации, сортировки и пагинации из
// query-строки и возвращает страницу каталога в JSON-формате.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-streaming/internal/http/response"
	"github.com/magabrotheeeer/movie-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Handler обрабатывает запросы на выборку каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Каталог фильмов
// @Description Возвращает страницу каталога с фильтрацией по жанру, стране, типу, годам выхода и рейтингу, поиском и сортировкой.
// @Tags Movies
// @Produce json
// @Param genre query string false "Фильтр по жанру"
// @Param country query string false "Фильтр по стране"
// @Param type query string false "Фильтр по типу"
// @Param search query string false "Поиск по названию и описанию"
// @Param year_from query int false "Год выхода от"
// @Param year_to query int false "Год выхода до"
// @Param rating_min query number false "Рейтинг от"
// @Param rating_max query number false "Рейтинг до"
// @Param sort_by query string false "Поле сортировки: rating, release_date, title"
// @Param order query string false "Направление: asc или desc"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Страница каталога"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Router /movies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := parseFilter(r)
	if err != nil {
		log.Error("failed to parse query params", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid query parameters"))
		return
	}

	movies, err := h.service.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, models.ErrInvalidSortField) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid sort parameters"))
			return
		}
		log.Error("failed to list movies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list movies"))
		return
	}

	log.Info("movies listed", slog.Int("count", len(movies)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"movies": movies,
		"count":  len(movies),
	}))
}

func parseFilter(r *http.Request) (models.MovieFilter, error) {
	q := r.URL.Query()
	filter := models.MovieFilter{
		SortBy: q.Get("sort_by"),
		Order:  q.Get("order"),
	}

	strParam := func(name string) *string {
		if v := q.Get(name); v != "" {
			return &v
		}
		return nil
	}
	filter.Genre = strParam("genre")
	filter.Country = strParam("country")
	filter.Type = strParam("type")
	filter.Search = strParam("search")

	var err error
	intParam := func(name string) *int {
		v := q.Get(name)
		if v == "" || err != nil {
			return nil
		}
		var parsed int
		if parsed, err = strconv.Atoi(v); err != nil {
			return nil
		}
		return &parsed
	}
	filter.ReleaseYearFrom = intParam("year_from")
	filter.ReleaseYearTo = intParam("year_to")

	floatParam := func(name string) *float64 {
		v := q.Get(name)
		if v == "" || err != nil {
			return nil
		}
		var parsed float64
		if parsed, err = strconv.ParseFloat(v, 64); err != nil {
			return nil
		}
		return &parsed
	}
	filter.RatingMin = floatParam("rating_min")
	filter.RatingMax = floatParam("rating_max")

	if v := q.Get("limit"); v != "" && err == nil {
		filter.Limit, err = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" && err == nil {
		filter.Offset, err = strconv.Atoi(v)
	}
	return filter, err
}
