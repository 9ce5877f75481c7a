// Package movie содержит бизнес-логику каталога фильмов и кеширование карточек.
package movie

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// Repository определяет методы для работы с фильмами в хранилище.
type Repository interface {
	// CreateMovie добавляет новый фильм и возвращает его ID.
	CreateMovie(ctx context.Context, movie models.Movie) (int, error)
	// GetMovieByID возвращает фильм по ID.
	GetMovieByID(ctx context.Context, id int) (*models.Movie, error)
	// UpdateMovie обновляет данные фильма по ID.
	UpdateMovie(ctx context.Context, id int, upd models.MovieUpdate) (*models.Movie, error)
	// ListMovies возвращает каталог по фильтру с пагинацией.
	ListMovies(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику каталога, включая кеширование.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

const defaultListLimit = 20

// Create добавляет фильм в каталог и возвращает его ID.
func (s *Service) Create(ctx context.Context, req models.DummyMovie) (int, error) {
	movie := models.Movie{
		Title:                req.Title,
		Description:          req.Description,
		DurationMinutes:      req.DurationMinutes,
		Rating:               req.Rating,
		Genre:                req.Genre,
		Country:              req.Country,
		Type:                 req.Type,
		AgeRating:            req.AgeRating,
		RequiredSubscription: req.RequiredSubscription,
	}
	if req.ReleaseDate != "" {
		releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
		if err != nil {
			return 0, fmt.Errorf("invalid release date: %w", err)
		}
		movie.ReleaseDate = &releaseDate
	}

	id, err := s.repo.CreateMovie(ctx, movie)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new movie", slog.Int("id", id), slog.String("title", movie.Title))
	return id, nil
}

// Get возвращает карточку фильма по ID, используя кеш или репозиторий.
func (s *Service) Get(ctx context.Context, id int) (*models.Movie, error) {
	var result *models.Movie
	cacheKey := fmt.Sprintf("movie:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read movie from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	movie, err := s.repo.GetMovieByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, movie, time.Hour); err != nil {
		s.log.Warn("failed to cache movie", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return movie, nil
}

// Update применяет частичное обновление фильма и инвалидирует кеш.
func (s *Service) Update(ctx context.Context, id int, req models.DummyMovieUpdate) (*models.Movie, error) {
	upd := models.MovieUpdate{
		Title:                req.Title,
		Description:          req.Description,
		DurationMinutes:      req.DurationMinutes,
		Rating:               req.Rating,
		Genre:                req.Genre,
		Country:              req.Country,
		Type:                 req.Type,
		AgeRating:            req.AgeRating,
		RequiredSubscription: req.RequiredSubscription,
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse("2006-01-02", *req.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("invalid release date: %w", err)
		}
		upd.ReleaseDate = &releaseDate
	}

	movie, err := s.repo.UpdateMovie(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("movie:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate movie cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	s.log.Info("updated movie", slog.Int("id", id))
	return movie, nil
}

// List возвращает каталог по фильтру. Поле и направление сортировки
// проверяются по закрытым спискам, пустые значения получают дефолты.
func (s *Service) List(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error) {
	switch filter.SortBy {
	case "":
		filter.SortBy = models.MovieSortByRating
	case models.MovieSortByRating, models.MovieSortByReleaseDate, models.MovieSortByTitle:
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidSortField, filter.SortBy)
	}
	switch filter.Order {
	case "":
		filter.Order = models.SortOrderDesc
	case models.SortOrderAsc, models.SortOrderDesc:
	default:
		return nil, fmt.Errorf("%w: invalid sort order %q", models.ErrInvalidSortField, filter.Order)
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.ListMovies(ctx, filter)
}
