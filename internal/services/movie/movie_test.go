package movie

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateMovie(ctx context.Context, movie models.Movie) (int, error) {
	args := m.Called(ctx, movie)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetMovieByID(ctx context.Context, id int) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}
func (m *RepoMock) UpdateMovie(ctx context.Context, id int, upd models.MovieUpdate) (*models.Movie, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}
func (m *RepoMock) ListMovies(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Movie), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if fill, ok := args.Get(2).(*models.Movie); ok && fill != nil {
		*(result.(**models.Movie)) = fill
	}
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Get_CacheHit(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	cached := &models.Movie{ID: 5, Title: "Cached"}
	cache.On("Get", "movie:5", mock.Anything).Return(true, nil, cached).Once()

	svc := New(repo, cache, newNoopLogger())
	got, err := svc.Get(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	repo.AssertNotCalled(t, "GetMovieByID")
	cache.AssertExpectations(t)
}

func TestService_Get_CacheMiss(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	stored := &models.Movie{ID: 5, Title: "Stored"}
	cache.On("Get", "movie:5", mock.Anything).Return(false, nil, nil).Once()
	repo.On("GetMovieByID", mock.Anything, 5).Return(stored, nil).Once()
	cache.On("Set", "movie:5", stored, time.Hour).Return(nil).Once()

	svc := New(repo, cache, newNoopLogger())
	got, err := svc.Get(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, stored, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Get_CacheErrorFallsThrough(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	stored := &models.Movie{ID: 5, Title: "Stored"}
	cache.On("Get", "movie:5", mock.Anything).Return(false, errors.New("redis down"), nil).Once()
	repo.On("GetMovieByID", mock.Anything, 5).Return(stored, nil).Once()
	cache.On("Set", "movie:5", stored, time.Hour).Return(errors.New("redis down")).Once()

	svc := New(repo, cache, newNoopLogger())
	got, err := svc.Get(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestService_List(t *testing.T) {
	tests := []struct {
		name       string
		filter     models.MovieFilter
		wantFilter *models.MovieFilter
		wantErr    error
	}{
		{
			name:   "empty filter gets defaults",
			filter: models.MovieFilter{},
			wantFilter: &models.MovieFilter{
				SortBy: models.MovieSortByRating,
				Order:  models.SortOrderDesc,
				Limit:  defaultListLimit,
			},
		},
		{
			name:   "explicit sort preserved",
			filter: models.MovieFilter{SortBy: models.MovieSortByTitle, Order: models.SortOrderAsc, Limit: 10, Offset: 5},
			wantFilter: &models.MovieFilter{
				SortBy: models.MovieSortByTitle,
				Order:  models.SortOrderAsc,
				Limit:  10,
				Offset: 5,
			},
		},
		{
			name:   "oversized limit clamped",
			filter: models.MovieFilter{Limit: 500, Offset: -1},
			wantFilter: &models.MovieFilter{
				SortBy: models.MovieSortByRating,
				Order:  models.SortOrderDesc,
				Limit:  defaultListLimit,
			},
		},
		{
			name:    "unknown sort field rejected",
			filter:  models.MovieFilter{SortBy: "password_hash"},
			wantErr: models.ErrInvalidSortField,
		},
		{
			name:    "unknown sort order rejected",
			filter:  models.MovieFilter{Order: "sideways"},
			wantErr: models.ErrInvalidSortField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.wantFilter != nil {
				repo.On("ListMovies", mock.Anything, *tt.wantFilter).
					Return([]*models.Movie{}, nil).Once()
			}
			svc := New(repo, new(CacheMock), newNoopLogger())

			_, err := svc.List(context.Background(), tt.filter)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}
