package review

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateReview(ctx context.Context, review models.Review) (int, error) {
	args := m.Called(ctx, review)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetReviewByID(ctx context.Context, id int) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}
func (m *RepoMock) ListReviewsByMovie(ctx context.Context, movieID int) ([]*models.Review, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}
func (m *RepoMock) UpdateReview(ctx context.Context, id int, rating *int, comment *string) (*models.Review, error) {
	args := m.Called(ctx, id, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}
func (m *RepoMock) SoftDeleteReview(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}
func (m *RepoMock) GetMovieByID(ctx context.Context, id int) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func ptr[T any](v T) *T { return &v }

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummyReview
		setupMocks func(r *RepoMock)
		wantID     int
		wantErr    error
	}{
		{
			name: "success",
			req:  models.DummyReview{MovieID: 2, Rating: 8, Comment: ptr("good")},
			setupMocks: func(r *RepoMock) {
				r.On("GetMovieByID", mock.Anything, 2).
					Return(&models.Movie{ID: 2}, nil).Once()
				r.On("CreateReview", mock.Anything, mock.MatchedBy(func(rv models.Review) bool {
					return rv.MovieID == 2 && rv.UserID == 1 && rv.Rating == 8
				})).Return(5, nil).Once()
			},
			wantID: 5,
		},
		{
			name: "unknown movie",
			req:  models.DummyReview{MovieID: 99, Rating: 8},
			setupMocks: func(r *RepoMock) {
				r.On("GetMovieByID", mock.Anything, 99).
					Return(nil, models.ErrMovieNotFound).Once()
			},
			wantErr: models.ErrMovieNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := New(repo, newNoopLogger())

			id, err := svc.Create(context.Background(), 1, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	stored := &models.Review{ID: 5, MovieID: 2, UserID: 1, Rating: 8}

	tests := []struct {
		name          string
		requesterID   int
		requesterRole string
		setupMocks    func(r *RepoMock)
		wantErr       error
	}{
		{
			name:          "author edits own review",
			requesterID:   1,
			requesterRole: models.RoleUser,
			setupMocks: func(r *RepoMock) {
				r.On("GetReviewByID", mock.Anything, 5).Return(stored, nil).Once()
				r.On("UpdateReview", mock.Anything, 5, ptr(9), (*string)(nil)).
					Return(&models.Review{ID: 5, Rating: 9}, nil).Once()
			},
		},
		{
			name:          "admin edits foreign review",
			requesterID:   42,
			requesterRole: models.RoleAdmin,
			setupMocks: func(r *RepoMock) {
				r.On("GetReviewByID", mock.Anything, 5).Return(stored, nil).Once()
				r.On("UpdateReview", mock.Anything, 5, ptr(9), (*string)(nil)).
					Return(&models.Review{ID: 5, Rating: 9}, nil).Once()
			},
		},
		{
			name:          "stranger denied",
			requesterID:   42,
			requesterRole: models.RoleUser,
			setupMocks: func(r *RepoMock) {
				r.On("GetReviewByID", mock.Anything, 5).Return(stored, nil).Once()
			},
			wantErr: models.ErrAccessDenied,
		},
		{
			name:          "unknown review",
			requesterID:   1,
			requesterRole: models.RoleUser,
			setupMocks: func(r *RepoMock) {
				r.On("GetReviewByID", mock.Anything, 5).
					Return(nil, models.ErrReviewNotFound).Once()
			},
			wantErr: models.ErrReviewNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := New(repo, newNoopLogger())

			_, err := svc.Update(context.Background(), 5, tt.requesterID, tt.requesterRole,
				models.DummyReviewUpdate{Rating: ptr(9)})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}
