package access

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestCanWatch(t *testing.T) {
	tests := []struct {
		name         string
		ageConfirmed bool
		movie        *models.Movie
		activeSub    *models.Subscription
		want         Decision
	}{
		{
			name:  "free movie without restrictions",
			movie: &models.Movie{},
			want:  Decision{Allowed: true},
		},
		{
			name:         "adult movie requires confirmed age",
			ageConfirmed: false,
			movie:        &models.Movie{AgeRating: ptr(18)},
			want:         Decision{Reason: DenyReasonAgeNotConfirmed},
		},
		{
			name:         "adult movie with confirmed age",
			ageConfirmed: true,
			movie:        &models.Movie{AgeRating: ptr(18)},
			want:         Decision{Allowed: true},
		},
		{
			name:  "teen rating does not require confirmation",
			movie: &models.Movie{AgeRating: ptr(16)},
			want:  Decision{Allowed: true},
		},
		{
			name:  "premium movie without subscription",
			movie: &models.Movie{RequiredSubscription: ptr("premium")},
			want:  Decision{Reason: DenyReasonSubscriptionRequired},
		},
		{
			name:      "premium movie with basic subscription",
			movie:     &models.Movie{RequiredSubscription: ptr("premium")},
			activeSub: &models.Subscription{Plan: "basic"},
			want:      Decision{Reason: DenyReasonPlanMismatch},
		},
		{
			name:      "premium movie with premium subscription",
			movie:     &models.Movie{RequiredSubscription: ptr("premium")},
			activeSub: &models.Subscription{Plan: "premium"},
			want:      Decision{Allowed: true},
		},
		{
			name:      "plan names match regardless of letter case",
			movie:     &models.Movie{RequiredSubscription: ptr("premium")},
			activeSub: &models.Subscription{Plan: "Premium"},
			want:      Decision{Allowed: true},
		},
		{
			name:         "age check runs before subscription check",
			ageConfirmed: false,
			movie: &models.Movie{
				AgeRating:            ptr(18),
				RequiredSubscription: ptr("premium"),
			},
			activeSub: &models.Subscription{Plan: "premium"},
			want:      Decision{Reason: DenyReasonAgeNotConfirmed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanWatch(tt.ageConfirmed, tt.movie, tt.activeSub)
			assert.Equal(t, tt.want, got)
		})
	}
}

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) GetMovieByID(ctx context.Context, id int) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}
func (m *RepoMock) GetActiveSubscription(ctx context.Context, userID int) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_CheckWatch(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock)
		want       Decision
		wantErr    error
	}{
		{
			name: "no active subscription is not an error",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByID", mock.Anything, 1).
					Return(&models.User{ID: 1, AgeConfirmed: true}, nil).Once()
				r.On("GetMovieByID", mock.Anything, 2).
					Return(&models.Movie{ID: 2, RequiredSubscription: ptr("premium")}, nil).Once()
				r.On("GetActiveSubscription", mock.Anything, 1).
					Return(nil, models.ErrSubscriptionNotFound).Once()
			},
			want: Decision{Reason: DenyReasonSubscriptionRequired},
		},
		{
			name: "allowed with matching subscription",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByID", mock.Anything, 1).
					Return(&models.User{ID: 1, AgeConfirmed: true}, nil).Once()
				r.On("GetMovieByID", mock.Anything, 2).
					Return(&models.Movie{ID: 2, RequiredSubscription: ptr("premium")}, nil).Once()
				r.On("GetActiveSubscription", mock.Anything, 1).
					Return(&models.Subscription{Plan: "premium"}, nil).Once()
			},
			want: Decision{Allowed: true},
		},
		{
			name: "unknown movie",
			setupMocks: func(r *RepoMock) {
				r.On("GetUserByID", mock.Anything, 1).
					Return(&models.User{ID: 1}, nil).Once()
				r.On("GetMovieByID", mock.Anything, 2).
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

			got, err := svc.CheckWatch(context.Background(), 1, 2)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)

			repo.AssertExpectations(t)
		})
	}
}
