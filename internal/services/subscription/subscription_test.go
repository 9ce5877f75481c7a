package subscription

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	args := m.Called(ctx, sub)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetSubscriptionByID(ctx context.Context, id int) (*models.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) GetActiveSubscription(ctx context.Context, userID int) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) GetOpenSubscription(ctx context.Context, userID int) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) UpdateSubscription(ctx context.Context, id int, upd models.SubscriptionUpdate) (*models.Subscription, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Purchase(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummySubscription
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "success with explicit dates",
			req: models.DummySubscription{
				Plan:      "Premium",
				StartDate: "2026-09-01",
				EndDate:   "2026-10-01",
			},
			setupMocks: func(r *RepoMock) {
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
					return s.Plan == "Premium" &&
						s.Status == models.SubscriptionStatusPending &&
						s.StartDate.Format("2006-01-02") == "2026-09-01" &&
						s.EndDate != nil && s.EndDate.Format("2006-01-02") == "2026-10-01"
				})).Return(5, nil).Once()
				r.On("GetSubscriptionByID", mock.Anything, 5).Return(&models.Subscription{
					ID:     5,
					Plan:   "Premium",
					Status: models.SubscriptionStatusPending,
				}, nil).Once()
			},
		},
		{
			name: "defaults to thirty days from now",
			req:  models.DummySubscription{Plan: "Basic"},
			setupMocks: func(r *RepoMock) {
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(s models.Subscription) bool {
					return s.EndDate != nil && s.EndDate.Sub(s.StartDate) == 30*24*time.Hour
				})).Return(6, nil).Once()
				r.On("GetSubscriptionByID", mock.Anything, 6).Return(&models.Subscription{ID: 6}, nil).Once()
			},
		},
		{
			name: "end date before start date",
			req: models.DummySubscription{
				Plan:      "Basic",
				StartDate: "2026-09-01",
				EndDate:   "2026-08-01",
			},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    models.ErrInvalidSubscriptionDates,
		},
		{
			name: "open subscription conflict",
			req:  models.DummySubscription{Plan: "Basic"},
			setupMocks: func(r *RepoMock) {
				r.On("CreateSubscription", mock.Anything, mock.Anything).
					Return(0, models.ErrSubscriptionExists).Once()
			},
			wantErr: models.ErrSubscriptionExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := New(repo, newNoopLogger())

			got, err := svc.Purchase(context.Background(), 1, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, got)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummySubscriptionUpdate
		setupMocks func(r *RepoMock)
		wantErr    error
	}{
		{
			name: "status is normalized",
			req:  models.DummySubscriptionUpdate{Status: ptr("  ACTIVE ")},
			setupMocks: func(r *RepoMock) {
				r.On("UpdateSubscription", mock.Anything, 1, mock.MatchedBy(func(u models.SubscriptionUpdate) bool {
					return u.Status != nil && *u.Status == models.SubscriptionStatusActive
				})).Return(&models.Subscription{ID: 1, Status: models.SubscriptionStatusActive}, nil).Once()
			},
		},
		{
			name:       "unknown status rejected",
			req:        models.DummySubscriptionUpdate{Status: ptr("refunded")},
			setupMocks: func(_ *RepoMock) {},
			wantErr:    models.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMocks(repo)
			svc := New(repo, newNoopLogger())

			_, err := svc.Update(context.Background(), 1, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func ptr[T any](v T) *T { return &v }
