package watch

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movie-streaming/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-streaming/internal/models"
	"github.com/magabrotheeeer/movie-streaming/internal/services/access"
)

// Мок сервиса контроля доступа
type AccessServiceMock struct {
	mock.Mock
}

func (m *AccessServiceMock) CheckWatch(ctx context.Context, userID, movieID int) (access.Decision, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Get(0).(access.Decision), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestWatchHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		movieID        string
		withUserID     bool
		mockDecision   access.Decision
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantStatus     string
		wantReason     string
		wantStreamURL  string
	}{
		{
			name:           "watch allowed returns stream url",
			movieID:        "7",
			withUserID:     true,
			mockDecision:   access.Decision{Allowed: true},
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantStreamURL:  "http://example.com/stream/7",
		},
		{
			name:           "watch denied without subscription",
			movieID:        "7",
			withUserID:     true,
			mockDecision:   access.Decision{Reason: access.DenyReasonSubscriptionRequired},
			callsService:   true,
			wantStatusCode: http.StatusForbidden,
			wantStatus:     "Error",
			wantReason:     access.DenyReasonSubscriptionRequired,
		},
		{
			name:           "watch denied for unconfirmed age",
			movieID:        "7",
			withUserID:     true,
			mockDecision:   access.Decision{Reason: access.DenyReasonAgeNotConfirmed},
			callsService:   true,
			wantStatusCode: http.StatusForbidden,
			wantStatus:     "Error",
			wantReason:     access.DenyReasonAgeNotConfirmed,
		},
		{
			name:           "movie not found",
			movieID:        "7",
			withUserID:     true,
			mockErr:        models.ErrMovieNotFound,
			callsService:   true,
			wantStatusCode: http.StatusNotFound,
			wantStatus:     "Error",
		},
		{
			name:           "bad movie id",
			movieID:        "abc",
			withUserID:     true,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
		},
		{
			name:           "missing user in context",
			movieID:        "7",
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AccessServiceMock)
			if tt.callsService {
				serviceMock.On("CheckWatch", mock.Anything, 1, 7).
					Return(tt.mockDecision, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/movies/"+tt.movieID+"/watch", nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.movieID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			if tt.withUserID {
				ctx = context.WithValue(ctx, middlewarectx.UserID, 1)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantReason != "" {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.wantReason, data["reason"])
				assert.Equal(t, false, data["allowed"])
			}
			if tt.wantStreamURL != "" {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, true, data["allowed"])
				assert.Equal(t, tt.wantStreamURL, data["stream_url"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
