package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/movie-streaming/internal/paymentprovider"
)

const testSecret = "webhook-secret"

// Мок сервиса обработки платёжных событий
type PaymentServiceMock struct {
	mock.Mock
}

func (m *PaymentServiceMock) ProcessWebhookEvent(ctx context.Context, event paymentprovider.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestWebhookHandler_ServeHTTP(t *testing.T) {
	validBody, err := json.Marshal(paymentprovider.WebhookEvent{
		Type:  "notification",
		Event: paymentprovider.EventPaymentSucceeded,
		Object: paymentprovider.WebhookObject{
			ID:       "tx-1",
			Status:   "succeeded",
			Metadata: map[string]string{"order_id": "42"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		body           []byte
		signature      string
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantStatus     string
	}{
		{
			name:           "valid signature and event",
			body:           validBody,
			signature:      sign(validBody, testSecret),
			callsService:   true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "missing signature",
			body:           validBody,
			signature:      "",
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
		},
		{
			name:           "signature over different body",
			body:           validBody,
			signature:      sign([]byte("tampered"), testSecret),
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
		},
		{
			name:           "signature with wrong secret",
			body:           validBody,
			signature:      sign(validBody, "other-secret"),
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
		},
		{
			name:           "malformed json with valid signature",
			body:           []byte("not a json"),
			signature:      sign([]byte("not a json"), testSecret),
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
		},
		{
			name:           "processing failure",
			body:           validBody,
			signature:      sign(validBody, testSecret),
			mockErr:        errors.New("db error"),
			callsService:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(PaymentServiceMock)
			if tt.callsService {
				serviceMock.On("ProcessWebhookEvent", mock.Anything, mock.MatchedBy(func(e paymentprovider.WebhookEvent) bool {
					return e.Event == paymentprovider.EventPaymentSucceeded && e.Object.ID == "tx-1"
				})).Return(tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), serviceMock, testSecret)

			req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			if tt.signature != "" {
				req.Header.Set(SignatureHeader, tt.signature)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			serviceMock.AssertExpectations(t)
		})
	}
}
