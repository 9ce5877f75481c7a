// Package paymentprovider содержит HTTP-клиент платёжного шлюза ЮKassa
// и типы его запросов, ответов и webhook-уведомлений.
package paymentprovider

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/movie-streaming/internal/config"
)

type Client struct {
	shopID     string
	secretKey  string
	apiURL     string
	returnURL  string
	httpClient *http.Client
}

// NewClient создаёт новый клиент ЮKassa.
func NewClient(cfg config.PaymentProvider) *Client {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = "https://api.yookassa.ru/v3"
	}
	return &Client{
		shopID:     cfg.ShopID,
		secretKey:  cfg.SecretKey,
		apiURL:     apiURL,
		returnURL:  cfg.ReturnURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ReturnURL возвращает адрес, на который шлюз вернёт пользователя после оплаты.
func (c *Client) ReturnURL() string {
	return c.returnURL
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.shopID + ":" + c.secretKey))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.NewString())
	return req, nil
}

// CreatePayment отправляет запрос на создание платежа с redirect-подтверждением
func (c *Client) CreatePayment(ctx context.Context, reqParams CreatePaymentRequest) (*CreatePaymentResponse, error) {
	req, err := c.newRequest(ctx, "POST", "/payments", reqParams)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var paymentResp CreatePaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&paymentResp); err != nil {
		return nil, err
	}
	return &paymentResp, nil
}

// VerifyWebhookSignature проверяет подпись тела webhook-уведомления.
// Шлюз передаёт base64 от HMAC-SHA256 тела в заголовке X-Api-Signature.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
