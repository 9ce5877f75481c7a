package paymentprovider

// Сумма платежа в формате ЮKassa.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// Способ подтверждения платежа. Для redirect-сценария шлюз
// возвращает ссылку, на которую нужно отправить пользователя.
type Confirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

// Запрос на создание платежа
type CreatePaymentRequest struct {
	Amount       Amount            `json:"amount"`
	Confirmation Confirmation      `json:"confirmation"`
	Capture      bool              `json:"capture"`
	Description  string            `json:"description,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Ответ шлюза при создании платежа
type CreatePaymentResponse struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	Amount       Amount       `json:"amount"`
	Confirmation Confirmation `json:"confirmation"`
}

// События, которые присылает шлюз в webhook-уведомлениях.
const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentCanceled  = "payment.canceled"
)

// Объект платежа внутри webhook-уведомления.
type WebhookObject struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	Amount   Amount            `json:"amount"`
	Metadata map[string]string `json:"metadata"`
}

// Webhook-уведомление шлюза об изменении статуса платежа.
type WebhookEvent struct {
	Type   string        `json:"type"`
	Event  string        `json:"event"`
	Object WebhookObject `json:"object"`
}
