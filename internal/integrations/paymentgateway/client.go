package paymentgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// IdempotencyKeyHeader заголовок ключа идемпотентности запроса на оплату
const IdempotencyKeyHeader = "Idempotency-Key"

// idempotencyNamespace пространство имён ключей идемпотентности платежей
var idempotencyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("seatbooking/payments"))

// IdempotencyKey ключ идемпотентности платёжной попытки.
// Повторная отправка той же попытки получает тот же ключ, новая попытка получает новый.
func IdempotencyKey(reference string, attempt int) string {
	return uuid.NewSHA1(idempotencyNamespace, []byte(fmt.Sprintf("%s:%d", reference, attempt))).String()
}

// Client клиент платежного шлюза с редиректом
type Client struct {
	baseURL     string
	apiKey      string
	currency    string
	callbackURL string
	httpClient  *http.Client
	log         Logger
}

// NewClient создает новый экземпляр клиента платежного шлюза
func NewClient(baseURL, apiKey, currency, callbackURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		currency:    currency,
		callbackURL: callbackURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// InitiatePayment создает платежную сессию и возвращает URL для редиректа пользователя
func (c *Client) InitiatePayment(ctx context.Context, payment PaymentRequest) (*PaymentSession, error) {
	if payment.Currency == "" {
		payment.Currency = c.currency
	}
	if payment.ReturnURL == "" {
		payment.ReturnURL = c.returnURL(payment.BookingID)
	}

	body, err := json.Marshal(payment)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	idempotencyKey := IdempotencyKey(payment.Reference, payment.Attempt)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(IdempotencyKeyHeader, idempotencyKey)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.log.Info("InitiatePayment: booking=%d, attempt=%d, amount=%.2f, key=%s", payment.BookingID, payment.Attempt, payment.Amount, idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("InitiatePayment: gateway unavailable for booking=%d: %v", payment.BookingID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		var gatewayErr ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&gatewayErr)
		return nil, fmt.Errorf("%w: %s: %s", ErrRejected, gatewayErr.Code, gatewayErr.Message)
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var session PaymentSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if session.Reference == "" || session.RedirectURL == "" {
		return nil, fmt.Errorf("%w: empty reference or redirect url", ErrInvalidResponse)
	}

	c.log.Info("InitiatePayment: booking=%d got reference=%s", payment.BookingID, session.Reference)
	return &session, nil
}

func (c *Client) returnURL(bookingID int64) string {
	if c.callbackURL == "" {
		return ""
	}
	u, err := url.Parse(c.callbackURL)
	if err != nil {
		return c.callbackURL
	}
	q := u.Query()
	q.Set("bookingId", fmt.Sprintf("%d", bookingID))
	u.RawQuery = q.Encode()
	return u.String()
}
