package paymentgateway

// PaymentRequest запрос на создание платежной сессии
type PaymentRequest struct {
	BookingID   int64   `json:"booking_id"`
	Reference   string  `json:"reference"` // код бронирования, виден пользователю
	Attempt     int     `json:"attempt"`   // номер платёжной попытки бронирования
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Method      string  `json:"method"`
	Description string  `json:"description,omitempty"`
	ReturnURL   string  `json:"return_url"`
}

// PaymentSession созданная платежная сессия
type PaymentSession struct {
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
