package confirm_payment

import (
	"strings"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// Outcome итог обработки callback
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeFailure   Outcome = "failure"
	OutcomePending   Outcome = "pending"
	OutcomeDuplicate Outcome = "duplicate"
)

// gatewayStatuses соответствие статусов шлюза итогам
var gatewayStatuses = map[string]Outcome{
	"completed":       OutcomeSuccess,
	"success":         OutcomeSuccess,
	"paid":            OutcomeSuccess,
	"cancelled":       OutcomeFailure,
	"failed":          OutcomeFailure,
	"declined":        OutcomeFailure,
	"rejected":        OutcomeFailure,
	"expired":         OutcomeFailure,
	"pending-timeout": OutcomeFailure,
	"pending":         OutcomePending,
}

// MapGatewayStatus переводит статус шлюза в итог; регистр не важен
func MapGatewayStatus(status string) (Outcome, bool) {
	outcome, ok := gatewayStatuses[strings.ToLower(strings.TrimSpace(status))]
	return outcome, ok
}

// Request параметры callback платежного шлюза
type Request struct {
	BookingID int64
	Reference string
	Status    string
}

// Response результат обработки callback
type Response struct {
	BookingID int64
	Outcome   Outcome
	Status    domain.BookingStatus
	Booking   *domain.Booking // nil для pending и повторных callback'ов
}
