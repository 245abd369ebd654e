package paymentstate

import (
	"time"
)

// Purpose назначение платежа, ожидающего подтверждения
type Purpose string

const (
	PurposeBooking    Purpose = "booking"
	PurposeReschedule Purpose = "reschedule"
)

// CarryOver данные, которые нужно донести от отправки платежа до callback шлюза.
// Патч переноса хранится в базе (booking_reschedules); здесь только ссылка и кредит.
type CarryOver struct {
	BookingID    int64     `json:"booking_id"`
	Reference    string    `json:"reference"`
	Purpose      Purpose   `json:"purpose"`
	CreditID     *int64    `json:"credit_id,omitempty"`
	CreditAmount float64   `json:"credit_amount"`
	CreatedAt    time.Time `json:"created_at"`
}
