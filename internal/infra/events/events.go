package events

import (
	"time"
)

// Header общие поля события
type Header struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

// BookingConfirmed бронирование оплачено и подтверждено
type BookingConfirmed struct {
	Header           Header    `json:"header"`
	BookingID        int64     `json:"booking_id"`
	ReferenceCode    string    `json:"reference_code"`
	UserID           int64     `json:"user_id"`
	LocationID       int64     `json:"location_id"`
	SeatIDs          []string  `json:"seat_ids"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	TotalAmount      float64   `json:"total_amount"`
	PaymentReference string    `json:"payment_reference,omitempty"`
}

// BookingPaymentFailed шлюз сообщил о неуспешной оплате
type BookingPaymentFailed struct {
	Header           Header `json:"header"`
	BookingID        int64  `json:"booking_id"`
	PaymentReference string `json:"payment_reference"`
	GatewayStatus    string `json:"gateway_status"`
}

// BookingRescheduled бронирование перенесено
type BookingRescheduled struct {
	Header         Header    `json:"header"`
	BookingID      int64     `json:"booking_id"`
	SeatIDs        []string  `json:"seat_ids"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	RescheduleCost float64   `json:"reschedule_cost"`
	CreditAmount   float64   `json:"credit_amount"`
}
