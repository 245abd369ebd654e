package reschedule_booking

import (
	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// Request модель запроса на перенос
type Request struct {
	BookingID     int64
	UserID        int64
	Window        domain.TimeWindow
	SeatIDs       []string          // новые места; пусто - оставить прежние
	Credit        *domain.Selection // только store credit
	PaymentMethod domain.PaymentMethod
}

// Response модель ответа на перенос
type Response struct {
	Booking         *domain.Booking // перенесённое бронирование или исходное, если ждём оплату
	CostDifference  float64
	CreditApplied   float64
	AmountDue       float64
	PaymentRequired bool

	RedirectURL      string
	PaymentReference string
}
