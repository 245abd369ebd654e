package retry_payment

import "github.com/m04kA/SMC-SeatBooking/internal/domain"

// Request модель запроса повторной оплаты
type Request struct {
	BookingID     int64
	UserID        int64
	PaymentMethod domain.PaymentMethod // пусто - прежний способ оплаты
}

// Response бронирование, снова ожидающее оплату
type Response struct {
	Booking     *domain.Booking
	RedirectURL string
	Confirmed   bool
}
