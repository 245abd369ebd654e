package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64
	MemberType    domain.MemberType // роль владельца бронирования, по умолчанию member
	LocationID    int64
	Window        domain.TimeWindow
	Party         domain.Party
	SeatIDs       []string
	Entitlement   *domain.Selection // опционально
	PaymentMethod domain.PaymentMethod
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64
	ReferenceCode    string
	Status           domain.BookingStatus
	LocationID       int64
	Window           domain.TimeWindow
	Party            domain.Party
	SeatIDs          []string
	Quote            domain.Quote
	PaymentMethod    domain.PaymentMethod
	PaymentReference *string
	Entitlement      *domain.EntitlementRef

	// RedirectURL адрес платежной страницы; пусто, если бронирование подтверждено сразу
	RedirectURL string

	CreatedAt time.Time
}

func newResponse(b *domain.Booking, redirectURL string) *Response {
	return &Response{
		ID:            b.ID,
		ReferenceCode: b.ReferenceCode,
		Status:        b.Status,
		LocationID:    b.LocationID,
		Window:        b.Window,
		Party:         b.Party,
		SeatIDs:       b.SeatIDs,
		Quote: domain.Quote{
			BaseAmount:     b.BaseAmount,
			DiscountAmount: b.DiscountAmount,
			TaxAmount:      b.TaxAmount,
			TransactionFee: b.TransactionFee,
			TotalAmount:    b.TotalAmount,
		},
		PaymentMethod:    b.PaymentMethod,
		PaymentReference: b.PaymentReference,
		Entitlement:      b.Entitlement,
		RedirectURL:      redirectURL,
		CreatedAt:        b.CreatedAt,
	}
}
