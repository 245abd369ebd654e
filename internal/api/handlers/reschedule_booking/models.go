package reschedule_booking

import (
	"github.com/m04kA/SMC-SeatBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-SeatBooking/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Window        handlers.WindowRequest     `json:"window"`
	SeatIDs       []string                   `json:"seatIds,omitempty"`
	Credit        *handlers.SelectionRequest `json:"credit,omitempty"`
	PaymentMethod string                     `json:"paymentMethod,omitempty"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	Booking          *models.BookingResponse `json:"booking"`
	CostDifference   float64                 `json:"costDifference"`
	CreditApplied    float64                 `json:"creditApplied"`
	AmountDue        float64                 `json:"amountDue"`
	PaymentRequired  bool                    `json:"paymentRequired"`
	RedirectURL      string                  `json:"redirectUrl,omitempty"`
	PaymentReference string                  `json:"paymentReference,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(bookingID, userID int64) *rescheduleBooking.Request {
	return &rescheduleBooking.Request{
		BookingID:     bookingID,
		UserID:        userID,
		Window:        r.Window.ToDomain(),
		SeatIDs:       r.SeatIDs,
		Credit:        r.Credit.ToDomain(),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		Booking:          models.FromDomainBooking(resp.Booking),
		CostDifference:   resp.CostDifference,
		CreditApplied:    resp.CreditApplied,
		AmountDue:        resp.AmountDue,
		PaymentRequired:  resp.PaymentRequired,
		RedirectURL:      resp.RedirectURL,
		PaymentReference: resp.PaymentReference,
	}
}
