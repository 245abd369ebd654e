package retry_payment

import (
	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/bookings/models"
	retryPayment "github.com/m04kA/SMC-SeatBooking/internal/usecase/retry_payment"
)

// RetryPaymentRequest HTTP request model; тело можно не передавать
type RetryPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// RetryPaymentResponse HTTP response model
type RetryPaymentResponse struct {
	Booking     *models.BookingResponse `json:"booking"`
	RedirectURL string                  `json:"redirectUrl,omitempty"`
	Confirmed   bool                    `json:"confirmed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RetryPaymentRequest) ToUseCaseRequest(bookingID, userID int64) *retryPayment.Request {
	return &retryPayment.Request{
		BookingID:     bookingID,
		UserID:        userID,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *retryPayment.Response) *RetryPaymentResponse {
	return &RetryPaymentResponse{
		Booking:     models.FromDomainBooking(resp.Booking),
		RedirectURL: resp.RedirectURL,
		Confirmed:   resp.Confirmed,
	}
}
