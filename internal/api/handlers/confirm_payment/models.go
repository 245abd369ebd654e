package confirm_payment

import (
	"net/url"
	"strconv"

	confirmPayment "github.com/m04kA/SMC-SeatBooking/internal/usecase/confirm_payment"
)

// CallbackResponse HTTP response model
type CallbackResponse struct {
	BookingID int64  `json:"bookingId"`
	Outcome   string `json:"outcome"`
	Status    string `json:"status,omitempty"`
}

// ToUseCaseRequest создает запрос use case из query параметров callback
func ToUseCaseRequest(query url.Values) (*confirmPayment.Request, error) {
	bookingID, err := strconv.ParseInt(query.Get("bookingId"), 10, 64)
	if err != nil {
		return nil, err
	}

	return &confirmPayment.Request{
		BookingID: bookingID,
		Reference: query.Get("reference"),
		Status:    query.Get("status"),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *CallbackResponse {
	return &CallbackResponse{
		BookingID: resp.BookingID,
		Outcome:   string(resp.Outcome),
		Status:    string(resp.Status),
	}
}
