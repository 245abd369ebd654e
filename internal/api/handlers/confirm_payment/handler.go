package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatBooking/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-SeatBooking/internal/usecase/confirm_payment"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/callback
// Query params: bookingId, reference, status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /payments/callback - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("GET /payments/callback - Booking not found: booking_id=%d", useCaseReq.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("GET /payments/callback - Rejected: booking_id=%d, error=%v", useCaseReq.BookingID, err)
				return
			}
			h.logger.Error("GET /payments/callback - Failed to process callback: booking_id=%d, error=%v",
				useCaseReq.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /payments/callback - Callback processed: booking_id=%d, outcome=%s",
		result.BookingID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
