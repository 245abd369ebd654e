package retry_payment

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SeatBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SeatBooking/internal/service/checkout"
	retryPayment "github.com/m04kA/SMC-SeatBooking/internal/usecase/retry_payment"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgLocationNotFound   = "локация не найдена"
	msgForbidden          = "доступ запрещен"
	msgGatewayUnavailable = "платежный шлюз недоступен, попробуйте позже"
)

type Handler struct {
	useCase RetryPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RetryPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/pay
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := handlers.PathID(r, "bookingId")
	if !ok {
		h.logger.Warn("POST /bookings/{id}/pay - Invalid booking ID")
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/pay - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RetryPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/pay - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, userID))
	if err != nil {
		switch {
		case errors.Is(err, retryPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/pay - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, retryPayment.ErrLocationNotFound):
			h.logger.Warn("POST /bookings/{id}/pay - Location not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, retryPayment.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/pay - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkout.ErrGatewayUnavailable):
			h.logger.Error("POST /bookings/{id}/pay - Gateway unavailable: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgGatewayUnavailable)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("POST /bookings/{id}/pay - Rejected: booking_id=%d, error=%v", bookingID, err)
				return
			}
			h.logger.Error("POST /bookings/{id}/pay - Failed to retry payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/pay - Payment restarted: booking_id=%d, confirmed=%t", bookingID, result.Confirmed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
