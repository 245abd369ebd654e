package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SeatBooking/internal/service/checkout"
	createBooking "github.com/m04kA/SMC-SeatBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgLocationNotFound   = "локация не найдена"
	msgGatewayUnavailable = "платежный шлюз недоступен, попробуйте позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrLocationNotFound):
			h.logger.Warn("POST /bookings - Location not found: location_id=%d", req.LocationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, checkout.ErrGatewayUnavailable):
			h.logger.Error("POST /bookings - Gateway unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgGatewayUnavailable)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("POST /bookings - Rejected: user_id=%d, location_id=%d, error=%v", userID, req.LocationID, err)
				return
			}
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, location_id=%d, error=%v",
				userID, req.LocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, status=%s",
		result.ID, userID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
