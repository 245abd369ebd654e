package get_available_seats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBooking/internal/api/middleware"
	getAvailableSeats "github.com/m04kA/SMC-SeatBooking/internal/usecase/get_available_seats"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgInvalidQuery      = "некорректные параметры запроса: ожидаются start и end в формате RFC 3339"
	msgLocationNotFound  = "локация не найдена"
	msgBookingNotFound   = "бронирование не найдено"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	useCase GetAvailableSeatsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSeatsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/seats
// Query params: start, end (required), party, excludeBookingId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, ok := handlers.PathID(r, "locationId")
	if !ok {
		h.logger.Warn("GET /locations/{id}/seats - Invalid location ID")
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := ToUseCaseRequest(locationID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /locations/{id}/seats - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSeats.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/seats - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getAvailableSeats.ErrBookingNotFound):
			h.logger.Warn("GET /locations/{id}/seats - Excluded booking not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, getAvailableSeats.ErrAccessDenied):
			h.logger.Warn("GET /locations/{id}/seats - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("GET /locations/{id}/seats - Rejected: location_id=%d, error=%v", locationID, err)
				return
			}
			h.logger.Error("GET /locations/{id}/seats - Failed to get seats: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/seats - Seats retrieved: location_id=%d, available=%d",
		locationID, len(result.Available))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
