package get_available_seats

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	getAvailableSeats "github.com/m04kA/SMC-SeatBooking/internal/usecase/get_available_seats"
)

// AvailableSeatsResponse HTTP response model
type AvailableSeatsResponse struct {
	LocationID          int64     `json:"locationId"`
	StartAt             time.Time `json:"startAt"`
	EndAt               time.Time `json:"endAt"`
	Available           []string  `json:"available"`
	BookedByOthers      []string  `json:"bookedByOthers"`
	ConflictingOwn      []string  `json:"conflictingOwn,omitempty"`
	RequiresReselection bool      `json:"requiresReselection"`
	HasCapacity         bool      `json:"hasCapacity"`
}

// ToUseCaseRequest создает запрос use case из query параметров:
// start, end (RFC 3339), party и excludeBookingId (опционально)
func ToUseCaseRequest(locationID, userID int64, query url.Values) (*getAvailableSeats.Request, error) {
	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	req := &getAvailableSeats.Request{
		UserID:     userID,
		LocationID: locationID,
		Window:     domain.NewTimeWindow(start, end),
	}

	if party := query.Get("party"); party != "" {
		if req.PartySize, err = strconv.Atoi(party); err != nil {
			return nil, fmt.Errorf("party: %w", err)
		}
	}

	if exclude := query.Get("excludeBookingId"); exclude != "" {
		id, err := strconv.ParseInt(exclude, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("excludeBookingId: %w", err)
		}
		req.ExcludeBookingID = &id
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSeats.Response) *AvailableSeatsResponse {
	return &AvailableSeatsResponse{
		LocationID:          resp.LocationID,
		StartAt:             resp.Window.Start,
		EndAt:               resp.Window.End,
		Available:           resp.Available,
		BookedByOthers:      resp.BookedByOthers,
		ConflictingOwn:      resp.ConflictingOwn,
		RequiresReselection: resp.RequiresReselection,
		HasCapacity:         resp.HasCapacity,
	}
}
