package get_available_seats

import "github.com/m04kA/SMC-SeatBooking/internal/domain"

// Request модель запроса свободных мест
type Request struct {
	UserID           int64
	LocationID       int64
	Window           domain.TimeWindow
	PartySize        int    // 0 - без проверки вместимости
	ExcludeBookingID *int64 // редактируемое бронирование пользователя
}

// Response снимок доступности мест
type Response struct {
	LocationID          int64
	Window              domain.TimeWindow
	Available           []string
	BookedByOthers      []string
	ConflictingOwn      []string
	RequiresReselection bool
	HasCapacity         bool
}
