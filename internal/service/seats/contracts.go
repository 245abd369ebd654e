package seats

import (
	"context"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// HoldRepository источник занятых мест
type HoldRepository interface {
	GetBookedSeats(ctx context.Context, locationID int64, window domain.TimeWindow, excludeBookingID *int64) ([]domain.SeatHold, error)
}

// LocationRepository источник всех мест локации
type LocationRepository interface {
	GetSeatIDs(ctx context.Context, locationID int64) ([]string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
