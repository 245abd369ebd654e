package get_available_seats

import (
	"context"

	getAvailableSeats "github.com/m04kA/SMC-SeatBooking/internal/usecase/get_available_seats"
)

type GetAvailableSeatsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSeats.Request) (*getAvailableSeats.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
