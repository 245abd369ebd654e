package seats

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrInsufficientCapacity возвращается, когда свободных мест меньше, чем людей в группе
	ErrInsufficientCapacity = fmt.Errorf("%w: seats: not enough free seats for the party", domain.ErrValidation)

	// ErrSeatUnavailable возвращается, когда выбранное место занято другим бронированием
	ErrSeatUnavailable = fmt.Errorf("%w: seats: seat is booked by another booking", domain.ErrConflict)

	// ErrUnknownSeat возвращается, когда место не принадлежит локации
	ErrUnknownSeat = fmt.Errorf("%w: seats: seat does not exist at this location", domain.ErrValidation)

	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("seats: location not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("seats: internal error")
)
