package get_available_seats

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_available_seats: invalid input data", domain.ErrValidation)

	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("get_available_seats: location not found")

	// ErrBookingNotFound возвращается, когда исключаемое бронирование не найдено
	ErrBookingNotFound = errors.New("get_available_seats: booking not found")

	// ErrAccessDenied возвращается, когда исключаемое бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("get_available_seats: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_seats: internal error")
)
