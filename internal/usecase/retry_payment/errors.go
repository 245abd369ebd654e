package retry_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: retry_payment: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("retry_payment: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("retry_payment: access denied")

	// ErrNotRetryable возвращается, если оплата бронирования не завершилась неудачей
	ErrNotRetryable = fmt.Errorf("%w: retry_payment: only failed bookings can be paid again", domain.ErrValidation)

	// ErrLocationNotFound возвращается, когда локация бронирования больше не существует
	ErrLocationNotFound = errors.New("retry_payment: location not found")

	// ErrSeatConflict возвращается, когда места бронирования заняты, пока оплата была неуспешной
	ErrSeatConflict = fmt.Errorf("%w: retry_payment: seats were booked by someone else", domain.ErrConflict)

	// ErrEntitlementNotEligible возвращается, когда entitlement бронирования больше не подходит
	ErrEntitlementNotEligible = fmt.Errorf("%w: retry_payment: entitlement is no longer eligible", domain.ErrEligibility)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("retry_payment: internal error")
)
