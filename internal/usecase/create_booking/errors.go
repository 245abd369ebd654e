package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("create_booking: location not found")

	// ErrEntitlementNotEligible возвращается, когда выбранный entitlement не подходит к бронированию
	ErrEntitlementNotEligible = fmt.Errorf("%w: create_booking: selected entitlement does not qualify", domain.ErrEligibility)

	// ErrSeatConflict возвращается, когда места заняты параллельным бронированием
	ErrSeatConflict = fmt.Errorf("%w: create_booking: seats were booked by someone else", domain.ErrConflict)

	// ErrPaymentMethodRequired возвращается, когда к оплате есть сумма, а способ оплаты не выбран
	ErrPaymentMethodRequired = fmt.Errorf("%w: create_booking: payment method is required", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
