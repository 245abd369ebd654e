package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, rules domain.WindowRules, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.MemberType != "" && !req.MemberType.IsValid() {
		return fmt.Errorf("%w: unknown member type %q", ErrInvalidInput, req.MemberType)
	}

	if req.PaymentMethod != "" && !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	// Правила длительности: конец после начала, не в прошлом, ночь только вечером
	if err := rules.Validate(req.Window, now); err != nil {
		return err
	}

	if err := req.Party.Validate(); err != nil {
		return err
	}

	// Количество мест совпадает с размером группы
	return domain.ValidateSeats(req.SeatIDs, req.Party)
}
