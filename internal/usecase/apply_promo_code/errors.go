package apply_promo_code

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: apply_promo_code: invalid input data", domain.ErrValidation)

	// ErrPromoNotEligible возвращается, когда промокод не подходит к бронированию
	ErrPromoNotEligible = fmt.Errorf("%w: apply_promo_code: promo code is not eligible", domain.ErrEligibility)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_promo_code: internal error")
)
