package discount

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrPassNotSelectable возвращается для исчерпанного или просроченного пакета
	ErrPassNotSelectable = fmt.Errorf("%w: discount: package pass is exhausted or expired", domain.ErrEligibility)

	// ErrPromoNotEligible возвращается, когда промокод не проходит проверку
	ErrPromoNotEligible = fmt.Errorf("%w: discount: promo code is not eligible", domain.ErrEligibility)

	// ErrCreditNotSelectable возвращается для пустого или просроченного кредита
	ErrCreditNotSelectable = fmt.Errorf("%w: discount: store credit is empty or expired", domain.ErrEligibility)

	// ErrCreditOutOfRange возвращается, когда сумма кредита вне [0, min(остаток, база)]
	ErrCreditOutOfRange = fmt.Errorf("%w: discount: credit amount out of range", domain.ErrValidation)

	// ErrUnknownDiscountType возвращается для промокода с неизвестным типом скидки
	ErrUnknownDiscountType = fmt.Errorf("%w: discount: unknown promo discount type", domain.ErrValidation)

	// ErrInvalidBase возвращается для отрицательной базовой суммы
	ErrInvalidBase = fmt.Errorf("%w: discount: base amount must not be negative", domain.ErrValidation)
)

// Причины неприменимости промокода
var (
	ErrBelowMinimumAmount = errors.New("booking amount is below the promo minimum")
	ErrPromoInactive      = errors.New("promo code is not active")
	ErrUserLimitReached   = errors.New("promo code usage limit per user reached")
	ErrTotalLimitReached  = errors.New("promo code total usage limit reached")
	ErrBelowMinimumHours  = errors.New("booking is shorter than the promo minimum duration")
)
