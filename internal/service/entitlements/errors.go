package entitlements

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrNotFound возвращается, когда выбранный entitlement не найден у пользователя
	ErrNotFound = fmt.Errorf("%w: entitlements: entitlement not found", domain.ErrValidation)

	// ErrExhausted возвращается, когда entitlement израсходован к моменту списания
	ErrExhausted = fmt.Errorf("%w: entitlements: entitlement is exhausted", domain.ErrEligibility)

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("entitlements: internal error")
)
