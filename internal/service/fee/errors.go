package fee

import (
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrUnknownMethod возвращается для неизвестного способа оплаты
	ErrUnknownMethod = fmt.Errorf("%w: fee: unknown payment method", domain.ErrValidation)
)
