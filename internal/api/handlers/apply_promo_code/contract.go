package apply_promo_code

import (
	"context"

	applyPromoCode "github.com/m04kA/SMC-SeatBooking/internal/usecase/apply_promo_code"
)

type ApplyPromoCodeUseCase interface {
	Execute(ctx context.Context, req *applyPromoCode.Request) (*applyPromoCode.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
