package entitlements

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// Repository провайдер пакетов, промокодов и кредитов
type Repository interface {
	GetPackage(ctx context.Context, id, userID int64) (*domain.PackagePass, error)
	GetPromoByID(ctx context.Context, id, userID int64) (*domain.PromoCode, error)
	GetPromoByCode(ctx context.Context, code string, userID int64) (*domain.PromoCode, error)
	GetCredit(ctx context.Context, id, userID int64) (*domain.StoreCredit, error)

	ConsumePackage(ctx context.Context, id int64, now time.Time) error
	RedeemPromo(ctx context.Context, promoID, userID, bookingID int64) error
	DebitCredit(ctx context.Context, id int64, amount float64, now time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
