package list_entitlements

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// EntitlementProvider интерфейс провайдеров entitlement'ов пользователя
type EntitlementProvider interface {
	GetUserPackages(ctx context.Context, userID int64) ([]domain.PackagePass, error)
	GetUserAvailablePromoCodes(ctx context.Context, userID int64, now time.Time) ([]domain.PromoCode, error)
	GetUserCredits(ctx context.Context, userID int64) ([]domain.StoreCredit, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
