package quote_price

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
)

// EntitlementLoader загружает выбранный entitlement
type EntitlementLoader interface {
	Load(ctx context.Context, userID int64, sel *domain.Selection) (domain.Entitlement, error)
}

// Quoter интерфейс калькулятора котировок
type Quoter interface {
	Quote(ctx context.Context, in pricing.QuoteInput) (*pricing.QuoteResult, error)
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
