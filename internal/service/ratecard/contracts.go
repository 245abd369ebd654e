package ratecard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// Source источник тарифов и настроек комиссий (горячая перезагрузка)
type Source interface {
	GetRates(ctx context.Context) ([]domain.RateCardEntry, error)
	GetFeeSettings(ctx context.Context) (*domain.FeeSettings, error)
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
