package paymentstate

import (
	"context"
	"time"
)

// Store хранилище маркеров обработки и carry-over записей
type Store interface {
	// SetMarker выставляет маркер, если его нет; возвращает false, если маркер уже был
	SetMarker(ctx context.Context, key string, ttl time.Duration) (bool, error)
	HasMarker(ctx context.Context, key string) (bool, error)
	SaveCarryOver(ctx context.Context, c CarryOver, ttl time.Duration) error
	GetCarryOver(ctx context.Context, bookingID int64) (*CarryOver, error)
	DeleteCarryOver(ctx context.Context, bookingID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
