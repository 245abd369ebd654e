package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/paymentstate"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	ApplyReschedule(ctx context.Context, id int64, patch domain.ReschedulePatch) (*domain.Booking, error)
	GetReschedule(ctx context.Context, reference string) (*domain.PendingReschedule, error)
	CloseReschedule(ctx context.Context, reference string, to domain.RescheduleStatus) error
	RecordShortfall(ctx context.Context, bookingID int64, ref domain.EntitlementRef) error
}

// Checkout подтверждение оплаченного бронирования
type Checkout interface {
	Confirm(ctx context.Context, bookingID int64, reference string, now time.Time) (*domain.Booking, bool, error)
}

// EntitlementConsumer списывает кредит, применённый к переносу
type EntitlementConsumer interface {
	Consume(ctx context.Context, ref *domain.EntitlementRef, userID, bookingID int64, now time.Time) error
}

// PaymentTracker маркеры обработанных callback'ов и ожидающие платежи
type PaymentTracker interface {
	IsProcessed(ctx context.Context, bookingID int64, reference string) (bool, error)
	Pending(ctx context.Context, bookingID int64) (*paymentstate.CarryOver, error)
	Complete(ctx context.Context, bookingID int64, reference string) error
	Discard(ctx context.Context, bookingID int64) error
}

// EventPublisher публикует события бронирования
type EventPublisher interface {
	PaymentFailed(ctx context.Context, bookingID int64, reference, gatewayStatus string) error
	BookingRescheduled(ctx context.Context, b *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики callback'ов
type Metrics interface {
	PaymentCallback(outcome string)
	BookingRescheduled()
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
