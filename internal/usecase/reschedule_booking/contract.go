package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-SeatBooking/internal/service/discount"
	"github.com/m04kA/SMC-SeatBooking/internal/service/paymentstate"
	"github.com/m04kA/SMC-SeatBooking/internal/service/ratecard"
	"github.com/m04kA/SMC-SeatBooking/internal/service/seats"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ApplyReschedule(ctx context.Context, id int64, patch domain.ReschedulePatch) (*domain.Booking, error)
	HasPendingReschedule(ctx context.Context, bookingID int64) (bool, error)
	NextPaymentAttempt(ctx context.Context, id int64) (int, error)
	SaveReschedule(ctx context.Context, pending domain.PendingReschedule) error
}

// SeatResolver интерфейс расчёта доступности мест
type SeatResolver interface {
	Resolve(ctx context.Context, req seats.ResolveRequest) (*domain.SeatSnapshot, error)
}

// RateProvider источник актуальных тарифов
type RateProvider interface {
	Snapshot(ctx context.Context) (ratecard.Snapshot, error)
}

// Entitlements загрузка и списание кредита
type Entitlements interface {
	Load(ctx context.Context, userID int64, sel *domain.Selection) (domain.Entitlement, error)
	Consume(ctx context.Context, ref *domain.EntitlementRef, userID, bookingID int64, now time.Time) error
}

// DiscountEngine расчёт применимой суммы кредита
type DiscountEngine interface {
	Compute(base float64, ent domain.Entitlement, c discount.Context) (discount.Result, error)
}

// PaymentGateway платежный шлюз с редиректом
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, payment paymentgateway.PaymentRequest) (*paymentgateway.PaymentSession, error)
}

// PaymentTracker хранит перенос до callback шлюза
type PaymentTracker interface {
	Stash(ctx context.Context, c paymentstate.CarryOver) error
}

// EventPublisher публикует события бронирования
type EventPublisher interface {
	BookingRescheduled(ctx context.Context, b *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчик переносов
type Metrics interface {
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
