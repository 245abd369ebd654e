package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/checkout"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SeatBooking/internal/service/seats"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SeatResolver интерфейс расчёта доступности мест
type SeatResolver interface {
	Resolve(ctx context.Context, req seats.ResolveRequest) (*domain.SeatSnapshot, error)
}

// EntitlementLoader загружает выбранный entitlement
type EntitlementLoader interface {
	Load(ctx context.Context, userID int64, sel *domain.Selection) (domain.Entitlement, error)
}

// Quoter интерфейс калькулятора котировок
type Quoter interface {
	Quote(ctx context.Context, in pricing.QuoteInput) (*pricing.QuoteResult, error)
}

// Checkout интерфейс отправки бронирования на оплату
type Checkout interface {
	Start(ctx context.Context, booking *domain.Booking, now time.Time) (*checkout.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MemberDirectory определяет тип участника, если клиент его не передал
type MemberDirectory interface {
	ResolveMemberType(ctx context.Context, userID int64) domain.MemberType
}

// ReferenceGenerator генерирует код бронирования
type ReferenceGenerator func() string

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
