package checkout

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-SeatBooking/internal/service/paymentstate"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	NextPaymentAttempt(ctx context.Context, id int64) (int, error)
	SavePayment(ctx context.Context, booking *domain.Booking) error
	Confirm(ctx context.Context, id int64, reference string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
	RecordShortfall(ctx context.Context, bookingID int64, ref domain.EntitlementRef) error
}

// EntitlementConsumer списывает применённый entitlement
type EntitlementConsumer interface {
	Consume(ctx context.Context, ref *domain.EntitlementRef, userID, bookingID int64, now time.Time) error
}

// PaymentGateway платежный шлюз с редиректом
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, payment paymentgateway.PaymentRequest) (*paymentgateway.PaymentSession, error)
}

// PaymentTracker хранит данные ожидающих платежей
type PaymentTracker interface {
	Stash(ctx context.Context, c paymentstate.CarryOver) error
}

// EventPublisher публикует события бронирования
type EventPublisher interface {
	BookingConfirmed(ctx context.Context, b *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики подтверждений
type Metrics interface {
	BookingConfirmed()
	EntitlementShortfall(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
