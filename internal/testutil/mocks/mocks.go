// Package mocks содержит testify-моки зависимостей use case'ов и сервисов.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-SeatBooking/internal/service/checkout"
	"github.com/m04kA/SMC-SeatBooking/internal/service/paymentstate"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SeatBooking/internal/service/ratecard"
	"github.com/m04kA/SMC-SeatBooking/internal/service/seats"
)

// BookingRepository мок хранилища бронирований
type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *BookingRepository) GetBookedSeats(ctx context.Context, locationID int64, window domain.TimeWindow, excludeBookingID *int64) ([]domain.SeatHold, error) {
	args := m.Called(ctx, locationID, window, excludeBookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatHold), args.Error(1)
}

func (m *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *BookingRepository) Reopen(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *BookingRepository) NextPaymentAttempt(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *BookingRepository) SavePayment(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *BookingRepository) Confirm(ctx context.Context, id int64, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, id, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) ApplyReschedule(ctx context.Context, id int64, patch domain.ReschedulePatch) (*domain.Booking, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) HasPendingReschedule(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *BookingRepository) SaveReschedule(ctx context.Context, pending domain.PendingReschedule) error {
	return m.Called(ctx, pending).Error(0)
}

func (m *BookingRepository) GetReschedule(ctx context.Context, reference string) (*domain.PendingReschedule, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingReschedule), args.Error(1)
}

func (m *BookingRepository) CloseReschedule(ctx context.Context, reference string, to domain.RescheduleStatus) error {
	return m.Called(ctx, reference, to).Error(0)
}

func (m *BookingRepository) RecordShortfall(ctx context.Context, bookingID int64, ref domain.EntitlementRef) error {
	return m.Called(ctx, bookingID, ref).Error(0)
}

// Entitlements мок сервиса entitlement'ов
type Entitlements struct {
	mock.Mock
}

func (m *Entitlements) Load(ctx context.Context, userID int64, sel *domain.Selection) (domain.Entitlement, error) {
	args := m.Called(ctx, userID, sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Entitlement), args.Error(1)
}

func (m *Entitlements) Consume(ctx context.Context, ref *domain.EntitlementRef, userID, bookingID int64, now time.Time) error {
	return m.Called(ctx, ref, userID, bookingID, now).Error(0)
}

// EntitlementProvider мок провайдеров entitlement'ов пользователя
type EntitlementProvider struct {
	mock.Mock
}

func (m *EntitlementProvider) GetUserPackages(ctx context.Context, userID int64) ([]domain.PackagePass, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PackagePass), args.Error(1)
}

func (m *EntitlementProvider) GetUserAvailablePromoCodes(ctx context.Context, userID int64, now time.Time) ([]domain.PromoCode, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PromoCode), args.Error(1)
}

func (m *EntitlementProvider) GetUserCredits(ctx context.Context, userID int64) ([]domain.StoreCredit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoreCredit), args.Error(1)
}

// MemberDirectory мок справочника участников
type MemberDirectory struct {
	mock.Mock
}

func (m *MemberDirectory) ResolveMemberType(ctx context.Context, userID int64) domain.MemberType {
	return m.Called(ctx, userID).Get(0).(domain.MemberType)
}

// SeatResolver мок резолвера мест
type SeatResolver struct {
	mock.Mock
}

func (m *SeatResolver) Resolve(ctx context.Context, req seats.ResolveRequest) (*domain.SeatSnapshot, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatSnapshot), args.Error(1)
}

// Quoter мок калькулятора котировок
type Quoter struct {
	mock.Mock
}

func (m *Quoter) Quote(ctx context.Context, in pricing.QuoteInput) (*pricing.QuoteResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.QuoteResult), args.Error(1)
}

// RateProvider мок источника тарифов
type RateProvider struct {
	mock.Mock
}

func (m *RateProvider) Snapshot(ctx context.Context) (ratecard.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(ratecard.Snapshot), args.Error(1)
}

// PaymentGateway мок платежного шлюза
type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) InitiatePayment(ctx context.Context, payment paymentgateway.PaymentRequest) (*paymentgateway.PaymentSession, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentgateway.PaymentSession), args.Error(1)
}

// PaymentTracker мок трекера платежей
type PaymentTracker struct {
	mock.Mock
}

func (m *PaymentTracker) IsProcessed(ctx context.Context, bookingID int64, reference string) (bool, error) {
	args := m.Called(ctx, bookingID, reference)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentTracker) Stash(ctx context.Context, c paymentstate.CarryOver) error {
	return m.Called(ctx, c).Error(0)
}

func (m *PaymentTracker) Pending(ctx context.Context, bookingID int64) (*paymentstate.CarryOver, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentstate.CarryOver), args.Error(1)
}

func (m *PaymentTracker) Complete(ctx context.Context, bookingID int64, reference string) error {
	return m.Called(ctx, bookingID, reference).Error(0)
}

func (m *PaymentTracker) Discard(ctx context.Context, bookingID int64) error {
	return m.Called(ctx, bookingID).Error(0)
}

// EventPublisher мок публикатора событий
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) BookingConfirmed(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *EventPublisher) PaymentFailed(ctx context.Context, bookingID int64, reference, gatewayStatus string) error {
	return m.Called(ctx, bookingID, reference, gatewayStatus).Error(0)
}

func (m *EventPublisher) BookingRescheduled(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

// Checkout мок сервиса оплаты
type Checkout struct {
	mock.Mock
}

func (m *Checkout) Start(ctx context.Context, booking *domain.Booking, now time.Time) (*checkout.Result, error) {
	args := m.Called(ctx, booking, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Result), args.Error(1)
}

func (m *Checkout) Confirm(ctx context.Context, bookingID int64, reference string, now time.Time) (*domain.Booking, bool, error) {
	args := m.Called(ctx, bookingID, reference, now)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Booking), args.Bool(1), args.Error(2)
}

// TxManager выполняет функцию без транзакции и считает вызовы
type TxManager struct {
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// Clock фиксированное время
type Clock struct {
	T time.Time
}

func (c Clock) Now() time.Time {
	return c.T
}

// Logger логгер, который ничего не пишет
type Logger struct{}

func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}
