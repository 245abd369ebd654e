package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SeatBooking/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-SeatBooking/internal/service/entitlements"
	"github.com/m04kA/SMC-SeatBooking/internal/service/paymentstate"
	"github.com/m04kA/SMC-SeatBooking/pkg/ptr"
)

// FreeReferencePrefix префикс ссылки платежа для бронирований с нулевой суммой
const FreeReferencePrefix = "free-"

// Result итог отправки бронирования на оплату
type Result struct {
	Booking     *domain.Booking
	RedirectURL string // пусто, если оплата не нужна
	Confirmed   bool
}

// Service переводит бронирование в оплату и подтверждает оплаченные бронирования
type Service struct {
	bookingRepo  BookingRepository
	entitlements EntitlementConsumer
	gateway      PaymentGateway
	tracker      PaymentTracker
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
}

// NewService создает сервис оплаты
func NewService(
	bookingRepo BookingRepository,
	entitlements EntitlementConsumer,
	gateway PaymentGateway,
	tracker PaymentTracker,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		entitlements: entitlements,
		gateway:      gateway,
		tracker:      tracker,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Start отправляет сохранённое бронирование с рассчитанной котировкой на оплату.
// Бесплатное бронирование подтверждается сразу, без обращения к шлюзу.
func (s *Service) Start(ctx context.Context, booking *domain.Booking, now time.Time) (*Result, error) {
	if err := booking.TransitionTo(domain.StatusPaymentPending); err != nil && booking.Status != domain.StatusPaymentPending {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	if booking.TotalAmount <= 0 {
		return s.confirmFree(ctx, booking, now)
	}

	// 1. Создаём платежную сессию под новым номером попытки
	attempt, err := s.bookingRepo.NextPaymentAttempt(ctx, booking.ID)
	if err != nil {
		s.logger.Error("Checkout: failed to allocate payment attempt for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: NextPaymentAttempt - %v", ErrInternal, err)
	}
	booking.PaymentAttempts = attempt

	session, err := s.gateway.InitiatePayment(ctx, paymentgateway.PaymentRequest{
		BookingID:   booking.ID,
		Reference:   booking.ReferenceCode,
		Attempt:     attempt,
		Amount:      booking.TotalAmount,
		Method:      string(booking.PaymentMethod),
		Description: fmt.Sprintf("Seat booking %s", booking.ReferenceCode),
	})
	if err != nil {
		s.logger.Error("Checkout: failed to initiate payment for booking id=%d: %v", booking.ID, err)
		s.markFailed(ctx, booking.ID)
		if errors.Is(err, paymentgateway.ErrRejected) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentRejected, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	// 2. Сохраняем котировку и ссылку платежа
	booking.PaymentReference = ptr.Ptr(session.Reference)
	if err := s.bookingRepo.SavePayment(ctx, booking); err != nil {
		s.logger.Error("Checkout: failed to save payment for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: SavePayment - %v", ErrInternal, err)
	}

	// 3. Запоминаем ожидающий платёж для callback
	err = s.tracker.Stash(ctx, paymentstate.CarryOver{
		BookingID: booking.ID,
		Reference: session.Reference,
		Purpose:   paymentstate.PurposeBooking,
		CreatedAt: now,
	})
	if err != nil {
		// подтверждение бронирования читает всё нужное из хранилища
		s.logger.Warn("Checkout: failed to stash payment for booking id=%d: %v", booking.ID, err)
	}

	s.logger.Info("Checkout: booking id=%d awaits payment ref=%s", booking.ID, session.Reference)
	return &Result{Booking: booking, RedirectURL: session.RedirectURL}, nil
}

// Confirm подтверждает бронирование и списывает entitlement в одной транзакции.
// Повторное подтверждение возвращает бронирование без изменений и без списания.
func (s *Service) Confirm(ctx context.Context, bookingID int64, reference string, now time.Time) (*domain.Booking, bool, error) {
	var (
		confirmed *domain.Booking
		already   bool
		shortfall *domain.EntitlementRef
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}
		if current.Status == domain.StatusConfirmed {
			confirmed, already = current, true
			return nil
		}

		confirmed, err = s.bookingRepo.Confirm(txCtx, bookingID, reference)
		if err != nil {
			return err
		}
		err = s.entitlements.Consume(txCtx, confirmed.Entitlement, confirmed.UserID, confirmed.ID, now)
		if errors.Is(err, entitlements.ErrExhausted) && !strings.HasPrefix(reference, FreeReferencePrefix) {
			// деньги уже получены: бронирование подтверждается, недостача фиксируется
			s.logger.Warn("Checkout: entitlement %s id=%d exhausted for paid booking id=%d, recording shortfall",
				confirmed.Entitlement.Kind, confirmed.Entitlement.ID, bookingID)
			shortfall = confirmed.Entitlement
			return s.bookingRepo.RecordShortfall(txCtx, bookingID, *confirmed.Entitlement)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, false, ErrBookingNotFound
		}
		s.logger.Error("Checkout: failed to confirm booking id=%d ref=%s: %v", bookingID, reference, err)
		return nil, false, fmt.Errorf("%w: %w", ErrConfirmation, err)
	}

	if already {
		s.logger.Info("Checkout: booking id=%d is already confirmed", bookingID)
		return confirmed, true, nil
	}

	if s.metrics != nil {
		s.metrics.BookingConfirmed()
		if shortfall != nil {
			s.metrics.EntitlementShortfall(string(shortfall.Kind))
		}
	}
	if err := s.publisher.BookingConfirmed(ctx, confirmed); err != nil {
		s.logger.Warn("Checkout: failed to publish confirmation of booking id=%d: %v", bookingID, err)
	}

	s.logger.Info("Checkout: booking id=%d confirmed with ref=%s", bookingID, reference)
	return confirmed, false, nil
}

func (s *Service) confirmFree(ctx context.Context, booking *domain.Booking, now time.Time) (*Result, error) {
	reference := FreeReferencePrefix + booking.ReferenceCode
	booking.PaymentReference = ptr.Ptr(reference)

	if err := s.bookingRepo.SavePayment(ctx, booking); err != nil {
		s.logger.Error("Checkout: failed to save free booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: SavePayment - %v", ErrInternal, err)
	}

	confirmed, _, err := s.Confirm(ctx, booking.ID, reference, now)
	if err != nil {
		return nil, err
	}

	return &Result{Booking: confirmed, Confirmed: true}, nil
}

// markFailed переводит бронирование в failed, чтобы оплату можно было повторить
func (s *Service) markFailed(ctx context.Context, bookingID int64) {
	err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusPaymentPending, domain.StatusFailed)
	if err != nil && !errors.Is(err, bookingRepo.ErrStatusMismatch) {
		s.logger.Warn("Checkout: failed to mark booking id=%d as failed: %v", bookingID, err)
	}
}
