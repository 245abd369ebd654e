package retry_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SeatBooking/internal/service/seats"
	"github.com/m04kA/SMC-SeatBooking/pkg/txmanager"
)

// UseCase use case повторной отправки неоплаченного бронирования на оплату
type UseCase struct {
	bookingRepo  BookingRepository
	seatResolver SeatResolver
	entitlements EntitlementLoader
	quoter       Quoter
	checkout     Checkout
	txManager    TransactionManager
	rules        domain.WindowRules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	seatResolver SeatResolver,
	entitlements EntitlementLoader,
	quoter Quoter,
	checkout Checkout,
	txManager TransactionManager,
	rules domain.WindowRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		seatResolver: seatResolver,
		entitlements: entitlements,
		quoter:       quoter,
		checkout:     checkout,
		txManager:    txManager,
		rules:        rules,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute пересчитывает котировку бронирования со статусом failed и снова отправляет его на оплату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RetryPayment: booking=%d, user=%d", req.BookingID, req.UserID)

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.PaymentMethod != "" && !req.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	// 2. Бронирование и права доступа
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RetryPayment: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if booking.UserID != req.UserID {
		uc.logger.Warn("RetryPayment: user=%d tried to pay booking id=%d of user=%d", req.UserID, booking.ID, booking.UserID)
		return nil, ErrAccessDenied
	}
	if booking.Status != domain.StatusFailed {
		return nil, fmt.Errorf("%w: status is %s", ErrNotRetryable, booking.Status)
	}
	if req.PaymentMethod != "" {
		booking.PaymentMethod = req.PaymentMethod
	}

	// 3. Окно ещё не началось, а места не заняты другими бронированиями
	if err := uc.rules.Validate(booking.Window, now); err != nil {
		uc.logger.Warn("RetryPayment: window of booking id=%d is no longer bookable: %v", booking.ID, err)
		return nil, err
	}
	if err := uc.checkSeats(ctx, booking); err != nil {
		return nil, err
	}

	// 4. Entitlement перечитывается: он мог быть израсходован в другом бронировании
	entitlement, err := uc.entitlements.Load(ctx, booking.UserID, selectionOf(booking.Entitlement))
	if err != nil {
		uc.logger.Warn("RetryPayment: entitlement of booking id=%d is unavailable: %v", booking.ID, err)
		return nil, err
	}

	// 5. Новая котировка
	quote, err := uc.quoter.Quote(ctx, pricing.QuoteInput{
		Now:           now,
		MemberType:    booking.MemberType,
		Window:        booking.Window,
		Party:         booking.Party,
		Entitlement:   entitlement,
		PaymentMethod: booking.PaymentMethod,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		uc.logger.Error("RetryPayment: failed to quote booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to quote: %v", ErrInternal, err)
	}
	if quote.Cleared {
		return nil, fmt.Errorf("%w: %s", ErrEntitlementNotEligible, quote.Notice)
	}

	booking.ApplyQuote(quote.Quote)
	booking.Entitlement = quote.EntitlementRef
	booking.PaymentReference = nil

	// 6. Возвращаем бронирование в payment_pending; хранилище отклоняет занятые места
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return uc.bookingRepo.Reopen(txCtx, booking.ID)
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSeatConflict) || txmanager.IsSerializationFailure(err):
			uc.logger.Warn("RetryPayment: seats %v of booking id=%d were taken concurrently", booking.SeatIDs, booking.ID)
			return nil, fmt.Errorf("%w: %v", ErrSeatConflict, err)
		case errors.Is(err, bookingRepo.ErrStatusMismatch):
			return nil, fmt.Errorf("%w: %v", ErrNotRetryable, err)
		default:
			uc.logger.Error("RetryPayment: failed to reopen booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: failed to reopen booking: %v", ErrInternal, err)
		}
	}
	booking.Status = domain.StatusPaymentPending

	// 7. Оплата
	result, err := uc.checkout.Start(ctx, booking, now)
	if err != nil {
		uc.logger.Error("RetryPayment: failed to start payment for booking id=%d: %v", booking.ID, err)
		return nil, err
	}

	return &Response{
		Booking:     result.Booking,
		RedirectURL: result.RedirectURL,
		Confirmed:   result.Confirmed,
	}, nil
}

func (uc *UseCase) checkSeats(ctx context.Context, booking *domain.Booking) error {
	snapshot, err := uc.seatResolver.Resolve(ctx, seats.ResolveRequest{
		LocationID:       booking.LocationID,
		Window:           booking.Window,
		ExcludeBookingID: &booking.ID,
		OwnSeats:         booking.SeatIDs,
	})
	if err != nil {
		if errors.Is(err, seats.ErrLocationNotFound) {
			return ErrLocationNotFound
		}
		uc.logger.Error("RetryPayment: failed to resolve seats of booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to resolve seats: %v", ErrInternal, err)
	}
	if err := seats.CheckSelection(snapshot, booking.SeatIDs); err != nil {
		uc.logger.Warn("RetryPayment: seats of booking id=%d are no longer free: %v", booking.ID, err)
		return fmt.Errorf("%w: %w", ErrSeatConflict, err)
	}
	return nil
}

// selectionOf восстанавливает выбор пользователя по сохранённому entitlement
func selectionOf(ref *domain.EntitlementRef) *domain.Selection {
	if ref == nil {
		return nil
	}
	sel := &domain.Selection{Kind: ref.Kind, ID: ref.ID}
	if ref.Kind == domain.EntitlementStoreCredit {
		sel.CreditAmount = ref.Amount
	}
	return sel
}
