package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/lithammer/shortuuid/v3"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SeatBooking/internal/service/seats"
	"github.com/m04kA/SMC-SeatBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования и перевода его в оплату
type UseCase struct {
	bookingRepo  BookingRepository
	seatResolver SeatResolver
	entitlements EntitlementLoader
	members      MemberDirectory
	quoter       Quoter
	checkout     Checkout
	txManager    TransactionManager
	rules        domain.WindowRules
	newReference ReferenceGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	seatResolver SeatResolver,
	entitlements EntitlementLoader,
	members MemberDirectory,
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
		members:      members,
		quoter:       quoter,
		checkout:     checkout,
		txManager:    txManager,
		rules:        rules,
		newReference: shortuuid.New,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Места проверяются по снимку, но окончательно конфликт решает хранилище в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, location=%d, window=%s, party=%d, seats=%v",
		req.UserID, req.LocationID, req.Window, req.Party.Total(), req.SeatIDs)

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.rules, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	memberType := req.MemberType
	if memberType == "" {
		memberType = uc.members.ResolveMemberType(ctx, req.UserID)
	}

	// 2. Загружаем выбранный entitlement
	entitlement, err := uc.entitlements.Load(ctx, req.UserID, req.Entitlement)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to load entitlement for user=%d: %v", req.UserID, err)
		return nil, err
	}

	// 3. Проверяем свободные места
	snapshot, err := uc.seatResolver.Resolve(ctx, seats.ResolveRequest{
		LocationID: req.LocationID,
		Window:     req.Window,
		PartySize:  req.Party.Total(),
	})
	if err != nil {
		return nil, uc.mapSeatsError(req.LocationID, err)
	}
	if err := seats.CheckSelection(snapshot, req.SeatIDs); err != nil {
		uc.logger.Warn("CreateBooking: seat selection rejected: %v", err)
		return nil, err
	}

	// 4. Считаем котировку; entitlement проверяется повторно на момент отправки
	quote, err := uc.quoter.Quote(ctx, pricing.QuoteInput{
		Now:           now,
		MemberType:    memberType,
		Window:        req.Window,
		Party:         req.Party,
		Entitlement:   entitlement,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to quote: %v", err)
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to quote: %v", ErrInternal, err)
	}
	if quote.Cleared {
		uc.logger.Warn("CreateBooking: entitlement cleared at submit for user=%d: %s", req.UserID, quote.Notice)
		return nil, fmt.Errorf("%w: %s", ErrEntitlementNotEligible, quote.Notice)
	}
	if !quote.Quote.IsFree() && req.PaymentMethod == "" {
		return nil, ErrPaymentMethodRequired
	}

	booking := &domain.Booking{
		ReferenceCode: uc.newReference(),
		UserID:        req.UserID,
		MemberType:    memberType,
		LocationID:    req.LocationID,
		Window:        req.Window,
		Party:         req.Party,
		SeatIDs:       req.SeatIDs,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.StatusDraft,
		Entitlement:   quote.EntitlementRef,
	}
	booking.ApplyQuote(quote.Quote)
	if err := booking.TransitionTo(domain.StatusPaymentPending); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Создаём бронирование; хранилище отклоняет занятые места
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}
		booking = created
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSeatConflict) || txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: seats %v in %s were taken concurrently", req.SeatIDs, req.Window)
			return nil, fmt.Errorf("%w: %v", ErrSeatConflict, err)
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: booking id=%d ref=%s created, total=%.2f", booking.ID, booking.ReferenceCode, booking.TotalAmount)

	// 6. Оплата или мгновенное подтверждение бесплатного бронирования
	result, err := uc.checkout.Start(ctx, booking, now)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to start payment for booking id=%d: %v", booking.ID, err)
		return nil, err
	}

	return newResponse(result.Booking, result.RedirectURL), nil
}

func (uc *UseCase) mapSeatsError(locationID int64, err error) error {
	switch {
	case errors.Is(err, seats.ErrLocationNotFound):
		uc.logger.Warn("CreateBooking: location id=%d not found", locationID)
		return ErrLocationNotFound
	case errors.Is(err, seats.ErrInsufficientCapacity):
		uc.logger.Warn("CreateBooking: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: failed to resolve seats: %v", err)
		return fmt.Errorf("%w: failed to resolve seats: %v", ErrInternal, err)
	}
}
