package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SeatBooking/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-SeatBooking/internal/service/discount"
	"github.com/m04kA/SMC-SeatBooking/internal/service/paymentstate"
	"github.com/m04kA/SMC-SeatBooking/internal/service/ratecard"
	"github.com/m04kA/SMC-SeatBooking/internal/service/seats"
	"github.com/m04kA/SMC-SeatBooking/pkg/money"
	"github.com/m04kA/SMC-SeatBooking/pkg/txmanager"
)

const tracerName = "github.com/m04kA/SMC-SeatBooking/internal/usecase/reschedule_booking"

// UseCase перенос подтверждённого бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	seatResolver SeatResolver
	rates        RateProvider
	entitlements Entitlements
	discount     DiscountEngine
	gateway      PaymentGateway
	tracker      PaymentTracker
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      Metrics
	rules        domain.WindowRules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	seatResolver SeatResolver,
	rates RateProvider,
	entitlements Entitlements,
	engine DiscountEngine,
	gateway PaymentGateway,
	tracker PaymentTracker,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	rules domain.WindowRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		seatResolver: seatResolver,
		rates:        rates,
		entitlements: entitlements,
		discount:     engine,
		gateway:      gateway,
		tracker:      tracker,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		rules:        rules,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит бронирование. Если перенос дороже исходного бронирования,
// изменения применяются только после успешной оплаты разницы.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "RescheduleBooking")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int64("booking.id", req.BookingID))

	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, window=%s", req.BookingID, req.UserID, req.Window)

	// 1. Валидация входных данных
	if req.BookingID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: bookingId and userId must be positive", ErrInvalidInput)
	}
	if req.PaymentMethod != "" && !req.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
	if req.Credit != nil && req.Credit.Kind != domain.EntitlementStoreCredit {
		return nil, ErrOnlyStoreCredit
	}

	now := uc.timeProvider.Now()

	// 2. Бронирование и право на перенос
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if booking.UserID != req.UserID {
		uc.logger.Warn("RescheduleBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}
	if !booking.CanReschedule() {
		uc.logger.Warn("RescheduleBooking: booking id=%d status=%s count=%d", booking.ID, booking.Status, booking.RescheduleCount)
		return nil, ErrRescheduleNotAllowed
	}
	inFlight, err := uc.bookingRepo.HasPendingReschedule(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to check pending reschedule of booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to check pending reschedule: %v", ErrInternal, err)
	}
	if inFlight {
		uc.logger.Warn("RescheduleBooking: booking id=%d already awaits payment of a reschedule", booking.ID)
		return nil, ErrReschedulePending
	}

	// 3. Правила длительности
	if err := uc.rules.Validate(req.Window, now); err != nil {
		return nil, err
	}
	if err := validateDelta(booking.Window, req.Window); err != nil {
		uc.logger.Warn("RescheduleBooking: booking id=%d: %v", booking.ID, err)
		return nil, err
	}

	// 4. Места в новом окне без учёта самого бронирования
	seatIDs, err := uc.selectSeats(ctx, booking, req)
	if err != nil {
		return nil, err
	}

	// 5. Разница в стоимости
	snapshot, err := uc.rates.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to load rates: %v", err)
		return nil, fmt.Errorf("%w: failed to load rates: %v", ErrInternal, err)
	}
	costDiff, err := CostDifference(snapshot.Table, booking.Party, booking.Window.Hours(), req.Window.Hours())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 6. Кредит - единственный entitlement для переноса
	creditApplied, creditID, err := uc.applyCredit(ctx, req, costDiff, now)
	if err != nil {
		return nil, err
	}
	amountDue := money.Round2(money.NonNegative(costDiff - creditApplied))

	patch := domain.ReschedulePatch{
		Window:         req.Window,
		SeatIDs:        seatIDs,
		RescheduleCost: money.Round2(money.NonNegative(costDiff)),
		CreditAmount:   money.Round2(creditApplied),
		CreditID:       creditID,
	}
	span.SetAttributes(attribute.Float64("reschedule.amount_due", amountDue))

	resp = &Response{
		CostDifference: patch.RescheduleCost,
		CreditApplied:  patch.CreditAmount,
		AmountDue:      amountDue,
	}

	// 7. Доплата не нужна - применяем сразу
	if amountDue <= 0 {
		updated, err := uc.apply(ctx, booking, patch, now)
		if err != nil {
			return nil, err
		}
		resp.Booking = updated
		return resp, nil
	}

	// 8. Доплата через шлюз; перенос применит callback
	if req.PaymentMethod == "" {
		return nil, ErrPaymentMethodRequired
	}
	attempt, err := uc.bookingRepo.NextPaymentAttempt(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to allocate payment attempt for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: NextPaymentAttempt - %v", ErrInternal, err)
	}
	session, err := uc.gateway.InitiatePayment(ctx, paymentgateway.PaymentRequest{
		BookingID:   booking.ID,
		Reference:   fmt.Sprintf("%s-R%d", booking.ReferenceCode, booking.RescheduleCount+1),
		Attempt:     attempt,
		Amount:      amountDue,
		Method:      string(req.PaymentMethod),
		Description: fmt.Sprintf("Reschedule of booking %s", booking.ReferenceCode),
	})
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to initiate payment for booking id=%d: %v", booking.ID, err)
		if errors.Is(err, paymentgateway.ErrRejected) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentRejected, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	// 9. Перенос хранится в базе до callback; без записи редирект не отдаём
	err = uc.bookingRepo.SaveReschedule(ctx, domain.PendingReschedule{
		Reference: session.Reference,
		BookingID: booking.ID,
		Patch:     patch,
		Status:    domain.RescheduleStatusPending,
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrReschedulePending) {
			uc.logger.Warn("RescheduleBooking: concurrent reschedule of booking id=%d", booking.ID)
			return nil, ErrReschedulePending
		}
		uc.logger.Error("RescheduleBooking: failed to save reschedule of booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to save reschedule: %v", ErrInternal, err)
	}

	err = uc.tracker.Stash(ctx, paymentstate.CarryOver{
		BookingID:    booking.ID,
		Reference:    session.Reference,
		Purpose:      paymentstate.PurposeReschedule,
		CreditID:     creditID,
		CreditAmount: patch.CreditAmount,
		CreatedAt:    now,
	})
	if err != nil {
		uc.logger.Warn("RescheduleBooking: failed to stash reschedule of booking id=%d: %v", booking.ID, err)
	}

	uc.logger.Info("RescheduleBooking: booking id=%d awaits payment %.2f ref=%s", booking.ID, amountDue, session.Reference)

	resp.Booking = booking
	resp.PaymentRequired = true
	resp.RedirectURL = session.RedirectURL
	resp.PaymentReference = session.Reference
	return resp, nil
}

// validateDelta: уменьшение запрещено, увеличение - только на час и больше
func validateDelta(original, requested domain.TimeWindow) error {
	delta := requested.Duration() - original.Duration()
	switch {
	case delta < 0:
		return ErrDurationDecrease
	case delta > 0 && delta < domain.MinRescheduleIncrease:
		return fmt.Errorf("%w: +%s", ErrIncreaseTooSmall, delta)
	default:
		return nil
	}
}

// CostDifference стоимость переноса: часы нового и исходного окна по одной ставке,
// найденной для новой длительности, с суммой по ролям группы
func CostDifference(table *ratecard.Table, party domain.Party, originalHours, newHours float64) (float64, error) {
	var perHour float64
	for _, memberType := range domain.MemberTypes {
		count := party.Count(memberType)
		if count == 0 {
			continue
		}
		rate, err := table.Rate(memberType, newHours)
		if err != nil {
			return 0, err
		}
		perHour += float64(count) * rate
	}
	return newHours*perHour - originalHours*perHour, nil
}

func (uc *UseCase) selectSeats(ctx context.Context, booking *domain.Booking, req *Request) ([]string, error) {
	snapshot, err := uc.seatResolver.Resolve(ctx, seats.ResolveRequest{
		LocationID:       booking.LocationID,
		Window:           req.Window,
		ExcludeBookingID: &booking.ID,
		OwnSeats:         booking.SeatIDs,
		PartySize:        booking.Party.Total(),
	})
	if err != nil {
		if errors.Is(err, seats.ErrInsufficientCapacity) {
			uc.logger.Warn("RescheduleBooking: %v", err)
			return nil, err
		}
		uc.logger.Error("RescheduleBooking: failed to resolve seats: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve seats: %v", ErrInternal, err)
	}

	if len(req.SeatIDs) == 0 {
		if snapshot.RequiresReselection() {
			return nil, fmt.Errorf("%w: %v", ErrSeatsReselectRequired, snapshot.ConflictingOwn)
		}
		return booking.SeatIDs, nil
	}

	if err := domain.ValidateSeats(req.SeatIDs, booking.Party); err != nil {
		return nil, err
	}
	if err := seats.CheckSelection(snapshot, req.SeatIDs); err != nil {
		return nil, err
	}
	return req.SeatIDs, nil
}

func (uc *UseCase) applyCredit(ctx context.Context, req *Request, costDiff float64, now time.Time) (float64, *int64, error) {
	if req.Credit == nil || costDiff <= 0 {
		return 0, nil, nil
	}

	ent, err := uc.entitlements.Load(ctx, req.UserID, req.Credit)
	if err != nil {
		return 0, nil, err
	}

	result, err := uc.discount.Compute(costDiff, ent, discount.Context{Now: now})
	if err != nil {
		uc.logger.Warn("RescheduleBooking: credit id=%d rejected: %v", req.Credit.ID, err)
		return 0, nil, err
	}

	id := ent.EntitlementID()
	return result.DiscountAmount, &id, nil
}

func (uc *UseCase) apply(ctx context.Context, booking *domain.Booking, patch domain.ReschedulePatch, now time.Time) (*domain.Booking, error) {
	var updated *domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = uc.bookingRepo.ApplyReschedule(txCtx, booking.ID, patch)
		if err != nil {
			return err
		}
		if patch.CreditID == nil || patch.CreditAmount <= 0 {
			return nil
		}
		return uc.entitlements.Consume(txCtx, &domain.EntitlementRef{
			Kind:   domain.EntitlementStoreCredit,
			ID:     *patch.CreditID,
			Amount: patch.CreditAmount,
		}, booking.UserID, booking.ID, now)
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSeatConflict) || txmanager.IsSerializationFailure(err):
			return nil, fmt.Errorf("%w: %v", ErrSeatConflict, err)
		case errors.Is(err, bookingRepo.ErrRescheduleNotAllowed):
			return nil, ErrRescheduleNotAllowed
		case errors.Is(err, domain.ErrEligibility):
			return nil, err
		default:
			uc.logger.Error("RescheduleBooking: failed to apply reschedule of booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: failed to apply reschedule: %v", ErrInternal, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.BookingRescheduled()
	}
	if err := uc.publisher.BookingRescheduled(ctx, updated); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish reschedule of booking id=%d: %v", booking.ID, err)
	}

	uc.logger.Info("RescheduleBooking: booking id=%d rescheduled to %s", booking.ID, updated.Window)
	return updated, nil
}
