package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SeatBooking/internal/service/checkout"
	"github.com/m04kA/SMC-SeatBooking/internal/service/entitlements"
	"github.com/m04kA/SMC-SeatBooking/internal/service/paymentstate"
)

const tracerName = "github.com/m04kA/SMC-SeatBooking/internal/usecase/confirm_payment"

// outcomeConfirmationError метка метрики: оплата прошла, подтверждение не сохранилось
const outcomeConfirmationError Outcome = "confirmation_error"

// UseCase обработка callback платежного шлюза
type UseCase struct {
	bookingRepo  BookingRepository
	checkout     Checkout
	entitlements EntitlementConsumer
	tracker      PaymentTracker
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	checkout Checkout,
	entitlements EntitlementConsumer,
	tracker PaymentTracker,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		checkout:     checkout,
		entitlements: entitlements,
		tracker:      tracker,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute обрабатывает callback. Повторный успешный callback с той же ссылкой
// не обращается к хранилищу бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ConfirmPayment")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.Int64("booking.id", req.BookingID),
		attribute.String("payment.reference", req.Reference),
		attribute.String("payment.gateway_status", req.Status),
	)

	uc.logger.Info("ConfirmPayment: booking=%d, ref=%s, status=%s", req.BookingID, req.Reference, req.Status)

	// 1. Валидация входных данных
	if req.BookingID <= 0 || req.Reference == "" {
		return nil, fmt.Errorf("%w: bookingId and reference are required", ErrInvalidInput)
	}

	outcome, ok := MapGatewayStatus(req.Status)
	if !ok {
		uc.logger.Warn("ConfirmPayment: unknown gateway status %q for booking=%d", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, req.Status)
	}
	span.SetAttributes(attribute.String("payment.outcome", string(outcome)))

	switch outcome {
	case OutcomePending:
		uc.count(OutcomePending)
		return &Response{BookingID: req.BookingID, Outcome: OutcomePending, Status: domain.StatusPaymentPending}, nil
	case OutcomeFailure:
		return uc.fail(ctx, req)
	default:
		return uc.succeed(ctx, req)
	}
}

func (uc *UseCase) succeed(ctx context.Context, req *Request) (*Response, error) {
	// 1. Повторный callback: маркер уже выставлен
	processed, err := uc.tracker.IsProcessed(ctx, req.BookingID, req.Reference)
	if err != nil {
		// подтверждение в хранилище идемпотентно, продолжаем без маркера
		uc.logger.Warn("ConfirmPayment: failed to check marker for booking=%d: %v", req.BookingID, err)
	}
	if processed {
		uc.logger.Info("ConfirmPayment: duplicate callback for booking=%d ref=%s", req.BookingID, req.Reference)
		uc.count(OutcomeDuplicate)
		return &Response{BookingID: req.BookingID, Outcome: OutcomeDuplicate, Status: domain.StatusConfirmed}, nil
	}

	// 2. Ссылка оплачивает перенос
	reschedule, err := uc.reschedule(ctx, req)
	if err != nil {
		return nil, err
	}
	if reschedule != nil {
		return uc.confirmReschedule(ctx, req, reschedule)
	}

	// 3. Подтверждаем бронирование
	now := uc.timeProvider.Now()
	current, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, uc.mapBookingError(req.BookingID, err)
	}
	if current.PaymentReference != nil && *current.PaymentReference != req.Reference {
		uc.logger.Warn("ConfirmPayment: reference %s does not match booking=%d", req.Reference, req.BookingID)
		return nil, ErrReferenceMismatch
	}

	confirmed, _, err := uc.checkout.Confirm(ctx, req.BookingID, req.Reference, now)
	if err != nil {
		if errors.Is(err, checkout.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.count(outcomeConfirmationError)
		return nil, fmt.Errorf("%w: %v", ErrConfirmation, err)
	}

	// 4. Маркер только после того, как хранилище подтвердило бронирование
	uc.markProcessed(ctx, req)
	uc.count(OutcomeSuccess)

	return &Response{BookingID: req.BookingID, Outcome: OutcomeSuccess, Status: confirmed.Status, Booking: confirmed}, nil
}

// confirmReschedule применяет оплаченный перенос, списывает кредит и закрывает запись переноса
// в одной транзакции. Уже применённый перенос повторно не применяется.
func (uc *UseCase) confirmReschedule(ctx context.Context, req *Request, pending *domain.PendingReschedule) (*Response, error) {
	switch pending.Status {
	case domain.RescheduleStatusApplied:
		uc.logger.Info("ConfirmPayment: reschedule ref=%s of booking=%d already applied", req.Reference, req.BookingID)
		uc.markProcessed(ctx, req)
		uc.count(OutcomeDuplicate)
		return &Response{BookingID: req.BookingID, Outcome: OutcomeDuplicate, Status: domain.StatusConfirmed}, nil
	case domain.RescheduleStatusFailed:
		uc.logger.Warn("ConfirmPayment: success for reschedule ref=%s of booking=%d reported after failure", req.Reference, req.BookingID)
		return nil, ErrRescheduleClosed
	}

	now := uc.timeProvider.Now()
	patch := pending.Patch

	var updated *domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.ApplyReschedule(txCtx, req.BookingID, patch)
		if err != nil {
			return err
		}
		updated = booking

		if err := uc.bookingRepo.CloseReschedule(txCtx, req.Reference, domain.RescheduleStatusApplied); err != nil {
			return err
		}

		if patch.CreditID == nil || patch.CreditAmount <= 0 {
			return nil
		}
		credit := domain.EntitlementRef{
			Kind:   domain.EntitlementStoreCredit,
			ID:     *patch.CreditID,
			Amount: patch.CreditAmount,
		}
		err = uc.entitlements.Consume(txCtx, &credit, booking.UserID, booking.ID, now)
		if errors.Is(err, entitlements.ErrExhausted) {
			// разница уже оплачена: перенос остаётся, недостача фиксируется
			uc.logger.Warn("ConfirmPayment: credit id=%d exhausted for reschedule of booking=%d, recording shortfall", credit.ID, booking.ID)
			return uc.bookingRepo.RecordShortfall(txCtx, booking.ID, credit)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to apply reschedule for booking=%d: %v", req.BookingID, err)
		uc.count(outcomeConfirmationError)
		return nil, fmt.Errorf("%w: %w", ErrConfirmation, err)
	}

	uc.markProcessed(ctx, req)
	uc.count(OutcomeSuccess)
	if uc.metrics != nil {
		uc.metrics.BookingRescheduled()
	}
	if err := uc.publisher.BookingRescheduled(ctx, updated); err != nil {
		uc.logger.Warn("ConfirmPayment: failed to publish reschedule of booking=%d: %v", req.BookingID, err)
	}

	uc.logger.Info("ConfirmPayment: booking=%d rescheduled to %s", req.BookingID, updated.Window)
	return &Response{BookingID: req.BookingID, Outcome: OutcomeSuccess, Status: updated.Status, Booking: updated}, nil
}

// fail меняет только статус; неуспешная оплата переноса оставляет бронирование как было
func (uc *UseCase) fail(ctx context.Context, req *Request) (*Response, error) {
	uc.count(OutcomeFailure)

	pending, err := uc.pending(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if pending != nil && pending.Reference == req.Reference {
		if err := uc.tracker.Discard(ctx, req.BookingID); err != nil {
			uc.logger.Warn("ConfirmPayment: failed to discard carry-over of booking=%d: %v", req.BookingID, err)
		}
	}

	reschedule, err := uc.reschedule(ctx, req)
	if err != nil {
		return nil, err
	}

	status := domain.StatusFailed
	if reschedule != nil {
		err := uc.bookingRepo.CloseReschedule(ctx, req.Reference, domain.RescheduleStatusFailed)
		if err != nil && !errors.Is(err, bookingRepo.ErrStatusMismatch) {
			return nil, uc.mapBookingError(req.BookingID, err)
		}
		status = domain.StatusConfirmed
	} else {
		err := uc.bookingRepo.UpdateStatus(ctx, req.BookingID, domain.StatusPaymentPending, domain.StatusFailed)
		if err != nil {
			if !errors.Is(err, bookingRepo.ErrStatusMismatch) {
				return nil, uc.mapBookingError(req.BookingID, err)
			}
			current, getErr := uc.bookingRepo.GetByID(ctx, req.BookingID)
			if getErr != nil {
				return nil, uc.mapBookingError(req.BookingID, getErr)
			}
			uc.logger.Warn("ConfirmPayment: failure callback for booking=%d in status %s ignored", req.BookingID, current.Status)
			status = current.Status
		}
	}

	if err := uc.publisher.PaymentFailed(ctx, req.BookingID, req.Reference, req.Status); err != nil {
		uc.logger.Warn("ConfirmPayment: failed to publish payment failure of booking=%d: %v", req.BookingID, err)
	}

	uc.logger.Info("ConfirmPayment: payment ref=%s for booking=%d failed with %s", req.Reference, req.BookingID, req.Status)
	return &Response{BookingID: req.BookingID, Outcome: OutcomeFailure, Status: status}, nil
}

// reschedule возвращает перенос, оплачиваемый ссылкой callback, или nil
func (uc *UseCase) reschedule(ctx context.Context, req *Request) (*domain.PendingReschedule, error) {
	pending, err := uc.bookingRepo.GetReschedule(ctx, req.Reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrRescheduleNotFound) {
			return nil, nil
		}
		uc.logger.Error("ConfirmPayment: failed to read reschedule ref=%s: %v", req.Reference, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if pending.BookingID != req.BookingID {
		uc.logger.Warn("ConfirmPayment: reschedule ref=%s belongs to booking=%d, not %d", req.Reference, pending.BookingID, req.BookingID)
		return nil, ErrReferenceMismatch
	}
	return pending, nil
}

func (uc *UseCase) markProcessed(ctx context.Context, req *Request) {
	if err := uc.tracker.Complete(ctx, req.BookingID, req.Reference); err != nil {
		uc.logger.Error("ConfirmPayment: failed to mark booking=%d ref=%s processed: %v", req.BookingID, req.Reference, err)
	}
}

func (uc *UseCase) pending(ctx context.Context, bookingID int64) (*paymentstate.CarryOver, error) {
	pending, err := uc.tracker.Pending(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentstate.ErrCarryOverNotFound) {
			return nil, nil
		}
		uc.logger.Error("ConfirmPayment: failed to read carry-over of booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return pending, nil
}

func (uc *UseCase) mapBookingError(bookingID int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Warn("ConfirmPayment: booking id=%d not found", bookingID)
		return ErrBookingNotFound
	}
	uc.logger.Error("ConfirmPayment: repository error for booking id=%d: %v", bookingID, err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

func (uc *UseCase) count(outcome Outcome) {
	if uc.metrics != nil {
		uc.metrics.PaymentCallback(string(outcome))
	}
}
