package paymentstate

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Tracker отслеживает обработанные callback'и шлюза и ожидающие платежи.
// Маркер (bookingID, reference) истекает по TTL; carry-over удаляется после подтверждения.
type Tracker struct {
	store        Store
	markerTTL    time.Duration
	carryOverTTL time.Duration
	logger       Logger
}

// NewTracker создает трекер идемпотентности
func NewTracker(store Store, markerTTL, carryOverTTL time.Duration, logger Logger) *Tracker {
	return &Tracker{
		store:        store,
		markerTTL:    markerTTL,
		carryOverTTL: carryOverTTL,
		logger:       logger,
	}
}

// MarkerKey возвращает ключ маркера для пары (bookingID, reference)
func MarkerKey(bookingID int64, reference string) string {
	return fmt.Sprintf("%d:%s", bookingID, reference)
}

// IsProcessed проверяет, был ли callback с этой ссылкой уже обработан
func (t *Tracker) IsProcessed(ctx context.Context, bookingID int64, reference string) (bool, error) {
	if reference == "" {
		return false, ErrInvalidKey
	}
	ok, err := t.store.HasMarker(ctx, MarkerKey(bookingID, reference))
	if err != nil {
		return false, fmt.Errorf("%w: failed to check marker: %v", ErrInternal, err)
	}
	return ok, nil
}

// Stash сохраняет данные ожидающего платежа
func (t *Tracker) Stash(ctx context.Context, c CarryOver) error {
	if c.Reference == "" {
		return ErrInvalidKey
	}
	if err := t.store.SaveCarryOver(ctx, c, t.carryOverTTL); err != nil {
		return fmt.Errorf("%w: failed to save carry-over: %v", ErrInternal, err)
	}
	t.logger.Info("PaymentState: stashed %s payment ref=%s for booking id=%d", c.Purpose, c.Reference, c.BookingID)
	return nil
}

// Pending возвращает данные ожидающего платежа или ErrCarryOverNotFound
func (t *Tracker) Pending(ctx context.Context, bookingID int64) (*CarryOver, error) {
	c, err := t.store.GetCarryOver(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrCarryOverNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to get carry-over: %v", ErrInternal, err)
	}
	return c, nil
}

// Complete выставляет маркер и очищает carry-over.
// Вызывается только после того, как хранилище бронирований подтвердило изменения.
func (t *Tracker) Complete(ctx context.Context, bookingID int64, reference string) error {
	if reference == "" {
		return ErrInvalidKey
	}

	created, err := t.store.SetMarker(ctx, MarkerKey(bookingID, reference), t.markerTTL)
	if err != nil {
		return fmt.Errorf("%w: failed to set marker: %v", ErrInternal, err)
	}
	if !created {
		t.logger.Warn("PaymentState: marker for booking id=%d ref=%s already set", bookingID, reference)
	}

	if err := t.store.DeleteCarryOver(ctx, bookingID); err != nil {
		// маркер уже защищает от повторной обработки, carry-over истечёт по TTL
		t.logger.Warn("PaymentState: failed to clear carry-over for booking id=%d: %v", bookingID, err)
	}
	return nil
}

// Discard очищает carry-over без маркера (платёж не прошёл)
func (t *Tracker) Discard(ctx context.Context, bookingID int64) error {
	if err := t.store.DeleteCarryOver(ctx, bookingID); err != nil {
		return fmt.Errorf("%w: failed to clear carry-over: %v", ErrInternal, err)
	}
	return nil
}
