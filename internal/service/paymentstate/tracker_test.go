package paymentstate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/m04kA/SMC-SeatBooking/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newMemoryStoreAt(now *time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = func() time.Time { return *now }
	return s
}

func TestTracker_CompleteSetsMarkerAndClearsCarryOver(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := newMemoryStoreAt(&now)
	tracker := NewTracker(store, time.Hour, 30*time.Minute, nopLogger{})

	require.NoError(t, tracker.Stash(ctx, CarryOver{
		BookingID:    1,
		Reference:    "pay_1",
		Purpose:      PurposeReschedule,
		CreditID:     ptr.Ptr(int64(4)),
		CreditAmount: 3.5,
	}))

	pending, err := tracker.Pending(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3.5, pending.CreditAmount)
	assert.Equal(t, PurposeReschedule, pending.Purpose)

	processed, err := tracker.IsProcessed(ctx, 1, "pay_1")
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, tracker.Complete(ctx, 1, "pay_1"))

	processed, err = tracker.IsProcessed(ctx, 1, "pay_1")
	require.NoError(t, err)
	assert.True(t, processed)

	_, err = tracker.Pending(ctx, 1)
	assert.ErrorIs(t, err, ErrCarryOverNotFound)

	// другая ссылка для того же бронирования - новый платёж
	processed, err = tracker.IsProcessed(ctx, 1, "pay_2")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestTracker_MarkerExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := newMemoryStoreAt(&now)
	tracker := NewTracker(store, time.Hour, time.Hour, nopLogger{})

	require.NoError(t, tracker.Complete(ctx, 7, "ref"))

	now = now.Add(time.Hour)
	processed, err := tracker.IsProcessed(ctx, 7, "ref")
	require.NoError(t, err)
	assert.False(t, processed)
	assert.Equal(t, 1, store.Cleanup())
}

func TestTracker_EmptyReference(t *testing.T) {
	tracker := NewTracker(NewMemoryStore(), time.Hour, time.Hour, nopLogger{})

	_, err := tracker.IsProcessed(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, tracker.Complete(context.Background(), 1, ""), ErrInvalidKey)
	assert.ErrorIs(t, tracker.Stash(context.Background(), CarryOver{BookingID: 1}), ErrInvalidKey)
}

type failingStore struct {
	*MemoryStore
}

func (failingStore) HasMarker(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func TestTracker_StoreError(t *testing.T) {
	tracker := NewTracker(&failingStore{MemoryStore: NewMemoryStore()}, time.Hour, time.Hour, nopLogger{})

	_, err := tracker.IsProcessed(context.Background(), 1, "ref")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestMemoryStore_SetMarkerOnce(t *testing.T) {
	store := NewMemoryStore()

	created, err := store.SetMarker(context.Background(), "1:ref", time.Minute)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.SetMarker(context.Background(), "1:ref", time.Minute)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestMemoryStore_RunCleanupStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		store.RunCleanup(ctx, time.Millisecond, nopLogger{})
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()
	<-done
}
