package paymentstate_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/m04kA/SMC-SeatBooking/internal/infra/cache/paymentstate"
	"github.com/m04kA/SMC-SeatBooking/internal/service/paymentstate"
)

func TestStore_SetMarker(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := cache.NewStore(db)
	ctx := context.Background()

	mockRedis.ExpectSetNX("seatbooking:payment:processed:1:pay_1", "1", time.Hour).SetVal(true)
	mockRedis.ExpectSetNX("seatbooking:payment:processed:1:pay_1", "1", time.Hour).SetVal(false)

	created, err := store.SetMarker(ctx, "1:pay_1", time.Hour)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.SetMarker(ctx, "1:pay_1", time.Hour)
	require.NoError(t, err)
	assert.False(t, created)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestStore_HasMarker(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := cache.NewStore(db)

	mockRedis.ExpectExists("seatbooking:payment:processed:1:pay_1").SetVal(1)
	mockRedis.ExpectExists("seatbooking:payment:processed:2:pay_2").SetErr(errors.New("connection reset"))

	ok, err := store.HasMarker(context.Background(), "1:pay_1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = store.HasMarker(context.Background(), "2:pay_2")
	assert.ErrorIs(t, err, cache.ErrRedis)
}

func TestStore_CarryOver(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := cache.NewStore(db)
	ctx := context.Background()

	c := paymentstate.CarryOver{
		BookingID:    42,
		Reference:    "pay_42",
		Purpose:      paymentstate.PurposeBooking,
		CreditAmount: 4.5,
		CreatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(c)
	require.NoError(t, err)

	mockRedis.ExpectSet("seatbooking:payment:carryover:42", string(data), 30*time.Minute).SetVal("OK")
	mockRedis.ExpectGet("seatbooking:payment:carryover:42").SetVal(string(data))
	mockRedis.ExpectDel("seatbooking:payment:carryover:42").SetVal(1)
	mockRedis.ExpectGet("seatbooking:payment:carryover:42").RedisNil()

	require.NoError(t, store.SaveCarryOver(ctx, c, 30*time.Minute))

	got, err := store.GetCarryOver(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, c, *got)

	require.NoError(t, store.DeleteCarryOver(ctx, 42))

	_, err = store.GetCarryOver(ctx, 42)
	assert.ErrorIs(t, err, paymentstate.ErrCarryOverNotFound)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestTracker_WithRedisStore(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	tracker := paymentstate.NewTracker(cache.NewStore(db), time.Hour, time.Hour, nopLogger{})
	ctx := context.Background()

	mockRedis.ExpectSetNX("seatbooking:payment:processed:7:ref", "1", time.Hour).SetVal(true)
	mockRedis.ExpectDel("seatbooking:payment:carryover:7").SetVal(1)
	mockRedis.ExpectExists("seatbooking:payment:processed:7:ref").SetVal(1)

	require.NoError(t, tracker.Complete(ctx, 7, "ref"))

	processed, err := tracker.IsProcessed(ctx, 7, "ref")
	require.NoError(t, err)
	assert.True(t, processed)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
