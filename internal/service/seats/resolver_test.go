package seats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	locationRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/location"
	"github.com/m04kA/SMC-SeatBooking/internal/service/seats"
	"github.com/m04kA/SMC-SeatBooking/pkg/ptr"
)

type mockHolds struct {
	mock.Mock
}

func (m *mockHolds) GetBookedSeats(ctx context.Context, locationID int64, window domain.TimeWindow, excludeBookingID *int64) ([]domain.SeatHold, error) {
	args := m.Called(ctx, locationID, window, excludeBookingID)
	holds, _ := args.Get(0).([]domain.SeatHold)
	return holds, args.Error(1)
}

type mockLocations struct {
	mock.Mock
}

func (m *mockLocations) GetSeatIDs(ctx context.Context, locationID int64) ([]string, error) {
	args := m.Called(ctx, locationID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	ctx      = context.Background()
	start    = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	window   = domain.NewTimeWindow(start, start.Add(2*time.Hour))
	universe = []string{"S1", "S2", "S3", "S4"}
)

func TestResolve_ThirdPartyHoldsOwnSeat(t *testing.T) {
	holds := &mockHolds{}
	locations := &mockLocations{}
	bookingID := ptr.Ptr(int64(10))

	locations.On("GetSeatIDs", ctx, int64(1)).Return(universe, nil)
	holds.On("GetBookedSeats", ctx, int64(1), window, bookingID).Return([]domain.SeatHold{
		{SeatID: "S1", BookingID: 20},
		{SeatID: "S3", BookingID: 20},
		{SeatID: "S2", BookingID: 30},
	}, nil)

	snapshot, err := seats.NewResolver(holds, locations, nopLogger{}).Resolve(ctx, seats.ResolveRequest{
		LocationID:       1,
		Window:           window,
		ExcludeBookingID: bookingID,
		OwnSeats:         []string{"S2"},
		PartySize:        1,
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"S1", "S2", "S3"}, snapshot.BookedByOthers)
	assert.ElementsMatch(t, []string{"S4"}, snapshot.Available)
	assert.Equal(t, []string{"S2"}, snapshot.ConflictingOwn)
	assert.True(t, snapshot.RequiresReselection())
}

func TestResolve_OwnSeatsKept(t *testing.T) {
	holds := &mockHolds{}
	locations := &mockLocations{}
	bookingID := ptr.Ptr(int64(10))

	locations.On("GetSeatIDs", ctx, int64(1)).Return(universe, nil)
	// собственная бронь не считается занятой, даже если хранилище её вернуло
	holds.On("GetBookedSeats", ctx, int64(1), window, bookingID).Return([]domain.SeatHold{
		{SeatID: "S1", BookingID: 20},
		{SeatID: "S2", BookingID: 10},
	}, nil)

	snapshot, err := seats.NewResolver(holds, locations, nopLogger{}).Resolve(ctx, seats.ResolveRequest{
		LocationID:       1,
		Window:           window,
		ExcludeBookingID: bookingID,
		OwnSeats:         []string{"S2"},
		PartySize:        1,
	})

	require.NoError(t, err)
	assert.Empty(t, snapshot.ConflictingOwn)
	assert.False(t, snapshot.RequiresReselection())
	assert.ElementsMatch(t, []string{"S2", "S3", "S4"}, snapshot.Available)
}

func TestResolve_InsufficientCapacity(t *testing.T) {
	holds := &mockHolds{}
	locations := &mockLocations{}

	locations.On("GetSeatIDs", ctx, int64(1)).Return(universe, nil)
	holds.On("GetBookedSeats", ctx, int64(1), window, (*int64)(nil)).Return([]domain.SeatHold{
		{SeatID: "S1", BookingID: 20},
		{SeatID: "S2", BookingID: 21},
		{SeatID: "S2", BookingID: 22},
	}, nil)

	snapshot, err := seats.NewResolver(holds, locations, nopLogger{}).Resolve(ctx, seats.ResolveRequest{
		LocationID: 1,
		Window:     window,
		PartySize:  3,
	})

	assert.ErrorIs(t, err, seats.ErrInsufficientCapacity)
	assert.ErrorIs(t, err, domain.ErrValidation)
	require.NotNil(t, snapshot)
	assert.Len(t, snapshot.BookedByOthers, 2)
	assert.Len(t, snapshot.Available, 2)
}

func TestResolve_RepositoryErrors(t *testing.T) {
	t.Run("location not found", func(t *testing.T) {
		locations := &mockLocations{}
		locations.On("GetSeatIDs", ctx, int64(5)).Return(nil, locationRepo.ErrLocationNotFound)

		_, err := seats.NewResolver(&mockHolds{}, locations, nopLogger{}).Resolve(ctx, seats.ResolveRequest{LocationID: 5, Window: window})

		assert.ErrorIs(t, err, seats.ErrLocationNotFound)
	})

	t.Run("holds query failed", func(t *testing.T) {
		holds := &mockHolds{}
		locations := &mockLocations{}
		locations.On("GetSeatIDs", ctx, int64(1)).Return(universe, nil)
		holds.On("GetBookedSeats", ctx, int64(1), window, (*int64)(nil)).Return(nil, errors.New("timeout"))

		_, err := seats.NewResolver(holds, locations, nopLogger{}).Resolve(ctx, seats.ResolveRequest{LocationID: 1, Window: window})

		assert.ErrorIs(t, err, seats.ErrInternal)
	})
}

func TestCheckSelection(t *testing.T) {
	snapshot := &domain.SeatSnapshot{
		Available:      []string{"S2", "S4"},
		BookedByOthers: []string{"S1", "S3"},
	}

	assert.NoError(t, seats.CheckSelection(snapshot, []string{"S2", "S4"}))

	err := seats.CheckSelection(snapshot, []string{"S2", "S3"})
	assert.ErrorIs(t, err, seats.ErrSeatUnavailable)
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.ErrorIs(t, seats.CheckSelection(snapshot, []string{"S9"}), seats.ErrUnknownSeat)
}
