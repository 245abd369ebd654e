package seats

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	locationRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/location"
)

// ResolveRequest параметры расчёта доступности мест
type ResolveRequest struct {
	LocationID       int64
	Window           domain.TimeWindow
	ExcludeBookingID *int64   // бронирование, которое редактируется
	OwnSeats         []string // ранее назначенные места этого бронирования
	PartySize        int      // 0 - не проверять вместимость
}

// Resolver определяет свободные места для окна и конфликты собственных мест.
// Результат - снимок на момент запроса; окончательно конфликт решает хранилище.
type Resolver struct {
	holds     HoldRepository
	locations LocationRepository
	logger    Logger
}

// NewResolver создает резолвер конфликтов мест
func NewResolver(holds HoldRepository, locations LocationRepository, logger Logger) *Resolver {
	return &Resolver{
		holds:     holds,
		locations: locations,
		logger:    logger,
	}
}

// Resolve возвращает снимок доступности.
// При нехватке мест снимок возвращается вместе с ErrInsufficientCapacity.
func (r *Resolver) Resolve(ctx context.Context, req ResolveRequest) (*domain.SeatSnapshot, error) {
	universe, err := r.locations.GetSeatIDs(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			return nil, ErrLocationNotFound
		}
		r.logger.Error("Resolve: failed to get seats of location=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get seats: %v", ErrInternal, err)
	}

	holds, err := r.holds.GetBookedSeats(ctx, req.LocationID, req.Window, req.ExcludeBookingID)
	if err != nil {
		r.logger.Error("Resolve: failed to get booked seats for location=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get booked seats: %v", ErrInternal, err)
	}

	others := lo.Filter(holds, func(h domain.SeatHold, _ int) bool {
		return req.ExcludeBookingID == nil || h.BookingID != *req.ExcludeBookingID
	})
	bookedByOthers := lo.Uniq(lo.Map(others, func(h domain.SeatHold, _ int) string {
		return h.SeatID
	}))

	snapshot := &domain.SeatSnapshot{
		Available:      lo.Without(universe, bookedByOthers...),
		BookedByOthers: bookedByOthers,
		ConflictingOwn: lo.Intersect(req.OwnSeats, bookedByOthers),
	}

	if snapshot.RequiresReselection() {
		r.logger.Warn("Resolve: own seats %v are held by other bookings in %s", snapshot.ConflictingOwn, req.Window)
	}

	if req.PartySize > 0 && !snapshot.HasCapacity(req.PartySize) {
		return snapshot, fmt.Errorf("%w: %d free, %d needed", ErrInsufficientCapacity, len(snapshot.Available), req.PartySize)
	}

	return snapshot, nil
}

// CheckSelection проверяет, что каждое выбранное место свободно в снимке
func CheckSelection(snapshot *domain.SeatSnapshot, seatIDs []string) error {
	if taken := lo.Intersect(snapshot.BookedByOthers, seatIDs); len(taken) > 0 {
		return fmt.Errorf("%w: %v", ErrSeatUnavailable, taken)
	}
	if unknown := lo.Without(seatIDs, snapshot.Available...); len(unknown) > 0 {
		return fmt.Errorf("%w: %v", ErrUnknownSeat, unknown)
	}
	return nil
}
