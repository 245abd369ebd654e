package get_available_seats

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SeatBooking/internal/service/seats"
)

// UseCase use case получения свободных мест локации
type UseCase struct {
	seatResolver SeatResolver
	bookingRepo  BookingRepository
	rules        domain.WindowRules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(seatResolver SeatResolver, bookingRepo BookingRepository, rules domain.WindowRules, logger Logger) *UseCase {
	return &UseCase{
		seatResolver: seatResolver,
		bookingRepo:  bookingRepo,
		rules:        rules,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает снимок мест для окна. Нехватка мест не является ошибкой:
// ответ содержит HasCapacity=false.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSeats: location=%d, window=%s, party=%d", req.LocationID, req.Window, req.PartySize)

	// 1. Валидация входных данных
	if req.LocationID <= 0 {
		return nil, fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}
	if req.PartySize < 0 {
		return nil, fmt.Errorf("%w: partySize must not be negative", ErrInvalidInput)
	}
	if err := uc.rules.Validate(req.Window, uc.timeProvider.Now()); err != nil {
		return nil, err
	}

	// 2. Места редактируемого бронирования
	var ownSeats []string
	if req.ExcludeBookingID != nil {
		booking, err := uc.bookingRepo.GetByID(ctx, *req.ExcludeBookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return nil, ErrBookingNotFound
			}
			uc.logger.Error("GetAvailableSeats: failed to get booking id=%d: %v", *req.ExcludeBookingID, err)
			return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if booking.UserID != req.UserID {
			return nil, ErrAccessDenied
		}
		ownSeats = booking.SeatIDs
	}

	// 3. Снимок доступности
	snapshot, err := uc.seatResolver.Resolve(ctx, seats.ResolveRequest{
		LocationID:       req.LocationID,
		Window:           req.Window,
		ExcludeBookingID: req.ExcludeBookingID,
		OwnSeats:         ownSeats,
		PartySize:        req.PartySize,
	})
	if err != nil && !errors.Is(err, seats.ErrInsufficientCapacity) {
		if errors.Is(err, seats.ErrLocationNotFound) {
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetAvailableSeats: failed to resolve seats: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve seats: %v", ErrInternal, err)
	}

	return &Response{
		LocationID:          req.LocationID,
		Window:              req.Window,
		Available:           snapshot.Available,
		BookedByOthers:      snapshot.BookedByOthers,
		ConflictingOwn:      snapshot.ConflictingOwn,
		RequiresReselection: snapshot.RequiresReselection(),
		HasCapacity:         snapshot.HasCapacity(req.PartySize),
	}, nil
}
