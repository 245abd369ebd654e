package paymentstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SeatBooking/internal/service/paymentstate"
)

const (
	markerPrefix    = "seatbooking:payment:processed:"
	carryOverPrefix = "seatbooking:payment:carryover:"
)

// Store хранит маркеры обработки и carry-over в redis.
// Маркер ставится через SET NX, поэтому параллельные callback'и не выставят его дважды.
type Store struct {
	client redis.Cmdable
}

// NewStore создает redis-хранилище состояния платежей
func NewStore(client redis.Cmdable) *Store {
	return &Store{client: client}
}

// SetMarker выставляет маркер, если его нет
func (s *Store) SetMarker(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	created, err := s.client.SetNX(ctx, markerPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: SetMarker - setnx: %v", ErrRedis, err)
	}
	return created, nil
}

// HasMarker проверяет наличие маркера
func (s *Store) HasMarker(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, markerPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: HasMarker - exists: %v", ErrRedis, err)
	}
	return n > 0, nil
}

// SaveCarryOver сохраняет данные ожидающего платежа в JSON
func (s *Store) SaveCarryOver(ctx context.Context, c paymentstate.CarryOver, ttl time.Duration) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := s.client.Set(ctx, carryOverKey(c.BookingID), string(data), ttl).Err(); err != nil {
		return fmt.Errorf("%w: SaveCarryOver - set: %v", ErrRedis, err)
	}
	return nil
}

// GetCarryOver читает данные ожидающего платежа
func (s *Store) GetCarryOver(ctx context.Context, bookingID int64) (*paymentstate.CarryOver, error) {
	data, err := s.client.Get(ctx, carryOverKey(bookingID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, paymentstate.ErrCarryOverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCarryOver - get: %v", ErrRedis, err)
	}

	var c paymentstate.CarryOver
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshal, err)
	}
	return &c, nil
}

// DeleteCarryOver удаляет данные ожидающего платежа
func (s *Store) DeleteCarryOver(ctx context.Context, bookingID int64) error {
	if err := s.client.Del(ctx, carryOverKey(bookingID)).Err(); err != nil {
		return fmt.Errorf("%w: DeleteCarryOver - del: %v", ErrRedis, err)
	}
	return nil
}

func carryOverKey(bookingID int64) string {
	return carryOverPrefix + strconv.FormatInt(bookingID, 10)
}
