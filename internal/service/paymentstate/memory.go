package paymentstate

import (
	"context"
	"sync"
	"time"
)

type memoryMarker struct {
	expiresAt time.Time
}

type memoryCarryOver struct {
	value     CarryOver
	expiresAt time.Time
}

// MemoryStore in-memory реализация Store для запуска без redis и для тестов
type MemoryStore struct {
	mu         sync.Mutex
	markers    map[string]memoryMarker
	carryOvers map[int64]memoryCarryOver
	now        func() time.Time
}

// NewMemoryStore создает пустое in-memory хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		markers:    make(map[string]memoryMarker),
		carryOvers: make(map[int64]memoryCarryOver),
		now:        time.Now,
	}
}

func (s *MemoryStore) SetMarker(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if m, ok := s.markers[key]; ok && now.Before(m.expiresAt) {
		return false, nil
	}
	s.markers[key] = memoryMarker{expiresAt: now.Add(ttl)}
	return true, nil
}

func (s *MemoryStore) HasMarker(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.markers[key]
	return ok && s.now().Before(m.expiresAt), nil
}

func (s *MemoryStore) SaveCarryOver(_ context.Context, c CarryOver, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carryOvers[c.BookingID] = memoryCarryOver{value: c, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) GetCarryOver(_ context.Context, bookingID int64) (*CarryOver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carryOvers[bookingID]
	if !ok || !s.now().Before(c.expiresAt) {
		return nil, ErrCarryOverNotFound
	}
	value := c.value
	return &value, nil
}

func (s *MemoryStore) DeleteCarryOver(_ context.Context, bookingID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carryOvers, bookingID)
	return nil
}

// Cleanup удаляет истёкшие записи и возвращает их количество
func (s *MemoryStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, m := range s.markers {
		if !now.Before(m.expiresAt) {
			delete(s.markers, key)
			removed++
		}
	}
	for id, c := range s.carryOvers {
		if !now.Before(c.expiresAt) {
			delete(s.carryOvers, id)
			removed++
		}
	}
	return removed
}

// RunCleanup периодически удаляет истёкшие записи до отмены контекста
func (s *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration, logger Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("PaymentState: in-memory cleanup started, interval=%s", interval)

	for {
		select {
		case <-ctx.Done():
			logger.Info("PaymentState: in-memory cleanup stopped")
			return
		case <-ticker.C:
			if removed := s.Cleanup(); removed > 0 {
				logger.Info("PaymentState: removed %d expired entries", removed)
			}
		}
	}
}
