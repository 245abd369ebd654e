package ratecard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// Snapshot согласованная пара тарифов и комиссий
type Snapshot struct {
	Table *Table
	Fees  domain.FeeSettings
}

// Service кэширует тарифы из источника и перезагружает их по интервалу.
// Одновременные перезагрузки схлопываются через singleflight.
type Service struct {
	source       Source
	fallback     Snapshot
	interval     time.Duration
	timeProvider TimeProvider
	logger       Logger

	mu       sync.RWMutex
	current  *Snapshot
	loadedAt time.Time

	group singleflight.Group
}

// NewService создает сервис тарифов.
// fallback используется, если источник пуст или недоступен при первой загрузке.
func NewService(source Source, fallback Snapshot, interval time.Duration, logger Logger) *Service {
	return &Service{
		source:       source,
		fallback:     fallback,
		interval:     interval,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Snapshot возвращает актуальные тарифы, перезагружая их, если кэш устарел.
// При ошибке перезагрузки возвращается последний удачный снимок.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.RLock()
	current := s.current
	stale := current == nil || s.timeProvider.Now().Sub(s.loadedAt) >= s.interval
	s.mu.RUnlock()

	if !stale {
		return *current, nil
	}

	if err := s.Reload(ctx); err != nil {
		if current != nil {
			s.logger.Warn("RateCard: reload failed, serving cached rates: %v", err)
			return *current, nil
		}
		if s.fallback.Table != nil && s.fallback.Table.Len() > 0 {
			s.logger.Warn("RateCard: reload failed, serving fallback rates: %v", err)
			return s.fallback, nil
		}
		return Snapshot{}, fmt.Errorf("%w: %v", ErrNotLoaded, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.current, nil
}

// Reload загружает тарифы и комиссии из источника
func (s *Service) Reload(ctx context.Context) error {
	_, err, _ := s.group.Do("reload", func() (interface{}, error) {
		rates, err := s.source.GetRates(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get rates: %v", ErrInternal, err)
		}

		fees, err := s.source.GetFeeSettings(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get fee settings: %v", ErrInternal, err)
		}

		snapshot := Snapshot{Table: NewTable(rates), Fees: s.fallback.Fees}
		if snapshot.Table.Len() == 0 && s.fallback.Table != nil {
			snapshot.Table = s.fallback.Table
		}
		if fees != nil {
			snapshot.Fees = *fees
		}

		s.mu.Lock()
		s.current = &snapshot
		s.loadedAt = s.timeProvider.Now()
		s.mu.Unlock()

		s.logger.Info("RateCard: loaded %d rates (paynow_fee=%.2f, card_pct=%.2f, tax_pct=%.2f)",
			snapshot.Table.Len(), snapshot.Fees.PayNowFixedFee, snapshot.Fees.CardPercentage, snapshot.Fees.TaxPercentage)
		return nil, nil
	})
	return err
}

// Run периодически перезагружает тарифы до отмены контекста
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("RateCard: background reload started, interval=%s", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("RateCard: background reload stopped")
			return
		case <-ticker.C:
			if err := s.Reload(ctx); err != nil {
				s.logger.Warn("RateCard: background reload failed: %v", err)
			}
		}
	}
}
