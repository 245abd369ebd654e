package pricing

import (
	"context"

	"github.com/m04kA/SMC-SeatBooking/internal/service/ratecard"
)

// RateProvider источник актуальных тарифов и комиссий
type RateProvider interface {
	Snapshot(ctx context.Context) (ratecard.Snapshot, error)
}

// Quoter считает котировку для набора входных данных
type Quoter interface {
	Quote(ctx context.Context, in QuoteInput) (*QuoteResult, error)
}

// Metrics счётчики, которые обновляет калькулятор
type Metrics interface {
	EntitlementCleared(kind string)
}
