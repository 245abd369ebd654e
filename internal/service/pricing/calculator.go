package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/discount"
	"github.com/m04kA/SMC-SeatBooking/internal/service/fee"
	"github.com/m04kA/SMC-SeatBooking/internal/service/ratecard"
	"github.com/m04kA/SMC-SeatBooking/pkg/money"
)

// Calculator собирает котировку: тариф -> скидка -> налог -> комиссия.
// Промежуточные суммы не округляются, округление только в итоговой котировке.
type Calculator struct {
	rates    RateProvider
	discount *discount.Engine
	metrics  Metrics
}

// NewCalculator создает калькулятор котировок
func NewCalculator(rates RateProvider, engine *discount.Engine, metrics Metrics) *Calculator {
	return &Calculator{
		rates:    rates,
		discount: engine,
		metrics:  metrics,
	}
}

// Quote считает котировку для текущих входных данных.
// Если выбранный entitlement больше не подходит, он снимается и заполняется Notice.
func (c *Calculator) Quote(ctx context.Context, in QuoteInput) (*QuoteResult, error) {
	if !in.Window.IsValid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidWindow)
	}
	if err := in.Party.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 1. Актуальные тарифы
	snapshot, err := c.rates.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load rates: %v", ErrInternal, err)
	}

	// 2. Базовая стоимость
	hours := in.Window.Hours()
	base, err := snapshot.Table.BaseAmount(in.Party, hours)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	memberType := in.MemberType
	if memberType == "" {
		memberType = domain.MemberTypeMember
	}
	rate, err := snapshot.Table.Rate(memberType, hours)
	if err != nil {
		// ставка владельца нужна только для пакета
		if _, isPass := in.Entitlement.(domain.PackagePass); isPass || !errors.Is(err, ratecard.ErrRateNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	// 3. Скидка с повторной проверкой применимости
	recomputed, err := c.discount.Recompute(base, in.Entitlement, discount.Context{
		Now:        in.Now,
		Hours:      hours,
		PartySize:  in.Party.Total(),
		HourlyRate: rate,
	})
	if err != nil {
		return nil, err
	}

	result := &QuoteResult{
		HourlyRate:   rate,
		AppliedHours: recomputed.AppliedHours,
		Cleared:      recomputed.Cleared,
		Notice:       recomputed.Notice,
	}
	if recomputed.Cleared && c.metrics != nil {
		c.metrics.EntitlementCleared(string(in.Entitlement.Kind()))
	}
	if !recomputed.Cleared && in.Entitlement != nil {
		result.Entitlement = in.Entitlement
		result.EntitlementRef = domain.NewEntitlementRef(in.Entitlement, money.Round2(recomputed.DiscountAmount), recomputed.AppliedHours)
	}

	// 4. Налог на сумму после скидки
	tax := money.Percent(recomputed.FinalAmount, snapshot.Fees.TaxPercentage)

	// 5. Комиссия на сумму после скидки и налога
	quote := domain.Quote{
		BaseAmount:     base,
		DiscountAmount: recomputed.DiscountAmount,
		TaxAmount:      tax,
	}
	if in.PaymentMethod != "" {
		transactionFee, err := fee.NewCalculator(snapshot.Fees).Compute(quote.PayableBeforeFee(), in.PaymentMethod)
		if err != nil {
			return nil, err
		}
		quote.TransactionFee = transactionFee
	}
	quote.TotalAmount = quote.PayableBeforeFee() + quote.TransactionFee

	result.Quote = quote.Rounded()
	return result, nil
}
