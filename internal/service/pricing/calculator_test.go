package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/discount"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SeatBooking/internal/service/ratecard"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type staticRates struct {
	snapshot ratecard.Snapshot
	err      error
}

func (s staticRates) Snapshot(context.Context) (ratecard.Snapshot, error) {
	return s.snapshot, s.err
}

type countingMetrics struct {
	cleared map[string]int
}

func (m *countingMetrics) EntitlementCleared(kind string) {
	if m.cleared == nil {
		m.cleared = map[string]int{}
	}
	m.cleared[kind]++
}

func flatRates(rate float64) staticRates {
	var entries []domain.RateCardEntry
	for _, mt := range domain.MemberTypes {
		entries = append(entries,
			domain.RateCardEntry{MemberType: mt, Bucket: domain.BucketShort, HourlyRate: rate},
			domain.RateCardEntry{MemberType: mt, Bucket: domain.BucketStandard, HourlyRate: rate},
		)
	}
	return staticRates{snapshot: ratecard.Snapshot{
		Table: ratecard.NewTable(entries),
		Fees:  domain.FeeSettings{PayNowFixedFee: 0.5, CardPercentage: 5, TaxPercentage: 9},
	}}
}

func window(hours float64) domain.TimeWindow {
	start := now.Add(24 * time.Hour)
	return domain.NewTimeWindow(start, start.Add(time.Duration(hours*float64(time.Hour))))
}

func twentyPercent() domain.PromoCode {
	return domain.PromoCode{
		ID:              1,
		Code:            "TWENTY",
		DiscountType:    domain.DiscountPercentage,
		DiscountValue:   20,
		MinimumAmount:   10,
		MaxUsagePerUser: 1,
		ActiveFrom:      now.Add(-time.Hour),
		ActiveTo:        now.Add(time.Hour),
	}
}

func TestQuote_EndToEnd(t *testing.T) {
	calc := pricing.NewCalculator(flatRates(5), discount.NewEngine(), &countingMetrics{})

	res, err := calc.Quote(context.Background(), pricing.QuoteInput{
		Now:           now,
		Window:        window(3),
		Party:         domain.Party{Members: 2},
		Entitlement:   twentyPercent(),
		PaymentMethod: domain.PaymentMethodCreditCard,
	})

	require.NoError(t, err)
	assert.Equal(t, 30.0, res.Quote.BaseAmount)
	assert.Equal(t, 6.0, res.Quote.DiscountAmount)
	assert.Equal(t, 2.16, res.Quote.TaxAmount)
	assert.Equal(t, 1.31, res.Quote.TransactionFee)
	assert.Equal(t, 27.47, res.Quote.TotalAmount)
	assert.False(t, res.Cleared)
	require.NotNil(t, res.EntitlementRef)
	assert.Equal(t, domain.EntitlementPromoCode, res.EntitlementRef.Kind)
	assert.Equal(t, 6.0, res.EntitlementRef.Amount)
}

func TestQuote_ClearsIneligiblePromo(t *testing.T) {
	metrics := &countingMetrics{}
	calc := pricing.NewCalculator(flatRates(5), discount.NewEngine(), metrics)

	res, err := calc.Quote(context.Background(), pricing.QuoteInput{
		Now:         now,
		Window:      window(1),
		Party:       domain.Party{Members: 1},
		Entitlement: twentyPercent(),
	})

	require.NoError(t, err)
	assert.True(t, res.Cleared)
	assert.NotEmpty(t, res.Notice)
	assert.Nil(t, res.Entitlement)
	assert.Nil(t, res.EntitlementRef)
	assert.Equal(t, 5.0, res.Quote.BaseAmount)
	assert.Equal(t, 0.0, res.Quote.DiscountAmount)
	assert.Equal(t, 1, metrics.cleared[string(domain.EntitlementPromoCode)])
}

func TestQuote_PackagePassUsesOwnerRate(t *testing.T) {
	rates := staticRates{snapshot: ratecard.Snapshot{
		Table: ratecard.NewTable([]domain.RateCardEntry{
			{MemberType: domain.MemberTypeMember, Bucket: domain.BucketStandard, HourlyRate: 5},
			{MemberType: domain.MemberTypeStudent, Bucket: domain.BucketStandard, HourlyRate: 3},
		}),
	}}
	calc := pricing.NewCalculator(rates, discount.NewEngine(), nil)

	res, err := calc.Quote(context.Background(), pricing.QuoteInput{
		Now:         now,
		MemberType:  domain.MemberTypeStudent,
		Window:      window(4),
		Party:       domain.Party{Members: 1, Students: 1},
		Entitlement: domain.PackagePass{ID: 9, RemainingPasses: 1, HoursAllowed: 2, ExpiresAt: now.Add(time.Hour)},
	})

	require.NoError(t, err)
	assert.Equal(t, 32.0, res.Quote.BaseAmount)
	assert.Equal(t, 6.0, res.Quote.DiscountAmount)
	assert.Equal(t, 2.0, res.AppliedHours)
	assert.Equal(t, 26.0, res.Quote.TotalAmount)
}

func TestQuote_PayNowFeeOnSmallAmount(t *testing.T) {
	calc := pricing.NewCalculator(flatRates(4), discount.NewEngine(), nil)

	res, err := calc.Quote(context.Background(), pricing.QuoteInput{
		Now:           now,
		Window:        window(2),
		Party:         domain.Party{Members: 1},
		PaymentMethod: domain.PaymentMethodPayNow,
	})

	require.NoError(t, err)
	// 8.00 + 9% налога = 8.72 < 10
	assert.Equal(t, 0.5, res.Quote.TransactionFee)
	assert.Equal(t, 9.22, res.Quote.TotalAmount)
}

func TestQuote_FreeBooking(t *testing.T) {
	calc := pricing.NewCalculator(flatRates(5), discount.NewEngine(), nil)

	res, err := calc.Quote(context.Background(), pricing.QuoteInput{
		Now:           now,
		Window:        window(2),
		Party:         domain.Party{Members: 1},
		Entitlement:   domain.StoreCredit{ID: 1, AmountRemaining: 50, ExpiresAt: now.Add(time.Hour), UseMax: true},
		PaymentMethod: domain.PaymentMethodPayNow,
	})

	require.NoError(t, err)
	assert.True(t, res.Quote.IsFree())
	assert.Equal(t, 0.0, res.Quote.TransactionFee)
	assert.Equal(t, 10.0, res.EntitlementRef.Amount)
}

func TestQuote_InvalidInput(t *testing.T) {
	calc := pricing.NewCalculator(flatRates(5), discount.NewEngine(), nil)

	_, err := calc.Quote(context.Background(), pricing.QuoteInput{
		Now:    now,
		Window: domain.NewTimeWindow(now, now),
		Party:  domain.Party{Members: 1},
	})
	assert.ErrorIs(t, err, pricing.ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = calc.Quote(context.Background(), pricing.QuoteInput{Now: now, Window: window(2)})
	assert.ErrorIs(t, err, domain.ErrInvalidParty)
}

func TestQuote_RatesUnavailable(t *testing.T) {
	calc := pricing.NewCalculator(staticRates{err: errors.New("db down")}, discount.NewEngine(), nil)

	_, err := calc.Quote(context.Background(), pricing.QuoteInput{Now: now, Window: window(2), Party: domain.Party{Members: 1}})

	assert.ErrorIs(t, err, pricing.ErrInternal)
}
