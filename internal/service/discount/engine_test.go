package discount_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/discount"
	"github.com/m04kA/SMC-SeatBooking/pkg/ptr"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func promo(typ domain.DiscountType, value, minAmount float64) domain.PromoCode {
	return domain.PromoCode{
		ID:              7,
		Code:            "SPRING",
		DiscountType:    typ,
		DiscountValue:   value,
		MinimumAmount:   minAmount,
		MaxUsagePerUser: 1,
		ActiveFrom:      now.Add(-24 * time.Hour),
		ActiveTo:        now.Add(24 * time.Hour),
	}
}

func TestCompute_NoEntitlement(t *testing.T) {
	res, err := discount.NewEngine().Compute(30, nil, discount.Context{Now: now})

	require.NoError(t, err)
	assert.Equal(t, 0.0, res.DiscountAmount)
	assert.Equal(t, 30.0, res.FinalAmount)
	assert.Empty(t, res.Kind)
}

func TestCompute_NegativeBase(t *testing.T) {
	_, err := discount.NewEngine().Compute(-1, nil, discount.Context{Now: now})

	assert.ErrorIs(t, err, discount.ErrInvalidBase)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompute_PackagePass(t *testing.T) {
	pass := domain.PackagePass{ID: 1, Name: "10x2h", RemainingPasses: 3, HoursAllowed: 2, ExpiresAt: now.Add(time.Hour)}

	tests := []struct {
		name         string
		hours        float64
		pax          int
		wantDiscount float64
		wantHours    float64
	}{
		{name: "booking longer than allowance", hours: 3, pax: 2, wantDiscount: 10, wantHours: 2},
		{name: "booking shorter than allowance", hours: 1.5, pax: 1, wantDiscount: 7.5, wantHours: 1.5},
		{name: "allowance equals booking", hours: 2, pax: 4, wantDiscount: 10, wantHours: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := 5.0
			base := tt.hours * rate * float64(tt.pax)
			c := discount.Context{Now: now, Hours: tt.hours, PartySize: tt.pax, HourlyRate: rate}

			res, err := discount.NewEngine().Compute(base, pass, c)

			require.NoError(t, err)
			assert.Equal(t, domain.EntitlementPackagePass, res.Kind)
			assert.InDelta(t, tt.wantDiscount, res.DiscountAmount, 1e-9)
			assert.InDelta(t, tt.wantHours, res.AppliedHours, 1e-9)
			// никогда не больше стоимости одного человека
			assert.LessOrEqual(t, res.DiscountAmount, tt.hours*rate)
			// остальные pax-1 человек оплачиваются полностью
			expectedFinal := (tt.hours-res.AppliedHours)*rate + tt.hours*rate*float64(tt.pax-1)
			assert.InDelta(t, expectedFinal, res.FinalAmount, 1e-9)
		})
	}
}

func TestCompute_PackagePassNotSelectable(t *testing.T) {
	c := discount.Context{Now: now, Hours: 2, PartySize: 1, HourlyRate: 5}

	exhausted := domain.PackagePass{RemainingPasses: 0, HoursAllowed: 2, ExpiresAt: now.Add(time.Hour)}
	_, err := discount.NewEngine().Compute(10, exhausted, c)
	assert.ErrorIs(t, err, discount.ErrPassNotSelectable)
	assert.ErrorIs(t, err, domain.ErrEligibility)

	expired := domain.PackagePass{RemainingPasses: 5, HoursAllowed: 2, ExpiresAt: now.Add(-time.Second)}
	_, err = discount.NewEngine().Compute(10, expired, c)
	assert.ErrorIs(t, err, discount.ErrPassNotSelectable)
}

func TestCompute_PromoPercentage(t *testing.T) {
	c := discount.Context{Now: now, Hours: 3, PartySize: 2, HourlyRate: 5}

	res, err := discount.NewEngine().Compute(30, promo(domain.DiscountPercentage, 20, 10), c)

	require.NoError(t, err)
	assert.InDelta(t, 6.0, res.DiscountAmount, 1e-9)
	assert.InDelta(t, 24.0, res.FinalAmount, 1e-9)
}

func TestCompute_PromoPercentageCapped(t *testing.T) {
	p := promo(domain.DiscountPercentage, 50, 0)
	p.MaximumDiscount = ptr.Ptr(4.0)

	res, err := discount.NewEngine().Compute(30, p, discount.Context{Now: now, Hours: 3})

	require.NoError(t, err)
	assert.Equal(t, 4.0, res.DiscountAmount)
	assert.Equal(t, 26.0, res.FinalAmount)
}

func TestCompute_PromoFixedNeverExceedsBase(t *testing.T) {
	res, err := discount.NewEngine().Compute(8, promo(domain.DiscountFixed, 15, 0), discount.Context{Now: now, Hours: 1})

	require.NoError(t, err)
	assert.Equal(t, 8.0, res.DiscountAmount)
	assert.Equal(t, 0.0, res.FinalAmount)
}

func TestCompute_PromoUnknownDiscountType(t *testing.T) {
	engine := discount.NewEngine()
	p := promo(domain.DiscountType("bogo"), 50, 0)
	c := discount.Context{Now: now, Hours: 3}

	_, err := engine.Compute(30, p, c)

	assert.ErrorIs(t, err, discount.ErrUnknownDiscountType)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = engine.Recompute(30, p, c)
	assert.ErrorIs(t, err, discount.ErrUnknownDiscountType)
}

func TestCompute_PromoIdempotent(t *testing.T) {
	engine := discount.NewEngine()
	p := promo(domain.DiscountPercentage, 15, 10)
	c := discount.Context{Now: now, Hours: 3, PartySize: 2, HourlyRate: 5}

	first, err := engine.Compute(30, p, c)
	require.NoError(t, err)
	second, err := engine.Compute(30, p, c)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEligible_PromoRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.PromoCode)
		base    float64
		hours   float64
		wantErr error
	}{
		{name: "eligible", mutate: func(p *domain.PromoCode) {}, base: 30, hours: 3},
		{name: "below minimum amount", mutate: func(p *domain.PromoCode) {}, base: 9.99, hours: 3, wantErr: discount.ErrBelowMinimumAmount},
		{name: "minimum amount inclusive", mutate: func(p *domain.PromoCode) {}, base: 10, hours: 3},
		{name: "not started", mutate: func(p *domain.PromoCode) { p.ActiveFrom = now.Add(time.Minute) }, base: 30, hours: 3, wantErr: discount.ErrPromoInactive},
		{name: "ended", mutate: func(p *domain.PromoCode) { p.ActiveTo = now.Add(-time.Minute) }, base: 30, hours: 3, wantErr: discount.ErrPromoInactive},
		{name: "user limit", mutate: func(p *domain.PromoCode) { p.UserUsageCount = 1 }, base: 30, hours: 3, wantErr: discount.ErrUserLimitReached},
		{name: "global limit", mutate: func(p *domain.PromoCode) { p.MaxTotalUsage = ptr.Ptr(100); p.TotalUsageCount = 100 }, base: 30, hours: 3, wantErr: discount.ErrTotalLimitReached},
		{name: "global limit not reached", mutate: func(p *domain.PromoCode) { p.MaxTotalUsage = ptr.Ptr(100); p.TotalUsageCount = 99 }, base: 30, hours: 3},
		{name: "too short", mutate: func(p *domain.PromoCode) { p.MinimumHours = ptr.Ptr(4.0) }, base: 30, hours: 3, wantErr: discount.ErrBelowMinimumHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := promo(domain.DiscountPercentage, 20, 10)
			tt.mutate(&p)

			err := discount.NewEngine().Eligible(tt.base, p, discount.Context{Now: now, Hours: tt.hours})

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, discount.ErrPromoNotEligible)
			assert.ErrorIs(t, err, domain.ErrEligibility)
		})
	}
}

func TestCompute_StoreCredit(t *testing.T) {
	credit := domain.StoreCredit{ID: 3, AmountRemaining: 12, ExpiresAt: now.Add(time.Hour)}
	c := discount.Context{Now: now}
	engine := discount.NewEngine()

	t.Run("requested amount", func(t *testing.T) {
		cr := credit
		cr.Requested = 5
		res, err := engine.Compute(30, cr, c)
		require.NoError(t, err)
		assert.Equal(t, 5.0, res.DiscountAmount)
		assert.Equal(t, 25.0, res.FinalAmount)
	})

	t.Run("use max bounded by balance", func(t *testing.T) {
		cr := credit
		cr.UseMax = true
		res, err := engine.Compute(30, cr, c)
		require.NoError(t, err)
		assert.Equal(t, 12.0, res.DiscountAmount)
	})

	t.Run("use max bounded by base", func(t *testing.T) {
		cr := credit
		cr.UseMax = true
		res, err := engine.Compute(7, cr, c)
		require.NoError(t, err)
		assert.Equal(t, 7.0, res.DiscountAmount)
		assert.Equal(t, 0.0, res.FinalAmount)
	})

	t.Run("more than available", func(t *testing.T) {
		cr := credit
		cr.Requested = 12.01
		_, err := engine.Compute(30, cr, c)
		assert.ErrorIs(t, err, discount.ErrCreditOutOfRange)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("negative", func(t *testing.T) {
		cr := credit
		cr.Requested = -1
		_, err := engine.Compute(30, cr, c)
		assert.ErrorIs(t, err, discount.ErrCreditOutOfRange)
	})

	t.Run("expired", func(t *testing.T) {
		cr := credit
		cr.ExpiresAt = now
		cr.Requested = 1
		_, err := engine.Compute(30, cr, c)
		assert.ErrorIs(t, err, discount.ErrCreditNotSelectable)
	})
}

func TestRecompute_ClearsPromoWhenBaseDrops(t *testing.T) {
	engine := discount.NewEngine()
	p := promo(domain.DiscountPercentage, 20, 10)
	c := discount.Context{Now: now, Hours: 1, PartySize: 1, HourlyRate: 5}

	res, err := engine.Recompute(5, p, c)

	require.NoError(t, err)
	assert.True(t, res.Cleared)
	assert.Contains(t, res.Notice, "SPRING")
	assert.Contains(t, res.Notice, discount.ErrBelowMinimumAmount.Error())
	assert.Equal(t, 0.0, res.DiscountAmount)
	assert.Equal(t, 5.0, res.FinalAmount)
}

func TestRecompute_KeepsEligiblePromo(t *testing.T) {
	res, err := discount.NewEngine().Recompute(30, promo(domain.DiscountPercentage, 20, 10), discount.Context{Now: now, Hours: 3})

	require.NoError(t, err)
	assert.False(t, res.Cleared)
	assert.Empty(t, res.Notice)
	assert.InDelta(t, 6.0, res.DiscountAmount, 1e-9)
}

func TestCompute_DiscountBounds(t *testing.T) {
	engine := discount.NewEngine()
	entitlements := []domain.Entitlement{
		domain.PackagePass{RemainingPasses: 1, HoursAllowed: 8, ExpiresAt: now.Add(time.Hour)},
		promo(domain.DiscountPercentage, 100, 0),
		promo(domain.DiscountFixed, 1000, 0),
		domain.StoreCredit{AmountRemaining: 1000, ExpiresAt: now.Add(time.Hour), UseMax: true},
	}

	for _, hours := range []float64{0.5, 1, 2.5, 8} {
		for _, pax := range []int{1, 3} {
			rate := 6.5
			base := hours * rate * float64(pax)
			c := discount.Context{Now: now, Hours: hours, PartySize: pax, HourlyRate: rate}
			for _, ent := range entitlements {
				res, err := engine.Compute(base, ent, c)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, res.DiscountAmount, 0.0)
				assert.LessOrEqual(t, res.DiscountAmount, base)
				assert.InDelta(t, base-res.DiscountAmount, res.FinalAmount, 1e-9)
			}
		}
	}
}
