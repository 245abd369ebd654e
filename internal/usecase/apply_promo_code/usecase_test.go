package apply_promo_code

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/discount"
	"github.com/m04kA/SMC-SeatBooking/internal/service/entitlements"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SeatBooking/internal/service/ratecard"
	"github.com/m04kA/SMC-SeatBooking/internal/testutil/mocks"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// newUseCase собирает use case с настоящим калькулятором: $5/час, налог 9%
func newUseCase(t *testing.T) (*UseCase, *mocks.Entitlements) {
	t.Helper()

	rates := &mocks.RateProvider{}
	rates.On("Snapshot", mock.Anything).Return(ratecard.Snapshot{
		Table: ratecard.NewTable([]domain.RateCardEntry{
			{MemberType: domain.MemberTypeMember, Bucket: domain.BucketStandard, HourlyRate: 5},
		}),
		Fees: domain.FeeSettings{TaxPercentage: 9, CardPercentage: 5},
	}, nil)

	ents := &mocks.Entitlements{}
	uc := NewUseCase(ents, pricing.NewCalculator(rates, discount.NewEngine(), nil), domain.DefaultWindowRules(), mocks.Logger{})
	uc.timeProvider = mocks.Clock{T: now}
	return uc, ents
}

func request(code string, hours int) *Request {
	start := now.Add(24 * time.Hour)
	return &Request{
		UserID: 7,
		Code:   code,
		Window: domain.NewTimeWindow(start, start.Add(time.Duration(hours)*time.Hour)),
		Party:  domain.Party{Members: 2},
	}
}

func promo(code string) domain.PromoCode {
	return domain.PromoCode{
		ID:              3,
		Code:            code,
		DiscountType:    domain.DiscountPercentage,
		DiscountValue:   20,
		MinimumAmount:   10,
		MaxUsagePerUser: 1,
		ActiveFrom:      now.Add(-time.Hour),
		ActiveTo:        now.Add(48 * time.Hour),
	}
}

func TestExecute_PercentageDiscount(t *testing.T) {
	uc, ents := newUseCase(t)

	ents.On("Load", mock.Anything, int64(7), &domain.Selection{Kind: domain.EntitlementPromoCode, Code: "SPRING"}).
		Return(promo("SPRING"), nil)

	resp, err := uc.Execute(context.Background(), request(" SPRING ", 3))

	require.NoError(t, err)
	assert.Equal(t, 30.0, resp.BaseAmount)
	assert.Equal(t, 6.0, resp.DiscountAmount)
	assert.Equal(t, 24.0, resp.FinalAmount)
	assert.Equal(t, 2.16, resp.Quote.TaxAmount)
}

func TestExecute_BelowMinimumAmount(t *testing.T) {
	uc, ents := newUseCase(t)

	p := promo("BIG")
	p.MinimumAmount = 100
	ents.On("Load", mock.Anything, int64(7), mock.Anything).Return(p, nil)

	_, err := uc.Execute(context.Background(), request("BIG", 3))

	assert.ErrorIs(t, err, ErrPromoNotEligible)
	assert.ErrorIs(t, err, domain.ErrEligibility)
}

func TestExecute_UnknownCode(t *testing.T) {
	uc, ents := newUseCase(t)

	ents.On("Load", mock.Anything, int64(7), mock.Anything).Return(nil, entitlements.ErrNotFound)

	_, err := uc.Execute(context.Background(), request("NOPE", 3))
	assert.ErrorIs(t, err, entitlements.ErrNotFound)
}

func TestExecute_EmptyCode(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Execute(context.Background(), request("  ", 3))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
