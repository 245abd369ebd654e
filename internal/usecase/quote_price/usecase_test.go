package quote_price

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/entitlements"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SeatBooking/internal/testutil/mocks"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newUseCase() (*UseCase, *mocks.Entitlements, *mocks.Quoter) {
	ents := &mocks.Entitlements{}
	quoter := &mocks.Quoter{}
	uc := NewUseCase(ents, quoter, domain.DefaultWindowRules(), mocks.Logger{})
	uc.timeProvider = mocks.Clock{T: now}
	return uc, ents, quoter
}

func validRequest() *Request {
	start := now.Add(24 * time.Hour)
	return &Request{
		UserID:        7,
		Window:        domain.NewTimeWindow(start, start.Add(2*time.Hour)),
		Party:         domain.Party{Members: 2},
		PaymentMethod: domain.PaymentMethodPayNow,
	}
}

func TestExecute_Success(t *testing.T) {
	uc, ents, quoter := newUseCase()
	req := validRequest()

	ents.On("Load", mock.Anything, int64(7), (*domain.Selection)(nil)).Return(nil, nil)
	quoter.On("Quote", mock.Anything, pricing.QuoteInput{
		Now:           now,
		Window:        req.Window,
		Party:         req.Party,
		PaymentMethod: domain.PaymentMethodPayNow,
	}).Return(&pricing.QuoteResult{
		Quote:      domain.Quote{BaseAmount: 20, TaxAmount: 1.8, TransactionFee: 0.22, TotalAmount: 22.02},
		HourlyRate: 5,
	}, nil)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 22.02, resp.Quote.TotalAmount)
	assert.Equal(t, 2.0, resp.Hours)
	assert.Equal(t, 5.0, resp.HourlyRate)
	assert.False(t, resp.Cleared)
}

func TestExecute_ClearedEntitlementIsNotAnError(t *testing.T) {
	uc, ents, quoter := newUseCase()
	req := validRequest()
	req.Entitlement = &domain.Selection{Kind: domain.EntitlementPromoCode, Code: "SPRING"}

	promo := domain.PromoCode{ID: 3, Code: "SPRING"}
	ents.On("Load", mock.Anything, int64(7), req.Entitlement).Return(promo, nil)
	quoter.On("Quote", mock.Anything, mock.Anything).Return(&pricing.QuoteResult{
		Quote:   domain.Quote{BaseAmount: 20, TotalAmount: 20},
		Cleared: true,
		Notice:  "promo code SPRING no longer applies",
	}, nil)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Cleared)
	assert.Nil(t, resp.Entitlement)
	assert.NotEmpty(t, resp.Notice)
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _ := newUseCase()

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "empty party", mutate: func(r *Request) { r.Party = domain.Party{} }},
		{name: "window in the past", mutate: func(r *Request) {
			r.Window = domain.NewTimeWindow(now.Add(-time.Hour), now.Add(time.Hour))
		}},
		{name: "unknown member type", mutate: func(r *Request) { r.MemberType = "guest" }},
		{name: "unknown payment method", mutate: func(r *Request) { r.PaymentMethod = "cash" }},
		{name: "selection without id", mutate: func(r *Request) {
			r.Entitlement = &domain.Selection{Kind: domain.EntitlementPackagePass}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestExecute_EntitlementNotFound(t *testing.T) {
	uc, ents, _ := newUseCase()
	req := validRequest()
	req.Entitlement = &domain.Selection{Kind: domain.EntitlementPackagePass, ID: 9}

	ents.On("Load", mock.Anything, int64(7), req.Entitlement).Return(nil, entitlements.ErrNotFound)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, entitlements.ErrNotFound)
}

func TestExecute_QuoteFailure(t *testing.T) {
	uc, ents, quoter := newUseCase()

	ents.On("Load", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	quoter.On("Quote", mock.Anything, mock.Anything).Return(nil, errors.New("rates unavailable"))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
