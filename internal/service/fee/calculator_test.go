package fee_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/fee"
)

var settings = domain.FeeSettings{
	PayNowFixedFee: 0.5,
	CardPercentage: 5,
	TaxPercentage:  9,
}

func TestCompute_PayNow(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{name: "zero", amount: 0, want: 0},
		{name: "just above zero", amount: 0.01, want: 0.5},
		{name: "below threshold", amount: 9.99, want: 0.5},
		{name: "threshold", amount: 10.00, want: 0},
		{name: "above threshold", amount: 25, want: 0},
	}

	calc := fee.NewCalculator(settings)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Compute(tt.amount, domain.PaymentMethodPayNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_CreditCard(t *testing.T) {
	calc := fee.NewCalculator(settings)

	got, err := calc.Compute(26.16, domain.PaymentMethodCreditCard)
	require.NoError(t, err)
	assert.InDelta(t, 1.308, got, 1e-9)

	got, err = calc.Compute(0, domain.PaymentMethodCreditCard)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestTotal(t *testing.T) {
	total, err := fee.NewCalculator(settings).Total(9.99, domain.PaymentMethodPayNow)

	require.NoError(t, err)
	assert.InDelta(t, 10.49, total, 1e-9)
}

func TestCompute_UnknownMethod(t *testing.T) {
	_, err := fee.NewCalculator(settings).Compute(10, domain.PaymentMethod("cash"))

	assert.ErrorIs(t, err, fee.ErrUnknownMethod)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
