package domain

import "github.com/m04kA/SMC-SeatBooking/pkg/money"

// Quote is the derived price of a booking for its current inputs.
// It is never persisted until payment succeeds.
type Quote struct {
	BaseAmount     float64
	DiscountAmount float64
	TaxAmount      float64
	TransactionFee float64
	TotalAmount    float64
}

// PayableBeforeFee returns the amount the transaction fee is computed on
func (q Quote) PayableBeforeFee() float64 {
	return money.NonNegative(q.BaseAmount-q.DiscountAmount) + q.TaxAmount
}

// Rounded returns a copy with every field rounded to cents
func (q Quote) Rounded() Quote {
	return Quote{
		BaseAmount:     money.Round2(q.BaseAmount),
		DiscountAmount: money.Round2(q.DiscountAmount),
		TaxAmount:      money.Round2(q.TaxAmount),
		TransactionFee: money.Round2(q.TransactionFee),
		TotalAmount:    money.Round2(q.TotalAmount),
	}
}

// IsFree returns true when nothing has to be paid
func (q Quote) IsFree() bool {
	return money.Round2(q.TotalAmount) <= 0
}
