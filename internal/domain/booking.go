package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusDraft          BookingStatus = "draft"
	StatusPaymentPending BookingStatus = "payment_pending"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusFailed         BookingStatus = "failed"
)

// PaymentMethod selected for the payment step
type PaymentMethod string

const (
	PaymentMethodPayNow     PaymentMethod = "paynow"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
)

// IsValid returns true for a known payment method
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodPayNow || m == PaymentMethodCreditCard
}

// transitions lists allowed status changes. Confirmed has no outgoing edge:
// a confirmed booking only changes through the reschedule flow.
var transitions = map[BookingStatus][]BookingStatus{
	StatusDraft:          {StatusPaymentPending},
	StatusPaymentPending: {StatusConfirmed, StatusFailed, StatusDraft},
	StatusFailed:         {StatusPaymentPending, StatusDraft},
}

// CanTransition reports whether a booking may move from one status to another
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Booking represents a seat reservation for a time window
type Booking struct {
	ID            int64
	ReferenceCode string
	UserID        int64
	MemberType    MemberType // rate card of the booking user
	LocationID    int64
	Window        TimeWindow
	Party         Party
	SeatIDs       []string

	BaseAmount     float64
	DiscountAmount float64
	TaxAmount      float64
	TransactionFee float64
	TotalAmount    float64

	PaymentMethod    PaymentMethod
	PaymentReference *string
	PaymentConfirmed bool
	PaymentAttempts  int
	Status           BookingStatus
	Entitlement      *EntitlementRef

	RescheduleCount int
	RescheduleCost  float64
	CreditAmount    float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransitionTo changes status if the transition is allowed
func (b *Booking) TransitionTo(to BookingStatus) error {
	if !CanTransition(b.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}
	b.Status = to
	return nil
}

// IsTerminal returns true once the booking is confirmed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusConfirmed
}

// CanReschedule returns true for a confirmed booking that was never rescheduled
func (b *Booking) CanReschedule() bool {
	return b.Status == StatusConfirmed && b.RescheduleCount < MaxReschedules
}

// CanPay returns true if the booking may (re-)enter the payment step
func (b *Booking) CanPay() bool {
	return b.Status == StatusDraft || b.Status == StatusFailed || b.Status == StatusPaymentPending
}

// ApplyQuote copies monetary fields from a quote
func (b *Booking) ApplyQuote(q Quote) {
	r := q.Rounded()
	b.BaseAmount = r.BaseAmount
	b.DiscountAmount = r.DiscountAmount
	b.TaxAmount = r.TaxAmount
	b.TransactionFee = r.TransactionFee
	b.TotalAmount = r.TotalAmount
}

// ValidateSeats checks that the seat set matches the party and has no duplicates
func ValidateSeats(seatIDs []string, party Party) error {
	if len(seatIDs) != party.Total() {
		return fmt.Errorf("%w: %w: %d seats for %d people", ErrValidation, ErrSeatCountMismatch, len(seatIDs), party.Total())
	}
	seen := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %w: %s", ErrValidation, ErrDuplicateSeat, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ReschedulePatch is applied to a confirmed booking in a single update
type ReschedulePatch struct {
	Window         TimeWindow
	SeatIDs        []string
	RescheduleCost float64
	CreditAmount   float64
	CreditID       *int64
}

// RescheduleStatus is the state of a reschedule whose cost difference goes through the gateway
type RescheduleStatus string

const (
	RescheduleStatusPending RescheduleStatus = "pending"
	RescheduleStatusApplied RescheduleStatus = "applied"
	RescheduleStatusFailed  RescheduleStatus = "failed"
)

// PendingReschedule is a reschedule waiting for its payment, keyed by the gateway reference.
// A booking has at most one pending reschedule at a time.
type PendingReschedule struct {
	Reference string
	BookingID int64
	Patch     ReschedulePatch
	Status    RescheduleStatus
	CreatedAt time.Time
}
