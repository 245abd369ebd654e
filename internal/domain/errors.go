package domain

import "errors"

// Error kinds shared by all layers. Use-case errors wrap exactly one of them
// so transport code can map a failure without knowing every sentinel.
var (
	// ErrValidation bad time window, seat-count mismatch, duration-rule violation
	ErrValidation = errors.New("validation error")

	// ErrEligibility entitlement no longer qualifies
	ErrEligibility = errors.New("eligibility error")

	// ErrConflict seats taken by a concurrent booking
	ErrConflict = errors.New("conflict error")

	// ErrPaymentFailure gateway reported a non-success status
	ErrPaymentFailure = errors.New("payment failure")

	// ErrConfirmation server-side confirmation failed after a successful payment
	ErrConfirmation = errors.New("confirmation error")
)

var (
	ErrInvalidWindow           = errors.New("end must be after start")
	ErrWindowInPast            = errors.New("time window starts in the past")
	ErrCrossMidnightNotAllowed = errors.New("overnight bookings must start in the evening and end before the next-day cutoff")
	ErrWindowTooLong           = errors.New("time window spans more than two calendar days")
	ErrInvalidParty            = errors.New("party must contain at least one person")
	ErrSeatCountMismatch       = errors.New("number of seats must match party size")
	ErrDuplicateSeat           = errors.New("seat selected more than once")
	ErrInvalidTransition       = errors.New("invalid booking status transition")
	ErrUnknownEntitlement      = errors.New("unknown entitlement kind")
)
