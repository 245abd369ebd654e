package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusDraft, StatusPaymentPending))
	assert.True(t, CanTransition(StatusPaymentPending, StatusConfirmed))
	assert.True(t, CanTransition(StatusPaymentPending, StatusFailed))
	assert.True(t, CanTransition(StatusFailed, StatusPaymentPending))

	assert.False(t, CanTransition(StatusConfirmed, StatusDraft))
	assert.False(t, CanTransition(StatusConfirmed, StatusPaymentPending))
	assert.False(t, CanTransition(StatusDraft, StatusConfirmed))
}

func TestBooking_TransitionTo(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}

	err := b.TransitionTo(StatusDraft)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusConfirmed, b.Status)

	b.Status = StatusPaymentPending
	require.NoError(t, b.TransitionTo(StatusFailed))
	assert.Equal(t, StatusFailed, b.Status)
}

func TestBooking_CanReschedule(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}
	assert.True(t, b.CanReschedule())

	b.RescheduleCount = 1
	assert.False(t, b.CanReschedule())

	b = &Booking{Status: StatusPaymentPending}
	assert.False(t, b.CanReschedule())
}

func TestValidateSeats(t *testing.T) {
	party := Party{Members: 1, Students: 1}

	require.NoError(t, ValidateSeats([]string{"S1", "S2"}, party))
	assert.ErrorIs(t, ValidateSeats([]string{"S1"}, party), ErrSeatCountMismatch)
	assert.ErrorIs(t, ValidateSeats([]string{"S1", "S1"}, party), ErrDuplicateSeat)
}

func TestParty_Validate(t *testing.T) {
	assert.NoError(t, Party{Tutors: 2}.Validate())
	assert.ErrorIs(t, Party{}.Validate(), ErrInvalidParty)
	assert.ErrorIs(t, Party{Members: -1, Tutors: 2}.Validate(), ErrInvalidParty)
}

func TestBucketFor(t *testing.T) {
	assert.Equal(t, BucketShort, BucketFor(0.5))
	assert.Equal(t, BucketShort, BucketFor(1))
	assert.Equal(t, BucketStandard, BucketFor(1.5))
}

func TestSelection_Validate(t *testing.T) {
	assert.NoError(t, Selection{Kind: EntitlementPackagePass, ID: 1}.Validate())
	assert.NoError(t, Selection{Kind: EntitlementPromoCode, Code: "SAVE20"}.Validate())
	assert.NoError(t, Selection{Kind: EntitlementStoreCredit, ID: 3, UseMax: true}.Validate())

	assert.ErrorIs(t, Selection{Kind: EntitlementPromoCode}.Validate(), ErrValidation)
	assert.ErrorIs(t, Selection{Kind: EntitlementStoreCredit}.Validate(), ErrValidation)
	assert.ErrorIs(t, Selection{Kind: "voucher", ID: 1}.Validate(), ErrUnknownEntitlement)
	assert.ErrorIs(t, Selection{Kind: EntitlementStoreCredit, ID: 1, CreditAmount: -1}.Validate(), ErrValidation)
}
