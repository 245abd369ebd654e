package ratecard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/ratecard"
)

func testEntries() []domain.RateCardEntry {
	return []domain.RateCardEntry{
		{MemberType: domain.MemberTypeMember, Bucket: domain.BucketShort, HourlyRate: 6},
		{MemberType: domain.MemberTypeMember, Bucket: domain.BucketStandard, HourlyRate: 5},
		{MemberType: domain.MemberTypeStudent, Bucket: domain.BucketShort, HourlyRate: 4},
		{MemberType: domain.MemberTypeStudent, Bucket: domain.BucketStandard, HourlyRate: 3},
	}
}

func TestTable_Rate(t *testing.T) {
	table := ratecard.NewTable(testEntries())

	rate, err := table.Rate(domain.MemberTypeMember, 1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, rate)

	rate, err = table.Rate(domain.MemberTypeMember, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rate)

	_, err = table.Rate(domain.MemberTypeTutor, 2)
	assert.ErrorIs(t, err, ratecard.ErrRateNotFound)
}

func TestTable_BaseAmount(t *testing.T) {
	table := ratecard.NewTable(testEntries())

	// duration * rate * pax для одной роли
	base, err := table.BaseAmount(domain.Party{Members: 2}, 3)
	require.NoError(t, err)
	assert.Equal(t, 30.0, base)

	// сумма по ролям
	base, err = table.BaseAmount(domain.Party{Members: 1, Students: 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2*5.0+2*2*3.0, base)

	_, err = table.BaseAmount(domain.Party{Tutors: 1}, 2)
	assert.ErrorIs(t, err, ratecard.ErrRateNotFound)
}
