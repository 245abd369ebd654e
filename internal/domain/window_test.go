package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, time.UTC)
}

func TestTimeWindow_Overlaps(t *testing.T) {
	base := NewTimeWindow(at(10, 10, 0), at(10, 12, 0))

	tests := []struct {
		name  string
		other TimeWindow
		want  bool
	}{
		{"inside", NewTimeWindow(at(10, 10, 30), at(10, 11, 0)), true},
		{"partial start", NewTimeWindow(at(10, 9, 0), at(10, 10, 30)), true},
		{"touching before", NewTimeWindow(at(10, 9, 0), at(10, 10, 0)), false},
		{"touching after", NewTimeWindow(at(10, 12, 0), at(10, 13, 0)), false},
		{"covering", NewTimeWindow(at(10, 8, 0), at(10, 14, 0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeWindow_CalendarDays(t *testing.T) {
	assert.Equal(t, 1, NewTimeWindow(at(10, 10, 0), at(10, 12, 0)).CalendarDays())
	assert.Equal(t, 1, NewTimeWindow(at(10, 22, 0), at(11, 0, 0)).CalendarDays())
	assert.Equal(t, 2, NewTimeWindow(at(10, 22, 0), at(11, 2, 0)).CalendarDays())
	assert.Equal(t, 3, NewTimeWindow(at(10, 22, 0), at(12, 2, 0)).CalendarDays())
	assert.Equal(t, 0, NewTimeWindow(at(10, 12, 0), at(10, 10, 0)).CalendarDays())
}

func TestWindowRules_Validate(t *testing.T) {
	rules := DefaultWindowRules()
	now := at(1, 0, 0)

	tests := []struct {
		name    string
		window  TimeWindow
		wantErr error
	}{
		{"same day", NewTimeWindow(at(10, 9, 0), at(10, 17, 0)), nil},
		{"end before start", NewTimeWindow(at(10, 12, 0), at(10, 11, 0)), ErrInvalidWindow},
		{"empty", NewTimeWindow(at(10, 12, 0), at(10, 12, 0)), ErrInvalidWindow},
		{"in the past", NewTimeWindow(at(1, 0, 0).Add(-time.Hour), at(1, 2, 0)), ErrWindowInPast},
		{"overnight from evening to cutoff", NewTimeWindow(at(10, 20, 0), at(11, 6, 0)), nil},
		{"ends at midnight", NewTimeWindow(at(10, 9, 0), at(11, 0, 0)), nil},
		{"overnight starting too early", NewTimeWindow(at(10, 15, 0), at(11, 2, 0)), ErrCrossMidnightNotAllowed},
		{"overnight ending after cutoff", NewTimeWindow(at(10, 20, 0), at(11, 6, 30)), ErrCrossMidnightNotAllowed},
		{"three calendar days", NewTimeWindow(at(10, 20, 0), at(12, 2, 0)), ErrWindowTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.Validate(tt.window, now)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}
