package domain

import (
	"fmt"
	"time"
)

// TimeWindow is a half-open interval [Start, End) of a reservation
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow creates a window from two instants
func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: start, End: end}
}

// IsValid returns true if End is strictly after Start
func (w TimeWindow) IsValid() bool {
	return w.End.After(w.Start)
}

// Duration returns the length of the window
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Hours returns the length of the window in fractional hours
func (w TimeWindow) Hours() float64 {
	return w.Duration().Hours()
}

// Overlaps reports whether two windows share any instant.
// Touching windows (one ends exactly where the other starts) do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// CalendarDays returns the number of calendar dates the window touches.
// A window ending exactly at midnight does not touch the next date.
func (w TimeWindow) CalendarDays() int {
	if !w.IsValid() {
		return 0
	}
	last := w.End.Add(-time.Nanosecond)
	startDate := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, time.UTC)
	lastDate := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
	return int(lastDate.Sub(startDate).Hours()/24) + 1
}

// CrossesMidnight returns true if the window touches more than one calendar date
func (w TimeWindow) CrossesMidnight() bool {
	return w.CalendarDays() > 1
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format(DateTimeFormat), w.End.Format(DateTimeFormat))
}

// WindowRules duration constraints applied to every window before it reaches the server
type WindowRules struct {
	EveningStartHour  int
	NextDayCutoffHour int
}

// DefaultWindowRules returns rules with the default evening/cutoff hours
func DefaultWindowRules() WindowRules {
	return WindowRules{
		EveningStartHour:  DefaultEveningStartHour,
		NextDayCutoffHour: DefaultNextDayCutoffHour,
	}
}

// Validate checks the window against the duration rules:
// end > start, not in the past, overnight only from the evening hour to the next-day
// cutoff hour, and at most two calendar days.
func (r WindowRules) Validate(w TimeWindow, now time.Time) error {
	if !w.IsValid() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidWindow)
	}

	if w.Start.Before(now) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrWindowInPast)
	}

	days := w.CalendarDays()
	if days > MaxCalendarDays {
		return fmt.Errorf("%w: %w", ErrValidation, ErrWindowTooLong)
	}

	if days == 1 {
		return nil
	}

	if w.Start.Hour() < r.EveningStartHour {
		return fmt.Errorf("%w: %w: starts at %s", ErrValidation, ErrCrossMidnightNotAllowed, w.Start.Format(TimeFormat))
	}

	endMinutes := w.End.Hour()*60 + w.End.Minute()
	if endMinutes > r.NextDayCutoffHour*60 || (endMinutes == r.NextDayCutoffHour*60 && (w.End.Second() > 0 || w.End.Nanosecond() > 0)) {
		return fmt.Errorf("%w: %w: ends at %s", ErrValidation, ErrCrossMidnightNotAllowed, w.End.Format(TimeFormat))
	}

	return nil
}
