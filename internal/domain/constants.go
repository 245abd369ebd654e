package domain

import "time"

// Default booking rules
const (
	DefaultEveningStartHour  = 18 // cross-midnight bookings may start from 18:00
	DefaultNextDayCutoffHour = 6  // and must end no later than 06:00 next day
	MaxCalendarDays          = 2
	MaxReschedules           = 1
)

// Reschedule policy
const (
	MinRescheduleIncrease = time.Hour
)

// Pricing constants
const (
	PayNowFeeThreshold   = 10.0
	ShortBucketMaxHours  = 1.0
	DefaultRecomputeWait = 500 * time.Millisecond
)

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = time.RFC3339
)

// ActiveStatuses статусы бронирований, удерживающих места
var ActiveStatuses = []BookingStatus{
	StatusPaymentPending,
	StatusConfirmed,
}
