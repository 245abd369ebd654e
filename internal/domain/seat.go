package domain

// SeatHold is a seat occupied by a booking over some window
type SeatHold struct {
	SeatID    string
	BookingID int64
}

// SeatSnapshot is a point-in-time view of seat availability for one (location, window).
// It can go stale; the booking store is the authoritative arbiter.
type SeatSnapshot struct {
	Available      []string
	BookedByOthers []string
	ConflictingOwn []string
}

// RequiresReselection returns true when the booking's own seats were taken by someone else
func (s SeatSnapshot) RequiresReselection() bool {
	return len(s.ConflictingOwn) > 0
}

// HasCapacity returns true if enough seats are free for the party
func (s SeatSnapshot) HasCapacity(partySize int) bool {
	return len(s.Available) >= partySize
}
