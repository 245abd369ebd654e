package domain

import "fmt"

// MemberType is the pricing role of a person in the party
type MemberType string

const (
	MemberTypeMember  MemberType = "member"
	MemberTypeTutor   MemberType = "tutor"
	MemberTypeStudent MemberType = "student"
)

// MemberTypes lists every role in a stable order
var MemberTypes = []MemberType{
	MemberTypeMember,
	MemberTypeTutor,
	MemberTypeStudent,
}

// IsValid returns true for a known member type
func (m MemberType) IsValid() bool {
	switch m {
	case MemberTypeMember, MemberTypeTutor, MemberTypeStudent:
		return true
	default:
		return false
	}
}

// Party is the composition of people covered by one booking
type Party struct {
	Members  int
	Tutors   int
	Students int
}

// Total returns the party size
func (p Party) Total() int {
	return p.Members + p.Tutors + p.Students
}

// Count returns the number of people with the given role
func (p Party) Count(m MemberType) int {
	switch m {
	case MemberTypeMember:
		return p.Members
	case MemberTypeTutor:
		return p.Tutors
	case MemberTypeStudent:
		return p.Students
	default:
		return 0
	}
}

// Validate checks counts are non-negative and the party is not empty
func (p Party) Validate() error {
	if p.Members < 0 || p.Tutors < 0 || p.Students < 0 {
		return fmt.Errorf("%w: %w: negative count", ErrValidation, ErrInvalidParty)
	}
	if p.Total() == 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidParty)
	}
	return nil
}
