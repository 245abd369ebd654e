package domain

import (
	"fmt"
	"time"
)

// EntitlementKind discriminates the entitlement variants
type EntitlementKind string

const (
	EntitlementPackagePass EntitlementKind = "package_pass"
	EntitlementPromoCode   EntitlementKind = "promo_code"
	EntitlementStoreCredit EntitlementKind = "store_credit"
)

// Entitlement is a discount-granting object applicable to a booking.
// The set of implementations is closed: PackagePass, PromoCode and StoreCredit.
// A booking holds at most one, so switching kind replaces the previous selection entirely.
type Entitlement interface {
	Kind() EntitlementKind
	EntitlementID() int64
	entitlement()
}

// PackagePass is a prepaid, count-limited allowance of hours usable by one party member
type PackagePass struct {
	ID              int64
	UserID          int64
	Name            string
	RemainingPasses int
	HoursAllowed    float64
	ExpiresAt       time.Time
}

func (PackagePass) Kind() EntitlementKind  { return EntitlementPackagePass }
func (p PackagePass) EntitlementID() int64 { return p.ID }
func (PackagePass) entitlement()           {}

// IsSelectable returns false for exhausted or expired passes
func (p PackagePass) IsSelectable(now time.Time) bool {
	return p.RemainingPasses > 0 && now.Before(p.ExpiresAt)
}

// DiscountType of a promo code
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PromoCode is a code-based discount with eligibility rules and usage caps
type PromoCode struct {
	ID              int64
	Code            string
	DiscountType    DiscountType
	DiscountValue   float64
	MaximumDiscount *float64 // cap for percentage discounts, nil = uncapped
	MinimumAmount   float64
	MinimumHours    *float64
	MaxUsagePerUser int
	MaxTotalUsage   *int // nil = no global cap
	UserUsageCount  int  // usage by the requesting user
	TotalUsageCount int
	ActiveFrom      time.Time
	ActiveTo        time.Time
}

func (PromoCode) Kind() EntitlementKind  { return EntitlementPromoCode }
func (p PromoCode) EntitlementID() int64 { return p.ID }
func (PromoCode) entitlement()           {}

// IsActiveAt returns true if now lies within [ActiveFrom, ActiveTo]
func (p PromoCode) IsActiveAt(now time.Time) bool {
	return !now.Before(p.ActiveFrom) && !now.After(p.ActiveTo)
}

// StoreCredit is a monetary balance issued to a user.
// Requested and UseMax describe how much of it the user applies to the current booking.
type StoreCredit struct {
	ID              int64
	UserID          int64
	AmountRemaining float64
	IssuedAt        time.Time
	ExpiresAt       time.Time

	Requested float64
	UseMax    bool
}

func (StoreCredit) Kind() EntitlementKind  { return EntitlementStoreCredit }
func (c StoreCredit) EntitlementID() int64 { return c.ID }
func (StoreCredit) entitlement()           {}

// IsSelectable returns false for empty or expired credit
func (c StoreCredit) IsSelectable(now time.Time) bool {
	return c.AmountRemaining > 0 && now.Before(c.ExpiresAt)
}

// EntitlementRef is the persisted trace of the entitlement applied to a booking
type EntitlementRef struct {
	Kind   EntitlementKind
	ID     int64
	Amount float64 // discount granted
	Hours  float64 // package pass hours applied
}

// NewEntitlementRef builds a reference for an applied entitlement
func NewEntitlementRef(e Entitlement, discount float64, hours float64) *EntitlementRef {
	if e == nil {
		return nil
	}
	return &EntitlementRef{
		Kind:   e.Kind(),
		ID:     e.EntitlementID(),
		Amount: discount,
		Hours:  hours,
	}
}

// Selection is the user's choice of an entitlement before it is loaded from its provider
type Selection struct {
	Kind         EntitlementKind
	ID           int64
	Code         string  // promo code typed by the user, used when ID is zero
	CreditAmount float64 // store credit to apply
	UseMax       bool    // apply as much store credit as allowed
}

// Validate checks the selection references exactly one known entitlement
func (s Selection) Validate() error {
	switch s.Kind {
	case EntitlementPackagePass, EntitlementStoreCredit:
		if s.ID <= 0 {
			return fmt.Errorf("%w: %s id is required", ErrValidation, s.Kind)
		}
	case EntitlementPromoCode:
		if s.ID <= 0 && s.Code == "" {
			return fmt.Errorf("%w: promo code id or code is required", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrUnknownEntitlement, s.Kind)
	}
	if s.CreditAmount < 0 {
		return fmt.Errorf("%w: credit amount must not be negative", ErrValidation)
	}
	return nil
}
