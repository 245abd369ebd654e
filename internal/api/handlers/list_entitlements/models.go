package list_entitlements

import (
	"time"

	"github.com/samber/lo"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	listEntitlements "github.com/m04kA/SMC-SeatBooking/internal/usecase/list_entitlements"
)

// PackageResponse пакет часов
type PackageResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	RemainingPasses int       `json:"remainingPasses"`
	HoursAllowed    float64   `json:"hoursAllowed"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// PromoCodeResponse промокод
type PromoCodeResponse struct {
	ID              int64     `json:"id"`
	Code            string    `json:"code"`
	DiscountType    string    `json:"discountType"`
	DiscountValue   float64   `json:"discountValue"`
	MaximumDiscount *float64  `json:"maximumDiscount,omitempty"`
	MinimumAmount   float64   `json:"minimumAmount"`
	MinimumHours    *float64  `json:"minimumHours,omitempty"`
	ActiveTo        time.Time `json:"activeTo"`
}

// CreditResponse кредит магазина
type CreditResponse struct {
	ID              int64     `json:"id"`
	AmountRemaining float64   `json:"amountRemaining"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// EntitlementsResponse HTTP response model
type EntitlementsResponse struct {
	Packages   []PackageResponse   `json:"packages"`
	PromoCodes []PromoCodeResponse `json:"promoCodes"`
	Credits    []CreditResponse    `json:"credits"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listEntitlements.Response) *EntitlementsResponse {
	return &EntitlementsResponse{
		Packages: lo.Map(resp.Packages, func(p domain.PackagePass, _ int) PackageResponse {
			return PackageResponse{
				ID:              p.ID,
				Name:            p.Name,
				RemainingPasses: p.RemainingPasses,
				HoursAllowed:    p.HoursAllowed,
				ExpiresAt:       p.ExpiresAt,
			}
		}),
		PromoCodes: lo.Map(resp.PromoCodes, func(p domain.PromoCode, _ int) PromoCodeResponse {
			return PromoCodeResponse{
				ID:              p.ID,
				Code:            p.Code,
				DiscountType:    string(p.DiscountType),
				DiscountValue:   p.DiscountValue,
				MaximumDiscount: p.MaximumDiscount,
				MinimumAmount:   p.MinimumAmount,
				MinimumHours:    p.MinimumHours,
				ActiveTo:        p.ActiveTo,
			}
		}),
		Credits: lo.Map(resp.Credits, func(c domain.StoreCredit, _ int) CreditResponse {
			return CreditResponse{
				ID:              c.ID,
				AmountRemaining: c.AmountRemaining,
				ExpiresAt:       c.ExpiresAt,
			}
		}),
	}
}
