package apply_promo_code

import (
	"github.com/m04kA/SMC-SeatBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	applyPromoCode "github.com/m04kA/SMC-SeatBooking/internal/usecase/apply_promo_code"
)

// ApplyPromoRequest HTTP request model
type ApplyPromoRequest struct {
	Code       string                 `json:"code"`
	MemberType string                 `json:"memberType,omitempty"`
	Window     handlers.WindowRequest `json:"window"`
	Party      handlers.PartyRequest  `json:"party"`
}

// ApplyPromoResponse HTTP response model
type ApplyPromoResponse struct {
	PromoID        int64                  `json:"promoId"`
	Code           string                 `json:"code"`
	DiscountType   string                 `json:"discountType"`
	BaseAmount     float64                `json:"baseAmount"`
	DiscountAmount float64                `json:"discountAmount"`
	FinalAmount    float64                `json:"finalAmount"`
	Quote          handlers.QuoteResponse `json:"quote"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyPromoRequest) ToUseCaseRequest(userID int64) *applyPromoCode.Request {
	return &applyPromoCode.Request{
		UserID:     userID,
		Code:       r.Code,
		MemberType: domain.MemberType(r.MemberType),
		Window:     r.Window.ToDomain(),
		Party:      handlers.PartyToDomain(r.Party),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyPromoCode.Response) *ApplyPromoResponse {
	return &ApplyPromoResponse{
		PromoID:        resp.PromoID,
		Code:           resp.Code,
		DiscountType:   string(resp.DiscountType),
		BaseAmount:     resp.BaseAmount,
		DiscountAmount: resp.DiscountAmount,
		FinalAmount:    resp.FinalAmount,
		Quote:          handlers.FromDomainQuote(resp.Quote),
	}
}
