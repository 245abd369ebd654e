package quote_price

import (
	"github.com/m04kA/SMC-SeatBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	quotePrice "github.com/m04kA/SMC-SeatBooking/internal/usecase/quote_price"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	MemberType    string                     `json:"memberType,omitempty"`
	Window        handlers.WindowRequest     `json:"window"`
	Party         handlers.PartyRequest      `json:"party"`
	Entitlement   *handlers.SelectionRequest `json:"entitlement,omitempty"`
	PaymentMethod string                     `json:"paymentMethod,omitempty"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	handlers.QuoteResponse
	Hours        float64 `json:"hours"`
	HourlyRate   float64 `json:"hourlyRate"`
	AppliedHours float64 `json:"appliedHours,omitempty"`
	Cleared      bool    `json:"entitlementCleared"`
	Notice       string  `json:"notice,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(userID int64) *quotePrice.Request {
	return &quotePrice.Request{
		UserID:        userID,
		MemberType:    domain.MemberType(r.MemberType),
		Window:        r.Window.ToDomain(),
		Party:         handlers.PartyToDomain(r.Party),
		Entitlement:   r.Entitlement.ToDomain(),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	return &QuoteResponse{
		QuoteResponse: handlers.FromDomainQuote(resp.Quote),
		Hours:         resp.Hours,
		HourlyRate:    resp.HourlyRate,
		AppliedHours:  resp.AppliedHours,
		Cleared:       resp.Cleared,
		Notice:        resp.Notice,
	}
}
