package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SeatBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	MemberType    string                     `json:"memberType,omitempty"`
	LocationID    int64                      `json:"locationId"`
	Window        handlers.WindowRequest     `json:"window"`
	Party         handlers.PartyRequest      `json:"party"`
	SeatIDs       []string                   `json:"seatIds"`
	Entitlement   *handlers.SelectionRequest `json:"entitlement,omitempty"`
	PaymentMethod string                     `json:"paymentMethod,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64                  `json:"id"`
	ReferenceCode    string                 `json:"referenceCode"`
	Status           string                 `json:"status"`
	LocationID       int64                  `json:"locationId"`
	StartAt          time.Time              `json:"startAt"`
	EndAt            time.Time              `json:"endAt"`
	Party            handlers.PartyRequest  `json:"party"`
	SeatIDs          []string               `json:"seatIds"`
	Quote            handlers.QuoteResponse `json:"quote"`
	PaymentMethod    string                 `json:"paymentMethod,omitempty"`
	PaymentReference *string                `json:"paymentReference,omitempty"`
	RedirectURL      string                 `json:"redirectUrl,omitempty"`
	CreatedAt        string                 `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:        userID,
		MemberType:    domain.MemberType(r.MemberType),
		LocationID:    r.LocationID,
		Window:        r.Window.ToDomain(),
		Party:         handlers.PartyToDomain(r.Party),
		SeatIDs:       r.SeatIDs,
		Entitlement:   r.Entitlement.ToDomain(),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		ReferenceCode: resp.ReferenceCode,
		Status:        string(resp.Status),
		LocationID:    resp.LocationID,
		StartAt:       resp.Window.Start,
		EndAt:         resp.Window.End,
		Party: handlers.PartyRequest{
			Members:  resp.Party.Members,
			Tutors:   resp.Party.Tutors,
			Students: resp.Party.Students,
		},
		SeatIDs:          resp.SeatIDs,
		Quote:            handlers.FromDomainQuote(resp.Quote),
		PaymentMethod:    string(resp.PaymentMethod),
		PaymentReference: resp.PaymentReference,
		RedirectURL:      resp.RedirectURL,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
