package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/bookings/models"
)

// WindowRequest временное окно в формате RFC 3339
type WindowRequest struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// ToDomain конвертирует окно в domain модель
func (w WindowRequest) ToDomain() domain.TimeWindow {
	return domain.NewTimeWindow(w.StartAt, w.EndAt)
}

// PartyRequest состав группы
type PartyRequest = models.PartyResponse

// PartyToDomain конвертирует состав группы в domain модель
func PartyToDomain(p PartyRequest) domain.Party {
	return domain.Party{Members: p.Members, Tutors: p.Tutors, Students: p.Students}
}

// SelectionRequest выбранный entitlement
type SelectionRequest struct {
	Kind         string  `json:"kind"`
	ID           int64   `json:"id,omitempty"`
	Code         string  `json:"code,omitempty"`
	CreditAmount float64 `json:"creditAmount,omitempty"`
	UseMax       bool    `json:"useMax,omitempty"`
}

// ToDomain конвертирует выбор в domain модель; nil остаётся nil
func (s *SelectionRequest) ToDomain() *domain.Selection {
	if s == nil {
		return nil
	}
	return &domain.Selection{
		Kind:         domain.EntitlementKind(s.Kind),
		ID:           s.ID,
		Code:         s.Code,
		CreditAmount: s.CreditAmount,
		UseMax:       s.UseMax,
	}
}

// QuoteResponse разбивка стоимости
type QuoteResponse struct {
	BaseAmount     float64 `json:"baseAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	TransactionFee float64 `json:"transactionFee"`
	TotalAmount    float64 `json:"totalAmount"`
}

// FromDomainQuote конвертирует котировку в DTO
func FromDomainQuote(q domain.Quote) QuoteResponse {
	return QuoteResponse{
		BaseAmount:     q.BaseAmount,
		DiscountAmount: q.DiscountAmount,
		TaxAmount:      q.TaxAmount,
		TransactionFee: q.TransactionFee,
		TotalAmount:    q.TotalAmount,
	}
}

// PathID извлекает положительный int64 параметр пути
func PathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
