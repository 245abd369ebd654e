package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// PartyResponse состав группы
type PartyResponse struct {
	Members  int `json:"members"`
	Tutors   int `json:"tutors"`
	Students int `json:"students"`
}

// EntitlementResponse применённый entitlement
type EntitlementResponse struct {
	Kind   string  `json:"kind"`
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Hours  float64 `json:"hours,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64         `json:"id"`
	ReferenceCode string        `json:"referenceCode"`
	UserID        int64         `json:"userId"`
	MemberType    string        `json:"memberType"`
	LocationID    int64         `json:"locationId"`
	StartAt       time.Time     `json:"startAt"`
	EndAt         time.Time     `json:"endAt"`
	Hours         float64       `json:"hours"`
	Party         PartyResponse `json:"party"`
	SeatIDs       []string      `json:"seatIds"`
	Status        string        `json:"status"`

	// Стоимость
	BaseAmount     float64 `json:"baseAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	TransactionFee float64 `json:"transactionFee"`
	TotalAmount    float64 `json:"totalAmount"`

	PaymentMethod    string               `json:"paymentMethod,omitempty"`
	PaymentReference *string              `json:"paymentReference,omitempty"`
	PaymentConfirmed bool                 `json:"paymentConfirmed"`
	Entitlement      *EntitlementResponse `json:"entitlement,omitempty"`

	RescheduleCount int     `json:"rescheduleCount"`
	RescheduleCost  float64 `json:"rescheduleCost"`
	CreditAmount    float64 `json:"creditAmount"`
	CanReschedule   bool    `json:"canReschedule"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		ReferenceCode: b.ReferenceCode,
		UserID:        b.UserID,
		MemberType:    string(b.MemberType),
		LocationID:    b.LocationID,
		StartAt:       b.Window.Start,
		EndAt:         b.Window.End,
		Hours:         b.Window.Hours(),
		Party: PartyResponse{
			Members:  b.Party.Members,
			Tutors:   b.Party.Tutors,
			Students: b.Party.Students,
		},
		SeatIDs:          b.SeatIDs,
		Status:           string(b.Status),
		BaseAmount:       b.BaseAmount,
		DiscountAmount:   b.DiscountAmount,
		TaxAmount:        b.TaxAmount,
		TransactionFee:   b.TransactionFee,
		TotalAmount:      b.TotalAmount,
		PaymentMethod:    string(b.PaymentMethod),
		PaymentReference: b.PaymentReference,
		PaymentConfirmed: b.PaymentConfirmed,
		RescheduleCount:  b.RescheduleCount,
		RescheduleCost:   b.RescheduleCost,
		CreditAmount:     b.CreditAmount,
		CanReschedule:    b.CanReschedule(),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.Entitlement != nil {
		resp.Entitlement = &EntitlementResponse{
			Kind:   string(b.Entitlement.Kind),
			ID:     b.Entitlement.ID,
			Amount: b.Entitlement.Amount,
			Hours:  b.Entitlement.Hours,
		}
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusDraft, domain.StatusPaymentPending, domain.StatusConfirmed, domain.StatusFailed:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
