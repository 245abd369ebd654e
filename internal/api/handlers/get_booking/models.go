package get_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/bookings/models"
)

// Action доступное клиенту действие над бронированием
type Action struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Href   string `json:"href"`
}

// BookingView бронирование вместе с доступными действиями
type BookingView struct {
	*models.BookingResponse
	Actions []Action `json:"actions"`
}

// NewBookingView определяет действия по статусу бронирования:
// неуспешную оплату можно повторить, подтверждённое бронирование - перенести.
func NewBookingView(b *models.BookingResponse) *BookingView {
	actions := make([]Action, 0, 1)

	switch domain.BookingStatus(b.Status) {
	case domain.StatusFailed:
		actions = append(actions, Action{
			Name:   "pay",
			Method: "POST",
			Href:   fmt.Sprintf("/api/v1/bookings/%d/pay", b.ID),
		})
	case domain.StatusConfirmed:
		if b.CanReschedule {
			actions = append(actions, Action{
				Name:   "reschedule",
				Method: "POST",
				Href:   fmt.Sprintf("/api/v1/bookings/%d/reschedule", b.ID),
			})
		}
	}

	return &BookingView{BookingResponse: b, Actions: actions}
}
