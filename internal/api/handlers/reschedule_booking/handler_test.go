package reschedule_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-SeatBooking/internal/usecase/reschedule_booking"
)

type useCaseFunc func(ctx context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	return f(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"window": {"startAt": "2026-03-11T10:00:00Z", "endAt": "2026-03-11T14:00:00Z"},
	"credit": {"kind": "store_credit", "id": 9, "useMax": true},
	"paymentMethod": "paynow"
}`

func reschedule(uc useCaseFunc, path, body string, withUser bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/reschedule", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_StatusDependsOnPayment(t *testing.T) {
	tests := []struct {
		name     string
		resp     *rescheduleBooking.Response
		status   int
		redirect string
	}{
		{
			name:   "applied immediately",
			resp:   &rescheduleBooking.Response{Booking: &domain.Booking{ID: 10, Status: domain.StatusConfirmed}, CostDifference: 0},
			status: http.StatusOK,
		},
		{
			name: "awaits payment",
			resp: &rescheduleBooking.Response{
				Booking:          &domain.Booking{ID: 10, Status: domain.StatusConfirmed},
				CostDifference:   10,
				CreditApplied:    4,
				AmountDue:        6,
				PaymentRequired:  true,
				RedirectURL:      "https://gw/pay_r",
				PaymentReference: "pay_r",
			},
			status:   http.StatusAccepted,
			redirect: "https://gw/pay_r",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *rescheduleBooking.Request
			uc := useCaseFunc(func(_ context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
				got = req
				return tt.resp, nil
			})

			rec := reschedule(uc, "/bookings/10/reschedule", validBody, true)

			require.Equal(t, tt.status, rec.Code)
			require.NotNil(t, got)
			assert.Equal(t, int64(10), got.BookingID)
			assert.Equal(t, int64(7), got.UserID)
			assert.Equal(t, &domain.Selection{Kind: domain.EntitlementStoreCredit, ID: 9, UseMax: true}, got.Credit)
			assert.Equal(t, domain.PaymentMethodPayNow, got.PaymentMethod)
			assert.Equal(t, 4.0, got.Window.Duration().Hours())

			var body RescheduleResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.resp.PaymentRequired, body.PaymentRequired)
			assert.Equal(t, tt.resp.AmountDue, body.AmountDue)
			assert.Equal(t, tt.redirect, body.RedirectURL)
		})
	}
}

func TestHandle_RequestErrors(t *testing.T) {
	uc := useCaseFunc(func(context.Context, *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	})

	assert.Equal(t, http.StatusBadRequest, reschedule(uc, "/bookings/abc/reschedule", validBody, true).Code)
	assert.Equal(t, http.StatusUnauthorized, reschedule(uc, "/bookings/10/reschedule", validBody, false).Code)
	assert.Equal(t, http.StatusBadRequest, reschedule(uc, "/bookings/10/reschedule", "", true).Code)
}

func TestHandle_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"shorter window", rescheduleBooking.ErrDurationDecrease, http.StatusBadRequest},
		{"promo instead of credit", rescheduleBooking.ErrOnlyStoreCredit, http.StatusBadRequest},
		{"already rescheduled", rescheduleBooking.ErrRescheduleNotAllowed, http.StatusBadRequest},
		{"previous reschedule unpaid", rescheduleBooking.ErrReschedulePending, http.StatusConflict},
		{"seats must be reselected", rescheduleBooking.ErrSeatsReselectRequired, http.StatusConflict},
		{"gateway rejected", fmt.Errorf("%w: card declined", rescheduleBooking.ErrPaymentRejected), http.StatusPaymentRequired},
		{"gateway unavailable", rescheduleBooking.ErrGatewayUnavailable, http.StatusServiceUnavailable},
		{"booking not found", rescheduleBooking.ErrBookingNotFound, http.StatusNotFound},
		{"someone else's booking", rescheduleBooking.ErrAccessDenied, http.StatusForbidden},
		{"internal", rescheduleBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := useCaseFunc(func(context.Context, *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
				return nil, tt.err
			})

			assert.Equal(t, tt.status, reschedule(uc, "/bookings/10/reschedule", validBody, true).Code)
		})
	}
}
