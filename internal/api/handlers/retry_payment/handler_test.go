package retry_payment

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
	"github.com/m04kA/SMC-SeatBooking/internal/service/checkout"
	retryPayment "github.com/m04kA/SMC-SeatBooking/internal/usecase/retry_payment"
)

type useCaseFunc func(ctx context.Context, req *retryPayment.Request) (*retryPayment.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *retryPayment.Request) (*retryPayment.Response, error) {
	return f(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pay(uc useCaseFunc, path, body string, withUser bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/pay", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	var got *retryPayment.Request
	uc := useCaseFunc(func(_ context.Context, req *retryPayment.Request) (*retryPayment.Response, error) {
		got = req
		return &retryPayment.Response{
			Booking:     &domain.Booking{ID: req.BookingID, UserID: req.UserID, Status: domain.StatusPaymentPending},
			RedirectURL: "https://gw/pay_2",
		}, nil
	})

	rec := pay(uc, "/bookings/10/pay", `{"paymentMethod":"paynow"}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &retryPayment.Request{BookingID: 10, UserID: 7, PaymentMethod: domain.PaymentMethodPayNow}, got)

	var body struct {
		RedirectURL string `json:"redirectUrl"`
		Confirmed   bool   `json:"confirmed"`
		Booking     struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://gw/pay_2", body.RedirectURL)
	assert.False(t, body.Confirmed)
	assert.Equal(t, int64(10), body.Booking.ID)
	assert.Equal(t, "payment_pending", body.Booking.Status)
}

func TestHandle_EmptyBodyKeepsStoredMethod(t *testing.T) {
	var got *retryPayment.Request
	uc := useCaseFunc(func(_ context.Context, req *retryPayment.Request) (*retryPayment.Response, error) {
		got = req
		return &retryPayment.Response{Booking: &domain.Booking{ID: req.BookingID}, Confirmed: true}, nil
	})

	rec := pay(uc, "/bookings/10/pay", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, got.PaymentMethod)
}

func TestHandle_RequestErrors(t *testing.T) {
	uc := useCaseFunc(func(context.Context, *retryPayment.Request) (*retryPayment.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	})

	assert.Equal(t, http.StatusBadRequest, pay(uc, "/bookings/0/pay", "", true).Code)
	assert.Equal(t, http.StatusUnauthorized, pay(uc, "/bookings/10/pay", "", false).Code)
	assert.Equal(t, http.StatusBadRequest, pay(uc, "/bookings/10/pay", `{"method":"paynow"}`, true).Code)
}

func TestHandle_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not failed", retryPayment.ErrNotRetryable, http.StatusBadRequest},
		{"window already started", fmt.Errorf("%w: %w", retryPayment.ErrInvalidInput, domain.ErrWindowInPast), http.StatusBadRequest},
		{"seats taken", fmt.Errorf("%w: S1", retryPayment.ErrSeatConflict), http.StatusConflict},
		{"entitlement no longer eligible", retryPayment.ErrEntitlementNotEligible, http.StatusUnprocessableEntity},
		{"gateway rejected", checkout.ErrPaymentRejected, http.StatusPaymentRequired},
		{"gateway unavailable", fmt.Errorf("%w: timeout", checkout.ErrGatewayUnavailable), http.StatusServiceUnavailable},
		{"booking not found", retryPayment.ErrBookingNotFound, http.StatusNotFound},
		{"location not found", retryPayment.ErrLocationNotFound, http.StatusNotFound},
		{"someone else's booking", retryPayment.ErrAccessDenied, http.StatusForbidden},
		{"internal", retryPayment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := useCaseFunc(func(context.Context, *retryPayment.Request) (*retryPayment.Response, error) {
				return nil, tt.err
			})

			assert.Equal(t, tt.status, pay(uc, "/bookings/10/pay", "", true).Code)
		})
	}
}
