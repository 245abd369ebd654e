package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/checkout"
	createBooking "github.com/m04kA/SMC-SeatBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SeatBooking/pkg/ptr"
)

type useCaseFunc func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return f(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"locationId": 2,
	"window": {"startAt": "2026-03-11T10:00:00Z", "endAt": "2026-03-11T12:00:00Z"},
	"party": {"members": 1, "tutors": 0, "students": 1},
	"seatIds": ["S1", "S2"],
	"entitlement": {"kind": "promo_code", "code": "SPRING"},
	"paymentMethod": "credit_card"
}`

func post(uc useCaseFunc, body string, withUser bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	window := domain.NewTimeWindow(start, start.Add(2*time.Hour))

	var got *createBooking.Request
	uc := useCaseFunc(func(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		got = req
		return &createBooking.Response{
			ID:               10,
			ReferenceCode:    "BK10",
			Status:           domain.StatusPaymentPending,
			LocationID:       req.LocationID,
			Window:           req.Window,
			Party:            req.Party,
			SeatIDs:          req.SeatIDs,
			Quote:            domain.Quote{BaseAmount: 20, DiscountAmount: 2, TaxAmount: 1.62, TransactionFee: 0.58, TotalAmount: 20.2},
			PaymentMethod:    req.PaymentMethod,
			PaymentReference: ptr.Ptr("pay_10"),
			RedirectURL:      "https://gw/pay_10",
			CreatedAt:        start.Add(-24 * time.Hour),
		}, nil
	})

	rec := post(uc, validBody, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, int64(2), got.LocationID)
	assert.True(t, got.Window.Start.Equal(window.Start))
	assert.True(t, got.Window.End.Equal(window.End))
	assert.Equal(t, domain.Party{Members: 1, Students: 1}, got.Party)
	assert.Equal(t, []string{"S1", "S2"}, got.SeatIDs)
	assert.Equal(t, &domain.Selection{Kind: domain.EntitlementPromoCode, Code: "SPRING"}, got.Entitlement)
	assert.Equal(t, domain.PaymentMethodCreditCard, got.PaymentMethod)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(10), body.ID)
	assert.Equal(t, "payment_pending", body.Status)
	assert.Equal(t, "https://gw/pay_10", body.RedirectURL)
	assert.Equal(t, 20.2, body.Quote.TotalAmount)
	assert.Equal(t, "2026-03-10T10:00:00Z", body.CreatedAt)
}

func TestHandle_RequestErrors(t *testing.T) {
	uc := useCaseFunc(func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	})

	assert.Equal(t, http.StatusUnauthorized, post(uc, validBody, false).Code)
	assert.Equal(t, http.StatusBadRequest, post(uc, `{"locationId":`, true).Code)
	assert.Equal(t, http.StatusBadRequest, post(uc, `{"locationId": 2, "voucher": "X"}`, true).Code)
}

func TestHandle_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid party", fmt.Errorf("%w: %w", createBooking.ErrInvalidInput, domain.ErrInvalidParty), http.StatusBadRequest},
		{"payment method missing", createBooking.ErrPaymentMethodRequired, http.StatusBadRequest},
		{"entitlement does not qualify", createBooking.ErrEntitlementNotEligible, http.StatusUnprocessableEntity},
		{"seats taken", createBooking.ErrSeatConflict, http.StatusConflict},
		{"gateway rejected", checkout.ErrPaymentRejected, http.StatusPaymentRequired},
		{"free booking not stored", fmt.Errorf("%w: tx aborted", checkout.ErrConfirmation), http.StatusBadGateway},
		{"gateway unavailable", fmt.Errorf("%w: timeout", checkout.ErrGatewayUnavailable), http.StatusServiceUnavailable},
		{"location not found", createBooking.ErrLocationNotFound, http.StatusNotFound},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := useCaseFunc(func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
				return nil, tt.err
			})

			assert.Equal(t, tt.status, post(uc, validBody, true).Code)
		})
	}
}
