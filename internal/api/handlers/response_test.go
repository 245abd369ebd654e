package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad window", domain.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: promo expired", domain.ErrEligibility), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: seat taken", domain.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: declined", domain.ErrPaymentFailure), http.StatusPaymentRequired},
		{fmt.Errorf("%w: store down", domain.ErrConfirmation), http.StatusBadGateway},
		{errors.New("boom"), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestRespondDomainError(t *testing.T) {
	rec := httptest.NewRecorder()

	ok := RespondDomainError(rec, fmt.Errorf("%w: seat S1 taken", domain.ErrConflict))

	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "seat S1 taken")

	assert.False(t, RespondDomainError(httptest.NewRecorder(), errors.New("boom")))
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "a", dst.Name)
}
