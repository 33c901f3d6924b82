package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jayaganeshk/shoptrace/internal/chaos"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"empty order", ErrOrderEmpty, "client_input"},
		{"bad quantity", ErrQuantityNotPositive, "client_input"},
		{"coupon rejection", &CouponRejection{Message: "Coupon has expired"}, "coupon_rejected"},
		{"wrapped throttling", fmt.Errorf("chaos injection: %w", chaos.ErrThrottling), "store_fault"},
		{"timeout fault", chaos.ErrTimeout, "store_fault"},
		{"deadline", context.DeadlineExceeded, "timeout"},
		{"canceled", context.Canceled, "canceled"},
		{"other", errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"empty order", ErrOrderEmpty, http.StatusBadRequest},
		{"coupon rejection", &CouponRejection{Message: "bad coupon"}, http.StatusBadRequest},
		{"service unavailable fault", chaos.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"timeout fault", chaos.ErrTimeout, http.StatusGatewayTimeout},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"throttling fault", chaos.ErrThrottling, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
