// Package apperr classifies errors produced by the order pipeline into the
// four families the HTTP layer cares about: client input, domain rejection,
// dependency failure and unexpected.
package apperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/jayaganeshk/shoptrace/internal/chaos"
)

// Client-input errors surfaced as 400s.
var (
	ErrOrderEmpty          = errors.New("Order must contain at least one item")
	ErrQuantityNotPositive = errors.New("Item quantity must be positive")
)

// CouponRejection is a domain rejection from coupon validation: the call
// itself succeeded, the coupon did not. On the order path it aborts order
// creation with a clean 400.
type CouponRejection struct {
	Message string
}

func (e *CouponRejection) Error() string { return e.Message }

// Kind returns a short classification label used in logs and span fields.
func Kind(err error) string {
	var rejection *CouponRejection
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOrderEmpty), errors.Is(err, ErrQuantityNotPositive):
		return "client_input"
	case errors.As(err, &rejection):
		return "coupon_rejected"
	case chaos.IsFault(err):
		return "store_fault"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal"
	}
}

// HTTPStatus maps an error to its response status.
func HTTPStatus(err error) int {
	var rejection *CouponRejection
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrOrderEmpty),
		errors.Is(err, ErrQuantityNotPositive),
		errors.As(err, &rejection):
		return http.StatusBadRequest
	case errors.Is(err, chaos.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, chaos.ErrTimeout):
		return http.StatusGatewayTimeout
	case chaos.IsFault(err):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
