// Package coupon implements the coupon-validation decision rules. Evaluate
// is a pure function of the stored record and the clock, so the standalone
// validation endpoint and the order-creation path can never disagree about
// the same coupon.
package coupon

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jayaganeshk/shoptrace/internal/model"
)

// Reason identifies why a coupon was rejected.
type Reason string

const (
	ReasonCodeMissing   Reason = "CODE_MISSING"
	ReasonNotFound      Reason = "NOT_FOUND"
	ReasonNotActive     Reason = "NOT_ACTIVE"
	ReasonExpired       Reason = "EXPIRED"
	ReasonUsageExceeded Reason = "USAGE_EXCEEDED"
)

// Verdict is the outcome of coupon evaluation: either valid with a discount,
// or invalid with a reason and a client-facing message.
type Verdict struct {
	Valid              bool
	DiscountPercentage decimal.Decimal
	Reason             Reason
	Message            string
}

func invalid(reason Reason, msg string) Verdict {
	return Verdict{Reason: reason, Message: msg}
}

// Missing is the verdict for a request that carried no coupon code at all.
// Callers check this before any store lookup.
func Missing() Verdict {
	return invalid(ReasonCodeMissing, "Coupon code is required")
}

// NormalizeCode canonicalizes a coupon code before lookup. Both validation
// paths use it, so mixed-case input always resolves to the same record.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate checks a stored coupon against now (UTC). A nil coupon means the
// code had no record. Rules short-circuit in order: existence, status,
// expiry, usage. Evaluation is read-only; usage accounting belongs to an
// external process.
func Evaluate(c *model.Coupon, now time.Time) Verdict {
	if c == nil {
		return invalid(ReasonNotFound, "Invalid coupon code")
	}

	if c.Status != model.CouponStatusActive {
		status := c.Status
		if status == "" {
			status = "inactive"
		}
		return invalid(ReasonNotActive, fmt.Sprintf("Coupon is %s", status))
	}

	if c.ExpiryDate != nil && c.ExpiryDate.Before(now) {
		return invalid(ReasonExpired, fmt.Sprintf("Coupon expired on %s", c.ExpiryDate.UTC().Format(time.RFC3339)))
	}

	if c.MaxUsageCount > 0 && c.CurrentUsageCount >= c.MaxUsageCount {
		return invalid(ReasonUsageExceeded, "Coupon usage limit exceeded")
	}

	return Verdict{Valid: true, DiscountPercentage: c.DiscountPercentage}
}
