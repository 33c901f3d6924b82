package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayaganeshk/shoptrace/internal/model"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func activeCoupon() *model.Coupon {
	return &model.Coupon{
		Code:               "SCD10",
		Status:             model.CouponStatusActive,
		DiscountPercentage: decimal.NewFromInt(10),
		ExpiryDate:         ptrTime(now.AddDate(0, 0, 30)),
		MaxUsageCount:      100,
		CurrentUsageCount:  0,
	}
}

func TestEvaluateValid(t *testing.T) {
	verdict := Evaluate(activeCoupon(), now)

	require.True(t, verdict.Valid)
	assert.True(t, verdict.DiscountPercentage.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, verdict.Message)
}

func TestEvaluateNotFound(t *testing.T) {
	verdict := Evaluate(nil, now)

	require.False(t, verdict.Valid)
	assert.Equal(t, ReasonNotFound, verdict.Reason)
	assert.Equal(t, "Invalid coupon code", verdict.Message)
}

func TestEvaluateNotActiveWinsOverEverything(t *testing.T) {
	// Inactive status must be the reason even when expiry and usage would
	// also reject.
	c := activeCoupon()
	c.Status = "INACTIVE"
	c.ExpiryDate = ptrTime(now.AddDate(0, 0, -10))
	c.MaxUsageCount = 5
	c.CurrentUsageCount = 5

	verdict := Evaluate(c, now)

	require.False(t, verdict.Valid)
	assert.Equal(t, ReasonNotActive, verdict.Reason)
	assert.Equal(t, "Coupon is INACTIVE", verdict.Message)
}

func TestEvaluateEmptyStatusReadsAsInactive(t *testing.T) {
	c := activeCoupon()
	c.Status = ""

	verdict := Evaluate(c, now)

	require.False(t, verdict.Valid)
	assert.Equal(t, "Coupon is inactive", verdict.Message)
}

func TestEvaluateExpiredBeatsUsage(t *testing.T) {
	c := activeCoupon()
	c.ExpiryDate = ptrTime(now.AddDate(0, 0, -1))
	c.MaxUsageCount = 5
	c.CurrentUsageCount = 5

	verdict := Evaluate(c, now)

	require.False(t, verdict.Valid)
	assert.Equal(t, ReasonExpired, verdict.Reason)
	assert.Contains(t, verdict.Message, "Coupon expired on")
}

func TestEvaluateExpiryBoundary(t *testing.T) {
	// Expiry exactly at now is not strictly before now, so still valid.
	c := activeCoupon()
	c.ExpiryDate = ptrTime(now)

	assert.True(t, Evaluate(c, now).Valid)
}

func TestEvaluateUsageExceeded(t *testing.T) {
	c := activeCoupon()
	c.MaxUsageCount = 5
	c.CurrentUsageCount = 5

	verdict := Evaluate(c, now)

	require.False(t, verdict.Valid)
	assert.Equal(t, ReasonUsageExceeded, verdict.Reason)
	assert.Equal(t, "Coupon usage limit exceeded", verdict.Message)
}

func TestEvaluateZeroMaxUsageIsUnlimited(t *testing.T) {
	c := activeCoupon()
	c.MaxUsageCount = 0
	c.CurrentUsageCount = 1_000_000

	assert.True(t, Evaluate(c, now).Valid)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	c := activeCoupon()
	first := Evaluate(c, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(c, now))
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SCD10", NormalizeCode(" scd10 "))
	assert.Equal(t, "SCD10", NormalizeCode("SCD10"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestMissing(t *testing.T) {
	verdict := Missing()

	require.False(t, verdict.Valid)
	assert.Equal(t, ReasonCodeMissing, verdict.Reason)
	assert.Equal(t, "Coupon code is required", verdict.Message)
}
