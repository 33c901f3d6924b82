package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayaganeshk/shoptrace/internal/model"
)

func TestCouponRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	absent, err := m.GetCoupon(ctx, "SCD10")
	require.NoError(t, err)
	assert.Nil(t, absent)

	require.NoError(t, m.PutCoupon(ctx, model.Coupon{
		Code:               "SCD10",
		Status:             model.CouponStatusActive,
		DiscountPercentage: decimal.NewFromInt(10),
	}))

	got, err := m.GetCoupon(ctx, "SCD10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "SCD10", got.Code)
}

func TestOrderRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	absent, err := m.GetOrder(ctx, "user-1", "order-1")
	require.NoError(t, err)
	assert.Nil(t, absent)

	require.NoError(t, m.PutOrder(ctx, model.Order{UserID: "user-1", OrderID: "order-1"}))

	got, err := m.GetOrder(ctx, "user-1", "order-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "order-1", got.OrderID)

	// Orders are namespaced by user.
	other, err := m.GetOrder(ctx, "user-2", "order-1")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func seedOrders(t *testing.T, m *Memory, userID string, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("order-%03d", i)
		require.NoError(t, m.PutOrder(context.Background(), model.Order{UserID: userID, OrderID: id}))
		ids = append(ids, id)
	}
	return ids
}

func TestListOrdersNewestFirst(t *testing.T) {
	m := NewMemory()
	seedOrders(t, m, "user-1", 5)

	orders, next, err := m.ListOrders(context.Background(), "user-1", 100, "")
	require.NoError(t, err)
	assert.Empty(t, next)
	require.Len(t, orders, 5)
	for i, o := range orders {
		assert.Equal(t, fmt.Sprintf("order-%03d", 4-i), o.OrderID)
	}
}

func TestListOrdersPagination(t *testing.T) {
	m := NewMemory()
	seedOrders(t, m, "user-1", 7)

	var seen []string
	after := ""
	pages := 0
	for {
		orders, next, err := m.ListOrders(context.Background(), "user-1", 3, after)
		require.NoError(t, err)
		for _, o := range orders {
			seen = append(seen, o.OrderID)
		}
		pages++
		if next == "" {
			break
		}
		after = next
	}

	assert.Equal(t, 3, pages)
	require.Len(t, seen, 7)
	// No duplicates across pages.
	unique := map[string]bool{}
	for _, id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, 7)
}

func TestListOrdersBadCursorRestartsFromTop(t *testing.T) {
	m := NewMemory()
	seedOrders(t, m, "user-1", 3)

	orders, _, err := m.ListOrders(context.Background(), "user-1", 100, "%%%not-base64%%%")
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestListOrdersUnknownUser(t *testing.T) {
	m := NewMemory()
	orders, next, err := m.ListOrders(context.Background(), "nobody", 10, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, next)
}

func TestSeedCoupons(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, SeedCoupons(ctx, m, now))

	for _, code := range []string{"SCD10", "SCD25", "SCD50", "EXPIRED", "MAXEDOUT", "INACTIVE"} {
		c, err := m.GetCoupon(ctx, code)
		require.NoError(t, err)
		require.NotNil(t, c, code)
	}

	expired, _ := m.GetCoupon(ctx, "EXPIRED")
	assert.True(t, expired.ExpiryDate.Before(now))

	maxed, _ := m.GetCoupon(ctx, "MAXEDOUT")
	assert.Equal(t, maxed.MaxUsageCount, maxed.CurrentUsageCount)

	inactive, _ := m.GetCoupon(ctx, "INACTIVE")
	assert.NotEqual(t, model.CouponStatusActive, inactive.Status)
}
