// Package model holds the records shared by the store, the coupon engine
// and the order orchestrator.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// API responses carry monetary values as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// CouponStatusActive is the only status a coupon may redeem in.
const CouponStatusActive = "ACTIVE"

// Coupon is the stored coupon record, keyed by code. Records are written by
// an external admin process; this service only reads them. Validation never
// mutates current_usage_count.
type Coupon struct {
	Code               string          `json:"coupon_code"`
	Status             string          `json:"status"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	ExpiryDate         *time.Time      `json:"expiry_date,omitempty"`
	MaxUsageCount      int             `json:"max_usage_count"`
	CurrentUsageCount  int             `json:"current_usage_count"`
}

// OrderStatusCreated is the status stamped on a freshly persisted order.
const OrderStatusCreated = "CREATED"

type OrderItem struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ProductID int             `json:"product_id,omitempty"`
}

// Order is keyed by (user_id, order_id). The order id is a UUIDv7, so the
// string is time-ordered and listing descending by id is reverse
// chronological.
type Order struct {
	UserID             string          `json:"user_id"`
	OrderID            string          `json:"order_id"`
	SessionID          string          `json:"session_id"`
	UserEmail          string          `json:"user_email"`
	Items              []OrderItem     `json:"items"`
	CouponCode         string          `json:"coupon_code"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	Status             string          `json:"status"`
	CreatedAt          string          `json:"created_at"`
}
