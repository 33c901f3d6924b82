package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jayaganeshk/shoptrace/internal/model"
)

func ptrTime(t time.Time) *time.Time { return &t }

// SampleCoupons returns the demo coupon set, with expiry dates relative to
// now: three redeemable codes plus one expired, one maxed out and one
// inactive, so every rejection reason can be exercised against live data.
func SampleCoupons(now time.Time) []model.Coupon {
	return []model.Coupon{
		{
			Code:               "SCD10",
			Status:             model.CouponStatusActive,
			DiscountPercentage: decimal.NewFromInt(10),
			ExpiryDate:         ptrTime(now.AddDate(0, 0, 30)),
			MaxUsageCount:      100,
		},
		{
			Code:               "SCD25",
			Status:             model.CouponStatusActive,
			DiscountPercentage: decimal.NewFromInt(25),
			ExpiryDate:         ptrTime(now.AddDate(0, 0, 60)),
			MaxUsageCount:      50,
		},
		{
			Code:               "SCD50",
			Status:             model.CouponStatusActive,
			DiscountPercentage: decimal.NewFromInt(50),
			ExpiryDate:         ptrTime(now.AddDate(0, 0, 7)),
			MaxUsageCount:      10,
		},
		{
			Code:               "EXPIRED",
			Status:             model.CouponStatusActive,
			DiscountPercentage: decimal.NewFromInt(25),
			ExpiryDate:         ptrTime(now.AddDate(0, 0, -1)),
			MaxUsageCount:      100,
		},
		{
			Code:               "MAXEDOUT",
			Status:             model.CouponStatusActive,
			DiscountPercentage: decimal.NewFromInt(15),
			ExpiryDate:         ptrTime(now.AddDate(0, 0, 30)),
			MaxUsageCount:      5,
			CurrentUsageCount:  5,
		},
		{
			Code:               "INACTIVE",
			Status:             "INACTIVE",
			DiscountPercentage: decimal.NewFromInt(30),
			ExpiryDate:         ptrTime(now.AddDate(0, 0, 30)),
			MaxUsageCount:      100,
		},
	}
}

// SeedCoupons installs the sample coupon set.
func SeedCoupons(ctx context.Context, s Store, now time.Time) error {
	for _, c := range SampleCoupons(now) {
		if err := s.PutCoupon(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
