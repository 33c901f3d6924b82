// Package order coordinates order creation: input validation, exact-decimal
// pricing, coupon validation behind a remote boundary, and the chaos-guarded
// store writes and reads.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jayaganeshk/shoptrace/internal/apperr"
	"github.com/jayaganeshk/shoptrace/internal/chaos"
	"github.com/jayaganeshk/shoptrace/internal/coupon"
	"github.com/jayaganeshk/shoptrace/internal/model"
	"github.com/jayaganeshk/shoptrace/internal/store"
	"github.com/jayaganeshk/shoptrace/internal/telemetry"
)

type Orchestrator struct {
	store     store.Store
	chaos     *chaos.Injector
	validator Validator
	tracer    trace.Tracer
	now       func() time.Time
}

func NewOrchestrator(s store.Store, injector *chaos.Injector, v Validator, tracer trace.Tracer) *Orchestrator {
	return &Orchestrator{
		store:     s,
		chaos:     injector,
		validator: v,
		tracer:    tracer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type ItemInput struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ProductID int             `json:"product_id"`
}

type CreateOrderRequest struct {
	Items      []ItemInput `json:"items"`
	CouponCode string      `json:"coupon_code"`
}

type CreateOrderResult struct {
	OrderID         string          `json:"order_id"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	DiscountApplied decimal.Decimal `json:"discount_applied"`
	Status          string          `json:"status"`
}

// CreateOrder runs the pipeline: validate input, price the items, validate
// the coupon through the remote boundary, persist. A rejected coupon or a
// failed store write aborts with no partial order persisted. Every step gets
// its own span so a chaos-degraded run is distinguishable in the trace from
// a logically rejected one.
func (o *Orchestrator) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	ctx, span := o.tracer.Start(ctx, "create_order")
	defer span.End()

	span.SetAttributes(attribute.Int("order.items.count", len(req.Items)))

	if err := o.validateInput(ctx, req.Items); err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeInvalidData, err)
		return nil, err
	}

	subtotal := o.calculatePrice(ctx, req.Items)

	total := subtotal
	discount := decimal.Zero
	couponCode := "none"
	if req.CouponCode != "" {
		couponCode = coupon.NormalizeCode(req.CouponCode)
		var err error
		total, discount, err = o.applyCoupon(ctx, couponCode, subtotal)
		if err != nil {
			telemetry.MarkFailure(span, telemetry.ErrorTypeInvalidData, err)
			return nil, err
		}
	}

	saved, err := o.saveOrder(ctx, req.Items, couponCode, discount, total)
	if err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", saved.OrderID))
	telemetry.MarkSuccess(span)

	return &CreateOrderResult{
		OrderID:         saved.OrderID,
		TotalPrice:      saved.TotalPrice,
		DiscountApplied: discount,
		Status:          saved.Status,
	}, nil
}

func (o *Orchestrator) validateInput(ctx context.Context, items []ItemInput) error {
	_, span := o.tracer.Start(ctx, "validate_order")
	defer span.End()

	if len(items) == 0 {
		telemetry.MarkFailure(span, telemetry.ErrorTypeInvalidData, apperr.ErrOrderEmpty)
		return apperr.ErrOrderEmpty
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			telemetry.MarkFailure(span, telemetry.ErrorTypeInvalidData, apperr.ErrQuantityNotPositive)
			return apperr.ErrQuantityNotPositive
		}
	}
	telemetry.MarkSuccess(span)
	return nil
}

func (o *Orchestrator) calculatePrice(ctx context.Context, items []ItemInput) decimal.Decimal {
	_, span := o.tracer.Start(ctx, "calculate_price")
	defer span.End()

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	span.SetAttributes(attribute.String("order.base_price", subtotal.String()))
	telemetry.MarkSuccess(span)
	return subtotal
}

// applyCoupon validates the code through the remote boundary and returns the
// discounted total. An invalid verdict, including the "service unavailable"
// verdict a transport failure degrades to, comes back as a CouponRejection.
func (o *Orchestrator) applyCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	ctx, span := o.tracer.Start(ctx, "validate_coupon")
	defer span.End()

	span.SetAttributes(attribute.String("coupon.code", code))

	verdict := o.validator.Validate(ctx, code)
	if !verdict.Valid {
		rejection := &apperr.CouponRejection{Message: verdict.Error}
		telemetry.MarkFailure(span, telemetry.ErrorTypeInvalidData, rejection)
		return decimal.Zero, decimal.Zero, rejection
	}

	discount := verdict.DiscountPercentage
	factor := decimal.NewFromInt(1).Sub(discount.Div(decimal.NewFromInt(100)))
	total := subtotal.Mul(factor).Round(2)

	span.SetAttributes(attribute.String("coupon.discount", discount.String()))
	telemetry.MarkSuccess(span)
	return total, discount, nil
}

func (o *Orchestrator) saveOrder(ctx context.Context, items []ItemInput, couponCode string, discount, total decimal.Decimal) (*model.Order, error) {
	ctx, span := o.tracer.Start(ctx, "save_order")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return nil, err
	}

	tc := telemetry.FromContext(ctx)
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, model.OrderItem{
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ProductID: item.ProductID,
		})
	}

	record := model.Order{
		UserID:             tc.UserID,
		OrderID:            id.String(),
		SessionID:          tc.SessionID,
		UserEmail:          tc.Email,
		Items:              orderItems,
		CouponCode:         couponCode,
		DiscountPercentage: discount,
		TotalPrice:         total,
		Status:             model.OrderStatusCreated,
		CreatedAt:          o.now().Format(time.RFC3339),
	}

	if err := o.chaos.Guard(ctx); err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return nil, err
	}
	if err := o.store.PutOrder(ctx, record); err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.id", record.OrderID),
		attribute.String("user.id", record.UserID),
	)
	telemetry.MarkSuccess(span)

	logrus.WithFields(logrus.Fields{
		"order_id":    record.OrderID,
		"user_id":     record.UserID,
		"coupon_code": couponCode,
		"total":       total.String(),
		"trace_id":    span.SpanContext().TraceID().String(),
	}).Info("Order created")

	return &record, nil
}

// ValidateCoupon is the read-only, idempotent validation used by the
// standalone endpoints and by the coupon-service handler the order path
// invokes remotely. An empty code never reaches the store.
func (o *Orchestrator) ValidateCoupon(ctx context.Context, code string) (coupon.Verdict, error) {
	if coupon.NormalizeCode(code) == "" {
		return coupon.Missing(), nil
	}
	code = coupon.NormalizeCode(code)

	record, err := o.lookupCoupon(ctx, code)
	if err != nil {
		return coupon.Verdict{}, err
	}

	_, span := o.tracer.Start(ctx, "validate_coupon_rules")
	defer span.End()

	verdict := coupon.Evaluate(record, o.now())
	if verdict.Valid {
		span.SetAttributes(attribute.String("coupon.discount", verdict.DiscountPercentage.String()))
		telemetry.MarkSuccess(span)
	} else {
		telemetry.MarkFailure(span, telemetry.ErrorTypeInvalidData, errors.New(verdict.Message))
	}
	return verdict, nil
}

func (o *Orchestrator) lookupCoupon(ctx context.Context, code string) (*model.Coupon, error) {
	ctx, span := o.tracer.Start(ctx, "query_coupon_store")
	defer span.End()

	span.SetAttributes(attribute.String("coupon.code", code))

	if err := o.chaos.Guard(ctx); err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return nil, err
	}
	record, err := o.store.GetCoupon(ctx, code)
	if err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return nil, err
	}
	if record == nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeNoData, errors.New("coupon code not found"))
		return nil, nil
	}
	telemetry.MarkSuccess(span)
	return record, nil
}

// GetOrder fetches one order by its composite key. A missing order returns
// (nil, nil).
func (o *Orchestrator) GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	ctx, span := o.tracer.Start(ctx, "get_order")
	defer span.End()

	span.SetAttributes(attribute.String("order.id", orderID))

	if err := o.chaos.Guard(ctx); err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return nil, err
	}
	record, err := o.store.GetOrder(ctx, userID, orderID)
	if err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return nil, err
	}
	if record == nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeNoData, errors.New("order not found"))
		return nil, nil
	}
	telemetry.MarkSuccess(span)
	return record, nil
}

// ListOrders pages through a user's orders, newest first.
func (o *Orchestrator) ListOrders(ctx context.Context, userID string, pageSize int, after string) ([]model.Order, string, error) {
	ctx, span := o.tracer.Start(ctx, "list_orders")
	defer span.End()

	span.SetAttributes(attribute.Bool("pagination.has_cursor", after != ""))

	if err := o.chaos.Guard(ctx); err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return nil, "", err
	}
	orders, next, err := o.store.ListOrders(ctx, userID, pageSize, after)
	if err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return nil, "", err
	}

	span.SetAttributes(
		attribute.Int("order_count", len(orders)),
		attribute.Bool("pagination.has_more", next != ""),
	)
	telemetry.MarkSuccess(span)
	return orders, next, nil
}
