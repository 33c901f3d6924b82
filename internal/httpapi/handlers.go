// Package httpapi is the gin routing shell around the order pipeline. It
// stays narrow: decode requests, bind identity, call the orchestrator, map
// errors to statuses.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jayaganeshk/shoptrace/internal/apperr"
	"github.com/jayaganeshk/shoptrace/internal/coupon"
	"github.com/jayaganeshk/shoptrace/internal/order"
	"github.com/jayaganeshk/shoptrace/internal/telemetry"
)

type Handler struct {
	serviceName string
	orch        *order.Orchestrator
	tracer      trace.Tracer
}

func NewHandler(serviceName string, orch *order.Orchestrator, tracer trace.Tracer) *Handler {
	return &Handler{serviceName: serviceName, orch: orch, tracer: tracer}
}

func (h *Handler) health(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "health_check")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   h.serviceName,
		"timestamp": time.Now().UTC(),
		"trace_id":  span.SpanContext().TraceID().String(),
	})
}

func (h *Handler) createOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.orch.CreateOrder(ctx, req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"service":    h.serviceName,
			"endpoint":   "/orders",
			"error_kind": apperr.Kind(err),
		}).WithError(err).Error("Order creation failed")
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *Handler) getOrder(c *gin.Context) {
	ctx := c.Request.Context()
	tc := telemetry.FromContext(ctx)
	orderID := c.Param("order_id")

	record, err := h.orch.GetOrder(ctx, tc.UserID, orderID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) listOrders(c *gin.Context) {
	ctx := c.Request.Context()
	tc := telemetry.FromContext(ctx)

	pageSize := 100
	if raw := c.Query("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}

	orders, next, err := h.orch.ListOrders(ctx, tc.UserID, pageSize, c.Query("after"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"items": orders}
	if next != "" {
		resp["after"] = next
	}
	c.JSON(http.StatusOK, resp)
}

type validateCouponRequest struct {
	CouponCode string `json:"coupon_code"`
}

// validateCoupon is the standalone preview endpoint: read-only, idempotent,
// no usage accounting. A missing code is a client error; every other
// rejection is a successful call with an invalid verdict.
func (h *Handler) validateCoupon(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "validate_coupon_preview")
	defer span.End()

	var req validateCouponRequest
	_ = c.ShouldBindJSON(&req)
	span.SetAttributes(attribute.String("coupon.code", req.CouponCode))

	if req.CouponCode == "" {
		missing := coupon.Missing()
		telemetry.MarkFailure(span, telemetry.ErrorTypeInvalidData, errors.New(missing.Message))
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": missing.Message})
		return
	}

	verdict, err := h.orch.ValidateCoupon(ctx, req.CouponCode)
	if err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		c.JSON(apperr.HTTPStatus(err), gin.H{"valid": false, "error": "Validation failed"})
		return
	}

	if !verdict.Valid {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": verdict.Message})
		return
	}

	telemetry.MarkSuccess(span)
	c.JSON(http.StatusOK, gin.H{
		"valid":               true,
		"discount_percentage": verdict.DiscountPercentage,
		"coupon_code":         coupon.NormalizeCode(req.CouponCode),
	})
}

type couponServiceRequest struct {
	CouponCode  string `json:"coupon_code"`
	SessionID   string `json:"session_id"`
	UserContext struct {
		UserID   string `json:"user_id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	} `json:"user_context"`
}

// couponService is the target of the order path's cross-process call. It
// always answers with a verdict body: dependency failures degrade to an
// invalid verdict so the caller gets a clean rejection, never a crash.
func (h *Handler) couponService(c *gin.Context) {
	var req couponServiceRequest
	_ = c.ShouldBindJSON(&req)

	// The invoking process forwards identity in the payload; rebind it so
	// spans on this side of the boundary carry the same session and user.
	ctx := telemetry.WithTraceContext(c.Request.Context(), telemetry.TraceContext{
		SessionID: req.SessionID,
		UserID:    req.UserContext.UserID,
		Email:     req.UserContext.Email,
		Username:  req.UserContext.Username,
	})

	ctx, span := h.tracer.Start(ctx, "validate_coupon")
	defer span.End()
	span.SetAttributes(attribute.String("coupon.code", req.CouponCode))

	verdict, err := h.orch.ValidateCoupon(ctx, req.CouponCode)
	if err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Coupon validation failed: " + err.Error()})
		return
	}

	if !verdict.Valid {
		telemetry.MarkFailure(span, telemetry.ErrorTypeInvalidData, errors.New(verdict.Message))
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": verdict.Message})
		return
	}

	telemetry.MarkSuccess(span)
	c.JSON(http.StatusOK, gin.H{
		"valid":               true,
		"discount_percentage": verdict.DiscountPercentage,
		"coupon_code":         coupon.NormalizeCode(req.CouponCode),
	})
}
