package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jayaganeshk/shoptrace/internal/telemetry"
)

// VerdictResponse is the wire verdict returned by the coupon service.
type VerdictResponse struct {
	Valid              bool            `json:"valid"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	CouponCode         string          `json:"coupon_code,omitempty"`
	Error              string          `json:"error,omitempty"`
}

// Validator answers whether a coupon code may be redeemed. The order path
// treats this as a remote dependency; transport failures come back as an
// invalid verdict, never as an error.
type Validator interface {
	Validate(ctx context.Context, code string) VerdictResponse
}

// validatorPayload mirrors the request body the coupon service expects.
type validatorPayload struct {
	CouponCode string      `json:"coupon_code"`
	SessionID  string      `json:"session_id"`
	UserContext userContext `json:"user_context"`
}

type userContext struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// HTTPValidator performs the synchronous cross-process call to the coupon
// service. The client timeout bounds the whole exchange; when it trips, the
// caller sees "Coupon service unavailable" and the order is rejected cleanly.
type HTTPValidator struct {
	url    string
	client *http.Client
	tracer trace.Tracer
}

func NewHTTPValidator(url string, timeout time.Duration, tracer trace.Tracer) *HTTPValidator {
	return &HTTPValidator{
		url: url,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracer: tracer,
	}
}

const serviceUnavailableMsg = "Coupon service unavailable"

func unavailable() VerdictResponse {
	return VerdictResponse{Valid: false, Error: serviceUnavailableMsg}
}

func (v *HTTPValidator) Validate(ctx context.Context, code string) VerdictResponse {
	ctx, span := v.tracer.Start(ctx, "invoke_coupon_service")
	defer span.End()

	span.SetAttributes(
		attribute.String("coupon.code", code),
		attribute.String("http.url", v.url),
	)

	tc := telemetry.FromContext(ctx)
	payload, _ := json.Marshal(validatorPayload{
		CouponCode: code,
		SessionID:  tc.SessionID,
		UserContext: userContext{
			UserID:   tc.UserID,
			Email:    tc.Email,
			Username: tc.Username,
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(payload))
	if err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return unavailable()
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := v.client.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"coupon_code": code,
			"url":         v.url,
		}).WithError(err).Error("Coupon service call failed")
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return unavailable()
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	var verdict VerdictResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		telemetry.MarkFailure(span, telemetry.ErrorTypeException, err)
		return unavailable()
	}

	telemetry.MarkSuccess(span)
	return verdict
}
