package telemetry

import "context"

// TraceContext is the request-scoped identity bundle stamped onto every span.
// It is created once per inbound request and read-only afterwards.
type TraceContext struct {
	SessionID string
	UserID    string
	Email     string
	Username  string
}

const unknown = "unknown"

// Unknown returns a TraceContext with every field set to "unknown". Spans
// created outside a request scope are enriched with these values.
func Unknown() TraceContext {
	return TraceContext{SessionID: unknown, UserID: unknown, Email: unknown, Username: unknown}
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

// Normalize fills empty fields with "unknown".
func (tc TraceContext) Normalize() TraceContext {
	return TraceContext{
		SessionID: orUnknown(tc.SessionID),
		UserID:    orUnknown(tc.UserID),
		Email:     orUnknown(tc.Email),
		Username:  orUnknown(tc.Username),
	}
}

type ctxKey struct{}

// WithTraceContext binds tc to the returned context. Binding is per request:
// concurrent requests each carry their own context value, so there is no
// cross-request leakage.
func WithTraceContext(ctx context.Context, tc TraceContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, tc.Normalize())
}

// FromContext returns the bound TraceContext, or the all-unknown value when
// nothing was bound.
func FromContext(ctx context.Context) TraceContext {
	if tc, ok := ctx.Value(ctxKey{}).(TraceContext); ok {
		return tc
	}
	return Unknown()
}
