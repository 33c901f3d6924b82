package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// EnrichmentProcessor stamps the bound TraceContext, the span's own name and
// a UTC process timestamp onto every span at start. It never alters control
// flow; spans started without a bound context get "unknown" identity fields.
type EnrichmentProcessor struct{}

var _ sdktrace.SpanProcessor = EnrichmentProcessor{}

func (EnrichmentProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	tc := FromContext(parent)
	s.SetAttributes(
		attribute.String("session_id", tc.SessionID),
		attribute.String("user.id", tc.UserID),
		attribute.String("user.email", tc.Email),
		attribute.String("user.username", tc.Username),
		attribute.String("operation.name", s.Name()),
		attribute.String("event.processTime", time.Now().UTC().Format(time.RFC3339Nano)),
	)
}

func (EnrichmentProcessor) OnEnd(sdktrace.ReadOnlySpan) {}

func (EnrichmentProcessor) Shutdown(context.Context) error { return nil }

func (EnrichmentProcessor) ForceFlush(context.Context) error { return nil }
