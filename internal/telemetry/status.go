package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrorType categorizes a failure recorded on a span.
type ErrorType string

const (
	ErrorTypeException   ErrorType = "exception"
	ErrorTypeNoData      ErrorType = "no_data"
	ErrorTypeInvalidData ErrorType = "invalid_data"
	ErrorTypeUnknown     ErrorType = "unknown"
)

const (
	statusSuccess = "Success"
	statusFailure = "Failure"
)

// MarkSuccess tags the span as a successfully completed operation.
func MarkSuccess(span trace.Span) {
	span.SetAttributes(attribute.String("event.status", statusSuccess))
}

// MarkFailure records err as a structured exception event on the span, tags
// the error type and message, and sets the span's terminal status to ERROR.
func MarkFailure(span trace.Span, errType ErrorType, err error) {
	span.SetAttributes(
		attribute.String("error.type", string(errType)),
		attribute.String("error.message", err.Error()),
		attribute.String("event.status", statusFailure),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
