package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
)

// Span represents a single named and timed operation of a workflow.
type Span struct {
	ctx      context.Context
	span     trace.Span
	recorder *Recorder
}

// StartSpan starts a new span and records the operation to the recorder's
// metrics.
func (r *Recorder) StartSpan(
	ctx context.Context,
	name string,
	attrs ...Attr,
) (context.Context, *Span) {
	ctx, span := r.tracer.Start(
		ctx,
		name,
		trace.WithAttributes(asAttrKeyValues(attrs)...),
	)

	return ctx, &Span{ctx, span, r}
}

// End marks the operation as complete.
func (s *Span) End() {
	s.span.End()
}

// SetAttributes adds attributes to the span.
func (s *Span) SetAttributes(attrs ...Attr) {
	s.span.SetAttributes(asAttrKeyValues(attrs)...)
}

// Debug logs a debug message to the log and as a span event.
func (s *Span) Debug(message string, attrs ...Attr) {
	s.recorder.log(s.ctx, log.SeverityDebug, message, nil, attrs)
}

// Warn logs a warning message to the log and as a span event.
func (s *Span) Warn(message string, attrs ...Attr) {
	s.recorder.log(s.ctx, log.SeverityWarn, message, nil, attrs)
}

// Error logs an error message to the log and as a span event.
//
// It marks the span as an error and increments the "errors" metric.
func (s *Span) Error(message string, err error, attrs ...Attr) {
	s.recorder.log(s.ctx, log.SeverityError, message, err, attrs)
	s.recorder.errorCount.Add(s.ctx, 1)

	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, message)
}
