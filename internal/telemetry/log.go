package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
)

func (r *Recorder) log(
	ctx context.Context,
	severity log.Severity,
	message string,
	err error,
	attrs []Attr,
) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(
		message,
		trace.WithAttributes(asAttrKeyValues(attrs)...),
	)

	if !r.logger.Enabled(
		ctx,
		log.EnabledParameters{
			Severity: severity,
		},
	) {
		return
	}

	var rec log.Record
	rec.SetTimestamp(time.Now())
	rec.SetSeverity(severity)
	rec.SetBody(log.StringValue(message))

	if err != nil {
		rec.AddAttributes(log.String("error", err.Error()))
	}

	rec.AddAttributes(asLogKeyValues(attrs)...)

	r.logger.Emit(ctx, rec)
}

