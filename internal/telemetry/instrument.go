package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	// ReadDirection is a measurement option that marks an I/O measurement as
	// a read.
	ReadDirection = metric.WithAttributes(attribute.String("io.direction", "read"))

	// WriteDirection is a measurement option that marks an I/O measurement as
	// a write.
	WriteDirection = metric.WithAttributes(attribute.String("io.direction", "write"))
)

// Int64Counter returns a new counter instrument.
func (r *Recorder) Int64Counter(name, unit, desc string) metric.Int64Counter {
	i, err := r.meter.Int64Counter(
		name,
		metric.WithUnit(unit),
		metric.WithDescription(desc),
	)
	if err != nil {
		otel.Handle(err)
	}
	return i
}

// Int64UpDownCounter returns a new up/down counter instrument.
func (r *Recorder) Int64UpDownCounter(name, unit, desc string) metric.Int64UpDownCounter {
	i, err := r.meter.Int64UpDownCounter(
		name,
		metric.WithUnit(unit),
		metric.WithDescription(desc),
	)
	if err != nil {
		otel.Handle(err)
	}
	return i
}

// Int64Histogram returns a new histogram instrument.
func (r *Recorder) Int64Histogram(name, unit, desc string) metric.Int64Histogram {
	i, err := r.meter.Int64Histogram(
		name,
		metric.WithUnit(unit),
		metric.WithDescription(desc),
	)
	if err != nil {
		otel.Handle(err)
	}
	return i
}
