// Package telemetry records store activity with OpenTelemetry.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jask/cinnamon/internal/flux"
)

const instrumentationName = "github.com/jask/cinnamon"

// Observer implements flux.Observer using OpenTelemetry. Publish and notify
// calls become spans back-dated to their start, plus counters and histograms.
type Observer struct {
	tracer trace.Tracer
	meter  metric.Meter

	publishCounter  metric.Int64Counter
	publishErrors   metric.Int64Counter
	publishDuration metric.Float64Histogram
	notifyCounter   metric.Int64Counter
	notifyDuration  metric.Float64Histogram
}

// Option configures the Observer.
type Option func(*Observer)

// WithTracerProvider sets a custom tracer provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *Observer) {
		o.tracer = provider.Tracer(instrumentationName)
	}
}

// WithMeterProvider sets a custom meter provider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(o *Observer) {
		o.meter = provider.Meter(instrumentationName)
	}
}

// New creates an Observer. Without options it uses the global providers.
func New(opts ...Option) (*Observer, error) {
	o := &Observer{
		tracer: otel.Tracer(instrumentationName),
		meter:  otel.Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(o)
	}

	var err error
	o.publishCounter, err = o.meter.Int64Counter(
		"flux.publish.count",
		metric.WithDescription("Number of actions published"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, err
	}

	o.publishErrors, err = o.meter.Int64Counter(
		"flux.publish.errors",
		metric.WithDescription("Number of publishes rejected by the reducer or the re-entrancy guard"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	o.publishDuration, err = o.meter.Float64Histogram(
		"flux.publish.duration",
		metric.WithDescription("Reducer execution duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	o.notifyCounter, err = o.meter.Int64Counter(
		"flux.notify.count",
		metric.WithDescription("Number of listener invocations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	o.notifyDuration, err = o.meter.Float64Histogram(
		"flux.notify.duration",
		metric.WithDescription("Notification cycle duration"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return o, nil
}

// OnPublish records one publish.
func (o *Observer) OnPublish(store string, action string, err error, elapsed time.Duration) {
	ctx := context.Background()
	attrs := []attribute.KeyValue{
		attribute.String("store", store),
		attribute.String("action.type", action),
	}

	end := time.Now()
	_, span := o.tracer.Start(ctx, "flux.publish: "+action,
		trace.WithTimestamp(end.Add(-elapsed)),
		trace.WithAttributes(attrs...),
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		o.publishErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(end))

	o.publishCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	o.publishDuration.Record(ctx, float64(elapsed)/float64(time.Millisecond), metric.WithAttributes(attrs...))
}

// OnNotify records one notification cycle.
func (o *Observer) OnNotify(store string, listeners int, elapsed time.Duration) {
	ctx := context.Background()
	attrs := []attribute.KeyValue{attribute.String("store", store)}

	end := time.Now()
	_, span := o.tracer.Start(ctx, "flux.notify: "+store,
		trace.WithTimestamp(end.Add(-elapsed)),
		trace.WithAttributes(append(attrs, attribute.Int("listeners", listeners))...),
	)
	span.End(trace.WithTimestamp(end))

	o.notifyCounter.Add(ctx, int64(listeners), metric.WithAttributes(attrs...))
	o.notifyDuration.Record(ctx, float64(elapsed)/float64(time.Millisecond), metric.WithAttributes(attrs...))
}

var _ flux.Observer = (*Observer)(nil)
