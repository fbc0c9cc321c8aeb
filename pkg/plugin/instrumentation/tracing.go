package instrumentation

import (
	"context"

	"github.com/amusasrd/WeatherGetter/pkg/weather"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type TracingHelper struct {
	tracer trace.Tracer
}

func NewTracingHelper(tracer trace.Tracer) *TracingHelper {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &TracingHelper{
		tracer: tracer,
	}
}

// StartSpan starts a new span with optional attributes
func (t *TracingHelper) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records the outcome of a fetch on span and ends it.
func (t *TracingHelper) EndSpan(span trace.Span, reading *weather.Reading, err error) {
	defer span.End()
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("weather.error_kind", weather.KindOf(err).String()))
		span.SetStatus(codes.Error, err.Error())
		return
	}
	if reading != nil {
		span.SetAttributes(
			attribute.String("weather.city", reading.City),
			attribute.Float64("weather.temperature_c", reading.TemperatureCelsius),
		)
	}
	span.SetStatus(codes.Ok, "")
}

// GetTraceID returns the trace ID from the given context
func (t *TracingHelper) GetTraceID(ctx context.Context) trace.TraceID {
	return trace.SpanContextFromContext(ctx).TraceID()
}
