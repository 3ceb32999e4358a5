package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Install registers an SDK tracer provider sampling the given ratio of traces
// and the W3C trace context propagator as the otel globals.
// The returned function flushes and shuts the provider down.
//
// Spans are only exported when opts carries a span processor
// (sdktrace.WithBatcher, sdktrace.WithSyncer); without one they are sampled
// and dropped, which still gives trace IDs for log correlation.
func Install(sampleRatio float64, opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	}, opts...)
	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown
}
