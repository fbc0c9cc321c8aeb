package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "weathergetter"

// initTracer installs a tracer provider exporting to Zipkin. Without a
// collector URL the global noop provider stays in place.
func initTracer(zipkinURL string) (func() error, error) {
	if zipkinURL == "" {
		return func() error { return nil }, nil
	}

	exporter, err := zipkin.New(zipkinURL)
	if err != nil {
		return nil, errors.Wrap(err, "creating zipkin exporter")
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			attribute.String("service.name", serviceName),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating resource")
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	log.Debug().Str("zipkin", zipkinURL).Msg("Exporting traces")

	return func() error {
		// flushes the batcher before the process exits
		return errors.Wrap(tracerProvider.Shutdown(context.Background()), "shutting down tracer provider")
	}, nil
}
