package main

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "pointillism"

// tracing owns the trace provider for one CLI run.
type tracing struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// newTracing configures span export. "none" (or empty) disables tracing;
// "stdout" writes pretty-printed spans to w.
func newTracing(exporter string, w io.Writer) (*tracing, error) {
	switch exporter {
	case "", "none":
		return &tracing{tracer: noop.NewTracerProvider().Tracer(serviceName)}, nil
	case "stdout":
	default:
		return nil, fmt.Errorf("unsupported trace exporter %q", exporter)
	}

	exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	return &tracing{provider: tp, tracer: tp.Tracer(serviceName)}, nil
}

// Close flushes pending spans.
func (t *tracing) Close() error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(context.Background())
}
