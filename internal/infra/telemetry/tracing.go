// Package telemetry installs the OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"strings"

	"care-doc-assistant/internal/domain"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// Span exporters selectable through TRACES_EXPORTER.
const (
	ExporterNone   = "none"
	ExporterLog    = "log"
	ExporterStdout = "stdout"
)

// ServiceName is reported as service.name on every span.
const ServiceName = "care-doc-assistant"

// NewTracerProvider builds a provider for the named exporter. It returns a nil
// provider for ExporterNone or an empty name.
func NewTracerProvider(ctx context.Context, exporter string, logger domain.Logger) (*sdktrace.TracerProvider, error) {
	var spanExporter sdktrace.SpanExporter
	switch strings.ToLower(strings.TrimSpace(exporter)) {
	case "", ExporterNone:
		return nil, nil
	case ExporterLog:
		spanExporter = NewLogSpanExporter(logger)
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stdout))
		if err != nil {
			return nil, fmt.Errorf("stdout exporter: %w", err)
		}
		spanExporter = exp
	default:
		return nil, fmt.Errorf("unknown traces exporter %q", exporter)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceNameKey.String(ServiceName)))
	if err != nil {
		logger.Warn("Failed to create trace resource, using default", "error", err)
		res = resource.Default()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)
	logger.Info("Tracing enabled", "exporter", exporter)
	return tp, nil
}
