package telemetry

import (
	"context"

	"care-doc-assistant/internal/domain"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogSpanExporter writes one debug line per finished span through the
// application logger.
type LogSpanExporter struct {
	logger domain.Logger
}

func NewLogSpanExporter(logger domain.Logger) *LogSpanExporter {
	return &LogSpanExporter{logger: logger}
}

// ExportSpans never fails; spans that cannot be written are dropped.
func (e *LogSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		fields := []interface{}{
			"span", span.Name(),
			"trace_id", span.SpanContext().TraceID().String(),
			"span_id", span.SpanContext().SpanID().String(),
			"duration_ms", span.EndTime().Sub(span.StartTime()).Milliseconds(),
		}
		if parent := span.Parent(); parent.IsValid() {
			fields = append(fields, "parent_id", parent.SpanID().String())
		}
		for _, attr := range span.Attributes() {
			fields = append(fields, string(attr.Key), attr.Value.Emit())
		}
		if status := span.Status(); status.Code == codes.Error {
			fields = append(fields, "status", "error", "status_message", status.Description)
		}
		e.logger.Debug("Span finished", fields...)
	}
	return nil
}

func (e *LogSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}
