package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "jan-server/autoreply-api"
)

// GetTracer returns the tracer for the auto-reply service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error, severity string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error.severity", severity))
}

// AddStageTransition adds a stage transition event to a span.
func AddStageTransition(span trace.Span, from, to string) {
	span.AddEvent("stage.transition",
		trace.WithAttributes(
			attribute.String("stage.from", from),
			attribute.String("stage.to", to),
		),
	)
}
