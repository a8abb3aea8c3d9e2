package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/infrastructure/metrics"
)

// PipelineObserver reports auto-reply runs as spans and Prometheus metrics.
type PipelineObserver struct {
	tracer trace.Tracer
}

var _ autoreply.Observer = (*PipelineObserver)(nil)

// NewPipelineObserver uses the global tracer when tracer is nil.
func NewPipelineObserver(tracer trace.Tracer) *PipelineObserver {
	if tracer == nil {
		tracer = GetTracer()
	}
	return &PipelineObserver{tracer: tracer}
}

func (o *PipelineObserver) RunStarted(ctx context.Context, conversationID string) context.Context {
	ctx, _ = o.tracer.Start(ctx, "autoreply.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("conversation.id", conversationID)),
	)
	return ctx
}

func (o *PipelineObserver) StageChanged(ctx context.Context, from, to autoreply.Stage) {
	AddStageTransition(trace.SpanFromContext(ctx), from.String(), to.String())
}

func (o *PipelineObserver) StageCompleted(_ context.Context, stage autoreply.Stage, elapsed time.Duration) {
	metrics.StageDuration.WithLabelValues(stage.String()).Observe(elapsed.Seconds())
}

func (o *PipelineObserver) RetrievalFailed(ctx context.Context, err error) {
	metrics.RetrievalFailuresTotal.Inc()
	trace.SpanFromContext(ctx).AddEvent("retrieval.failed",
		trace.WithAttributes(
			attribute.String("error", err.Error()),
			attribute.String("error.severity", severityOf(err)),
		),
	)
}

func (o *PipelineObserver) ErrorNoteDelivered(_ context.Context, delivered bool) {
	status := "delivered"
	if !delivered {
		status = "failed"
	}
	metrics.ErrorNotesTotal.WithLabelValues(status).Inc()
}

func (o *PipelineObserver) RunFinished(ctx context.Context, outcome autoreply.Outcome, err error) {
	metrics.RunsTotal.WithLabelValues(string(outcome)).Inc()

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("autoreply.outcome", string(outcome)))
	var stageErr *autoreply.StageError
	if errors.As(err, &stageErr) {
		span.SetAttributes(
			attribute.String("autoreply.error_kind", string(stageErr.Kind)),
			attribute.String("autoreply.failed_stage", stageErr.Stage.String()),
		)
	}
	RecordError(span, err, severityOf(err))
	span.End()
}

func severityOf(err error) string {
	var stageErr *autoreply.StageError
	if errors.As(err, &stageErr) && !stageErr.IsFatal() {
		return "non_fatal"
	}
	return "fatal"
}
