package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/janhq/autoreply-api/internal/domain/autoreply"
	"github.com/janhq/autoreply-api/internal/infrastructure/metrics"
)

func newObserver(t *testing.T) (*PipelineObserver, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return NewPipelineObserver(tp.Tracer("test")), recorder
}

func TestPipelineObserverSuccessfulRun(t *testing.T) {
	obs, recorder := newObserver(t)
	before := testutil.ToFloat64(metrics.RunsTotal.WithLabelValues("success"))

	ctx := obs.RunStarted(context.Background(), "42")
	obs.StageChanged(ctx, autoreply.StageInit, autoreply.StageLoadingConfig)
	obs.StageCompleted(ctx, autoreply.StageInit, time.Millisecond)
	obs.RunFinished(ctx, autoreply.OutcomeSuccess, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "autoreply.run", spans[0].Name())
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "stage.transition", spans[0].Events()[0].Name)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RunsTotal.WithLabelValues("success")))
}

func TestPipelineObserverFailedRun(t *testing.T) {
	obs, recorder := newObserver(t)
	notesBefore := testutil.ToFloat64(metrics.ErrorNotesTotal.WithLabelValues("failed"))
	retrievalBefore := testutil.ToFloat64(metrics.RetrievalFailuresTotal)

	ctx := obs.RunStarted(context.Background(), "42")
	obs.RetrievalFailed(ctx, &autoreply.StageError{
		Kind:    autoreply.KindRetrievalFailed,
		Stage:   autoreply.StageRetrievingContext,
		Message: "document search failed",
		Cause:   assert.AnError,
	})
	obs.ErrorNoteDelivered(ctx, false)
	obs.RunFinished(ctx, autoreply.OutcomeError, &autoreply.StageError{
		Kind:    autoreply.KindInferenceFailed,
		Stage:   autoreply.StageInvokingInference,
		Message: "Lỗi gọi AI Proxy: timeout",
	})

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "Lỗi gọi AI Proxy: timeout", spans[0].Status().Description)
	assert.Contains(t, spans[0].Attributes(), attribute.String("error.severity", "fatal"))
	assert.Contains(t, spans[0].Attributes(), attribute.String("autoreply.error_kind", "INFERENCE_FAILED"))

	var retrievalEvent *sdktrace.Event
	for i, ev := range spans[0].Events() {
		if ev.Name == "retrieval.failed" {
			retrievalEvent = &spans[0].Events()[i]
		}
	}
	require.NotNil(t, retrievalEvent)
	assert.Contains(t, retrievalEvent.Attributes, attribute.String("error.severity", "non_fatal"))
	assert.Equal(t, notesBefore+1, testutil.ToFloat64(metrics.ErrorNotesTotal.WithLabelValues("failed")))
	assert.Equal(t, retrievalBefore+1, testutil.ToFloat64(metrics.RetrievalFailuresTotal))
}
