// Tracing instrumentation for the agent loop.
package agent

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vinayprograms/taskagent/internal/telemetry"
)

// startRunSpan starts the span covering the whole run.
func (a *Agent) startRunSpan(ctx context.Context, task string) (context.Context, trace.Span) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.StartSpan(ctx, "run.execute")
	span.SetAttributes(
		attribute.String("run.session", a.sess.ID),
		attribute.String("run.id", a.sess.RunID),
	)
	if tracer.Debug() {
		span.SetAttributes(attribute.String("run.task", task))
	}
	return ctx, span
}

// endRunSpan ends the run span with its terminal status.
func (a *Agent) endRunSpan(span trace.Span, status string, err error) {
	span.SetAttributes(attribute.String("run.status", status))
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

// startIterationSpan starts a span for one loop iteration.
func (a *Agent) startIterationSpan(ctx context.Context, n int) (context.Context, trace.Span) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.StartSpan(ctx, fmt.Sprintf("iteration.%d", n))
	span.SetAttributes(attribute.Int("iteration.number", n))
	return ctx, span
}

// endIterationSpan ends the iteration span with its outcome.
func (a *Agent) endIterationSpan(span trace.Span, outcome string, err error) {
	span.SetAttributes(attribute.String("iteration.outcome", outcome))
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}
