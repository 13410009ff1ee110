// Package telemetry wraps the OpenTelemetry tracer used across the
// agent. The global provider defaults to a noop, so spans cost nothing
// until an exporter is installed.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vinayprograms/taskagent"

// Tracer starts spans and reports whether verbose span attributes
// (command output payloads) should be recorded.
type Tracer struct {
	tracer trace.Tracer
	debug  bool
}

var (
	mu     sync.Mutex
	shared *Tracer
)

// GetTracer returns the process-wide tracer, creating it on first use.
func GetTracer() *Tracer {
	mu.Lock()
	defer mu.Unlock()
	if shared == nil {
		shared = &Tracer{tracer: otel.Tracer(tracerName)}
	}
	return shared
}

// SetDebug toggles recording of large payload attributes on spans.
func SetDebug(debug bool) {
	t := GetTracer()
	mu.Lock()
	defer mu.Unlock()
	t.debug = debug
}

// StartSpan starts a named span as a child of the span in ctx.
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name)
}

// Debug reports whether payload attributes should be attached to spans.
func (t *Tracer) Debug() bool {
	mu.Lock()
	defer mu.Unlock()
	return t.debug
}
