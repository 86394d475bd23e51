// Package telemetry provides the logging, metrics, and tracing interfaces used
// throughout agentcore. Implementations are injected by callers; the core
// never reaches for a global/singleton tracer or logger.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Logger captures structured logging used throughout the runtime.
// Implementations typically delegate to Clue or zerolog but the interface is
// intentionally small so tests can provide lightweight stubs.
type Logger interface {
	Debug(ctx context.Context, msg string, keyvals ...any)
	Info(ctx context.Context, msg string, keyvals ...any)
	Warn(ctx context.Context, msg string, keyvals ...any)
	Error(ctx context.Context, msg string, keyvals ...any)
}

// Metrics exposes counter, timer, and gauge helpers for runtime instrumentation.
type Metrics interface {
	IncCounter(name string, value float64, tags ...string)
	RecordTimer(name string, duration time.Duration, tags ...string)
	RecordGauge(name string, value float64, tags ...string)
}

// Tracer abstracts span creation so runtime code stays agnostic of the
// underlying OpenTelemetry provider.
type Tracer interface {
	Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span)
	Span(ctx context.Context) Span
}

// Span represents an in-flight tracing span.
type Span interface {
	End(opts ...trace.SpanEndOption)
	AddEvent(name string, attrs ...any)
	SetStatus(code codes.Code, description string)
	RecordError(err error, opts ...trace.EventOption)
}

// CompressionTelemetry captures observability metadata about a single
// auto-context compression pass. The autocontext package does not emit it;
// it reports compression passes through its own CompressionEvent records.
type CompressionTelemetry struct {
	// Strategy is the name of the compression strategy that fired.
	Strategy string
	// TokensBefore is the estimated token count before the rewrite.
	TokensBefore int
	// TokensAfter is the estimated token count after the rewrite.
	TokensAfter int
	// DurationMs is the wall-clock time spent producing the rewrite,
	// including any model summarization call.
	DurationMs int64
}
