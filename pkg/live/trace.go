package live

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope for live transport spans. The
// tracer resolves against the global provider; configure one in main()
// before starting the server to export spans.
const tracerName = "github.com/axon-ui/axon/pkg/live"

// startEventSpan opens a span for one client event dispatch.
func (s *Session) startEventSpan(ev ClientEvent) (context.Context, trace.Span) {
	return s.tracer.Start(context.Background(), "live.event",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("axon.session_id", s.ID),
			attribute.String("axon.event_type", ev.Type),
			attribute.Int64("axon.node_id", int64(ev.Node)),
		),
	)
}
