package trace

import "context"

type tracerKey struct{}

// FromContext returns the tracer attached by the command layer, or Nop.
// Driver passes (compile, run, cache/get, cache/put) never need a nil check.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanContext identifies the span that new spans in the same context nest under.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

type spanKey struct{}

// CurrentSpan returns the span context stored in ctx, zero when absent.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

// ParentID is the SpanID of CurrentSpan; 0 makes a root span.
func ParentID(ctx context.Context) uint64 {
	return CurrentSpan(ctx).SpanID
}

// WithSpanContext attaches sc to ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanKey{}, sc)
}

// ContextWithSpan makes s the parent of spans begun from the returned context:
// the command span parents the driver passes, a check:<file> span parents
// its compile pass. A disabled span leaves ctx unchanged.
func ContextWithSpan(ctx context.Context, s *Span) context.Context {
	if s == nil || s.id == 0 {
		return ctx
	}
	return WithSpanContext(ctx, SpanContext{SpanID: s.id, GID: s.gid})
}
