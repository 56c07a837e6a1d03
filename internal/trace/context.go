package trace

import "context"

type ctxKey struct{}

type parentKey struct{}

// FromContext extracts the Tracer from context.
// If not found, returns Nop tracer.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// ParentSpan returns the span ID recorded by WithParentSpan, or 0.
func ParentSpan(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}

// WithParentSpan makes span the parent of spans begun from ctx.
func WithParentSpan(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, parentKey{}, span.ID())
}

// Start begins a span using the tracer and parent stored in ctx and returns
// a context that parents further spans to it.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	span := Begin(FromContext(ctx), scope, name, ParentSpan(ctx))
	return WithParentSpan(ctx, span), span
}
