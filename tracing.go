package cascade

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName identifies spans started by WithTracing.
const defaultTracerName = "cascade"

// startSpan opens the per-dispatch span and rebinds the request context so
// handlers see it. Returns nil when tracing is off.
func (router *Router) startSpan(req *Request) trace.Span {
	if router.tracer == nil {
		return nil
	}

	ctx, span := router.tracer.Start(req.Context(), "cascade.dispatch",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.target", req.Path),
		),
	)
	req.ctx = ctx

	return span
}

// endSpan records the outcome and closes the span. Accepts nil.
func endSpan(span trace.Span, status, matched int, err error) {
	if span == nil {
		return
	}

	span.SetAttributes(
		attribute.Int("http.status_code", status),
		attribute.Int("cascade.routes_matched", matched),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}
