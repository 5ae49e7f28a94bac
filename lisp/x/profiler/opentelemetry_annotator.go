// Copyright © 2018 The ELPS authors

package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/elk/lisp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

// ContextOpenTelemetryTracerKey looks up a tracer name in the parent context.
const ContextOpenTelemetryTracerKey contextKey = "otelParentTracer"

// DefaultTracerName is the tracer used when the parent context names none.
const DefaultTracerName = "elk"

var _ lisp.Profiler = &otelAnnotator{}

// otelAnnotator records one span per function application.  Nested calls
// produce child spans.
type otelAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    trace.Span
}

// NewOpenTelemetryAnnotator returns a profiler which adds spans beneath the
// span in parentContext.  Enable installs the profiler in runtime.
func NewOpenTelemetryAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) lisp.Profiler {
	p := &otelAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.applyConfigs(opts...)
	return p
}

func (p *otelAnnotator) Enable() error {
	if p.currentContext == nil {
		return errors.New("spans can only be added to a context linked to opentelemetry")
	}
	p.runtime.Profiler = p
	return p.profiler.Enable()
}

func (p *otelAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = DefaultTracerName
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) Start(fun *lisp.LVal) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	oldContext, oldSpan := p.currentContext, p.currentSpan
	label, name := p.funName(fun)
	p.currentContext, p.currentSpan = contextTracer(p.currentContext).Start(p.currentContext, label)
	p.addCodeAttributes(fun, name)
	span := p.currentSpan
	return func() {
		span.End()
		p.currentContext, p.currentSpan = oldContext, oldSpan
	}
}

func (p *otelAnnotator) addCodeAttributes(fun *lisp.LVal, name string) {
	attrs := []attribute.KeyValue{
		semconv.CodeNamespace(funKind(fun)),
		semconv.CodeFunction(name),
	}
	if loc := getSourceLoc(fun); loc != nil {
		attrs = append(attrs,
			semconv.CodeColumn(loc.Col),
			semconv.CodeFilepath(loc.File),
			semconv.CodeLineNumber(loc.Line),
		)
	}
	p.currentSpan.SetAttributes(attrs...)
}
