// Copyright © 2018 The ELPS authors

package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/elk/lisp"
	"go.opencensus.io/trace"
)

var _ lisp.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
}

// NewOpenCensusAnnotator returns a profiler which adds OpenCensus spans
// beneath the span in parentContext.
func NewOpenCensusAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) lisp.Profiler {
	p := &ocAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) Enable() error {
	if p.currentContext == nil {
		return errors.New("spans can only be added to a context linked to opencensus")
	}
	p.runtime.Profiler = p
	return p.profiler.Enable()
}

func (p *ocAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func (p *ocAnnotator) Start(fun *lisp.LVal) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	oldContext, oldSpan := p.currentContext, p.currentSpan
	label, name := p.funName(fun)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, label)
	attrs := []trace.Attribute{
		trace.StringAttribute("function", name),
		trace.StringAttribute("kind", funKind(fun)),
	}
	if loc := getSourceLoc(fun); loc != nil {
		attrs = append(attrs,
			trace.StringAttribute("file", loc.File),
			trace.Int64Attribute("line", int64(loc.Line)),
		)
	}
	p.currentSpan.AddAttributes(attrs...)
	span := p.currentSpan
	return func() {
		span.End()
		p.currentContext, p.currentSpan = oldContext, oldSpan
	}
}
