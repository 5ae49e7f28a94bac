// Copyright © 2018 The ELPS authors

package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/luthersystems/elk/lisp"
)

// pprofAnnotator labels the evaluating goroutine with the function being
// applied so that CPU profiles can be broken down by lisp function.  The
// annotator does not start pprof itself.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ lisp.Profiler = &pprofAnnotator{}

// NewPprofAnnotator returns a profiler which sets the "function" pprof label.
func NewPprofAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) lisp.Profiler {
	p := &pprofAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	p.runtime.Profiler = p
	return p.profiler.Enable()
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return nil
}

func (p *pprofAnnotator) Start(fun *lisp.LVal) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	oldContext := p.currentContext
	label, _ := p.funName(fun)
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels("function", label))
	pprof.SetGoroutineLabels(p.currentContext)
	return func() {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}
