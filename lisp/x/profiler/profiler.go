// Copyright © 2018 The ELPS authors

// Package profiler provides lisp.Profiler implementations which report
// function applications to tracing systems and profile formats.
package profiler

import (
	"fmt"

	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser/token"
)

// AnonymousFunName labels functions which were never bound to a name.
const AnonymousFunName = "lambda"

// profiler holds the state shared by all profiler implementations.
type profiler struct {
	runtime    *lisp.Runtime
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

// Option configures a profiler.
type Option func(*profiler)

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

// funName returns the name used to label fun along with its bound name.  The
// label differs from the name only when a FunLabeler supplies one.
func (p *profiler) funName(fun *lisp.LVal) (label string, name string) {
	name = fun.FunName()
	if name == "" {
		name = AnonymousFunName
	}
	label = name
	if p.funLabeler != nil {
		if custom := p.funLabeler(p.runtime, fun); custom != "" {
			label = custom
		}
	}
	return label, name
}

func (p *profiler) skipTrace(fun *lisp.LVal) bool {
	return !p.enabled || defaultSkipFilter(fun) || p.skipFilter != nil && p.skipFilter(fun)
}

func funKind(fun *lisp.LVal) string {
	if fd := fun.FunData(); fd != nil && fd.IsBuiltin() {
		return "builtin"
	}
	return fun.FunType.String()
}

func getSourceLoc(fun *lisp.LVal) *token.Location {
	if fun.Source == nil || fun.Source.Pos < 0 {
		return nil
	}
	return fun.Source
}
