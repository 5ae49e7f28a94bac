// Copyright © 2018 The ELPS authors

package profiler

import (
	"regexp"

	"github.com/luthersystems/elk/lisp"
)

// SkipFilter returns true for functions which should not be traced.
type SkipFilter func(fun *lisp.LVal) bool

func defaultSkipFilter(fun *lisp.LVal) bool {
	return fun.Type != lisp.LFun || fun.FunData() == nil
}

// WithDocFilter restricts tracing to functions whose docstring contains
// DocTrace.
func WithDocFilter() Option {
	return WithSkipFilter(docSkipFilter)
}

// WithBuiltinFilter excludes functions implemented in Go.
func WithBuiltinFilter() Option {
	return WithSkipFilter(func(fun *lisp.LVal) bool {
		return fun.FunData().IsBuiltin()
	})
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// DocTrace is a magic string which marks a function for tracing by a
// profiler configured WithDocFilter.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

func docSkipFilter(fun *lisp.LVal) bool {
	doc := fun.FunData().Doc
	if doc == "" {
		return true
	}
	return !docTraceRegExp.MatchString(doc)
}
