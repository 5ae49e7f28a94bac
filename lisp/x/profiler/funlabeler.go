// Copyright © 2018 The ELPS authors

package profiler

import (
	"regexp"
	"strings"

	"github.com/luthersystems/elk/lisp"
)

// FunLabeler provides an alternative name for a function label in the trace.
type FunLabeler func(runtime *lisp.Runtime, fun *lisp.LVal) string

// WithDocLabeler labels spans using the DocLabel syntax in function
// docstrings.
func WithDocLabeler() Option {
	return WithFunLabeler(docFunLabeler)
}

// WithFunLabeler sets the labeler for tracing spans.
func WithFunLabeler(funLabeler FunLabeler) Option {
	return func(p *profiler) {
		p.funLabeler = funLabeler
	}
}

// DocLabel matches a label given in a docstring, e.g. "@trace{Add It}".
const DocLabel = `@trace\s*{([^}]+)}`

var (
	docLabelRegExp   = regexp.MustCompile(DocLabel)
	sanitizeRegExp   = regexp.MustCompile(`[\s_]+`)
	validLabelRegExp = regexp.MustCompile(`[[:graph:]]*`)
)

func sanitizeLabel(userLabel string) string {
	if userLabel == "" {
		return ""
	}
	userLabel = sanitizeRegExp.ReplaceAllString(userLabel, "_")
	matches := validLabelRegExp.FindStringSubmatch(userLabel)
	if len(matches) > 0 {
		return matches[0]
	}
	return ""
}

func extractLabel(doc string) string {
	if doc == "" {
		return ""
	}
	match := docLabelRegExp.FindStringSubmatch(doc)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func cleanLabel(doc string) string {
	return sanitizeLabel(extractLabel(doc))
}

func docFunLabeler(runtime *lisp.Runtime, fun *lisp.LVal) string {
	return cleanLabel(fun.FunData().Doc)
}
