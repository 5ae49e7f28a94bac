// Copyright © 2024 The ELPS authors

package repl

import (
	"fmt"
	"io"

	"github.com/luthersystems/elk/diagnostic"
	"github.com/luthersystems/elk/lisp"
)

// RenderError renders a lisp error with r.  Input typed at the prompt has no
// source file so the rendered error degrades to its location and message.
func RenderError(r *diagnostic.Renderer, w io.Writer, lerr *lisp.LVal) {
	_ = r.Render(w, ErrorDiagnostic(lerr))
}

// ErrorDiagnostic converts an LError value to a Diagnostic for display.
// The call stack attached to lerr becomes a note per frame, innermost
// first.
func ErrorDiagnostic(lerr *lisp.LVal) diagnostic.Diagnostic {
	ev := (*lisp.ErrorVal)(lerr)
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     string(ev.Kind()),
		Message:  ev.ErrorMessage(),
	}
	if ev.Incomplete() {
		d.Notes = append(d.Notes, "input ended before the expression was complete")
	}

	if src := lerr.Source; src != nil && src.Pos >= 0 {
		span := diagnostic.Span{
			File: src.File,
			Line: src.Line,
			Col:  src.Col,
		}
		if src.Path != "" {
			span.File = src.Path
		}
		d.Spans = append(d.Spans, span)
	}

	stack := lerr.CallStack()
	if stack == nil {
		return d
	}
	for i := len(stack.Frames) - 1; i >= 0; i-- {
		frame := &stack.Frames[i]
		name := frame.Name
		if name == "" {
			name = "<anonymous>"
		}
		if frame.TailCalls > 0 {
			name = fmt.Sprintf("%s [%d tail calls]", name, frame.TailCalls)
		}
		loc := "unknown"
		if frame.Source != nil && frame.Source.Pos >= 0 {
			loc = frame.Source.String()
		}
		d.Notes = append(d.Notes, "in "+name+" at "+loc)
	}
	return d
}
