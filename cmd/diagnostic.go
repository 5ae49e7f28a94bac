// Copyright © 2024 The ELPS authors

package cmd

import (
	"errors"
	"io"

	"github.com/luthersystems/elk/diagnostic"
	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/repl"
)

// errReported is returned by commands which have already rendered their
// error to the user.
var errReported = errors.New("error reported")

func newRenderer() *diagnostic.Renderer {
	mode, err := colorMode()
	if err != nil {
		mode = diagnostic.ColorAuto
	}
	return &diagnostic.Renderer{Color: mode}
}

// renderLispError renders a lisp error with diagnostic formatting to w and
// returns errReported.
func renderLispError(w io.Writer, lerr *lisp.LVal) error {
	_ = newRenderer().Render(w, repl.ErrorDiagnostic(lerr))
	return errReported
}
