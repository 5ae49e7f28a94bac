// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the column at which notes are wrapped when a Renderer does
// not specify a Width.
const DefaultWidth = 80

// noteIndent is the width of the "   = note: " prefix.
const noteIndent = 11

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Width is the column at which notes are wrapped.
	Width int

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, d, p)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, r.wrapNote(note))
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// wrapNote wraps note so that continuation lines align with its first line.
func (r *Renderer) wrapNote(note string) string {
	width := r.Width
	if width <= 0 {
		width = DefaultWidth
	}
	if width <= noteIndent+10 || len(note) <= width-noteIndent {
		return note
	}
	wrapped := wordwrap.String(note, width-noteIndent)
	first, rest, ok := strings.Cut(wrapped, "\n")
	if !ok {
		return wrapped
	}
	return first + "\n" + indent.String(rest, noteIndent)
}

// errWriter captures the first write error and ignores subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) writeHeader(ew *errWriter, d Diagnostic, p palette) {
	var sevColor string
	switch d.Severity {
	case SeverityError:
		sevColor = p.boldRed
	case SeverityWarning:
		sevColor = p.yellow
	case SeverityNote:
		sevColor = p.boldCyan
	}
	sev := d.Severity.String()
	if d.Code != "" {
		sev += "[" + d.Code + "]"
	}
	ew.printf("%s%s%s%s: %s%s%s\n",
		sevColor, p.bold, sev, p.reset,
		p.bold, d.Message, p.reset)
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc = fmt.Sprintf("%s:%d", span.File, span.Line)
		if span.Col > 0 {
			loc = fmt.Sprintf("%s:%d:%d", span.File, span.Line, span.Col)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source := r.readSourceLine(span.File, span.Line)
	if source == "" {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}

	lineStr := fmt.Sprintf("%d", span.Line)
	pad := strings.Repeat(" ", len(lineStr))

	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, lineStr, p.reset, strings.ReplaceAll(source, "\t", "    "))

	// Columns count runes.
	runes := []rune(source)
	col := span.Col
	if col <= 0 {
		col = 1
	}
	endCol := span.EndCol
	if endCol <= 0 {
		endCol = detectEndCol(runes, col)
	}
	if endCol < col {
		endCol = col
	}
	prefix := ""
	if col-1 <= len(runes) {
		prefix = string(runes[:col-1])
	}
	underPad := strings.Repeat(" ", displayWidth(prefix))
	underline := strings.Repeat("^", endCol-col+1)

	ew.printf(" %s%s |%s  %s%s%s%s", p.boldBlue, pad, p.reset, underPad, p.boldRed, underline, p.reset)
	if span.Label != "" {
		ew.printf(" %s%s%s", p.boldRed, span.Label, p.reset)
	}
	ew.print("\n")
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
}

func (r *Renderer) readSourceLine(file string, line int) string {
	if line <= 0 || file == "" {
		return ""
	}
	reader := r.SourceReader
	if reader == nil {
		reader = func(name string) ([]byte, error) {
			return os.ReadFile(name) //nolint:gosec // reads user-specified source files for display
		}
	}
	data, err := reader(file)
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for i := 1; scanner.Scan(); i++ {
		if i == line {
			return scanner.Text()
		}
	}
	return ""
}

// detectEndCol returns the column of the last rune of the token starting at
// col.
func detectEndCol(runes []rune, col int) int {
	if col <= 0 || col > len(runes) {
		return col
	}
	end := col - 1
	for end < len(runes) {
		switch runes[end] {
		case ' ', '\t', '(', ')', '[', ']', '{', '}':
			if end == col-1 {
				return col
			}
			return end
		}
		end++
	}
	return end
}

// displayWidth returns the display width of a string, expanding tabs to 4 spaces.
func displayWidth(s string) int {
	w := 0
	for _, ch := range s {
		if ch == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}

func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
