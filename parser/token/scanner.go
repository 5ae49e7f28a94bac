// Copyright © 2018 The ELPS authors

package token

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// The scanner tracks the line and column of every token it emits.
type Scanner struct {
	file string
	path string

	src     []byte
	readErr error

	start     int // byte offset of the current token
	startLine int
	startCol  int

	next int // byte offset of the rune following c
	line int // line of the rune at next
	col  int // column of the rune at next
	c    rune
}

// NewScanner initializes and returns a new Scanner.  The entire contents of
// r are buffered.  A read error other than io.EOF is reported by Err once
// the buffered input has been consumed.
func NewScanner(file string, r io.Reader) *Scanner {
	src, err := io.ReadAll(r)
	return newScannerBytes(file, src, err)
}

// NewScannerString is a convenience function to scan a string.
func NewScannerString(file string, src string) *Scanner {
	return newScannerBytes(file, []byte(src), nil)
}

func newScannerBytes(file string, src []byte, err error) *Scanner {
	return &Scanner{
		file:      file,
		src:       src,
		readErr:   err,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// SetPath associates a physical location (e.g. filesystem path) with s to aid
// in debugging projects which scan many ungrouped files.
func (s *Scanner) SetPath(path string) {
	s.path = path
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.line
	s.startCol = s.col
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.src[s.start:s.next])
}

// Rune returns the last rune scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value.
func (s *Scanner) Peek() (rune, bool) {
	if s.next >= len(s.src) {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		return utf8.RuneError, false
	}
	return c, true
}

// HasPrefix returns true if the unscanned input begins with prefix.
func (s *Scanner) HasPrefix(prefix string) bool {
	return prefix != "" && bytes.HasPrefix(s.src[s.next:], []byte(prefix))
}

// ScanRune scans a utf-8 rune from the input for inclusion in the current
// token.  At the end of input ScanRune returns io.EOF, or the error that
// terminated reading of the input stream.
func (s *Scanner) ScanRune() error {
	if s.next >= len(s.src) {
		if s.readErr != nil {
			return s.readErr
		}
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		return fmt.Errorf("invalid utf-8 sequence in source text starting with byte %q", s.src[s.next])
	}
	s.c = c
	s.next += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// Err returns an error encountered reading the input stream.  Err returns nil
// while there is still buffered input to be scanned.
func (s *Scanner) Err() error {
	if s.next < len(s.src) {
		return nil
	}
	return s.readErr
}

// EOF returns true when all input has been scanned.
func (s *Scanner) EOF() bool {
	return s.next >= len(s.src)
}

func (s *Scanner) Accept(fn func(rune) bool) bool {
	peek, ok := s.Peek()
	if !ok || !fn(peek) {
		return false
	}
	return s.ScanRune() == nil
}

func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(p rune) bool { return p == c })
}

func (s *Scanner) AcceptDigit() bool {
	return s.Accept(func(c rune) bool { return '0' <= c && c <= '9' })
}

func (s *Scanner) AcceptSpace() bool {
	return s.Accept(unicode.IsSpace)
}

func (s *Scanner) AcceptAny(charset string) bool {
	return s.Accept(func(c rune) bool { return strings.ContainsRune(charset, c) })
}

func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqDigit() int {
	var n int
	for s.AcceptDigit() {
		n++
	}
	return n
}

// AcceptString scans literal if the unscanned input begins with it.  The
// number of runes scanned is returned.  AcceptString never scans a partial
// literal.
func (s *Scanner) AcceptString(literal string) (int, bool) {
	if !s.HasPrefix(literal) {
		return 0, false
	}
	var n int
	for range literal {
		if s.ScanRune() != nil {
			return n, false
		}
		n++
	}
	return n, true
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the current scanner position.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.next,
		Line: s.line,
		Col:  s.col,
	}
}
