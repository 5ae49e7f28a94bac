// Copyright © 2018 The ELPS authors

package lexer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/luthersystems/elk/parser/token"
)

const (
	miscWordRunes   = "0123456789" + miscWordSymbols + ":#"
	miscWordSymbols = "._+-*/=<>!&%?$|^"
)

// Option configures a Lexer.
type Option func(*Lexer)

// WithSyntax causes the lexer to recognize the quote-family markers of syn.
func WithSyntax(syn *Syntax) Option {
	return func(lex *Lexer) {
		if syn != nil {
			lex.syntax = syn
		}
	}
}

type Lexer struct {
	scanner    *token.Scanner
	syntax     *Syntax
	markers    []Marker
	incomplete bool
}

func New(s *token.Scanner, opts ...Option) *Lexer {
	lex := &Lexer{
		scanner: s,
		syntax:  DefaultSyntax,
	}
	for _, opt := range opts {
		opt(lex)
	}
	lex.markers = lex.syntax.longestFirst()
	return lex
}

// Syntax returns the syntax table used by lex.
func (lex *Lexer) Syntax() *Syntax {
	return lex.syntax
}

// Incomplete returns true if the last ERROR token was caused by reaching the
// end of input inside of a token.
func (lex *Lexer) Incomplete() bool {
	return lex.incomplete
}

// ReadToken returns the next token in the input stream.  At the end of input
// ReadToken returns a token with type token.EOF, on every call.
func (lex *Lexer) ReadToken() *token.Token {
	lex.incomplete = false
	lex.skipWhitespace()
	if lex.scanner.EOF() {
		if err := lex.scanner.Err(); err != nil {
			return lex.emitError(err)
		}
		return lex.scanner.EmitToken(token.EOF)
	}
	for _, m := range lex.markers {
		if _, ok := lex.scanner.AcceptString(m.Text); ok {
			return lex.scanner.EmitToken(m.Type)
		}
	}
	c := lex.peekRune()
	switch c {
	case '(':
		return lex.charToken(token.PAREN_L)
	case ')':
		return lex.charToken(token.PAREN_R)
	case '[':
		return lex.charToken(token.BRACKET_L)
	case ']':
		return lex.charToken(token.BRACKET_R)
	case '{':
		return lex.charToken(token.BRACE_L)
	case '}':
		return lex.charToken(token.BRACE_R)
	case ';':
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.scanner.EmitToken(token.COMMENT)
	case '"':
		return lex.readString()
	case '\\':
		return lex.readChar()
	case ':':
		lex.readRune()
		if lex.scanner.AcceptSeq(isWord) == 0 {
			return lex.errorf("empty keyword")
		}
		return lex.scanner.EmitToken(token.KEYWORD)
	case '#':
		lex.readRune()
		if lex.scanner.AcceptRune('{') {
			return lex.scanner.EmitToken(token.SET_L)
		}
		if lex.scanner.EOF() {
			return lex.incompletef("unexpected EOF following #")
		}
		return lex.errorf("invalid dispatch character %q", lex.peekRune())
	case '+', '-':
		lex.readRune()
		if isDigit(lex.peekRune()) {
			return lex.readNumber()
		}
		return lex.readSymbol()
	}
	switch {
	case isDigit(c):
		return lex.readNumber()
	case isWordStart(c):
		return lex.readSymbol()
	}
	lex.readRune()
	return lex.errorf("unexpected character %q", c)
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	lex.readRune()
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error) *token.Token {
	if err == io.EOF {
		lex.incomplete = true
		return lex.emit(token.ERROR, "unexpected EOF")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	// consume the rest of the malformed word so the next token is sensible
	lex.scanner.AcceptSeq(isWord)
	return lex.emitError(fmt.Errorf(format, v...))
}

func (lex *Lexer) incompletef(format string, v ...interface{}) *token.Token {
	lex.incomplete = true
	return lex.emit(token.ERROR, fmt.Sprintf(format, v...))
}

func (lex *Lexer) readString() *token.Token {
	lex.readRune() // opening quote
	for {
		c, ok := lex.scanner.Peek()
		if !ok {
			if lex.scanner.EOF() {
				return lex.incompletef("unterminated string literal")
			}
			return lex.emitError(lex.scanner.ScanRune())
		}
		lex.readRune()
		switch c {
		case '"':
			return lex.scanner.EmitToken(token.STRING)
		case '\\':
			esc, ok := lex.scanner.Peek()
			if !ok {
				if lex.scanner.EOF() {
					return lex.incompletef("unterminated string literal")
				}
				return lex.emitError(lex.scanner.ScanRune())
			}
			if _, ok := escapes[esc]; !ok {
				lex.readRune()
				lex.skipString()
				return lex.emit(token.ERROR, fmt.Sprintf("invalid escape sequence \\%c", esc))
			}
			lex.readRune()
		}
	}
}

// skipString advances past the closing quote of a malformed string literal.
func (lex *Lexer) skipString() {
	for {
		c, ok := lex.scanner.Peek()
		if !ok {
			return
		}
		lex.readRune()
		switch c {
		case '"':
			return
		case '\\':
			lex.readRune()
		}
	}
}

func (lex *Lexer) readChar() *token.Token {
	lex.readRune() // backslash
	c, ok := lex.scanner.Peek()
	if !ok {
		if lex.scanner.EOF() {
			return lex.incompletef("unexpected EOF in character literal")
		}
		return lex.emitError(lex.scanner.ScanRune())
	}
	lex.readRune()
	if unicode.IsLetter(c) {
		lex.scanner.AcceptSeq(isWord)
	}
	if _, err := DecodeChar(lex.scanner.Text()); err != nil {
		return lex.emitError(err)
	}
	return lex.scanner.EmitToken(token.CHAR)
}

func (lex *Lexer) readSymbol() *token.Token {
	lex.scanner.AcceptSeq(isWord)
	return lex.scanner.EmitToken(token.SYMBOL)
}

func (lex *Lexer) readNumber() *token.Token {
	lex.scanner.AcceptSeqDigit()
	typ := token.INT
	if lex.scanner.AcceptRune('.') {
		typ = token.FLOAT
		if lex.scanner.AcceptSeqDigit() == 0 {
			return lex.errorf("invalid floating point literal starting: %v", lex.scanner.Text())
		}
	}
	if lex.scanner.AcceptAny("eE") {
		typ = token.FLOAT
		lex.scanner.AcceptAny("+-")
		if lex.scanner.AcceptSeqDigit() == 0 {
			return lex.errorf("invalid floating point literal starting: %v", lex.scanner.Text())
		}
	}
	if isWord(lex.peekRune()) {
		return lex.errorf("invalid number literal starting: %v", lex.scanner.Text())
	}
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) skipWhitespace() {
	lex.scanner.AcceptSeq(func(c rune) bool {
		return unicode.IsSpace(c) || lex.syntax.isSpace(c)
	})
	lex.scanner.Ignore()
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readRune() {
	_ = lex.scanner.ScanRune()
}

var escapes = map[rune]rune{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\\': '\\',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
	'0':  0,
}

// DecodeString returns the contents of the quoted string literal raw with
// escape sequences replaced.
func DecodeString(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", fmt.Errorf("invalid string literal: %s", raw)
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var b strings.Builder
	escaped := false
	for _, c := range body {
		switch {
		case escaped:
			r, ok := escapes[c]
			if !ok {
				return "", fmt.Errorf("invalid escape sequence \\%c", c)
			}
			b.WriteRune(r)
			escaped = false
		case c == '\\':
			escaped = true
		default:
			b.WriteRune(c)
		}
	}
	if escaped {
		return "", fmt.Errorf("unterminated string literal")
	}
	return b.String(), nil
}

var namedChars = map[string]rune{
	"newline": '\n',
	"space":   ' ',
	"tab":     '\t',
	"return":  '\r',
}

// CharName returns the name used for c in character literals, if c has one.
func CharName(c rune) (string, bool) {
	for name, r := range namedChars {
		if r == c {
			return name, true
		}
	}
	return "", false
}

// DecodeChar returns the character denoted by the literal raw (including the
// leading backslash).
func DecodeChar(raw string) (rune, error) {
	if !strings.HasPrefix(raw, `\`) || len(raw) < 2 {
		return 0, fmt.Errorf("invalid character literal: %s", raw)
	}
	text := raw[1:]
	runes := []rune(text)
	if len(runes) == 1 {
		return runes[0], nil
	}
	if c, ok := namedChars[text]; ok {
		return c, nil
	}
	if strings.HasPrefix(text, "u") && len(text) == 5 {
		n, err := strconv.ParseUint(text[1:], 16, 32)
		if err == nil {
			return rune(n), nil
		}
	}
	return 0, fmt.Errorf("invalid character literal: %s", raw)
}

func isWordStart(c rune) bool {
	return unicode.IsLetter(c) || strings.ContainsRune(miscWordSymbols, c)
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || strings.ContainsRune(miscWordRunes, c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
