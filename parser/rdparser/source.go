// Copyright © 2018 The ELPS authors

package rdparser

import (
	"github.com/luthersystems/elk/parser/lexer"
	"github.com/luthersystems/elk/parser/token"
)

// TokenStream is an arbitrary sequence of tokens.  Typically, a TokenStream
// will be a *lexer.Lexer but other implementations may be desirable for
// testing or for generating programs.
type TokenStream interface {
	// ReadToken returns the next token from an input source.  When no more
	// tokens can be generated ReadToken returns a token with type token.EOF.
	// In the presence of io errors a TokenStream must return a token with
	// type token.ERROR whenever called.
	ReadToken() *token.Token
}

// incompleter is implemented by streams which can tell whether their last
// ERROR token was caused by input ending in the middle of a token.
type incompleter interface {
	Incomplete() bool
}

// TokenGenerator implements TokenStream.  The function will be called any time
// a TokenSource wants a token.
type TokenGenerator func() *token.Token

// ReadToken implements TokenStream.
func (fn TokenGenerator) ReadToken() *token.Token {
	return fn()
}

// TokenSlice returns a TokenStream that produces toks followed by EOF.
func TokenSlice(toks []*token.Token) TokenStream {
	pos := &token.Location{Pos: -1}
	return TokenGenerator(func() *token.Token {
		if len(toks) == 0 {
			return &token.Token{Type: token.EOF, Source: pos}
		}
		tok := toks[0]
		toks = toks[1:]
		pos = tok.Source
		return tok
	})
}

// TokenSource abstracts a TokenStream by adding one token of lookahead.
type TokenSource struct {
	lex   TokenStream
	Token *token.Token
	peek  *token.Token
}

// NewTokenStreamSource returns a TokenSource reading from stream.
func NewTokenStreamSource(stream TokenStream) *TokenSource {
	return &TokenSource{
		lex: stream,
	}
}

// NewTokenSource initializes and returns a new TokenSource that lexes tokens
// from scanner.
func NewTokenSource(scanner *token.Scanner, opts ...lexer.Option) *TokenSource {
	return NewTokenStreamSource(lexer.New(scanner, opts...))
}

// Peek returns the next token without consuming it.
func (s *TokenSource) Peek() *token.Token {
	if s.peek == nil {
		s.peek = s.lex.ReadToken()
	}
	return s.peek
}

// AcceptType consumes the next token if it has one of the given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek().Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// Scan consumes the next token.  Scan returns false at the end of input.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.Peek()
		return false
	}
	s.scan()
	return true
}

// IsEOF returns true if the next token marks the end of input.
func (s *TokenSource) IsEOF() bool {
	return s.Peek().Type == token.EOF
}

// Incomplete returns true if the most recent ERROR token was caused by input
// ending inside of a token.
func (s *TokenSource) Incomplete() bool {
	inc, ok := s.lex.(incompleter)
	return ok && inc.Incomplete()
}

func (s *TokenSource) scan() {
	s.Token = s.Peek()
	s.peek = nil
}
