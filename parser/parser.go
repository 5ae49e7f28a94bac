// Copyright © 2018 The ELPS authors

package parser

import (
	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser/lexer"
	"github.com/luthersystems/elk/parser/parsecparser"
	"github.com/luthersystems/elk/parser/rdparser"
)

// Option configures a reader returned by NewReader.
type Option func(*config)

type config struct {
	syntax      *lexer.Syntax
	combinators bool
}

// WithSyntax returns an Option that reads programs using the surface syntax
// syn.
func WithSyntax(syn *lexer.Syntax) Option {
	return func(c *config) {
		c.syntax = syn
	}
}

// WithCombinators returns an Option that selects the reader built from parser
// combinators.  The combinator reader only understands the default syntax
// and it is ignored if another syntax is also requested.
func WithCombinators() Option {
	return func(c *config) {
		c.combinators = true
	}
}

// NewReader returns a new lisp.Reader
func NewReader(opts ...Option) lisp.Reader {
	c := &config{syntax: lexer.DefaultSyntax}
	for _, opt := range opts {
		opt(c)
	}
	if c.combinators && c.syntax == lexer.DefaultSyntax {
		return parsecparser.NewReader()
	}
	return rdparser.NewReader(rdparser.WithSyntax(c.syntax))
}
