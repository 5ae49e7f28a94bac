// Copyright © 2018 The ELPS authors

package rdparser

import (
	"io"
	"strconv"

	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser/lexer"
	"github.com/luthersystems/elk/parser/token"
)

// Option configures the readers returned by NewReader.
type Option func(*reader)

// WithSyntax makes a reader use the surface syntax syn.
func WithSyntax(syn *lexer.Syntax) Option {
	return func(r *reader) {
		r.syntax = syn
	}
}

type reader struct {
	syntax *lexer.Syntax
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader(opts ...Option) lisp.Reader {
	r := &reader{syntax: lexer.DefaultSyntax}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read implements lisp.Reader.
func (r *reader) Read(name string, src io.Reader) ([]*lisp.LVal, error) {
	s := token.NewScanner(name, src)
	return New(s, lexer.WithSyntax(r.syntax)).ParseProgram()
}

// ReadLocation implements lisp.LocationReader.
func (r *reader) ReadLocation(name string, loc string, src io.Reader) ([]*lisp.LVal, error) {
	s := token.NewScanner(name, src)
	s.SetPath(loc)
	return New(s, lexer.WithSyntax(r.syntax)).ParseProgram()
}

// markerSymbols maps quote-family tokens to the symbol heading the form they
// produce.
var markerSymbols = map[token.Type]string{
	token.QUOTE:          lisp.QuoteSymbol,
	token.QUASIQUOTE:     lisp.QuasiquoteSymbol,
	token.UNQUOTE:        lisp.UnquoteSymbol,
	token.SPLICE_UNQUOTE: lisp.SpliceUnquoteSymbol,
	token.DEREF:          lisp.DerefSymbol,
}

// Parser is a lisp parser.
type Parser struct {
	src *TokenSource
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{
		src: src,
	}
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner, opts ...lexer.Option) *Parser {
	return NewFromSource(NewTokenSource(scanner, opts...))
}

// Parse is a generic entry point that is similar to ParseExpression but is
// capable of handling EOF before reading an expression.  Parse returns io.EOF
// when the input contains no more expressions.
func (p *Parser) Parse() (*lisp.LVal, error) {
	p.ignoreComments()
	if p.src.IsEOF() {
		return nil, io.EOF
	}
	expr := p.ParseExpression()
	if expr.Type == lisp.LError {
		return nil, lisp.GoError(expr)
	}
	return expr, nil
}

// ParseProgram parses every expression in the input.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses a single expression.  Unlike Parse, ParseExpression
// requires an expression to be present in the input stream and will report
// unexpected EOF tokens encountered.
func (p *Parser) ParseExpression() *lisp.LVal {
	p.ignoreComments()
	switch typ := p.PeekType(); typ {
	case token.INT:
		return p.ParseLiteralInt()
	case token.FLOAT:
		return p.ParseLiteralFloat()
	case token.STRING:
		return p.ParseLiteralString()
	case token.CHAR:
		return p.ParseLiteralChar()
	case token.KEYWORD:
		return p.ParseKeyword()
	case token.SYMBOL:
		return p.ParseSymbol()
	case token.QUOTE, token.QUASIQUOTE, token.UNQUOTE, token.SPLICE_UNQUOTE, token.DEREF:
		return p.ParseMarker()
	case token.PAREN_L:
		return p.parseSeq(token.PAREN_R, lisp.List)
	case token.BRACKET_L:
		return p.parseSeq(token.BRACKET_R, lisp.Vector)
	case token.BRACE_L:
		return p.ParseMap()
	case token.SET_L:
		return p.ParseSet()
	case token.EOF:
		p.ReadToken()
		return p.incompletef("unexpected end of input")
	case token.ERROR, token.INVALID:
		p.ReadToken()
		return lisp.SyntaxError(p.Location(), p.src.Incomplete(), p.TokenText())
	case token.PAREN_R, token.BRACKET_R, token.BRACE_R:
		p.ReadToken()
		return p.errorf("unexpected %s", p.TokenText())
	default:
		p.ReadToken()
		return p.errorf("unexpected token: %v", typ)
	}
}

func (p *Parser) ParseLiteralInt() *lisp.LVal {
	if !p.Accept(token.INT) {
		return p.errorf("invalid integer literal: %v", p.PeekType())
	}
	text := p.TokenText()
	x, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return p.errorf("integer literal overflows int: %v", text)
	}
	return p.tokenLVal(lisp.Int(x))
}

func (p *Parser) ParseLiteralFloat() *lisp.LVal {
	if !p.Accept(token.FLOAT) {
		return p.errorf("invalid float literal: %v", p.PeekType())
	}
	x, err := strconv.ParseFloat(p.TokenText(), 64)
	if err != nil {
		return p.errorf("invalid floating point literal: %v", p.TokenText())
	}
	return p.tokenLVal(lisp.Float(x))
}

func (p *Parser) ParseLiteralString() *lisp.LVal {
	if !p.Accept(token.STRING) {
		return p.errorf("invalid string literal: %v", p.PeekType())
	}
	s, err := lexer.DecodeString(p.TokenText())
	if err != nil {
		return p.errorf("%v", err)
	}
	return p.tokenLVal(lisp.String(s))
}

func (p *Parser) ParseLiteralChar() *lisp.LVal {
	if !p.Accept(token.CHAR) {
		return p.errorf("invalid character literal: %v", p.PeekType())
	}
	c, err := lexer.DecodeChar(p.TokenText())
	if err != nil {
		return p.errorf("%v", err)
	}
	return p.tokenLVal(lisp.Char(c))
}

func (p *Parser) ParseKeyword() *lisp.LVal {
	if !p.Accept(token.KEYWORD) {
		return p.errorf("invalid keyword: %v", p.PeekType())
	}
	return p.tokenLVal(lisp.Keyword(p.TokenText()[1:]))
}

// ParseSymbol parses a symbol.  The symbols nil, true and false produce the
// corresponding singleton values.
func (p *Parser) ParseSymbol() *lisp.LVal {
	if !p.Accept(token.SYMBOL) {
		return p.errorf("invalid symbol: %v", p.PeekType())
	}
	switch text := p.TokenText(); text {
	case lisp.NilSymbol:
		return lisp.Nil()
	case lisp.TrueSymbol:
		return lisp.Bool(true)
	case lisp.FalseSymbol:
		return lisp.Bool(false)
	default:
		return p.tokenLVal(lisp.Symbol(text))
	}
}

// ParseMarker parses a quote-family marker and wraps the following
// expression, e.g. 'x reads as (quote x).
func (p *Parser) ParseMarker() *lisp.LVal {
	p.ReadToken()
	name := markerSymbols[p.TokenType()]
	head := p.tokenLVal(lisp.Symbol(name))
	form := p.tokenLVal(lisp.List(nil))
	x := p.ParseExpression()
	if x.Type == lisp.LError {
		return x
	}
	form.Cells = []*lisp.LVal{head, x}
	return form
}

// parseSeq parses the elements of a list or vector up to the closing
// delimiter.
func (p *Parser) parseSeq(close token.Type, build func([]*lisp.LVal) *lisp.LVal) *lisp.LVal {
	p.ReadToken()
	expr := p.tokenLVal(build(nil))
	cells, lerr := p.parseElements(close)
	if lerr != nil {
		return lerr
	}
	expr.Cells = cells
	return expr
}

func (p *Parser) ParseMap() *lisp.LVal {
	p.ReadToken()
	loc := p.Location()
	cells, lerr := p.parseElements(token.BRACE_R)
	if lerr != nil {
		return lerr
	}
	if len(cells)%2 != 0 {
		return p.semanticErrorf(loc, "map literal has an odd number of forms: %d", len(cells))
	}
	data := lisp.NewMapData(len(cells) / 2)
	for i := 0; i < len(cells); i += 2 {
		if data.Has(cells[i]) {
			return p.semanticErrorf(cells[i].Source, "duplicate key in map literal: %v", cells[i])
		}
		data.Put(cells[i], cells[i+1])
	}
	return lisp.MapFromData(data).WithSource(loc)
}

func (p *Parser) ParseSet() *lisp.LVal {
	p.ReadToken()
	loc := p.Location()
	cells, lerr := p.parseElements(token.BRACE_R)
	if lerr != nil {
		return lerr
	}
	data := lisp.NewMapData(len(cells))
	for _, x := range cells {
		if data.Has(x) {
			return p.semanticErrorf(x.Source, "duplicate member in set literal: %v", x)
		}
		data.Put(x, x)
	}
	return lisp.SetFromData(data).WithSource(loc)
}

func (p *Parser) parseElements(close token.Type) ([]*lisp.LVal, *lisp.LVal) {
	open := p.src.Token
	cells := []*lisp.LVal{}
	for {
		p.ignoreComments()
		if p.src.IsEOF() {
			p.ReadToken()
			return nil, p.incompletef("unmatched %s", open.Text)
		}
		if p.Accept(close) {
			return cells, nil
		}
		x := p.ParseExpression()
		if x.Type == lisp.LError {
			return nil, x
		}
		cells = append(cells, x)
	}
}

func (p *Parser) ignoreComments() {
	for p.Accept(token.COMMENT) {
	}
}

func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) TokenText() string {
	return p.src.Token.Text
}

func (p *Parser) TokenType() token.Type {
	return p.src.Token.Type
}

func (p *Parser) Location() *token.Location {
	return p.src.Token.Source
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

func (p *Parser) Accept(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	return v.WithSource(p.Location())
}

func (p *Parser) errorf(format string, v ...interface{}) *lisp.LVal {
	lerr := lisp.ErrorConditionf(lisp.CondSyntaxError, format, v...)
	lerr.Source = p.Location()
	return lerr
}

func (p *Parser) incompletef(format string, v ...interface{}) *lisp.LVal {
	lerr := p.errorf(format, v...)
	return lisp.SyntaxError(lerr.Source, true, lerr.Cells[0].Str)
}

func (p *Parser) semanticErrorf(loc *token.Location, format string, v ...interface{}) *lisp.LVal {
	lerr := lisp.ErrorConditionf(lisp.CondSemanticError, format, v...)
	lerr.Source = loc
	return lerr
}
