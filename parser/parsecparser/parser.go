// Copyright © 2018 The ELPS authors

/*
Package parsecparser provides a lisp reader built from parser combinators.

	expr     := term | list | vector | map | set | marker <expr>
	list     := '(' <item>* ')'
	vector   := '[' <item>* ']'
	map      := '{' <item>* '}'
	set      := '#{' <item>* '}'
	item     := <comment> | ',' | <expr>
	marker   := "'" | '`' | '~@' | '~' | '@'
	term     := <string> | <char> | <keyword> | <number> | <symbol>

The reader understands the default surface syntax only.
*/
package parsecparser

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser/lexer"
	"github.com/luthersystems/elk/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// NewReader returns a lisp.Reader.
func NewReader() lisp.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseLVal(name, b)
}

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeList
	nodeVector
	nodeMap
	nodeSet
	nodeMarker
	nodeUnmatched
)

var nodeTypeStrings = []string{
	nodeInvalid:   "INVALID",
	nodeTerm:      "TERM",
	nodeList:      "LIST",
	nodeVector:    "VECTOR",
	nodeMap:       "MAP",
	nodeSet:       "SET",
	nodeMarker:    "MARKER",
	nodeUnmatched: "UNMATCHED",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

const (
	wordRunes   = `\pL0-9._+\-*/=<>!&%?$|^:#`
	symbolStart = `\pL._+\-*/=<>!&%?$|^`
	skipPattern = `^(?:[\s,]|;[^\n]*)+`
)

var numberPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

var markerSymbols = map[string]string{
	"'":  lisp.QuoteSymbol,
	"`":  lisp.QuasiquoteSymbol,
	"~":  lisp.UnquoteSymbol,
	"~@": lisp.SpliceUnquoteSymbol,
	"@":  lisp.DerefSymbol,
}

// ParseLVal parses all LVal values in text and returns them.
func ParseLVal(name string, text []byte) ([]*lisp.LVal, error) {
	g := newGrammar(name, text)
	var vals []*lisp.LVal
	s := parsec.NewScanner(text)
	root, s := g.top(s)
	for root != nil {
		v, err := getLVal(root)
		if err != nil {
			return nil, err
		}
		if v != nil {
			vals = append(vals, v)
		}
		root, s = g.top(s)
	}
	_, s = s.Clone().Match(skipPattern)
	if !s.Endof() {
		b, _ := s.Clone().Match(`^(?s:.){1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		lerr := lisp.ErrorConditionf(lisp.CondSyntaxError, "unexpected source text possibly starting: %s", b)
		lerr.Source = g.location(s.GetCursor())
		return nil, lisp.GoError(lerr)
	}
	return vals, nil
}

type grammar struct {
	name  string
	text  []byte
	lines []int // offsets of the first byte of each line
	top   parsec.Parser
}

func newGrammar(name string, text []byte) *grammar {
	g := &grammar{
		name:  name,
		text:  text,
		lines: []int{0},
	}
	for i, b := range text {
		if b == '\n' {
			g.lines = append(g.lines, i+1)
		}
	}
	g.top = g.newParser()
	return g
}

func (g *grammar) newParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("[", "OPENB")
	closeB := parsec.Atom("]", "CLOSEB")
	openC := parsec.Atom("{", "OPENC")
	closeC := parsec.Atom("}", "CLOSEC")
	openS := parsec.Atom("#{", "OPENS")
	marker := parsec.OrdChoice(nil,
		parsec.Atom("'", "MARKER"),
		parsec.Atom("`", "MARKER"),
		parsec.Atom("~@", "MARKER"),
		parsec.Atom("~", "MARKER"),
		parsec.Atom("@", "MARKER"),
	)
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	comma := parsec.Atom(",", "COMMA")
	str := parsec.Token(`"(?:[^"\\]|\\(?s:.))*"`, "STRING")
	strOpen := parsec.Token(`"(?:[^"\\]|\\(?s:.))*\\?\z`, "STRING_OPEN")
	char := parsec.Token(`\\(?:\pL[`+wordRunes+`]*|(?s:.))`, "CHAR")
	keyword := parsec.Token(`:[`+wordRunes+`]+`, "KEYWORD")
	number := parsec.Token(`[+-]?[0-9][`+wordRunes+`]*`, "NUMBER")
	symbol := parsec.Token(`[`+symbolStart+`][`+wordRunes+`]*`, "SYMBOL")
	hashOpen := parsec.Token(`#\z`, "HASH_OPEN")
	term := parsec.OrdChoice(g.nodify(nodeTerm),
		str,
		strOpen,
		char,
		keyword,
		number, // number precedes symbol so that signed numbers are not symbols
		symbol,
		hashOpen,
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	gap := parsec.Kleene(nil, parsec.OrdChoice(nil, comment, comma))
	items := parsec.Kleene(nil, parsec.OrdChoice(nil, comment, comma, &expr))
	list := parsec.And(g.nodify(nodeList), openP, items, closeP)
	vector := parsec.And(g.nodify(nodeVector), openB, items, closeB)
	mapLit := parsec.And(g.nodify(nodeMap), openC, items, closeC)
	setLit := parsec.And(g.nodify(nodeSet), openS, items, closeC)
	quoted := parsec.And(g.nodify(nodeMarker), marker, gap, &expr)
	end := parsec.Parser(g.end)
	collOpen := parsec.And(g.nodify(nodeUnmatched),
		parsec.OrdChoice(nil, openP, openB, openC, openS), items, end)
	markerOpen := parsec.And(g.nodify(nodeUnmatched), marker, gap, end)
	expr = parsec.OrdChoice(nil,
		term,
		list,
		vector,
		mapLit,
		setLit,
		quoted,
		// Error matching cases come last because they have the lowest
		// precedence.
		collOpen,
		markerOpen,
	)
	return parsec.OrdChoice(nil, comment, comma, &expr)
}

// end matches the end of input, ignoring trailing whitespace and comments.
func (g *grammar) end(s parsec.Scanner) (parsec.ParsecNode, parsec.Scanner) {
	_, news := s.Clone().Match(skipPattern)
	if !news.Endof() {
		return nil, s
	}
	return &parsec.Terminal{Name: "EOF", Position: news.GetCursor()}, news
}

func (g *grammar) location(pos int) *token.Location {
	line := sort.Search(len(g.lines), func(i int) bool { return g.lines[i] > pos })
	start := g.lines[line-1]
	if pos > len(g.text) {
		pos = len(g.text)
	}
	return &token.Location{
		File: g.name,
		Pos:  pos,
		Line: line,
		Col:  utf8.RuneCount(g.text[start:pos]) + 1,
	}
}

func (g *grammar) nodify(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return g.newAST(t, nodes)
	}
}

func (g *grammar) newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes, ok := cleanParsecNodeList(nodes)
	if !ok {
		// There is an error in the first position.
		return nodes[0]
	}
	if len(nodes) == 0 {
		return lisp.GoError(lisp.ErrorConditionf(lisp.CondSyntaxError, "empty %v", typ))
	}
	first, _ := nodes[0].(*parsec.Terminal)
	if first == nil {
		return lisp.GoError(lisp.ErrorConditionf(lisp.CondSyntaxError, "malformed %v", typ))
	}
	loc := g.location(first.Position)
	switch typ {
	case nodeTerm:
		v := g.term(first, loc)
		if v.Type == lisp.LError {
			return lisp.GoError(v)
		}
		return v
	case nodeUnmatched:
		return lisp.GoError(lisp.SyntaxError(loc, true, fmt.Sprintf("unmatched %s", first.Value)))
	case nodeList:
		return lisp.List(collectLVals(nodes)).WithSource(loc)
	case nodeVector:
		return lisp.Vector(collectLVals(nodes)).WithSource(loc)
	case nodeMap:
		cells := collectLVals(nodes)
		if len(cells)%2 != 0 {
			return semanticError(loc, "map literal has an odd number of forms: %d", len(cells))
		}
		data := lisp.NewMapData(len(cells) / 2)
		for i := 0; i < len(cells); i += 2 {
			if data.Has(cells[i]) {
				return semanticError(cells[i].Source, "duplicate key in map literal: %v", cells[i])
			}
			data.Put(cells[i], cells[i+1])
		}
		return lisp.MapFromData(data).WithSource(loc)
	case nodeSet:
		cells := collectLVals(nodes)
		data := lisp.NewMapData(len(cells))
		for _, x := range cells {
			if data.Has(x) {
				return semanticError(x.Source, "duplicate member in set literal: %v", x)
			}
			data.Put(x, x)
		}
		return lisp.SetFromData(data).WithSource(loc)
	case nodeMarker:
		cells := collectLVals(nodes)
		if len(cells) != 1 {
			return lisp.GoError(lisp.SyntaxError(loc, false, "marker must precede one expression"))
		}
		head := lisp.Symbol(markerSymbols[first.Value]).WithSource(loc)
		return lisp.List([]*lisp.LVal{head, cells[0]}).WithSource(loc)
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func (g *grammar) term(term *parsec.Terminal, loc *token.Location) *lisp.LVal {
	text := term.Value
	switch term.Name {
	case "STRING":
		s, err := lexer.DecodeString(text)
		if err != nil {
			return lisp.SyntaxError(loc, false, err.Error())
		}
		return lisp.String(s).WithSource(loc)
	case "STRING_OPEN":
		return lisp.SyntaxError(loc, true, "unterminated string literal")
	case "HASH_OPEN":
		return lisp.SyntaxError(loc, true, "unexpected EOF following #")
	case "CHAR":
		c, err := lexer.DecodeChar(text)
		if err != nil {
			return lisp.SyntaxError(loc, false, err.Error())
		}
		return lisp.Char(c).WithSource(loc)
	case "KEYWORD":
		return lisp.Keyword(text[1:]).WithSource(loc)
	case "NUMBER":
		m := numberPattern.FindStringSubmatch(text)
		if m == nil {
			return lisp.SyntaxError(loc, false, fmt.Sprintf("invalid number literal starting: %v", text))
		}
		if m[1] == "" && m[2] == "" {
			x, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return lisp.SyntaxError(loc, false, fmt.Sprintf("integer literal overflows int: %v", text))
			}
			return lisp.Int(x).WithSource(loc)
		}
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return lisp.SyntaxError(loc, false, fmt.Sprintf("invalid floating point literal: %v", text))
		}
		return lisp.Float(x).WithSource(loc)
	case "SYMBOL":
		switch text {
		case lisp.NilSymbol:
			return lisp.Nil()
		case lisp.TrueSymbol:
			return lisp.Bool(true)
		case lisp.FalseSymbol:
			return lisp.Bool(false)
		}
		return lisp.Symbol(text).WithSource(loc)
	}
	return lisp.SyntaxError(loc, false, fmt.Sprintf("unexpected token: %s", term.Name))
}

func semanticError(loc *token.Location, format string, v ...interface{}) error {
	lerr := lisp.ErrorConditionf(lisp.CondSemanticError, format, v...)
	lerr.Source = loc
	return lisp.GoError(lerr)
}

func collectLVals(nodes []parsec.ParsecNode) []*lisp.LVal {
	cells := make([]*lisp.LVal, 0, len(nodes))
	for _, c := range nodes {
		if c, ok := c.(*lisp.LVal); ok {
			cells = append(cells, c)
		}
	}
	return cells
}

// cleanParsecNodeList flattens lis and removes comments and commas.  If an
// error is encountered it is returned as the only node along with false.
func cleanParsecNodeList(lis []parsec.ParsecNode) ([]parsec.ParsecNode, bool) {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case *parsec.Terminal:
			if node.Name == "COMMENT" || node.Name == "COMMA" {
				continue
			}
			nodes = append(nodes, node)
		case error:
			nodes = []parsec.ParsecNode{node}
			return nodes, false
		case []parsec.ParsecNode:
			clean, ok := cleanParsecNodeList(node)
			if !ok {
				return clean, false
			}
			nodes = append(nodes, clean...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes, true
}

// getLVal returns the value of a top-level node.  Comments produce no value.
func getLVal(root parsec.ParsecNode) (*lisp.LVal, error) {
	nodes, ok := cleanParsecNodeList([]parsec.ParsecNode{root})
	if !ok {
		return nil, nodes[0].(error)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	lval, ok := nodes[0].(*lisp.LVal)
	if !ok {
		return nil, nil
	}
	return lval, nil
}
