// Copyright © 2018 The ELPS authors

package token

import "fmt"

// Token is a lexical unit read from a source stream.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%v %q", tok.Type, tok.Text)
}

type Type uint

// Type constants used by the lexer and parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atomic expressions & literals
	SYMBOL
	KEYWORD
	INT
	FLOAT
	STRING
	CHAR

	COMMENT

	// Quote-family markers.  The spelling of each marker is determined by
	// the lexer's syntax table.
	QUOTE
	QUASIQUOTE
	UNQUOTE
	SPLICE_UNQUOTE
	DEREF

	// Delimiters
	PAREN_L
	PAREN_R
	BRACKET_L
	BRACKET_R
	BRACE_L
	BRACE_R
	SET_L

	numTokenTypes
)

var typeStrings = [numTokenTypes]string{
	INVALID:        "invalid",
	ERROR:          "error",
	EOF:            "EOF",
	SYMBOL:         "symbol",
	KEYWORD:        "keyword",
	INT:            "int",
	FLOAT:          "float",
	STRING:         "string",
	CHAR:           "char",
	COMMENT:        ";",
	QUOTE:          "quote",
	QUASIQUOTE:     "quasiquote",
	UNQUOTE:        "unquote",
	SPLICE_UNQUOTE: "splice-unquote",
	DEREF:          "deref",
	PAREN_L:        "(",
	PAREN_R:        ")",
	BRACKET_L:      "[",
	BRACKET_R:      "]",
	BRACE_L:        "{",
	BRACE_R:        "}",
	SET_L:          "#{",
}

func (typ Type) String() string {
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// IsMarker returns true if typ is one of the quote-family markers which wrap
// the following expression.
func (typ Type) IsMarker() bool {
	return QUOTE <= typ && typ <= DEREF
}

// Location is a position in a source stream.  Locations are diagnostic only
// and never affect evaluation.
type Location struct {
	File string // a name representing the source stream
	Path string // a physical location which may differ from File
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
