// Copyright © 2018 The ELPS authors

package lexer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/luthersystems/elk/parser/token"
)

// Marker is the spelling of a quote-family reader marker.
type Marker struct {
	Text string
	Type token.Type
}

// Syntax is a surface-syntax table.  It determines how quote-family markers
// are spelled and whether commas separate forms like whitespace.  The
// evaluator does not depend on the syntax used to read a program.
type Syntax struct {
	Name         string
	Markers      []Marker
	CommaIsSpace bool
}

// DefaultSyntax spells unquote with a tilde and treats commas as whitespace.
var DefaultSyntax = &Syntax{
	Name: "default",
	Markers: []Marker{
		{"'", token.QUOTE},
		{"`", token.QUASIQUOTE},
		{"~", token.UNQUOTE},
		{"~@", token.SPLICE_UNQUOTE},
		{"@", token.DEREF},
	},
	CommaIsSpace: true,
}

// CommaSyntax spells unquote with a comma.
var CommaSyntax = &Syntax{
	Name: "comma",
	Markers: []Marker{
		{"'", token.QUOTE},
		{"`", token.QUASIQUOTE},
		{",", token.UNQUOTE},
		{",@", token.SPLICE_UNQUOTE},
		{"@", token.DEREF},
	},
}

var syntaxes = map[string]*Syntax{
	DefaultSyntax.Name: DefaultSyntax,
	CommaSyntax.Name:   CommaSyntax,
}

// SyntaxByName returns the named syntax table.  The empty string names
// DefaultSyntax.
func SyntaxByName(name string) (*Syntax, error) {
	if name == "" {
		return DefaultSyntax, nil
	}
	syn, ok := syntaxes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown syntax: %q", name)
	}
	return syn, nil
}

// Spelling returns the text of the marker with type typ.
func (syn *Syntax) Spelling(typ token.Type) (string, bool) {
	for _, m := range syn.Markers {
		if m.Type == typ {
			return m.Text, true
		}
	}
	return "", false
}

func (syn *Syntax) isSpace(c rune) bool {
	return c == ',' && syn.CommaIsSpace
}

// longestFirst returns the markers of syn ordered so that no marker precedes
// another that it prefixes.
func (syn *Syntax) longestFirst() []Marker {
	markers := make([]Marker, len(syn.Markers))
	copy(markers, syn.Markers)
	sort.SliceStable(markers, func(i, j int) bool {
		return len(markers[i].Text) > len(markers[j].Text)
	})
	return markers
}
