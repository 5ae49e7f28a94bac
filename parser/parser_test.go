// Copyright © 2018 The ELPS authors

package parser

import (
	"strings"
	"testing"

	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader(t *testing.T) {
	r := NewReader()
	exprs, err := r.Read("test", strings.NewReader("(+ 1 2)"))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, lisp.LList, exprs[0].Type)
	assert.Equal(t, "(+ 1 2)", exprs[0].String())
}

func TestNewReader_Syntax(t *testing.T) {
	r := NewReader(WithSyntax(lexer.CommaSyntax))
	exprs, err := r.Read("test", strings.NewReader("`(a ,b)"))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, "(quasiquote (a (unquote b)))", exprs[0].String())
}

func TestNewReader_Combinators(t *testing.T) {
	src := `(defn f [x & xs] {:x x :xs xs}) #{1 2} ~@y`
	want, err := NewReader().Read("test", strings.NewReader(src))
	require.NoError(t, err)
	got, err := NewReader(WithCombinators()).Read("test", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, lisp.Equal(want[i], got[i]), "form %d: %v", i, got[i])
	}
}

// Printing a value and reading it back produces an equal value.
func TestRoundTrip(t *testing.T) {
	sources := []string{
		`(1 2.5 "s\n" \c :k sym)`,
		`[nil true false [] ()]`,
		`{:a {:b #{1 2}} "k" [1]}`,
		"`(a ~b ~@c)",
		`'(quote x)`,
		`-0.125`,
		`"tab\there"`,
	}
	for i, src := range sources {
		exprs, err := NewReader().Read("test", strings.NewReader(src))
		require.NoError(t, err, "test %d", i)
		require.Len(t, exprs, 1, "test %d", i)
		again, err := NewReader().Read("test", strings.NewReader(exprs[0].String()))
		require.NoError(t, err, "test %d: %s", i, exprs[0])
		require.Len(t, again, 1, "test %d", i)
		assert.True(t, lisp.Equal(exprs[0], again[0]), "test %d: %v != %v", i, exprs[0], again[0])
	}
}
