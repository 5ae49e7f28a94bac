// Copyright © 2018 The ELPS authors

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symbols(names ...string) *LVal {
	cells := make([]*LVal, len(names))
	for i, name := range names {
		cells[i] = Symbol(name)
	}
	return Vector(cells)
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		params *LVal
		names  []string
		rest   string
		kind   ErrorKind
	}{
		{symbols(), []string{}, "", ""},
		{Nil(), nil, "", ""},
		{symbols("a", "b"), []string{"a", "b"}, "", ""},
		{List([]*LVal{Symbol("a")}), []string{"a"}, "", ""},
		{symbols("&", "xs"), []string{}, "xs", ""},
		{symbols("a", "&", "xs"), []string{"a"}, "xs", ""},
		{symbols("a", "&"), nil, "", CondBadArity},
		{symbols("&", "a", "b"), nil, "", CondBadArity},
		{symbols("&", "&"), nil, "", CondBadArity},
		{symbols("nil"), nil, "", CondSemanticError},
		{Vector([]*LVal{Int(1)}), nil, "", CondSemanticError},
		{Symbol("a"), nil, "", CondSemanticError},
		{Map(), nil, "", CondSemanticError},
		{String("ab"), nil, "", CondSemanticError},
	}
	for i, test := range tests {
		names, rest, lerr := ParseParams(test.params)
		if test.kind != "" {
			if assert.NotNil(t, lerr, "test %d", i) {
				assert.Equal(t, string(test.kind), lerr.Str, "test %d: %v", i, lerr)
			}
			continue
		}
		if !assert.Nil(t, lerr, "test %d", i) {
			continue
		}
		if len(test.names) == 0 {
			assert.Empty(t, names, "test %d", i)
		} else {
			assert.Equal(t, test.names, names, "test %d", i)
		}
		assert.Equal(t, test.rest, rest, "test %d", i)
	}
}

func TestBind(t *testing.T) {
	env := NewEnv(nil)
	fd := &LFunData{Name: "f", Env: env, Params: []string{"a"}, Rest: "more"}

	frame, lerr := fd.Bind([]*LVal{Int(1), Int(2), Int(3)})
	require.Nil(t, lerr)
	assert.Same(t, env, frame.Parent)
	assert.Equal(t, "1", frame.Scope["a"].String())
	assert.Equal(t, "(2 3)", frame.Scope["more"].String())

	frame, lerr = fd.Bind([]*LVal{Int(1)})
	require.Nil(t, lerr)
	assert.Equal(t, "()", frame.Scope["more"].String())

	_, lerr = fd.Bind(nil)
	require.NotNil(t, lerr)
	assert.Equal(t, "#<error bad-arity: f expects at least 1 argument but 0 given>", lerr.String())

	fixed := &LFunData{Env: env, Params: []string{"a", "b"}}
	_, lerr = fixed.Bind([]*LVal{Int(1)})
	require.NotNil(t, lerr)
	assert.Equal(t, "#<error bad-arity: anonymous function expects exactly 2 arguments but 1 given>", lerr.String())

	// the rest list does not alias the argument slice
	args := []*LVal{Int(1), Int(2)}
	frame, _ = fd.Bind(args)
	args[1] = Int(9)
	assert.Equal(t, "(2)", frame.Scope["more"].String())
}
