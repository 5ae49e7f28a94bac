// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"strings"
	"testing"

	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutReader(t *testing.T) {
	env := lisp.NewEnv(nil)
	require.NoError(t, lisp.GoError(lisp.InitializeRootEnv(env)))

	// builtins are installed but the prelude needs a reader
	assert.Equal(t, lisp.LFun, env.Lookup("+").Type)
	requireError(t, lisp.CondNoSuchVar, env.Lookup("when"))

	v := env.LoadString("test", `(+ 1 2)`)
	lerr := requireError(t, lisp.CondUnsupported, v)
	assert.Equal(t, "no reader for environment runtime", lerr.ErrorMessage())

	// forms constructed in Go can still be evaluated
	form := lisp.List([]*lisp.LVal{lisp.Symbol("+"), lisp.Int(1), lisp.Int(2)})
	assert.Equal(t, "3", env.Eval(form).String())
}

func TestLoad(t *testing.T) {
	env := newEnv(t)
	v := env.Load("test", strings.NewReader(`(def a 1) (def b 2) (+ a b)`))
	require.NoError(t, lisp.GoError(v))
	assert.Equal(t, "3", v.String())

	v = env.LoadString("empty", "; nothing to see")
	assert.Equal(t, "nil", v.String())

	// no form is evaluated when the source has a syntax error
	v = env.LoadString("test", `(def loaded true) (`)
	lerr := requireError(t, lisp.CondSyntaxError, v)
	assert.True(t, lerr.Incomplete())
	requireError(t, lisp.CondNoSuchVar, env.Lookup("loaded"))
}

func TestLoadLocation(t *testing.T) {
	env := newEnv(t)
	v := env.LoadLocation("logical.lisp", "/src/logical.lisp", strings.NewReader("\n(undefined-fn 1)"))
	lerr := requireError(t, lisp.CondNoSuchVar, v)
	require.NotNil(t, lerr.Source)
	assert.Equal(t, "logical.lisp", lerr.Source.File)
	assert.Equal(t, "/src/logical.lisp", lerr.Source.Path)
	assert.Equal(t, 2, lerr.Source.Line)

	v = env.LoadLocation("ok.lisp", "/src/ok.lisp", strings.NewReader("(* 6 7)"))
	assert.Equal(t, "42", v.String())
}

func TestRead(t *testing.T) {
	env := newEnv(t)
	v := env.Read("test", strings.NewReader(`(a b) [c] :d`))
	require.NoError(t, lisp.GoError(v))
	assert.Equal(t, `((a b) [c] :d)`, v.String())

	v = env.Read("test", strings.NewReader(`{:a}`))
	requireError(t, lisp.CondSemanticError, v)
}

func TestPreludeUsesConfiguredReader(t *testing.T) {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeRootEnv(env, lisp.WithReader(parser.NewReader(parser.WithCombinators())))
	require.NoError(t, lisp.GoError(lerr))
	v := env.LoadString("test", `(-> 3 inc (* 2))`)
	assert.Equal(t, "8", v.String())
}
