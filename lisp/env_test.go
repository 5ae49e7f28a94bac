// Copyright © 2018 The ELPS authors

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvChain(t *testing.T) {
	root := NewEnv(nil)
	require.NotNil(t, root.Runtime)
	child := root.Child()
	grandchild := NewEnv(child)
	assert.Same(t, root.Runtime, grandchild.Runtime)
	assert.Same(t, root, grandchild.Root())

	root.Define("x", Int(1))
	assert.Equal(t, "1", grandchild.Lookup("x").String())

	// shadowing does not affect the parent
	child.Define("x", Int(2))
	assert.Equal(t, "2", grandchild.Lookup("x").String())
	assert.Equal(t, "1", root.Lookup("x").String())

	lerr := grandchild.Lookup("y")
	assert.Equal(t, LError, lerr.Type)
	assert.Equal(t, "#<error no-such-var: unbound symbol: y>", lerr.String())
}

func TestEnvSetExisting(t *testing.T) {
	root := NewEnv(nil)
	child := root.Child()
	root.Define("x", Int(1))

	v := child.SetExisting("x", Int(5))
	assert.Equal(t, "5", v.String())
	assert.Equal(t, "5", root.Lookup("x").String())
	_, ok := child.Scope["x"]
	assert.False(t, ok, "set created a binding in the child frame")

	lerr := child.SetExisting("missing", Int(1))
	assert.Equal(t, string(CondNoSuchVar), lerr.Str)
	_, ok = root.Scope["missing"]
	assert.False(t, ok)

	lerr = child.Update(Int(1), Int(1))
	assert.Equal(t, string(CondBadArg), lerr.Str)
}

func TestEnvPut(t *testing.T) {
	env := NewEnv(nil)
	assert.Equal(t, "1", env.Put(Symbol("a"), Int(1)).String())
	for _, name := range []string{NilSymbol, TrueSymbol, FalseSymbol} {
		lerr := env.Put(Symbol(name), Int(1))
		assert.Equal(t, string(CondSemanticError), lerr.Str, name)
	}
	lerr := env.Put(String("a"), Int(1))
	assert.Equal(t, string(CondBadArg), lerr.Str)
	assert.Equal(t, string(CondBadArg), env.Get(Keyword("a")).Str)
}

func TestEnvBuiltins(t *testing.T) {
	env := NewEnv(nil)
	env.AddBuiltins()
	for _, def := range DefaultBuiltins() {
		fun := env.Lookup(def.Name())
		require.Equal(t, LFun, fun.Type, def.Name())
		assert.True(t, fun.FunData().IsBuiltin(), def.Name())
		assert.NotEmpty(t, fun.FunData().Doc, def.Name())
	}

	add := env.Lookup("+")
	assert.Equal(t, "#<builtin +>", add.String())
	assert.Equal(t, "x", add.FunData().Rest)
	assert.Empty(t, add.FunData().Params)

	mod := env.Lookup("mod")
	assert.Equal(t, []string{"x", "y"}, mod.FunData().Params)
	res := env.FunCall(mod, []*LVal{Int(1)})
	assert.Equal(t, "#<error bad-arity: mod expects exactly 2 arguments but 1 given>", res.String())
}

func TestEnvBuiltinInvalidFormals(t *testing.T) {
	env := NewEnv(nil)
	bad := &langBuiltin{"bad", Formals("x", VarArgSymbol), builtinIdentity, ""}
	assert.Panics(t, func() { env.AddBuiltins(bad) })
}

func TestErrorAssociate(t *testing.T) {
	env := NewEnv(nil)
	fun := Fun("f", builtinIdentity)
	require.NoError(t, env.Runtime.Stack.Push(nil, fun))
	lerr := env.ErrorConditionf(CondBadArg, "bad")
	env.Runtime.Stack.Pop()

	stack := lerr.CallStack()
	require.NotNil(t, stack)
	assert.Equal(t, 1, stack.Height())
	assert.Equal(t, 0, env.Runtime.Stack.Height())

	// errors keep the first stack they are associated with
	env.ErrorAssociate(lerr)
	assert.Same(t, stack, lerr.CallStack())

	assert.Panics(t, func() { env.ErrorAssociate(Int(1)) })
}
