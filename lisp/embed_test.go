// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"errors"
	"testing"

	"github.com/luthersystems/elk/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoValue(t *testing.T) {
	env := newEnv(t)
	tests := []struct {
		expr string
		want interface{}
	}{
		{`nil`, nil},
		{`true`, true},
		{`1`, int64(1)},
		{`1.5`, 1.5},
		{`"s"`, "s"},
		{`\x`, 'x'},
		{`'sym`, "sym"},
		{`:kw`, "kw"},
		{`[1 "a"]`, []interface{}{int64(1), "a"}},
		{`'(1 (2))`, []interface{}{int64(1), []interface{}{int64(2)}}},
		{`#{2 1}`, []interface{}{int64(1), int64(2)}},
		{`{:a 1 "b" [2]}`, map[interface{}]interface{}{"a": int64(1), "b": []interface{}{int64(2)}}},
	}
	for _, test := range tests {
		v := env.LoadString("test", test.expr)
		require.NoError(t, lisp.GoError(v), test.expr)
		assert.Equal(t, test.want, lisp.GoValue(v), test.expr)
	}

	fun := env.Lookup("inc")
	assert.Same(t, fun, lisp.GoValue(fun))

	err, ok := lisp.GoValue(lisp.ErrorConditionf(lisp.CondBadArg, "x")).(error)
	require.True(t, ok)
	assert.Equal(t, "bad-arg: x", err.Error())
}

func TestGoMap(t *testing.T) {
	env := newEnv(t)
	m, ok := lisp.GoMap(env.LoadString("test", `{[1] :vector-key}`))
	assert.True(t, ok)
	assert.Nil(t, m)

	_, ok = lisp.GoMap(lisp.Int(1))
	assert.False(t, ok)
}

func TestGoScalars(t *testing.T) {
	s, ok := lisp.GoString(lisp.String("abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", s)
	_, ok = lisp.GoString(lisp.Symbol("abc"))
	assert.False(t, ok)

	name, ok := lisp.SymbolName(lisp.Symbol("abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", name)

	n, ok := lisp.GoInt64(lisp.Float(2.9))
	assert.True(t, ok)
	assert.Equal(t, int64(2), n)
	_, ok = lisp.GoInt64(lisp.String("2"))
	assert.False(t, ok)

	x, ok := lisp.GoFloat64(lisp.Int(3))
	assert.True(t, ok)
	assert.Equal(t, 3.0, x)
}

func TestValue(t *testing.T) {
	assert.Equal(t, "nil", lisp.Value(nil).String())
	assert.Equal(t, "true", lisp.Value(true).String())
	assert.Equal(t, `"s"`, lisp.Value("s").String())
	assert.Equal(t, `\x`, lisp.Value('x').String())
	assert.Equal(t, "3", lisp.Value(3).String())
	assert.Equal(t, "3", lisp.Value(int64(3)).String())
	assert.Equal(t, "3.0", lisp.Value(3.0).String())
	assert.Equal(t, "(1)", lisp.Value([]*lisp.LVal{lisp.Int(1)}).String())
	assert.Equal(t, "#<error user-error: boom>", lisp.Value(errors.New("boom")).String())
	assert.Equal(t, "#<error bad-arg: cannot convert go value to lisp: struct {}>", lisp.Value(struct{}{}).String())
}

func TestDefineNative(t *testing.T) {
	env := newEnv(t)
	env.DefineNative("sum-lengths", func(args []*lisp.LVal) *lisp.LVal {
		var n int
		for _, v := range args {
			s, ok := lisp.GoString(v)
			if !ok {
				return lisp.ErrorConditionf(lisp.CondBadArg, "argument is not a string: %v", lisp.GetType(v))
			}
			n += len(s)
		}
		return lisp.Value(n)
	})
	assert.Equal(t, "5", env.LoadString("test", `(sum-lengths "ab" "cde")`).String())
	assert.Equal(t, "0", env.LoadString("test", `(sum-lengths)`).String())
	v := env.LoadString("test", `(try (sum-lengths 1) (catch :bad-arg e (error-message e)))`)
	assert.Equal(t, `"argument is not a string: :int"`, v.String())
	assert.Equal(t, "#<builtin sum-lengths>", env.Lookup("sum-lengths").String())
}

func TestRegisterDefaultBuiltin(t *testing.T) {
	lisp.RegisterDefaultBuiltin("test-double", lisp.Formals("x"), func(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
		n, ok := lisp.GoInt64(args[0])
		if !ok {
			return env.ErrorConditionf(lisp.CondBadArg, "argument is not a number")
		}
		return lisp.Int(2 * n)
	}, "Doubles x.")
	env := newEnv(t)
	assert.Equal(t, "42", env.LoadString("test", `(test-double 21)`).String())
	v := env.LoadString("test", `(test-double)`)
	requireError(t, lisp.CondBadArity, v)
	assert.Equal(t, "Doubles x.", env.Lookup("test-double").FunData().Doc)
}
