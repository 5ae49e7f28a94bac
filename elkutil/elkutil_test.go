// Copyright © 2018 The ELPS authors

package elkutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luthersystems/elk/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	v, err := Read(`(+ 1 2)`)
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 2)", v.String())

	_, err = Read(`1 2`)
	assert.Error(t, err)
	_, err = Read(``)
	assert.Error(t, err)

	_, err = Read(`(1 2`)
	var lerr *lisp.ErrorVal
	require.True(t, errors.As(err, &lerr))
	assert.True(t, lerr.Incomplete())
}

func TestEvalString(t *testing.T) {
	env, err := RootEnv()
	require.NoError(t, err)

	v, err := EvalString(env, `(defn sq [x] (* x x)) (sq 12)`)
	require.NoError(t, err)
	assert.Equal(t, "144", v.String())

	v, err = EvalString(env, ``)
	require.NoError(t, err)
	assert.True(t, v.IsNil())

	_, err = EvalString(env, `(sq "x")`)
	var lerr *lisp.ErrorVal
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, lisp.CondBadArg, lerr.Kind())
}

func TestEval(t *testing.T) {
	env, err := RootEnv()
	require.NoError(t, err)
	form, err := Read(`(let [x 2] (when (> x 1) [x "two"]))`)
	require.NoError(t, err)
	v, err := Eval(form, env)
	require.NoError(t, err)
	assert.Equal(t, `[2 "two"]`, Print(v, true))
	assert.Equal(t, `[2 two]`, Print(v, false))
}

func TestDefineNative(t *testing.T) {
	env, err := RootEnv()
	require.NoError(t, err)
	DefineNative(env, "go-sum", func(args []*lisp.LVal) *lisp.LVal {
		var total int64
		for _, a := range args {
			n, ok := lisp.GoInt64(a)
			if !ok {
				return lisp.ErrorConditionf(lisp.CondBadArg, "not an int: %v", a)
			}
			total += n
		}
		return lisp.Int(total)
	})
	v, err := EvalString(env, `(apply go-sum (range 5))`)
	require.NoError(t, err)
	assert.Equal(t, "10", v.String())

	_, err = EvalString(env, `(go-sum 1 :a)`)
	assert.Error(t, err)
}

func TestBuiltinLoader(t *testing.T) {
	twice := DocFunction("twice", lisp.Formals("f", "x"), func(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
		v := env.FunCall(args[0], args[1:])
		if v.Type == lisp.LError {
			return v
		}
		return env.FunCall(args[0], []*lisp.LVal{v})
	}, "Applies f to x twice.")
	load := LoadAll(
		BuiltinLoader(twice),
		SourceLoader("lib", `(def add3 (fn [x] (+ x 3)))`),
	)
	env, err := RootEnv(load.AsConfig())
	require.NoError(t, err)
	v, err := EvalString(env, `(twice add3 1)`)
	require.NoError(t, err)
	assert.Equal(t, "7", v.String())

	_, err = EvalString(env, `(twice add3)`)
	var lerr *lisp.ErrorVal
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, lisp.CondBadArity, lerr.Kind())
}

func TestRootEnvConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	env, err := RootEnv(lisp.WithContext(ctx))
	require.NoError(t, err)
	_, err = EvalString(env, `(defn spin [] (spin)) (spin)`)
	var lerr *lisp.ErrorVal
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, lisp.CondContextCancelled, lerr.Kind())
}
