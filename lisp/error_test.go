// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/luthersystems/elk/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoError(t *testing.T) {
	assert.NoError(t, lisp.GoError(lisp.Int(1)))
	assert.NoError(t, lisp.GoError(lisp.Nil()))

	lerr := lisp.ErrorConditionf(lisp.CondBadArg, "bad %s", "thing")
	err := lisp.GoError(lerr)
	require.Error(t, err)
	assert.Equal(t, "bad-arg: bad thing", err.Error())

	var ev *lisp.ErrorVal
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &ev))
	assert.Equal(t, lisp.CondBadArg, ev.Kind())
	assert.Equal(t, "bad thing", ev.ErrorMessage())
	assert.Nil(t, ev.Payload())
	assert.False(t, ev.Incomplete())
}

func TestError(t *testing.T) {
	v := lisp.Error(errors.New("boom"))
	assert.Equal(t, lisp.LError, v.Type)
	assert.Equal(t, "#<error user-error: boom>", v.String())

	orig := lisp.ErrorConditionf(lisp.CondIndexOOB, "index out of bounds")
	wrapped := fmt.Errorf("context: %w", lisp.GoError(orig))
	assert.Same(t, orig, lisp.Error(wrapped))
}

func TestThrow(t *testing.T) {
	v := lisp.Throw(lisp.Int(42))
	ev := lisp.GoError(v).(*lisp.ErrorVal)
	assert.Equal(t, lisp.CondUserError, ev.Kind())
	assert.Equal(t, "42", ev.ErrorMessage())
	assert.Equal(t, "42", ev.Payload().String())

	v = lisp.Throw(lisp.String("oops"))
	assert.Equal(t, "oops", lisp.GoError(v).(*lisp.ErrorVal).ErrorMessage())

	lerr := lisp.ErrorConditionf(lisp.CondDivByZero, "division by zero")
	assert.Same(t, lerr, lisp.Throw(lerr))

	caught := lisp.Caught(lerr)
	assert.Equal(t, lisp.LCaughtError, caught.Type)
	assert.NoError(t, lisp.GoError(caught))
	rethrown := lisp.Throw(caught)
	assert.Equal(t, lisp.LError, rethrown.Type)
	assert.Equal(t, lisp.CondDivByZero, lisp.GoError(rethrown).(*lisp.ErrorVal).Kind())
	assert.True(t, lisp.Equal(lerr, rethrown))
}

func TestSyntaxError(t *testing.T) {
	v := lisp.SyntaxError(nil, true, "unexpected end of input")
	ev := lisp.GoError(v).(*lisp.ErrorVal)
	assert.Equal(t, lisp.CondSyntaxError, ev.Kind())
	assert.True(t, ev.Incomplete())

	v = lisp.SyntaxError(nil, false, "unexpected )")
	assert.False(t, lisp.GoError(v).(*lisp.ErrorVal).Incomplete())
}

func TestErrorLocation(t *testing.T) {
	env := newEnv(t)
	v := env.LoadString("test.lisp", "(def x 1)\n(/ x 0)")
	lerr := requireError(t, lisp.CondDivByZero, v)
	require.NotNil(t, lerr.Source)
	assert.Equal(t, "test.lisp", lerr.Source.File)
	assert.Equal(t, 2, lerr.Source.Line)
	assert.Equal(t, "test.lisp:2:1: div-by-zero: division by zero", lerr.Error())

	var buf bytes.Buffer
	_, err := lerr.WriteTrace(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "test.lisp:2:1: div-by-zero: division by zero\n")
	assert.Contains(t, buf.String(), "Stack Trace [1 frames -- entrypoint last]:")
}

func TestErrorsPropagate(t *testing.T) {
	env := newEnv(t)
	// evaluation stops at the first error
	v := env.LoadString("test", `
(def log (atom []))
(defn note [x] (swap! log conj x))
(note 1)
(note (/ 1 0))
(note 3)`)
	requireError(t, lisp.CondDivByZero, v)
	assert.Equal(t, "[1]", env.LoadString("test", `@log`).String())
}
