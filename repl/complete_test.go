// Copyright © 2018 The ELPS authors

package repl

import (
	"testing"

	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolCompleter(t *testing.T) {
	env := lisp.NewEnv(nil)
	rc := lisp.InitializeRootEnv(env, lisp.WithReader(parser.NewReader()))
	require.NoError(t, lisp.GoError(rc))
	child := env.Child()
	child.Define("defaults-local", lisp.Int(1))

	c := &symbolCompleter{env: child}

	candidates, offset := c.Do([]rune("(def"), 4)
	assert.Equal(t, 3, offset)
	var names []string
	for _, suffix := range candidates {
		names = append(names, "def"+string(suffix))
	}
	// special forms, the local frame and the root frame are all searched
	assert.Contains(t, names, "def")
	assert.Contains(t, names, "defn")
	assert.Contains(t, names, "defmacro")
	assert.Contains(t, names, "defaults-local")

	candidates, offset = c.Do([]rune("[error-m"), 8)
	assert.Equal(t, 7, offset)
	require.Len(t, candidates, 1)
	assert.Equal(t, "essage", string(candidates[0]))

	candidates, _ = c.Do([]rune("(zzz-nonexistent"), 16)
	assert.Empty(t, candidates)

	candidates, offset = c.Do([]rune("(+ 1 "), 5)
	assert.Empty(t, candidates)
	assert.Equal(t, 0, offset)
}
