// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"path/filepath"
	"testing"

	"github.com/luthersystems/elk/elktest"
	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser"
	"github.com/stretchr/testify/require"
)

// newEnv returns a root environment with a reader and the given config
// applied.
func newEnv(t *testing.T, config ...lisp.Config) *lisp.LEnv {
	t.Helper()
	env := lisp.NewEnv(nil)
	config = append([]lisp.Config{lisp.WithReader(parser.NewReader())}, config...)
	require.NoError(t, lisp.GoError(lisp.InitializeRootEnv(env, config...)))
	return env
}

// requireError asserts that v is an error of the given kind and returns it.
func requireError(t *testing.T, kind lisp.ErrorKind, v *lisp.LVal) *lisp.ErrorVal {
	t.Helper()
	err := lisp.GoError(v)
	require.Error(t, err, "expected %s error (got %v)", kind, v)
	lerr, ok := err.(*lisp.ErrorVal)
	require.True(t, ok)
	require.Equal(t, kind, lerr.Kind(), "%v", err)
	return lerr
}

func TestLispFiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.lisp"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	runner := &elktest.Runner{}
	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			runner.RunTestFile(t, path)
		})
	}
}
