// Copyright © 2018 The ELPS authors

package parsecparser_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser/parsecparser"
	"github.com/luthersystems/elk/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLVal(t *testing.T) {
	tests := []struct {
		source string
		output string
	}{
		{`12`, `12`},
		{`-1`, `-1`},
		{`1e3`, `1000.0`},
		{`-`, `-`},
		{`+x`, `+x`},
		{`:kw`, `:kw`},
		{`nil`, `nil`},
		{`\space`, `\space`},
		{`"x\nyz"`, `"x\nyz"`},
		{`(1, 2, 3)`, `(1 2 3)`},
		{"`(a ~b ~@c)", `(quasiquote (a (unquote b) (splice-unquote c)))`},
		{`'; between` + "\nx", `(quote x)`},
		{`{:b 2 :a 1}`, `{:a 1 :b 2}`},
		{`#{3 1 2}`, `#{1 2 3}`},
		{`[[] {} #{}]`, `[[] {} #{}]`},
	}
	for i, test := range tests {
		exprs, err := parsecparser.ParseLVal("test", []byte(test.source))
		if !assert.NoError(t, err, "test %d", i) {
			continue
		}
		if assert.Len(t, exprs, 1, "test %d", i) {
			assert.Equal(t, test.output, exprs[0].String(), "test %d", i)
		}
	}
}

func TestLocation(t *testing.T) {
	exprs, err := parsecparser.ParseLVal("loc", []byte("; header\n  (λ x)\n:k"))
	require.NoError(t, err)
	require.Len(t, exprs, 2)
	require.NotNil(t, exprs[0].Source)
	assert.Equal(t, "loc", exprs[0].Source.File)
	assert.Equal(t, 2, exprs[0].Source.Line)
	assert.Equal(t, 3, exprs[0].Source.Col)
	require.NotNil(t, exprs[0].Cells[1].Source)
	assert.Equal(t, 6, exprs[0].Cells[1].Source.Col)
	assert.Equal(t, 3, exprs[1].Source.Line)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		source     string
		kind       lisp.ErrorKind
		incomplete bool
	}{
		{`(1 2`, lisp.CondSyntaxError, true},
		{`[1 [2]`, lisp.CondSyntaxError, true},
		{`#{1`, lisp.CondSyntaxError, true},
		{`'`, lisp.CondSyntaxError, true},
		{`"abc`, lisp.CondSyntaxError, true},
		{`)`, lisp.CondSyntaxError, false},
		{`(1 2]`, lisp.CondSyntaxError, false},
		{`"\q"`, lisp.CondSyntaxError, false},
		{`12abc`, lisp.CondSyntaxError, false},
		{`{:a 1 :b}`, lisp.CondSemanticError, false},
		{`#{1 1}`, lisp.CondSemanticError, false},
	}
	for i, test := range tests {
		_, err := parsecparser.ParseLVal("test", []byte(test.source))
		if !assert.Error(t, err, "test %d: %q", i, test.source) {
			continue
		}
		lerr, ok := err.(*lisp.ErrorVal)
		if !assert.True(t, ok, "test %d: %T", i, err) {
			continue
		}
		assert.Equal(t, test.kind, lerr.Kind(), "test %d: %v", i, err)
		assert.Equal(t, test.incomplete, lerr.Incomplete(), "test %d: %v", i, err)
	}
}

// Both readers must produce equal values for the shared corpus.
func TestReadersAgree(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.lisp"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			buf, err := os.ReadFile(path) //#nosec G304
			require.NoError(t, err)
			want, err := rdparser.NewReader().Read(path, bytes.NewReader(buf))
			require.NoError(t, err)
			got, err := parsecparser.NewReader().Read(path, bytes.NewReader(buf))
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, lisp.Equal(want[i], got[i]), "form %d: %v != %v", i, want[i], got[i])
				if want[i].Source != nil && assert.NotNil(t, got[i].Source, "form %d", i) {
					assert.Equal(t, want[i].Source.Line, got[i].Source.Line, "form %d", i)
				}
			}
		})
	}
}

func TestReaderInRuntime(t *testing.T) {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeRootEnv(env, lisp.WithReader(parsecparser.NewReader()))
	require.Equal(t, lisp.LNil, lerr.Type, "%v", lerr)
	v := env.LoadString("test", "(defn sq [x] (* x x)) (when true (sq 7))")
	assert.Equal(t, "49", v.String())
}
