// Copyright © 2018 The ELPS authors

// Package elktest provides helpers for testing lisp code from Go tests.
package elktest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser"
)

// CondAssertionFailure is the kind of error produced by failed assertions in
// lisp test files.
const CondAssertionFailure lisp.ErrorKind = "assertion-failure"

// testPrelude defines the forms available to lisp test files.
const testPrelude = `
(defmacro deftest
  "Registers a test with the given name.  The body is evaluated when the
  test runs."
  [test-name & body]
  ` + "`" + `(register-test ~test-name (fn [] ~@body)))

(defmacro assert-error
  "Asserts that evaluating expr produces an error of the given kind."
  [kind expr]
  ` + "`" + `(try
     (do ~expr (fail-test "expected error" ~kind))
     (catch ~kind e true)))
`

func BenchmarkParse(path string, r func() lisp.Reader) func(*testing.B) {
	return func(b *testing.B) {
		buf, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		b.SetBytes(int64(len(buf)))
		for i := 0; i < b.N; i++ {
			_, err := r().Read("test", bytes.NewReader(buf))
			if err != nil {
				b.Fatalf("Parse failure: %v", err)
			}
		}
	}
}

// Test is a test registered by a lisp test file.
type Test struct {
	Name string
	Fun  *lisp.LVal
}

// Suite holds the tests registered in an environment.
type Suite struct {
	tests []*Test
}

// Tests returns the names of the registered tests in order of registration.
func (s *Suite) Tests() []string {
	names := make([]string, len(s.tests))
	for i, test := range s.tests {
		names[i] = test.Name
	}
	return names
}

// Test returns the i-th registered test.
func (s *Suite) Test(i int) *Test {
	return s.tests[i]
}

func (s *Suite) register(args []*lisp.LVal) *lisp.LVal {
	if len(args) != 2 {
		return lisp.ErrorConditionf(lisp.CondBadArity, "register-test expects 2 arguments but %d given", len(args))
	}
	name, ok := lisp.GoString(args[0])
	if !ok {
		name, ok = lisp.SymbolName(args[0])
	}
	if !ok {
		return lisp.ErrorConditionf(lisp.CondBadArg, "test name is not a string: %v", lisp.GetType(args[0]))
	}
	if args[1].Type != lisp.LFun {
		return lisp.ErrorConditionf(lisp.CondBadArg, "test body is not a function: %v", lisp.GetType(args[1]))
	}
	s.tests = append(s.tests, &Test{Name: name, Fun: args[1]})
	return lisp.Nil()
}

func assertTrue(args []*lisp.LVal) *lisp.LVal {
	if len(args) < 1 || len(args) > 2 {
		return lisp.ErrorConditionf(lisp.CondBadArity, "assert expects 1 or 2 arguments but %d given", len(args))
	}
	if args[0].IsTrue() {
		return lisp.Nil()
	}
	if len(args) == 2 {
		return lisp.ErrorConditionf(CondAssertionFailure, "assertion failed: %s", args[1].Print(false))
	}
	return lisp.ErrorConditionf(CondAssertionFailure, "assertion failed: %v", args[0])
}

func assertEqual(args []*lisp.LVal) *lisp.LVal {
	if len(args) != 2 {
		return lisp.ErrorConditionf(lisp.CondBadArity, "assert= expects 2 arguments but %d given", len(args))
	}
	if !lisp.Equal(args[0], args[1]) {
		return lisp.ErrorConditionf(CondAssertionFailure, "expected %v (got %v)", args[0], args[1])
	}
	return lisp.Nil()
}

func failTest(args []*lisp.LVal) *lisp.LVal {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = v.Print(false)
	}
	return lisp.ErrorConditionf(CondAssertionFailure, "%s", strings.Join(parts, " "))
}

// Runner is a test runner.
type Runner struct {
	// Config is applied to each test environment after the default
	// configuration.
	Config []lisp.Config

	// Teardown runs code to teardown an environment after each test declared
	// in a test file has been run.  Any error returned by the teardown
	// function is reported as a test failure.
	Teardown func(*lisp.LEnv) *lisp.LVal
}

// NewEnv returns a root environment which writes its output to the test log
// and the Suite which collects tests defined in it.
func (r *Runner) NewEnv(t testing.TB) (*lisp.LEnv, *Suite, error) {
	logger := NewLogger(t)
	env := lisp.NewEnv(nil)
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(logger),
		lisp.WithStderr(logger),
	}
	config = append(config, r.Config...)
	err := lisp.GoError(lisp.InitializeRootEnv(env, config...))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize lisp environment: %w", err)
	}
	suite := &Suite{}
	env.DefineNative("register-test", suite.register)
	env.DefineNative("assert", assertTrue)
	env.DefineNative("assert=", assertEqual)
	env.DefineNative("fail-test", failTest)
	err = lisp.GoError(env.LoadString("elktest.lisp", testPrelude))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load test definitions: %w", err)
	}
	return env, suite, nil
}

func flush(env *lisp.LEnv) {
	if logger, ok := env.Runtime.Stderr.(*Logger); ok {
		logger.Flush()
	}
}

func (r *Runner) loadTestSuite(t testing.TB, path string, source io.Reader) (*lisp.LEnv, *Suite, bool) {
	env, suite, err := r.NewEnv(t)
	if err != nil {
		t.Error(err.Error())
		return nil, nil, false
	}
	err = lisp.GoError(env.LoadLocation(filepath.Base(path), path, source))
	if err != nil {
		flush(env)
		r.LispError(t, err)
		return nil, nil, false
	}
	return env, suite, true
}

// LoadTests loads source and returns the names of the tests it defines.
func (r *Runner) LoadTests(t *testing.T, path string, source io.Reader) []string {
	env, suite, ok := r.loadTestSuite(t, path, source)
	if !ok {
		t.FailNow()
	}
	flush(env)
	return suite.Tests()
}

// RunTest runs the test at index i read from source.  Path is only used to
// determine a file basename to use in LEnv.Load().
func (r *Runner) RunTest(t *testing.T, i int, path string, source io.Reader) {
	env, suite, ok := r.loadTestSuite(t, path, source)
	if !ok {
		return
	}
	defer flush(env)
	if r.Teardown != nil {
		defer func() {
			if err := lisp.GoError(r.Teardown(env)); err != nil {
				r.LispError(t, err)
			}
		}()
	}
	ltest := suite.Test(i)
	err := lisp.GoError(env.FunCall(ltest.Fun, nil))
	if err != nil {
		r.LispError(t, err)
	}
}

// RunTestFile runs every test defined in the lisp file at path as a subtest
// of t.  Each test runs in a fresh environment.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}

	var names []string
	ok := t.Run("$load", func(t *testing.T) {
		names = r.LoadTests(t, path, bytes.NewReader(source))
	})
	if !ok {
		return
	}

	for i := range names {
		// We don't check the result of t.Run here because we want all
		// independent tests to run during a single run of the suite.  An
		// assertion failure within a tests prevents futher evaluation of
		// expressions in that test, but does not halt the execution of the
		// suite as a whole.
		t.Run(names[i], func(t *testing.T) {
			r.RunTest(t, i, path, bytes.NewReader(source))
		})
	}
}

// LispError reports err to t, including the lisp stack trace when err is a
// lisp error.
func (r *Runner) LispError(t testing.TB, err error) {
	t.Helper()
	lerr, ok := err.(*lisp.ErrorVal)
	if !ok {
		t.Error(err)
		return
	}
	var buf bytes.Buffer
	_, ioerr := lerr.WriteTrace(&buf)
	if ioerr != nil {
		t.Errorf("io error: %v", ioerr)
		t.Error(err)
		return
	}
	t.Error(buf.String())
}

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
	Output string // output written to Runtime.Stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		t.Logf("test %d -- %s", i, test.Name)
		env := lisp.NewEnv(nil)
		var exprBuf bytes.Buffer
		logger := NewLogger(t)
		err := lisp.GoError(lisp.InitializeRootEnv(env,
			lisp.WithMaximumStackHeight(25000),
			lisp.WithReader(parser.NewReader()),
			lisp.WithStdout(&exprBuf),
			lisp.WithStderr(logger),
		))
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			exprBuf.Reset()
			v, err := env.Runtime.Reader.Read("test", strings.NewReader(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: more than one expression parsed (%d)", i, test.Name, j, len(v))
				continue
			}
			env.Runtime.ResetSteps()
			result := env.Eval(v[0]).String()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if exprBuf.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, exprBuf.String())
			}
		}
		logger.Flush()
	}
}

// RunBenchmark runs a standard benchmark that executes expressions parsed from
// source.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	p := parser.NewReader()
	exprs, err := p.Read("benchmark", strings.NewReader(source))
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}
	for i := 0; i < b.N; i++ {
		env := lisp.NewEnv(nil)
		err := lisp.GoError(lisp.InitializeRootEnv(env,
			lisp.WithMaximumStackHeight(25000),
			lisp.WithReader(p),
			lisp.WithStdout(io.Discard),
			lisp.WithStderr(io.Discard),
		))
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		for i, expr := range exprs {
			lerr := env.Eval(expr)
			if lerr.Type == lisp.LError {
				b.Fatalf("expr %d: %v", i, lerr)
			}
		}
		b.StopTimer()
	}
}
