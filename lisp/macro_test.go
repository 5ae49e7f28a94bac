// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/elk/elktest"
	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuasiquote(t *testing.T) {
	tests := elktest.TestSuite{
		{"templates", elktest.TestSequence{
			{"`x", `x`, ``},
			{"`1", `1`, ``},
			{"`()", `()`, ``},
			{"`(1 ~(+ 1 1) ~@(list 3 4))", `(1 2 3 4)`, ``},
			{"`[a ~(+ 1 2)]", `[a 3]`, ``},
			{"(let [x 2] `{:a ~x :b y})", `{:a 2 :b y}`, ``},
			{"(let [k :c] `{~k [~k]})", `{:c [:c]}`, ``},
			{"(let [xs [1 2]] `#{0 ~@xs})", `#{0 1 2}`, ``},
			{"`#{a ~(inc 1)}", `#{2 a}`, ``},
			{"`(a (b ~(+ 1 1)))", `(a (b 2))`, ``},
			{"(let [xs [1 2]] `(+ ~@xs))", `(+ 1 2)`, ``},
			{"`(~@nil)", `()`, ``},
			{"`(~@1)", `#<error bad-arg: argument is not a sequence: :int>`, ``},
			{"(quasiquote)", `#<error semantic-error: quasiquote: expected 1 argument>`, ``},
		}},
	}
	elktest.RunTestSuite(t, tests)
}

func TestMacros(t *testing.T) {
	tests := elktest.TestSuite{
		{"defmacro", elktest.TestSequence{
			{"(defmacro m0 [] `(+ 1 1))", `#<macro m0>`, ``},
			{"(defmacro m1 [x] `(+ ~x 1))", `#<macro m1>`, ``},
			{`(m0)`, `2`, ``},
			{`(m1 (* 2 3))`, `7`, ``},
			{`(macroexpand '(m1 (* 2 3)))`, `(+ (* 2 3) 1)`, ``},
			{`(macroexpand-1 '(m1 (m0)))`, `(+ (m0) 1)`, ``},
			{`(defmacro m2 [] '(m1 5))`, `#<macro m2>`, ``},
			{`(macroexpand-1 '(m2))`, `(m1 5)`, ``},
			{`(macroexpand '(m2))`, `(+ 5 1)`, ``},
			{`(m2)`, `6`, ``},
			{`(macroexpand '(+ 1 2))`, `(+ 1 2)`, ``},
			{`(macroexpand 5)`, `5`, ``},
			{`(macro? m0)`, `true`, ``},
			{`(fn? m0)`, `false`, ``},
			{`(type m0)`, `:macro`, ``},
			{`(apply m1 '(x))`, `(+ x 1)`, ``},
			{`(m1)`, `#<error bad-arity: m1 expects exactly 1 argument but 0 given>`, ``},
		}},
		{"arguments are not evaluated", elktest.TestSequence{
			{`(defmacro quoted [x] (list 'quote x))`, `#<macro quoted>`, ``},
			{`(quoted (undefined-function 1 2))`, `(undefined-function 1 2)`, ``},
			{"(defmacro my-if [c t e] `(if ~c ~t ~e))", `#<macro my-if>`, ``},
			{`(my-if true (prn :yes) (prn :no))`, `nil`, ":yes\n"},
		}},
		{"expansion in nested forms", elktest.TestSequence{
			{"(defmacro twice [x] `(do ~x ~x))", `#<macro twice>`, ``},
			{`(defn f [] (twice (prn 1)))`, `#<function f>`, ``},
			{`(f)`, `nil`, "1\n1\n"},
			{`[(twice 3)]`, `[3]`, ``},
		}},
		{"expansion errors", elktest.TestSequence{
			{`(defmacro bad [] (/ 1 0))`, `#<macro bad>`, ``},
			{`(bad)`, `#<error div-by-zero: division by zero>`, ``},
			{`(defmacro loop-forever [] '(loop-forever))`, `#<macro loop-forever>`, ``},
			{`(loop-forever)`, `#<error macro-expansion-limit: macro expansion exceeded 10000 steps expanding loop-forever>`, ``},
		}},
	}
	elktest.RunTestSuite(t, tests)
}

func TestPrelude(t *testing.T) {
	tests := elktest.TestSuite{
		{"conditionals", elktest.TestSequence{
			{`(when true 1 2)`, `2`, ``},
			{`(when false 1)`, `nil`, ``},
			{`(unless false :ok)`, `:ok`, ``},
			{`(unless true :ok)`, `nil`, ``},
			{`(cond false 1 nil 2 :else 3)`, `3`, ``},
			{`(cond (= 1 1) :one :else :other)`, `:one`, ``},
			{`(cond)`, `nil`, ``},
			{`(cond false 1)`, `nil`, ``},
			{`(cond true)`, `#<error user-error: cond requires an even number of forms>`, ``},
		}},
		{"and or", elktest.TestSequence{
			{`(and)`, `true`, ``},
			{`(and 1 2 3)`, `3`, ``},
			{`(and 1 nil 3)`, `nil`, ``},
			{`(and false (prn :unreached))`, `false`, ``},
			{`(or)`, `nil`, ``},
			{`(or nil false 4)`, `4`, ``},
			{`(or false)`, `false`, ``},
			{`(or 1 (prn :unreached))`, `1`, ``},
		}},
		{"threading", elktest.TestSequence{
			{`(-> 1 inc (+ 10) (* 2))`, `24`, ``},
			{`(-> 1 (- 10))`, `-9`, ``},
			{`(->> 1 (- 10))`, `9`, ``},
			{`(->> (range 5) (map inc) (filter (fn [x] (= 0 (mod x 2)))))`, `(2 4)`, ``},
		}},
		{"functions", elktest.TestSequence{
			{`(inc 1.5)`, `2.5`, ``},
			{`(dec 0)`, `-1`, ``},
			{`(second [1 2 3])`, `2`, ``},
			{`(second [])`, `nil`, ``},
			{`(not-empty [])`, `nil`, ``},
			{`(not-empty [1])`, `[1]`, ``},
		}},
	}
	elktest.RunTestSuite(t, tests)
}

func TestMacroExpansionLimit(t *testing.T) {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeRootEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithMaxMacroExpansionDepth(50),
	)
	require.NoError(t, lisp.GoError(lerr))

	v := env.LoadString("test", `
(defmacro grow [& xs] (cons 'grow (cons 1 xs)))
(grow)`)
	err, ok := lisp.GoError(v).(*lisp.ErrorVal)
	require.True(t, ok, "expected an error: %v", v)
	assert.Equal(t, lisp.CondMacroExpansionLimit, err.Kind())
	assert.Contains(t, err.ErrorMessage(), "exceeded 50 steps")

	// expansion that terminates within the limit is unaffected
	v = env.LoadString("test", `
(defmacro countdown [n] (if (= n 0) :done (list 'countdown (- n 1))))
(countdown 49)`)
	assert.Equal(t, ":done", v.String())
}
