// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/elk/elktest"
)

func TestEval(t *testing.T) {
	tests := elktest.TestSuite{
		{"atoms", elktest.TestSequence{
			{`1`, `1`, ``},
			{`1.5`, `1.5`, ``},
			{`"s"`, `"s"`, ``},
			{`:k`, `:k`, ``},
			{`\a`, `\a`, ``},
			{`nil`, `nil`, ``},
			{`()`, `()`, ``},
			{`[1 (+ 1 1)]`, `[1 2]`, ``},
			{`{:a (+ 1 2)}`, `{:a 3}`, ``},
			{`#{(+ 1 1)}`, `#{2}`, ``},
			{`x`, `#<error no-such-var: unbound symbol: x>`, ``},
			{`[1 x]`, `#<error no-such-var: unbound symbol: x>`, ``},
		}},
		{"def", elktest.TestSequence{
			{`(def x 1)`, `1`, ``},
			{`x`, `1`, ``},
			{`(def x (+ x 1))`, `2`, ``},
			{`x`, `2`, ``},
			{`(def nil 1)`, `#<error semantic-error: def: first argument is not a symbol: :nil>`, ``},
			{`(def y)`, `#<error semantic-error: def: expected 2 arguments>`, ``},
			{`(def y (/ 1 0))`, `#<error div-by-zero: division by zero>`, ``},
			{`y`, `#<error no-such-var: unbound symbol: y>`, ``},
		}},
		{"set!", elktest.TestSequence{
			{`(def counter 0)`, `0`, ``},
			{`(set! counter 5)`, `5`, ``},
			{`counter`, `5`, ``},
			{`(set! y 1)`, `#<error no-such-var: cannot set unbound symbol: y>`, ``},
			{`(let [counter 1] (set! counter 2) counter)`, `2`, ``},
			{`counter`, `5`, ``},
			{`(let [] (set! counter 7))`, `7`, ``},
			{`counter`, `7`, ``},
		}},
		{"if and do", elktest.TestSequence{
			{`(if true 1 2)`, `1`, ``},
			{`(if nil 1 2)`, `2`, ``},
			{`(if false 1)`, `nil`, ``},
			{`(if 0 :zero :no)`, `:zero`, ``},
			{`(if "" 1 2)`, `1`, ``},
			{`(if [] 1 2)`, `1`, ``},
			{`(if)`, `#<error semantic-error: if: expected 2 or 3 arguments>`, ``},
			{`(do)`, `nil`, ``},
			{`(do 1 2 3)`, `3`, ``},
			{`(do (prn 1) (prn 2))`, `nil`, "1\n2\n"},
		}},
		{"let", elktest.TestSequence{
			{`(let [x 1 y (+ x 1)] (* x y))`, `2`, ``},
			{`(let [] 5)`, `5`, ``},
			{`(let [x 1])`, `nil`, ``},
			{`(let [x 1] (let [x 2] x))`, `2`, ``},
			{`(let [x] x)`, `#<error semantic-error: let: odd number of forms in bindings>`, ``},
			{`(let [1 2] 3)`, `#<error semantic-error: let: binding name is not a symbol: 1>`, ``},
			{`(let x 1)`, `#<error semantic-error: let: bindings are not a vector: :symbol>`, ``},
			{`(let [x 1] x)`, `1`, ``},
			{`x`, `#<error no-such-var: unbound symbol: x>`, ``},
		}},
		{"fn", elktest.TestSequence{
			{`((fn [x] (* x x)) 3)`, `9`, ``},
			{`(def add (fn [a b] (+ a b)))`, `#<function add>`, ``},
			{`(add 1 2)`, `3`, ``},
			{`(add 1)`, `#<error bad-arity: add expects exactly 2 arguments but 1 given>`, ``},
			{`(add 1 2 3)`, `#<error bad-arity: add expects exactly 2 arguments but 3 given>`, ``},
			{`((fn [& xs] xs))`, `()`, ``},
			{`((fn [a & xs] [a xs]) 1 2 3)`, `[1 (2 3)]`, ``},
			{`((fn [a & xs] xs))`, `#<error bad-arity: anonymous function expects at least 1 argument but 0 given>`, ``},
			{`(fn [a &] a)`, `#<error bad-arity: & must be followed by exactly one parameter>`, ``},
			{`(fn [a & b c] a)`, `#<error bad-arity: & must be followed by exactly one parameter>`, ``},
			{`(fn [1] 1)`, `#<error semantic-error: parameter is not a symbol: 1>`, ``},
			{`(fn)`, `#<error semantic-error: fn: missing parameter list>`, ``},
			{`(1 2)`, `#<error bad-arg: not a function: 1>`, ``},
		}},
		{"defn", elktest.TestSequence{
			{`(defn sq "squares x" [x] (* x x))`, `#<function sq>`, ``},
			{`(sq 5)`, `25`, ``},
			{`(defn named [] "just a string")`, `#<function named>`, ``},
			{`(named)`, `"just a string"`, ``},
			{`(defn 1 [] 1)`, `#<error semantic-error: defn: first argument is not a symbol: :int>`, ``},
			{`(defn f)`, `#<error semantic-error: defn: expected a name and a parameter list>`, ``},
		}},
		{"closures", elktest.TestSequence{
			{`(defn make-counter [] (let [n 0] (fn [] (set! n (+ n 1)))))`, `#<function make-counter>`, ``},
			{`(def c (make-counter))`, `#<function c>`, ``},
			{`(c)`, `1`, ``},
			{`(c)`, `2`, ``},
			{`(def d (make-counter))`, `#<function d>`, ``},
			{`(d)`, `1`, ``},
			{`(c)`, `3`, ``},
			{`(defn make-cell [] (let [n 0] [(fn [] n) (fn [v] (set! n v))]))`, `#<function make-cell>`, ``},
			{`(def cell (make-cell))`, `[#<function> #<function>]`, ``},
			{`((nth cell 1) 42)`, `42`, ``},
			{`((first cell))`, `42`, ``},
			{`(def base 10)`, `10`, ``},
			{`(defn add-base [x] (+ x base))`, `#<function add-base>`, ``},
			{`(set! base 20)`, `20`, ``},
			{`(add-base 1)`, `21`, ``},
		}},
		{"binding names functions", elktest.TestSequence{
			{`(def fs [(fn [] 1)])`, `[#<function>]`, ``},
			{`(let [g (first fs)] g)`, `#<function g>`, ``},
			{`fs`, `[#<function>]`, ``},
			{`(def h (first fs))`, `#<function h>`, ``},
			{`(first fs)`, `#<function>`, ``},
			{`(= h (first fs))`, `true`, ``},
			{`(h)`, `1`, ``},
			{`(def h2 h)`, `#<function h>`, ``},
		}},
		{"quote", elktest.TestSequence{
			{`'x`, `x`, ``},
			{`'(1 (+ 1 1))`, `(1 (+ 1 1))`, ``},
			{`''x`, `(quote x)`, ``},
			{`(quote)`, `#<error semantic-error: quote: expected 1 argument>`, ``},
		}},
		{"try", elktest.TestSequence{
			{`(try (throw 42) (catch e (+ e 1)))`, `43`, ``},
			{`(try (nth [1] 5) (catch :div-by-zero e 0))`, `#<error index-oob: index out of bounds: 5 (length 1)>`, ``},
			{`(try (nth [1] 5) (catch :div-by-zero e 0) (catch :index-oob e :oob))`, `:oob`, ``},
			{`(try (/ 1 0) (catch e (error-kind e)))`, `:div-by-zero`, ``},
			{`(try (/ 1 0) (catch e (error-message e)))`, `"division by zero"`, ``},
			{`(try (/ 1 0) (catch e (error? e)))`, `true`, ``},
			{`(try (/ 1 0) (catch e e))`, `#<error div-by-zero: division by zero>`, ``},
			{`(type (try (/ 1 0) (catch e e)))`, `:error`, ``},
			{`(error? 1)`, `false`, ``},
			{`(try (throw {:code 1}) (catch :user-error e (get e :code)))`, `1`, ``},
			{`(try 1 2)`, `2`, ``},
			{`(try)`, `nil`, ``},
			{`(try (prn :a) (/ 1 0) (prn :b) (catch e :caught))`, `:caught`, ":a\n"},
			{`(try (throw 1) (catch e))`, `nil`, ``},
			{`(try (catch e 1) 2)`, `#<error semantic-error: try: catch clause followed by an expression>`, ``},
			{`(try 1 (catch 1))`, `#<error semantic-error: try: catch clause must bind a symbol>`, ``},
			{`(try (try (/ 1 0) (catch :user-error e :inner)) (catch :div-by-zero e :outer))`, `:outer`, ``},
			{`(try (throw (try (/ 1 0) (catch e e))) (catch :div-by-zero e :rethrown))`, `:rethrown`, ``},
			{`(defn risky [x] (if (< x 0) (throw "negative") x))`, `#<function risky>`, ``},
			{`(try (risky -1) (catch e (str "caught " e)))`, `"caught negative"`, ``},
		}},
		{"eval and load-string", elktest.TestSequence{
			{`(eval '(+ 1 2))`, `3`, ``},
			{`(eval (list '* 2 3))`, `6`, ``},
			{`(let [x 1] (eval 'x))`, `#<error no-such-var: unbound symbol: x>`, ``},
			{`(load-string "(def z 3) (* z 2)")`, `6`, ``},
			{`z`, `3`, ``},
			{`(read-string "(a b)")`, `(a b)`, ``},
			{`(read-string "")`, `nil`, ``},
			{`(read-string "(a")`, `#<error syntax-error: unmatched (>`, ``},
		}},
	}
	elktest.RunTestSuite(t, tests)
}
