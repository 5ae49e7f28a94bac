// Copyright © 2018 The ELPS authors

// Package elkutil is the API for embedding the interpreter in Go programs.
package elkutil

import (
	"strings"

	"github.com/luthersystems/elk/lisp"
	"github.com/luthersystems/elk/parser"
)

// Function is a helper to construct builtins.
func Function(name string, formals []string, fun lisp.LBuiltin) *Builtin {
	return &Builtin{formals: formals, fun: fun, name: name}
}

// DocFunction is like Function but attaches documentation to the builtin.
func DocFunction(name string, formals []string, fun lisp.LBuiltin, doc string) *Builtin {
	return &Builtin{formals: formals, fun: fun, name: name, doc: doc}
}

// Builtin captures Go functions that are callable from lisp.  Builtin
// implements lisp.LBuiltinDef.
type Builtin struct {
	formals []string
	fun     lisp.LBuiltin
	name    string
	doc     string
}

// Name returns the name of a function.
func (fun *Builtin) Name() string {
	return fun.name
}

// Formals returns the formal arguments of a function.
func (fun *Builtin) Formals() []string {
	return fun.formals
}

// Docstring returns the documentation of a function.
func (fun *Builtin) Docstring() string {
	return fun.doc
}

// Eval evaluates a function on an environment.
func (fun *Builtin) Eval(env *lisp.LEnv, args []*lisp.LVal) *lisp.LVal {
	return fun.fun(env, args)
}

// Loader is a generic function to initialize an LEnv.  A chain of loaders may
// be formed with LoadAll.
type Loader func(env *lisp.LEnv) *lisp.LVal

// LoadAll returns a Loader which runs each of fn in order, stopping at the
// first error.
func LoadAll(fn ...Loader) Loader {
	return func(env *lisp.LEnv) *lisp.LVal {
		for _, fn := range fn {
			lerr := fn(env)
			if lerr.Type == lisp.LError {
				return lerr
			}
		}
		return lisp.Nil()
	}
}

// BuiltinLoader returns a Loader which adds defs to an environment.
func BuiltinLoader(defs ...lisp.LBuiltinDef) Loader {
	return func(env *lisp.LEnv) *lisp.LVal {
		if len(defs) > 0 {
			env.AddBuiltins(defs...)
		}
		return lisp.Nil()
	}
}

// SourceLoader returns a Loader which evaluates lisp source.
func SourceLoader(name, source string) Loader {
	return func(env *lisp.LEnv) *lisp.LVal {
		return env.LoadString(name, source)
	}
}

// AsConfig converts a Loader into a lisp.Config so that it can be passed to
// RootEnv.  Note that config is applied before the prelude is loaded.
func (fn Loader) AsConfig() lisp.Config {
	return lisp.Config(fn)
}

// RootEnv returns a root environment with the native library and the prelude
// installed.  The default reader is configured before config is applied.
func RootEnv(config ...lisp.Config) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	config = append([]lisp.Config{lisp.WithReader(parser.NewReader())}, config...)
	err := lisp.GoError(lisp.InitializeRootEnv(env, config...))
	if err != nil {
		return nil, err
	}
	return env, nil
}

// Read reads exactly one form from text.
func Read(text string) (*lisp.LVal, error) {
	exprs, err := ReadAll("read", text)
	if err != nil {
		return nil, err
	}
	if len(exprs) != 1 {
		return nil, lisp.GoError(lisp.ErrorConditionf(lisp.CondSyntaxError,
			"expected exactly one form but %d read", len(exprs)))
	}
	return exprs[0], nil
}

// ReadAll reads every form in text using the default reader.
func ReadAll(name, text string) ([]*lisp.LVal, error) {
	return parser.NewReader().Read(name, strings.NewReader(text))
}

// Eval evaluates v in env.  An error value produced by evaluation is returned
// as a *lisp.ErrorVal.
func Eval(v *lisp.LVal, env *lisp.LEnv) (*lisp.LVal, error) {
	res := env.Eval(v)
	if err := lisp.GoError(res); err != nil {
		return nil, err
	}
	return res, nil
}

// EvalString reads all forms in text and evaluates them in order, returning
// the value of the last one.  No form is evaluated if text cannot be read.
func EvalString(env *lisp.LEnv, text string) (*lisp.LVal, error) {
	var exprs []*lisp.LVal
	var err error
	if env.Runtime.Reader != nil {
		exprs, err = env.Runtime.Reader.Read("eval", strings.NewReader(text))
	} else {
		exprs, err = ReadAll("eval", text)
	}
	if err != nil {
		return nil, err
	}
	res := lisp.Nil()
	for _, expr := range exprs {
		res, err = Eval(expr, env)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Print renders v.  When readable is true strings and characters are printed
// so that they can be read back.
func Print(v *lisp.LVal, readable bool) string {
	return v.Print(readable)
}

// DefineNative binds name in env to a Go function taking any number of
// arguments.
func DefineNative(env *lisp.LEnv, name string, fn func(args []*lisp.LVal) *lisp.LVal) {
	env.DefineNative(name, fn)
}
