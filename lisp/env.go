// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"

	"github.com/luthersystems/elk/parser/token"
)

// InitializeRootEnv installs the default builtins, special macros and the
// prelude into env and then applies config.  Config is applied before the
// prelude is loaded so that the prelude is read using a configured Reader.
// The prelude is skipped if no reader has been configured.
func InitializeRootEnv(env *LEnv, config ...Config) *LVal {
	env.AddBuiltins()
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	if env.Runtime.Reader == nil {
		return Nil()
	}
	return env.LoadString("prelude.lisp", prelude)
}

// LEnv is a lisp environment (frame).  Frames form a chain through Parent.
// Bindings are mutable and mutations are visible to every holder of the
// frame.
type LEnv struct {
	Loc     *token.Location
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnvRuntime initializes a new root LEnv that uses rt.  When rt is nil
// StandardRuntime() called to create a new Runtime for the returned LEnv.  It
// is an error to use the same runtime object in multiple calls to
// NewEnvRuntime if the two envs are not in the same tree and doing so will
// have unspecified results.
func NewEnvRuntime(rt *Runtime) *LEnv {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &LEnv{
		Loc:     nativeSource(),
		Scope:   make(map[string]*LVal),
		Runtime: rt,
	}
}

// NewEnv returns initializes and returns a new LEnv.  If parent is nil a root
// environment with a standard runtime is returned.
func NewEnv(parent *LEnv) *LEnv {
	if parent == nil {
		return NewEnvRuntime(nil)
	}
	return parent.Child()
}

// Child returns a new frame whose parent is env.
func (env *LEnv) Child() *LEnv {
	return &LEnv{
		Loc:     env.Loc,
		Scope:   make(map[string]*LVal),
		Parent:  env,
		Runtime: env.Runtime,
	}
}

// Root returns the root frame of env's chain.
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// find returns the nearest frame binding name.
func (env *LEnv) find(name string) *LEnv {
	for e := env; e != nil; e = e.Parent {
		if _, ok := e.Scope[name]; ok {
			return e
		}
	}
	return nil
}

// Lookup returns the value bound to name in the nearest frame which binds it.
// An unbound name results in a no-such-var error.
func (env *LEnv) Lookup(name string) *LVal {
	for e := env; e != nil; e = e.Parent {
		if v, ok := e.Scope[name]; ok {
			return v
		}
	}
	return env.ErrorConditionf(CondNoSuchVar, "unbound symbol: %v", name)
}

// Get returns the value bound to the symbol k.
func (env *LEnv) Get(k *LVal) *LVal {
	if k.Type != LSymbol {
		return env.ErrorConditionf(CondBadArg, "key is not a symbol: %v", GetType(k))
	}
	return env.Lookup(k.Str)
}

// Define binds name to v in env, shadowing bindings in parent frames.
func (env *LEnv) Define(name string, v *LVal) *LVal {
	env.Scope[name] = v
	return v
}

// Put binds the symbol k to v in env.
func (env *LEnv) Put(k, v *LVal) *LVal {
	if k.Type != LSymbol {
		return env.ErrorConditionf(CondBadArg, "key is not a symbol: %v", GetType(k))
	}
	if isSingletonName(k.Str) {
		return env.ErrorConditionf(CondSemanticError, "cannot rebind constant: %v", k.Str)
	}
	return env.Define(k.Str, v)
}

// SetExisting rebinds name in the nearest frame which binds it.  If no frame
// binds name a no-such-var error is returned.
func (env *LEnv) SetExisting(name string, v *LVal) *LVal {
	e := env.find(name)
	if e == nil {
		return env.ErrorConditionf(CondNoSuchVar, "cannot set unbound symbol: %v", name)
	}
	e.Scope[name] = v
	return v
}

// Update rebinds the symbol k in the nearest frame which binds it.
func (env *LEnv) Update(k, v *LVal) *LVal {
	if k.Type != LSymbol {
		return env.ErrorConditionf(CondBadArg, "key is not a symbol: %v", GetType(k))
	}
	return env.SetExisting(k.Str, v)
}

// GenSym returns a new symbol that is unique within env's runtime.
func (env *LEnv) GenSym(prefix string) *LVal {
	return Symbol(env.Runtime.GenSym(prefix))
}

// DefineNative binds name to a native function implemented by fn.  The
// function accepts any number of arguments.
func (env *LEnv) DefineNative(name string, fn func(args []*LVal) *LVal) *LVal {
	return env.Define(name, Fun(name, func(_ *LEnv, args []*LVal) *LVal {
		return fn(args)
	}))
}

// AddBuiltins binds funs in env.  When no functions are given AddBuiltins
// adds DefaultBuiltins() to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		env.Define(f.Name(), env.builtin(f))
	}
}

func (env *LEnv) builtin(f LBuiltinDef) *LVal {
	params, rest, lerr := parseParamNames(f.Formals())
	if lerr != nil {
		panic(fmt.Sprintf("invalid formals for builtin %s: %v", f.Name(), GoError(lerr)))
	}
	name := f.Name()
	fn := func(env *LEnv, args []*LVal) *LVal {
		if len(args) < len(params) || (rest == "" && len(args) > len(params)) {
			return env.ErrorConditionf(CondBadArity, "%s", arityMessage(name, len(params), rest != "", len(args)))
		}
		return f.Eval(env, args)
	}
	v := Fun(name, fn)
	fd := v.FunData()
	fd.Params = params
	fd.Rest = rest
	fd.Doc = f.Docstring()
	return v
}

// ErrorConditionf returns an LError value with the given kind and a
// formatted error message rendered using fmt.Sprintf.
//
// Unlike the exported function, the ErrorConditionf method returns an LVal
// with a copy env.Runtime.Stack and env's current source location.
func (env *LEnv) ErrorConditionf(kind ErrorKind, format string, v ...interface{}) *LVal {
	lerr := ErrorConditionf(kind, format, v...)
	env.ErrorAssociate(lerr)
	return lerr
}

// ErrorAssociate associates the LError value lerr with env's current call
// stack and source location, unless lerr already has them.  ErrorAssociate
// panics if lerr is not LError.
func (env *LEnv) ErrorAssociate(lerr *LVal) {
	if lerr.Type != LError {
		panic("not an error: " + lerr.Type.String())
	}
	if lerr.CallStack() == nil {
		lerr.Native = env.Runtime.Stack.Copy()
	}
	if !hasLocation(lerr.Source) && hasLocation(env.Loc) {
		lerr.Source = env.Loc
	}
}

func isSingletonName(name string) bool {
	switch name {
	case NilSymbol, TrueSymbol, FalseSymbol:
		return true
	}
	return false
}
