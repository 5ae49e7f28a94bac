// Copyright © 2018 The ELPS authors

package lisp

import (
	"github.com/luthersystems/elk/parser/token"
	"github.com/sirupsen/logrus"
)

// Special form names.
const (
	DefSymbol          = "def"
	SetSymbol          = "set!"
	LetSymbol          = "let"
	IfSymbol           = "if"
	DoSymbol           = "do"
	FnSymbol           = "fn"
	DefnSymbol         = "defn"
	DefmacroSymbol     = "defmacro"
	MacroexpandSymbol  = "macroexpand"
	Macroexpand1Symbol = "macroexpand-1"
	TrySymbol          = "try"
	CatchSymbol        = "catch"
)

// SpecialForms lists the symbols which the evaluator handles itself when
// they appear at the head of a list.
var SpecialForms = []string{
	DefSymbol,
	SetSymbol,
	LetSymbol,
	IfSymbol,
	DoSymbol,
	FnSymbol,
	DefnSymbol,
	DefmacroSymbol,
	QuoteSymbol,
	QuasiquoteSymbol,
	MacroexpandSymbol,
	Macroexpand1Symbol,
	TrySymbol,
}

// Eval evaluates form in the context (scope) of env and returns the resulting
// LVal.  Eval does not modify form.
//
// Eval is a loop.  Forms in tail position (the branches of if, the last
// expression of do, let and function bodies, catch handlers and the
// expansion of quasiquote) replace the form being evaluated instead of being
// evaluated recursively.  A function called in tail position replaces the
// top frame of the call stack.
func (env *LEnv) Eval(form *LVal) *LVal {
	rt := env.Runtime
	var pushed bool
	var stopTrace func()
	defer func() {
		if stopTrace != nil {
			stopTrace()
		}
		if pushed {
			rt.Stack.Pop()
		}
	}()
	for {
		if lerr := rt.step(env); lerr != nil {
			return lerr
		}
		form = env.MacroExpand(form)
		if form.Type == LError {
			return form
		}
		env.setLoc(form.Source)
		if form.Type != LList || len(form.Cells) == 0 {
			return env.evalAtom(form)
		}

		head := form.Cells[0]
		if head.Type == LSymbol {
			var next *LVal
			var nextEnv *LEnv
			special := true
			switch head.Str {
			case DefSymbol:
				return env.evalDef(form)
			case SetSymbol:
				return env.evalSet(form)
			case FnSymbol:
				return env.evalFn(form)
			case DefnSymbol:
				return env.evalDefn(form, LFunNone)
			case DefmacroSymbol:
				return env.evalDefn(form, LFunMacro)
			case QuoteSymbol:
				if len(form.Cells) != 2 {
					return env.formErrorf(form, "expected 1 argument")
				}
				return form.Cells[1]
			case MacroexpandSymbol:
				if len(form.Cells) != 2 {
					return env.formErrorf(form, "expected 1 argument")
				}
				return env.MacroExpand(form.Cells[1])
			case Macroexpand1Symbol:
				if len(form.Cells) != 2 {
					return env.formErrorf(form, "expected 1 argument")
				}
				return env.MacroExpand1(form.Cells[1])
			case QuasiquoteSymbol:
				if len(form.Cells) != 2 {
					return env.formErrorf(form, "expected 1 argument")
				}
				next, nextEnv = Quasiquote(form.Cells[1]), env
			case IfSymbol:
				next, nextEnv = env.evalIf(form)
			case DoSymbol:
				next, nextEnv = env.evalBody(form.Cells[1:])
			case LetSymbol:
				next, nextEnv = env.evalLet(form)
			case TrySymbol:
				next, nextEnv = env.evalTry(form)
			default:
				special = false
			}
			if special {
				if nextEnv == nil {
					return next
				}
				form, env = next, nextEnv
				continue
			}
		}

		fun := env.Eval(head)
		if fun.Type == LError {
			return fun
		}
		args := make([]*LVal, len(form.Cells)-1)
		for i, expr := range form.Cells[1:] {
			v := env.Eval(expr)
			if v.Type == LError {
				return v
			}
			args[i] = v
		}
		env.setLoc(form.Source)
		if fun.Type != LFun {
			return env.ErrorConditionf(CondBadArg, "not a function: %v", fun)
		}
		fd := fun.FunData()
		if fd.IsBuiltin() {
			return env.callBuiltin(fun, args)
		}
		frame, lerr := fd.Bind(args)
		if lerr != nil {
			env.ErrorAssociate(lerr)
			return lerr
		}
		if !pushed {
			if err := rt.Stack.Push(form.Source, fun); err != nil {
				return env.ErrorConditionf(CondStackOverflow, "%v", err)
			}
			pushed = true
		} else {
			if rt.traceEnabled() {
				rt.Logger.WithFields(logrus.Fields{
					"fun":   fun.FunName(),
					"depth": rt.Stack.Height(),
				}).Trace("tail call")
			}
			rt.Stack.Replace(form.Source, fun)
		}
		if stopTrace != nil {
			stopTrace()
		}
		stopTrace = env.trace(fun)
		frame.setLoc(form.Source)
		next, nextEnv := frame.evalBody(fd.Body)
		if nextEnv == nil {
			return next
		}
		form, env = next, nextEnv
	}
}

// FunCall invokes fun with args in a new stack frame and returns the result.
// FunCall is used by native functions which call back into lisp.  Unlike a
// call evaluated by Eval, the call is never a tail call.
func (env *LEnv) FunCall(fun *LVal, args []*LVal) *LVal {
	if fun.Type != LFun {
		return env.ErrorConditionf(CondBadArg, "not a function: %v", fun)
	}
	fd := fun.FunData()
	if fd.IsBuiltin() {
		return env.callBuiltin(fun, args)
	}
	frame, lerr := fd.Bind(args)
	if lerr != nil {
		env.ErrorAssociate(lerr)
		return lerr
	}
	rt := env.Runtime
	if err := rt.Stack.Push(env.Loc, fun); err != nil {
		return env.ErrorConditionf(CondStackOverflow, "%v", err)
	}
	defer rt.Stack.Pop()
	if stop := env.trace(fun); stop != nil {
		defer stop()
	}
	frame.setLoc(env.Loc)
	next, nextEnv := frame.evalBody(fd.Body)
	if nextEnv == nil {
		return next
	}
	return nextEnv.Eval(next)
}

func (env *LEnv) callBuiltin(fun *LVal, args []*LVal) *LVal {
	rt := env.Runtime
	if err := rt.Stack.Push(env.Loc, fun); err != nil {
		return env.ErrorConditionf(CondStackOverflow, "%v", err)
	}
	defer rt.Stack.Pop()
	if stop := env.trace(fun); stop != nil {
		defer stop()
	}
	res := fun.FunData().Builtin(env, args)
	if res.Type == LError {
		env.ErrorAssociate(res)
	}
	return res
}

func (env *LEnv) setLoc(loc *token.Location) {
	if loc != nil {
		env.Loc = loc
	}
}

// evalAtom evaluates a form which is not a non-empty list.
func (env *LEnv) evalAtom(form *LVal) *LVal {
	switch form.Type {
	case LSymbol:
		return env.Get(form)
	case LVector:
		cells := make([]*LVal, len(form.Cells))
		for i, expr := range form.Cells {
			v := env.Eval(expr)
			if v.Type == LError {
				return v
			}
			cells[i] = v
		}
		return Vector(cells)
	case LMap:
		entries := form.MapData().Entries()
		data := NewMapData(len(entries))
		for _, e := range entries {
			k := env.Eval(e.Key)
			if k.Type == LError {
				return k
			}
			v := env.Eval(e.Val)
			if v.Type == LError {
				return v
			}
			data.Put(k, v)
		}
		return MapFromData(data)
	case LSet:
		keys := form.MapData().Keys()
		data := NewMapData(len(keys))
		for _, expr := range keys {
			v := env.Eval(expr)
			if v.Type == LError {
				return v
			}
			data.Put(v, v)
		}
		return SetFromData(data)
	default:
		return form
	}
}

// evalBody evaluates all but the last expression in body and returns the last
// expression to be evaluated in tail position.  If body is empty or an error
// occurs the result is returned with a nil environment.
func (env *LEnv) evalBody(body []*LVal) (*LVal, *LEnv) {
	if len(body) == 0 {
		return Nil(), nil
	}
	for _, expr := range body[:len(body)-1] {
		v := env.Eval(expr)
		if v.Type == LError {
			return v, nil
		}
	}
	return body[len(body)-1], env
}

func (env *LEnv) formErrorf(form *LVal, format string, v ...interface{}) *LVal {
	lerr := env.ErrorConditionf(CondSemanticError, format, v...)
	lerr.Cells[0] = String(form.Cells[0].Str + ": " + lerr.Cells[0].Str)
	return lerr
}

func (env *LEnv) evalDef(form *LVal) *LVal {
	if len(form.Cells) != 3 {
		return env.formErrorf(form, "expected 2 arguments")
	}
	name := form.Cells[1]
	if name.Type != LSymbol {
		return env.formErrorf(form, "first argument is not a symbol: %v", GetType(name))
	}
	v := env.Eval(form.Cells[2])
	if v.Type == LError {
		return v
	}
	return env.Put(name, nameFun(v, name.Str))
}

func (env *LEnv) evalSet(form *LVal) *LVal {
	if len(form.Cells) != 3 {
		return env.formErrorf(form, "expected 2 arguments")
	}
	name := form.Cells[1]
	if name.Type != LSymbol {
		return env.formErrorf(form, "first argument is not a symbol: %v", GetType(name))
	}
	v := env.Eval(form.Cells[2])
	if v.Type == LError {
		return v
	}
	return env.Update(name, v)
}

// nameFun returns v, or a named copy of v when v is an anonymous function.
// The copy keeps the function's ID so the two values remain Equal.
func nameFun(v *LVal, name string) *LVal {
	if v.Type != LFun || v.FunData().Name != "" {
		return v
	}
	fd := *v.FunData()
	fd.Name = name
	cp := *v
	cp.Native = &fd
	return &cp
}

// evalFn evaluates (fn [name] params body...)
func (env *LEnv) evalFn(form *LVal) *LVal {
	rest := form.Cells[1:]
	name := ""
	if len(rest) > 0 && rest[0].Type == LSymbol {
		name = rest[0].Str
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return env.formErrorf(form, "missing parameter list")
	}
	return env.Lambda(name, rest[0], rest[1:], LFunNone)
}

// evalDefn evaluates (defn name [docstring] params body...) and the
// equivalent defmacro form.
func (env *LEnv) evalDefn(form *LVal, ft LFunType) *LVal {
	if len(form.Cells) < 3 {
		return env.formErrorf(form, "expected a name and a parameter list")
	}
	name := form.Cells[1]
	if name.Type != LSymbol {
		return env.formErrorf(form, "first argument is not a symbol: %v", GetType(name))
	}
	rest := form.Cells[2:]
	doc := ""
	if rest[0].Type == LString && len(rest) > 1 {
		doc = rest[0].Str
		rest = rest[1:]
	}
	fun := env.Lambda(name.Str, rest[0], rest[1:], ft)
	if fun.Type == LError {
		return fun
	}
	if doc != "" {
		fun.FunData().Doc = doc
	}
	return env.Put(name, fun)
}

// Lambda returns a function, or a macro when ft is LFunMacro, which closes
// over env.  If body starts with a string and contains other expressions the
// string is used as the function's documentation.
func (env *LEnv) Lambda(name string, params *LVal, body []*LVal, ft LFunType) *LVal {
	names, rest, lerr := ParseParams(params)
	if lerr != nil {
		env.ErrorAssociate(lerr)
		return lerr
	}
	doc := ""
	if len(body) > 1 && body[0].Type == LString {
		doc = body[0].Str
		body = body[1:]
	}
	return &LVal{
		Source:  env.Loc,
		Type:    LFun,
		FunType: ft,
		Native: &LFunData{
			ID:     nextValueID(),
			Name:   name,
			Doc:    doc,
			Env:    env,
			Params: names,
			Rest:   rest,
			Body:   body,
		},
	}
}

func (env *LEnv) evalIf(form *LVal) (*LVal, *LEnv) {
	if len(form.Cells) != 3 && len(form.Cells) != 4 {
		return env.formErrorf(form, "expected 2 or 3 arguments"), nil
	}
	c := env.Eval(form.Cells[1])
	if c.Type == LError {
		return c, nil
	}
	if c.IsTrue() {
		return form.Cells[2], env
	}
	if len(form.Cells) == 4 {
		return form.Cells[3], env
	}
	return Nil(), nil
}

func (env *LEnv) evalLet(form *LVal) (*LVal, *LEnv) {
	if len(form.Cells) < 2 {
		return env.formErrorf(form, "missing bindings"), nil
	}
	bindings := form.Cells[1]
	if !bindings.IsSeq() {
		return env.formErrorf(form, "bindings are not a vector: %v", GetType(bindings)), nil
	}
	if len(bindings.Cells)%2 != 0 {
		return env.formErrorf(form, "odd number of forms in bindings"), nil
	}
	frame := env.Child()
	for i := 0; i < len(bindings.Cells); i += 2 {
		name := bindings.Cells[i]
		if name.Type != LSymbol || isSingletonName(name.Str) {
			return env.formErrorf(form, "binding name is not a symbol: %v", name), nil
		}
		v := frame.Eval(bindings.Cells[i+1])
		if v.Type == LError {
			return v, nil
		}
		frame.Scope[name.Str] = nameFun(v, name.Str)
	}
	return frame.evalBody(form.Cells[2:])
}

type catchClause struct {
	kind string
	name string
	body []*LVal
}

func (env *LEnv) evalTry(form *LVal) (*LVal, *LEnv) {
	body, clauses, lerr := env.parseTry(form)
	if lerr != nil {
		return lerr, nil
	}
	res := Nil()
	for _, expr := range body {
		res = env.Eval(expr)
		if res.Type == LError {
			break
		}
	}
	if res.Type != LError {
		return res, nil
	}
	for _, c := range clauses {
		if c.kind != "" && c.kind != res.Str {
			continue
		}
		frame := env.Child()
		bound := Caught(res)
		if payload := (*ErrorVal)(res).Payload(); payload != nil {
			bound = payload
		}
		frame.Scope[c.name] = bound
		return frame.evalBody(c.body)
	}
	return res, nil
}

func (env *LEnv) parseTry(form *LVal) ([]*LVal, []catchClause, *LVal) {
	exprs := form.Cells[1:]
	n := len(exprs)
	for n > 0 && isCatch(exprs[n-1]) {
		n--
	}
	body := exprs[:n]
	for _, expr := range body {
		if isCatch(expr) {
			return nil, nil, env.formErrorf(form, "catch clause followed by an expression")
		}
	}
	var clauses []catchClause
	for _, expr := range exprs[n:] {
		rest := expr.Cells[1:]
		var c catchClause
		if len(rest) > 0 && rest[0].Type == LKeyword {
			c.kind = rest[0].Str
			rest = rest[1:]
		}
		if len(rest) == 0 || rest[0].Type != LSymbol {
			return nil, nil, env.formErrorf(form, "catch clause must bind a symbol")
		}
		c.name = rest[0].Str
		c.body = rest[1:]
		clauses = append(clauses, c)
	}
	return body, clauses, nil
}

func isCatch(v *LVal) bool {
	return v.Type == LList && len(v.Cells) > 0 && v.Cells[0].IsSymbol(CatchSymbol)
}
