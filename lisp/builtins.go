// Copyright © 2018 The ELPS authors

package lisp

import (
	"strings"
)

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Formals() []string
	Docstring() string
	Eval(env *LEnv, args []*LVal) *LVal
}

type langBuiltin struct {
	name    string
	formals []string
	fun     LBuiltin
	docs    string
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() []string {
	return fun.formals
}

func (fun *langBuiltin) Docstring() string {
	return fun.docs
}

func (fun *langBuiltin) Eval(env *LEnv, args []*LVal) *LVal {
	return fun.fun(env, args)
}

// Formals returns a formal argument list.  VarArgSymbol precedes the name of
// a parameter bound to any remaining arguments.
func Formals(argSymbols ...string) []string {
	return argSymbols
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"+", Formals(VarArgSymbol, "x"), builtinAdd,
		"Returns the sum of its arguments.  The result is an int if every argument is an int."},
	{"-", Formals("x", VarArgSymbol, "more"), builtinSub,
		"Subtracts each of more from x.  With a single argument returns the negation of x."},
	{"*", Formals(VarArgSymbol, "x"), builtinMul,
		"Returns the product of its arguments."},
	{"/", Formals("x", VarArgSymbol, "more"), builtinDiv,
		"Divides x by each of more.  Division of ints truncates toward zero."},
	{"mod", Formals("x", "y"), builtinMod,
		"Returns x modulo y.  The result has the sign of y."},
	{"=", Formals("x", VarArgSymbol, "more"), builtinEqual,
		"Returns true if all arguments are equal.  Numbers compare by value across int and float."},
	{"not=", Formals("x", VarArgSymbol, "more"), builtinNotEqual,
		"Returns true if some arguments are not equal."},
	{"<", Formals("x", VarArgSymbol, "more"), builtinLT,
		"Returns true if numeric arguments are strictly increasing."},
	{"<=", Formals("x", VarArgSymbol, "more"), builtinLEQ,
		"Returns true if numeric arguments are nondecreasing."},
	{">", Formals("x", VarArgSymbol, "more"), builtinGT,
		"Returns true if numeric arguments are strictly decreasing."},
	{">=", Formals("x", VarArgSymbol, "more"), builtinGEQ,
		"Returns true if numeric arguments are nonincreasing."},
	{"compare", Formals("a", "b"), builtinCompare,
		"Returns a negative int, zero, or a positive int as a sorts before, with, or after b."},
	{"nil?", Formals("x"), typePredicate(LNil), "Returns true if x is nil."},
	{"true?", Formals("x"), builtinIsTrue, "Returns true if x is the value true."},
	{"false?", Formals("x"), builtinIsFalse, "Returns true if x is the value false."},
	{"number?", Formals("x"), builtinIsNumber, "Returns true if x is an int or a float."},
	{"int?", Formals("x"), typePredicate(LInt), "Returns true if x is an int."},
	{"float?", Formals("x"), typePredicate(LFloat), "Returns true if x is a float."},
	{"string?", Formals("x"), typePredicate(LString), "Returns true if x is a string."},
	{"symbol?", Formals("x"), typePredicate(LSymbol), "Returns true if x is a symbol."},
	{"keyword?", Formals("x"), typePredicate(LKeyword), "Returns true if x is a keyword."},
	{"char?", Formals("x"), typePredicate(LChar), "Returns true if x is a char."},
	{"list?", Formals("x"), typePredicate(LList), "Returns true if x is a list."},
	{"vector?", Formals("x"), typePredicate(LVector), "Returns true if x is a vector."},
	{"map?", Formals("x"), typePredicate(LMap), "Returns true if x is a map."},
	{"set?", Formals("x"), typePredicate(LSet), "Returns true if x is a set."},
	{"atom?", Formals("x"), typePredicate(LAtom), "Returns true if x is an atom."},
	{"error?", Formals("x"), typePredicate(LCaughtError), "Returns true if x is an error bound by catch."},
	{"seq?", Formals("x"), builtinIsSeq, "Returns true if x is a list or a vector."},
	{"fn?", Formals("x"), builtinIsFn, "Returns true if x is a function which is not a macro."},
	{"macro?", Formals("x"), builtinIsMacro, "Returns true if x is a macro."},
	{"empty?", Formals("coll"), builtinIsEmpty,
		"Returns true if coll has no elements.  Coll may be nil, a string or a collection."},
	{"list", Formals(VarArgSymbol, "args"), builtinList, "Returns a list containing args."},
	{"vector", Formals(VarArgSymbol, "args"), builtinVector, "Returns a vector containing args."},
	{"vec", Formals("coll"), builtinVec, "Returns a vector containing the elements of coll."},
	{"cons", Formals("x", "seq"), builtinCons,
		"Returns a new list with x followed by the elements of seq."},
	{"concat", Formals(VarArgSymbol, "seqs"), builtinConcat,
		"Returns a list containing the elements of each seq in order."},
	{"first", Formals("seq"), builtinFirst,
		"Returns the first element of seq, or nil if seq is empty."},
	{"rest", Formals("seq"), builtinRest,
		"Returns a list of the elements of seq after the first."},
	{"nth", Formals("seq", "n"), builtinNth,
		"Returns element n of seq.  An index outside of seq is an error."},
	{"count", Formals("coll"), builtinCount, "Returns the number of elements in coll."},
	{"conj", Formals("coll", VarArgSymbol, "xs"), builtinConj,
		"Adds xs to coll where it is most natural.  Lists grow at the front and vectors at the back."},
	{"seq", Formals("coll"), builtinSeq,
		"Returns the elements of coll as a list, or nil if coll is empty."},
	{"apply", Formals("f", VarArgSymbol, "args"), builtinApply,
		"Calls f with args.  The last argument is a sequence of trailing arguments."},
	{"map", Formals("f", "coll", VarArgSymbol, "colls"), builtinMap,
		"Returns a list of the results of calling f on successive elements of the given collections."},
	{"filter", Formals("pred", "coll"), builtinFilter,
		"Returns a list of the elements of coll for which pred is truthy."},
	{"reduce", Formals("f", "init", VarArgSymbol, "coll"), builtinReduce,
		"Folds f over coll from the left starting with init.  (reduce f coll) uses the first element of coll."},
	{"range", Formals("n", VarArgSymbol, "args"), builtinRange,
		"(range end), (range start end) or (range start end step) returns a list of ints."},
	{"reverse", Formals("coll"), builtinReverse, "Returns a list of the elements of coll in reverse order."},
	{"hash-map", Formals(VarArgSymbol, "kvs"), builtinHashMap, "Returns a map containing the given keys and values."},
	{"hash-set", Formals(VarArgSymbol, "xs"), builtinHashSet, "Returns a set containing xs."},
	{"get", Formals("coll", "key", VarArgSymbol, "default"), builtinGet,
		"Returns the value of key in a map or set, or element key of a vector."},
	{"assoc", Formals("coll", "key", "val", VarArgSymbol, "kvs"), builtinAssoc,
		"Returns a copy of coll with each key bound to the following val."},
	{"dissoc", Formals("m", VarArgSymbol, "keys"), builtinDissoc,
		"Returns a copy of m without keys."},
	{"keys", Formals("m"), builtinKeys, "Returns a list of the keys of m in sorted order."},
	{"vals", Formals("m"), builtinVals, "Returns a list of the values of m ordered by key."},
	{"contains?", Formals("coll", "key"), builtinContains,
		"Returns true if key is present in a map or set, or is a valid index of a vector."},
	{"disj", Formals("s", VarArgSymbol, "xs"), builtinDisj, "Returns a copy of set s without xs."},
	{"atom", Formals("x"), builtinAtom, "Returns a new atom holding x."},
	{"deref", Formals("a"), builtinDeref, "Returns the value held by atom a."},
	{"reset!", Formals("a", "x"), builtinReset, "Sets the value of atom a to x and returns x."},
	{"swap!", Formals("a", "f", VarArgSymbol, "args"), builtinSwap,
		"Sets the value of atom a to (f old args...) and returns the new value."},
	{"str", Formals(VarArgSymbol, "args"), builtinStr,
		"Concatenates the unreadable printed forms of args."},
	{"pr-str", Formals(VarArgSymbol, "args"), builtinPrStr,
		"Returns the readable printed forms of args separated by spaces."},
	{"prn", Formals(VarArgSymbol, "args"), builtinPrn,
		"Writes the readable printed forms of args and a newline to standard output."},
	{"println", Formals(VarArgSymbol, "args"), builtinPrintln,
		"Writes the unreadable printed forms of args and a newline to standard output."},
	{"print-string", Formals("x"), builtinPrintString,
		"Returns the printed form of x with strings and chars left unquoted."},
	{"symbol", Formals("name"), builtinSymbol, "Returns the symbol with the given name."},
	{"keyword", Formals("name"), builtinKeyword, "Returns the keyword with the given name."},
	{"name", Formals("x"), builtinName, "Returns the name of a symbol or keyword as a string."},
	{"read-string", Formals("source"), builtinReadString,
		"Reads the first form of source without evaluating it.  Returns nil if source contains no forms."},
	{"throw", Formals("x"), builtinThrow,
		"Signals a user-error carrying x.  Throwing an error value signals that error unchanged."},
	{"error-kind", Formals("err"), builtinErrorKind, "Returns the kind of err as a keyword."},
	{"error-message", Formals("err"), builtinErrorMessage, "Returns the message of err."},
	{"not", Formals("x"), builtinNot, "Returns true if x is falsy."},
	{"identity", Formals("x"), builtinIdentity, "Returns x."},
	{"gensym", Formals(VarArgSymbol, "prefix"), builtinGensym,
		"Returns a symbol that has not been returned before."},
	{"eval", Formals("form"), builtinEval, "Evaluates form in the root environment."},
	{"load-string", Formals("source", VarArgSymbol, "name"), builtinLoadString,
		"Reads and evaluates each form of source in the root environment."},
	{"type", Formals("x"), builtinType, "Returns a keyword naming the type of x."},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, formals []string, fn LBuiltin, docs string) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, formals, fn, docs})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins)+len(userBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	offset := len(langBuiltins)
	for i := range userBuiltins {
		ops[offset+i] = userBuiltins[i]
	}
	return ops
}

func typePredicate(t LType) LBuiltin {
	return func(env *LEnv, args []*LVal) *LVal {
		return Bool(args[0].Type == t)
	}
}

func builtinIsTrue(env *LEnv, args []*LVal) *LVal {
	return Bool(args[0] == Bool(true))
}

func builtinIsFalse(env *LEnv, args []*LVal) *LVal {
	return Bool(args[0] == Bool(false))
}

func builtinIsNumber(env *LEnv, args []*LVal) *LVal {
	return Bool(args[0].IsNumeric())
}

func builtinIsSeq(env *LEnv, args []*LVal) *LVal {
	return Bool(args[0].IsSeq())
}

func builtinIsFn(env *LEnv, args []*LVal) *LVal {
	return Bool(args[0].Type == LFun && !args[0].IsMacro())
}

func builtinIsMacro(env *LEnv, args []*LVal) *LVal {
	return Bool(args[0].IsMacro())
}

func builtinIsEmpty(env *LEnv, args []*LVal) *LVal {
	n := args[0].Len()
	if n < 0 {
		return env.ErrorConditionf(CondBadArg, "argument is not a collection: %v", GetType(args[0]))
	}
	return Bool(n == 0)
}

func builtinAtom(env *LEnv, args []*LVal) *LVal {
	return Atom(args[0])
}

func atomArg(env *LEnv, v *LVal) (*AtomData, *LVal) {
	if v.Type != LAtom {
		return nil, env.ErrorConditionf(CondBadArg, "argument is not an atom: %v", GetType(v))
	}
	return v.AtomData(), nil
}

func builtinDeref(env *LEnv, args []*LVal) *LVal {
	a, lerr := atomArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	return a.Value
}

func builtinReset(env *LEnv, args []*LVal) *LVal {
	a, lerr := atomArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	a.Value = args[1]
	return a.Value
}

func builtinSwap(env *LEnv, args []*LVal) *LVal {
	a, lerr := atomArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	fargs := make([]*LVal, 0, len(args)-1)
	fargs = append(fargs, a.Value)
	fargs = append(fargs, args[2:]...)
	v := env.FunCall(args[1], fargs)
	if v.Type == LError {
		return v
	}
	a.Value = v
	return v
}

func builtinThrow(env *LEnv, args []*LVal) *LVal {
	lerr := Throw(args[0])
	env.ErrorAssociate(lerr)
	return lerr
}

func errorArg(env *LEnv, v *LVal) (*ErrorVal, *LVal) {
	if v.Type != LError && v.Type != LCaughtError {
		return nil, env.ErrorConditionf(CondBadArg, "argument is not an error: %v", GetType(v))
	}
	return (*ErrorVal)(v), nil
}

func builtinErrorKind(env *LEnv, args []*LVal) *LVal {
	e, lerr := errorArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	return Keyword(string(e.Kind()))
}

func builtinErrorMessage(env *LEnv, args []*LVal) *LVal {
	e, lerr := errorArg(env, args[0])
	if lerr != nil {
		return lerr
	}
	return String(e.ErrorMessage())
}

func builtinNot(env *LEnv, args []*LVal) *LVal {
	return Bool(!args[0].IsTrue())
}

func builtinIdentity(env *LEnv, args []*LVal) *LVal {
	return args[0]
}

func builtinGensym(env *LEnv, args []*LVal) *LVal {
	if len(args) > 1 {
		return env.ErrorConditionf(CondBadArity, "%s", arityMessage("gensym", 1, false, len(args)))
	}
	prefix := ""
	if len(args) == 1 {
		p := args[0]
		switch p.Type {
		case LString, LSymbol, LKeyword:
			prefix = p.Str
		default:
			return env.ErrorConditionf(CondBadArg, "prefix is not a string: %v", GetType(p))
		}
	}
	return env.GenSym(prefix)
}

// builtinEval evaluates its argument in the root environment so the form
// cannot observe the caller's local bindings.
func builtinEval(env *LEnv, args []*LVal) *LVal {
	return env.Root().Eval(args[0])
}

func builtinLoadString(env *LEnv, args []*LVal) *LVal {
	source := args[0]
	if source.Type != LString {
		return env.ErrorConditionf(CondBadArg, "source is not a string: %v", GetType(source))
	}
	name := "load-string"
	if len(args) > 1 {
		if args[1].Type != LString {
			return env.ErrorConditionf(CondBadArg, "name is not a string: %v", GetType(args[1]))
		}
		name = args[1].Str
	}
	return env.Root().LoadString(name, source.Str)
}

func builtinType(env *LEnv, args []*LVal) *LVal {
	return GetType(args[0])
}

func builtinSymbol(env *LEnv, args []*LVal) *LVal {
	name := args[0]
	switch name.Type {
	case LString, LSymbol:
		if name.Str == "" {
			return env.ErrorConditionf(CondBadArg, "symbol name is empty")
		}
		return Symbol(name.Str)
	}
	return env.ErrorConditionf(CondBadArg, "name is not a string: %v", GetType(name))
}

func builtinKeyword(env *LEnv, args []*LVal) *LVal {
	name := args[0]
	switch name.Type {
	case LKeyword:
		return name
	case LString, LSymbol:
		s := strings.TrimPrefix(name.Str, ":")
		if s == "" {
			return env.ErrorConditionf(CondBadArg, "keyword name is empty")
		}
		return Keyword(s)
	}
	return env.ErrorConditionf(CondBadArg, "name is not a string: %v", GetType(name))
}

func builtinName(env *LEnv, args []*LVal) *LVal {
	x := args[0]
	switch x.Type {
	case LString, LSymbol, LKeyword:
		return String(x.Str)
	}
	return env.ErrorConditionf(CondBadArg, "argument has no name: %v", GetType(x))
}
