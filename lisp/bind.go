// Copyright © 2018 The ELPS authors

package lisp

import "fmt"

// VarArgSymbol separates the positional parameters of a function from the
// parameter bound to its remaining arguments.
const VarArgSymbol = "&"

// ParseParams validates the parameter list params (a vector, a list, or nil)
// and returns the positional parameter names and the name of the rest
// parameter, which is empty when the function is not variadic.  A non-nil
// error value is returned if params is malformed.  A misplaced VarArgSymbol
// is a bad-arity error.
func ParseParams(params *LVal) ([]string, string, *LVal) {
	cells, ok := params.Seq()
	if !ok || params.Type == LMap || params.Type == LSet || params.Type == LString {
		return nil, "", ErrorConditionf(CondSemanticError, "parameter list is not a vector: %v", GetType(params))
	}
	names := make([]string, len(cells))
	for i, p := range cells {
		if p.Type != LSymbol {
			return nil, "", ErrorConditionf(CondSemanticError, "parameter is not a symbol: %v", p)
		}
		names[i] = p.Str
	}
	return parseParamNames(names)
}

func parseParamNames(formals []string) ([]string, string, *LVal) {
	for i, name := range formals {
		if isSingletonName(name) {
			return nil, "", ErrorConditionf(CondSemanticError, "invalid parameter name: %v", name)
		}
		if name != VarArgSymbol {
			continue
		}
		if i != len(formals)-2 {
			return nil, "", ErrorConditionf(CondBadArity, "%s must be followed by exactly one parameter", VarArgSymbol)
		}
		rest := formals[i+1]
		if rest == VarArgSymbol {
			return nil, "", ErrorConditionf(CondBadArity, "%s must be followed by exactly one parameter", VarArgSymbol)
		}
		return formals[:i], rest, nil
	}
	return formals, "", nil
}

// Bind returns a child frame of the closure frame of fd with the parameters
// of fd bound to args.  The rest parameter, if any, is bound to a list of the
// arguments following the positional ones.  A bad-arity error is returned if
// the number of arguments does not fit the parameters.
func (fd *LFunData) Bind(args []*LVal) (*LEnv, *LVal) {
	if len(args) < len(fd.Params) || (fd.Rest == "" && len(args) > len(fd.Params)) {
		return nil, ErrorConditionf(CondBadArity, "%s", arityMessage(fd.Name, len(fd.Params), fd.Rest != "", len(args)))
	}
	frame := fd.Env.Child()
	for i, name := range fd.Params {
		frame.Scope[name] = args[i]
	}
	if fd.Rest != "" {
		rest := make([]*LVal, len(args)-len(fd.Params))
		copy(rest, args[len(fd.Params):])
		frame.Scope[fd.Rest] = List(rest)
	}
	return frame, nil
}

func arityMessage(name string, n int, variadic bool, given int) string {
	if name == "" {
		name = "anonymous function"
	}
	quantity := "exactly"
	if variadic {
		quantity = "at least"
	}
	plural := "s"
	if n == 1 {
		plural = ""
	}
	return fmt.Sprintf("%s expects %s %d argument%s but %d given", name, quantity, n, plural, given)
}
