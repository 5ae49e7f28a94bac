// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"strings"
)

func joinPrinted(args []*LVal, readable bool, sep string) string {
	var b strings.Builder
	for i, v := range args {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(v.Print(readable))
	}
	return b.String()
}

func builtinStr(env *LEnv, args []*LVal) *LVal {
	return String(joinPrinted(args, false, ""))
}

func builtinPrStr(env *LEnv, args []*LVal) *LVal {
	return String(joinPrinted(args, true, " "))
}

func builtinPrintString(env *LEnv, args []*LVal) *LVal {
	return String(args[0].Print(false))
}

func (env *LEnv) writeLine(line string) *LVal {
	w := env.Runtime.Stdout
	if w == nil {
		return Nil()
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return env.ErrorConditionf(CondUserError, "write failed: %v", err)
	}
	return Nil()
}

func builtinPrn(env *LEnv, args []*LVal) *LVal {
	return env.writeLine(joinPrinted(args, true, " "))
}

func builtinPrintln(env *LEnv, args []*LVal) *LVal {
	return env.writeLine(joinPrinted(args, false, " "))
}

func builtinReadString(env *LEnv, args []*LVal) *LVal {
	source := args[0]
	if source.Type != LString {
		return env.ErrorConditionf(CondBadArg, "argument is not a string: %v", GetType(source))
	}
	exprs := env.Read("read-string", strings.NewReader(source.Str))
	if exprs.Type == LError {
		return exprs
	}
	if len(exprs.Cells) == 0 {
		return Nil()
	}
	return exprs.Cells[0]
}
