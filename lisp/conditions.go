// Copyright © 2024 The ELPS authors

package lisp

// ErrorKind classifies an error value.  The kind of an error is stored in the
// LVal.Str field of LError values and can be matched by catch clauses using
// a keyword with the same name.
type ErrorKind string

// Error kinds.  These are stable API for programmatic error classification.
const (
	CondSyntaxError         ErrorKind = "syntax-error"
	CondSemanticError       ErrorKind = "semantic-error"
	CondNoSuchVar           ErrorKind = "no-such-var"
	CondBadArity            ErrorKind = "bad-arity"
	CondBadArg              ErrorKind = "bad-arg"
	CondDivByZero           ErrorKind = "div-by-zero"
	CondIndexOOB            ErrorKind = "index-oob"
	CondUnsupported         ErrorKind = "unsupported"
	CondUserError           ErrorKind = "user-error"
	CondStackOverflow       ErrorKind = "stack-overflow"
	CondStepLimit           ErrorKind = "step-limit"
	CondMacroExpansionLimit ErrorKind = "macro-expansion-limit"
	CondContextCancelled    ErrorKind = "context-cancelled"
)

// ErrorKinds lists every kind of error raised by the interpreter.
var ErrorKinds = []ErrorKind{
	CondSyntaxError,
	CondSemanticError,
	CondNoSuchVar,
	CondBadArity,
	CondBadArg,
	CondDivByZero,
	CondIndexOOB,
	CondUnsupported,
	CondUserError,
	CondStackOverflow,
	CondStepLimit,
	CondMacroExpansionLimit,
	CondContextCancelled,
}

func (k ErrorKind) String() string {
	return string(k)
}
