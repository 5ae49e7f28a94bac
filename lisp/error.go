// Copyright © 2018 The ELPS authors

package lisp

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/luthersystems/elk/parser/token"
)

// ErrorVal implements the error interface so that errors can be first class lisp
// objects.  The error kind is stored in the Str field while the message and
// any thrown payload are stored in the Cells slice.
type ErrorVal LVal

// Error implements the error interface.  The error kind is printed preceding
// the error message, and the source location precedes both when known.
func (e *ErrorVal) Error() string {
	if hasLocation(e.Source) {
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Str, e.ErrorMessage())
	}
	return fmt.Sprintf("%s: %s", e.Str, e.ErrorMessage())
}

func hasLocation(loc *token.Location) bool {
	return loc != nil && loc.Pos >= 0
}

// Kind returns the error kind.
func (e *ErrorVal) Kind() ErrorKind {
	return ErrorKind(e.Str)
}

// ErrorMessage returns the underlying message in the error.
func (e *ErrorVal) ErrorMessage() string {
	if len(e.Cells) == 0 {
		return ""
	}
	msg := e.Cells[0]
	if msg.Type == LString {
		return msg.Str
	}
	return msg.String()
}

// Payload returns the value thrown by the program, or nil if the error was
// not created by throw.
func (e *ErrorVal) Payload() *LVal {
	if len(e.Cells) < 2 {
		return nil
	}
	return e.Cells[1]
}

// Incomplete returns true for syntax errors caused by input ending inside of
// an expression.  A REPL may read more input and try again.
func (e *ErrorVal) Incomplete() bool {
	return e.Str == string(CondSyntaxError) && e.Int != 0
}

// WriteTrace writes the error and a stack trace to w
func (e *ErrorVal) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var n int
	var err error
	wrote := func(_n int, _err error) bool {
		n += _n
		err = _err
		return err == nil
	}
	if !wrote(bw.WriteString(e.Error())) {
		return n, err
	}
	if !wrote(bw.WriteString("\n")) {
		return n, err
	}
	stack := (*LVal)(e).CallStack()
	if stack != nil && len(stack.Frames) > 0 {
		if !wrote(stack.DebugPrint(bw)) {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Caught returns a value holding the error lerr which can be bound and passed
// to functions without being raised.
func Caught(lerr *LVal) *LVal {
	if lerr.Type != LError {
		return lerr
	}
	held := *lerr
	held.Type = LCaughtError
	return &held
}

// CallStack returns the call stack captured by an error value.
func (v *LVal) CallStack() *CallStack {
	if v.Type != LError && v.Type != LCaughtError {
		return nil
	}
	stack, _ := v.Native.(*CallStack)
	return stack
}

// GoError returns an error that represents v.  If v is not LError then nil is
// returned.
func GoError(v *LVal) error {
	if v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}

// Error returns an LError representing err.  Errors produced by the
// interpreter (*ErrorVal) are returned unchanged.  Any other error is given
// the kind user-error.
func Error(err error) *LVal {
	var lerr *ErrorVal
	if errors.As(err, &lerr) {
		return (*LVal)(lerr)
	}
	return &LVal{
		Type:  LError,
		Str:   string(CondUserError),
		Cells: []*LVal{String(err.Error())},
	}
}

// ErrorConditionf returns an LError value with the given kind and a formatted
// error message rendered using fmt.Sprintf.
func ErrorConditionf(kind ErrorKind, format string, v ...interface{}) *LVal {
	return &LVal{
		Type:  LError,
		Str:   string(kind),
		Cells: []*LVal{String(fmt.Sprintf(format, v...))},
	}
}

// SyntaxError returns a syntax-error value for a problem found at loc.  When
// incomplete is true the error indicates that input ended prematurely.
func SyntaxError(loc *token.Location, incomplete bool, msg string) *LVal {
	lerr := ErrorConditionf(CondSyntaxError, "%s", msg)
	lerr.Source = loc
	if incomplete {
		lerr.Int = 1
	}
	return lerr
}

// Throw returns a user-error carrying payload.  Throwing an error value
// returns the error value, preserving its kind.  Throwing a caught error
// raises the error it holds.
func Throw(payload *LVal) *LVal {
	switch payload.Type {
	case LError:
		return payload
	case LCaughtError:
		lerr := *payload
		lerr.Type = LError
		return &lerr
	}
	return &LVal{
		Type:  LError,
		Str:   string(CondUserError),
		Cells: []*LVal{String(payload.Print(false)), payload},
	}
}
