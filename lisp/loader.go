// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
	"strings"
)

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the sequence of LVals that it
	// contains.  The returned LVals should be executed as if inside a do.
	Read(name string, r io.Reader) ([]*LVal, error)
}

// LocationReader is a Reader which can also record the physical location
// (e.g. a file path) of the source it reads.
type LocationReader interface {
	Reader
	// ReadLocation reads the contents of r.  Name is used in diagnostics
	// and loc is recorded as the Path of every source location.
	ReadLocation(name string, loc string, r io.Reader) ([]*LVal, error)
}

// LoadString reads the expressions in source and evaluates them as if inside
// a do.
func (env *LEnv) LoadString(name, source string) *LVal {
	return env.Load(name, strings.NewReader(source))
}

// Load reads LVals from r and evaluates them as if in a do.  The value
// returned by the last evaluated LVal will be retured.  No expression is
// evaluated if r contains a syntax error.  If env.Runtime.Reader has not been
// set then an error will be returned by Load.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	exprs := env.Read(name, r)
	if exprs.Type == LError {
		return exprs
	}
	ret := Nil()
	for _, expr := range exprs.Cells {
		ret = env.Eval(expr)
		if ret.Type == LError {
			return ret
		}
	}
	return ret
}

// LoadLocation is like Load but records loc as the path of the source when
// the runtime's Reader is a LocationReader.
func (env *LEnv) LoadLocation(name string, loc string, r io.Reader) *LVal {
	lr, ok := env.Runtime.Reader.(LocationReader)
	if !ok {
		return env.Load(name, r)
	}
	exprs, err := lr.ReadLocation(name, loc, r)
	if err != nil {
		return Error(err)
	}
	ret := Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type == LError {
			return ret
		}
	}
	return ret
}

// Read uses env.Runtime.Reader to read all the expressions in r.  Read
// returns a list of expressions or an error.
func (env *LEnv) Read(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return env.ErrorConditionf(CondUnsupported, "no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return Error(err)
	}
	return List(exprs)
}
