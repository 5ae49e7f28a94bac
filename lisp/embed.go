// Copyright © 2018 The ELPS authors

package lisp

import (
	_ "embed" // prelude source
	"reflect"
)

//go:embed prelude.lisp
var prelude string

// GoValue converts v to its natural representation in Go.  Lists and
// vectors are turned into slices.  Symbols and keywords are converted to
// strings.  The value Nil() is converted to nil.  Functions and atoms are
// returned as is.
func GoValue(v *LVal) interface{} {
	switch v.Type {
	case LNil:
		return nil
	case LBool:
		return v.IsTrue()
	case LError:
		return GoError(v)
	case LCaughtError:
		return GoError(Throw(v))
	case LSymbol, LKeyword, LString:
		return v.Str
	case LChar:
		return v.Char
	case LInt:
		return v.Int
	case LFloat:
		return v.Float
	case LList, LVector, LSet:
		s, _ := GoSlice(v)
		return s
	case LMap:
		m, _ := GoMap(v)
		return m
	}
	return v
}

// GoString returns the string that v represents and the value true.  If v does
// not represent a string GoString returns a false second argument
func GoString(v *LVal) (string, bool) {
	if v.Type != LString {
		return "", false
	}
	return v.Str, true
}

// SymbolName returns the name of the symbol that v represents and the value
// true.  If v does not represent a symbol SymbolName returns a false second
// argument
func SymbolName(v *LVal) (string, bool) {
	if v.Type != LSymbol {
		return "", false
	}
	return v.Str, true
}

// GoInt64 converts the numeric value that v represents to an int64 and
// returns it with the value true.  Floats are truncated.
func GoInt64(v *LVal) (int64, bool) {
	switch v.Type {
	case LInt:
		return v.Int, true
	case LFloat:
		return int64(v.Float), true
	}
	return 0, false
}

// GoFloat64 converts the numeric value that v represents to a float64 and
// returns it with the value true.  If v does not represent a number GoFloat64
// returns a false second argument
func GoFloat64(v *LVal) (float64, bool) {
	if !v.IsNumeric() {
		return 0, false
	}
	return toFloat(v), true
}

// GoSlice converts the elements of a list, vector or set to Go values.
func GoSlice(v *LVal) ([]interface{}, bool) {
	var cells []*LVal
	switch v.Type {
	case LList, LVector:
		cells = v.Cells
	case LSet:
		cells = v.MapData().Keys()
	default:
		return nil, false
	}
	vs := make([]interface{}, len(cells))
	for i := range vs {
		vs[i] = GoValue(cells[i])
	}
	return vs, true
}

// GoMap converts an LMap to its Go equivalent and returns it with a true
// second argument.  If v does not represent a map GoMap returns a false second
// argument.  Maps with keys that convert to incomparable Go values (e.g.
// vectors) cannot be represented, in which case GoMap returns (nil, true).
func GoMap(v *LVal) (map[interface{}]interface{}, bool) {
	if v.Type != LMap {
		return nil, false
	}
	entries := v.MapData().Entries()
	m := make(gomap, len(entries))
	for _, e := range entries {
		if !checkGoMapInsert(m, e.Key, e.Val) {
			return nil, true
		}
	}
	return m, true
}

func checkGoMapInsert(m gomap, lk, lv *LVal) (ok bool) {
	// map keys must be comparable which is not known without reflection on
	// the converted key's type.
	k := GoValue(lk)
	if k == nil || reflect.TypeOf(k).Comparable() {
		m[k] = GoValue(lv)
		return true
	}
	return false
}

type gomap = map[interface{}]interface{}
