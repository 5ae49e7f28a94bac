// Copyright © 2018 The ELPS authors

package lisp

import (
	"sync/atomic"

	"github.com/luthersystems/elk/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LValType values
const (
	// LInvalid (0) is not a valid lisp type.
	LInvalid LType = iota
	// LNil is the type of the singleton nil value.  Nil is falsy.
	LNil
	// LBool values store 0 or 1 in the LVal.Int field.  The two boolean
	// values are singletons.
	LBool
	// LInt values store an int64 in the LVal.Int field.
	LInt
	// LFloat values store a float64 in the LVal.Float field.
	LFloat
	// LString values store a string in the LVal.Str field.
	LString
	// LChar values store a code point in the LVal.Char field.
	LChar
	// LSymbol values store the symbol text in the LVal.Str field.  Symbols
	// are not interned and compare by text.
	LSymbol
	// LKeyword values store their text, without the leading colon, in the
	// LVal.Str field.
	LKeyword
	// LList values store their elements in LVal.Cells.
	LList
	// LVector values store their elements in LVal.Cells.
	LVector
	// LMap values store a *MapData in the LVal.Native field.
	LMap
	// LSet values store a *MapData in the LVal.Native field.  Each member
	// is stored as both the key and the value of an entry.
	LSet
	// LAtom values store an *AtomData in the LVal.Native field.  Atoms are
	// the only mutable values.
	LAtom
	// LFun values store an *LFunData in the LVal.Native field.  The
	// LVal.FunType field distinguishes macros from functions.
	LFun
	// LError values use the following fields:
	//		LVal.Str     the error kind (condition)
	//		LVal.Cells   [0] the message, [1] a thrown payload (user-error)
	//		LVal.Native  a copy of the call stack when the error was created
	LError
	// LCaughtError values hold an error bound by a catch clause.  They have
	// the fields of the LError value they were created from but evaluate
	// like any other value.  Throwing one raises the original error again.
	LCaughtError
	// LTypeMax is not a real type but represents a value numerically greater
	// than all valid LType values.
	LTypeMax
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LNil:     "nil",
	LBool:    "bool",
	LInt:     "int",
	LFloat:   "float",
	LString:  "string",
	LChar:    "char",
	LSymbol:  "symbol",
	LKeyword: "keyword",
	LList:    "list",
	LVector:  "vector",
	LMap:     "map",
	LSet:     "set",
	LAtom:    "atom",
	LFun:     "function",
	LError:   "error",
	// caught errors report the type of the error they hold
	LCaughtError: "error",
}

func (t LType) String() string {
	if t >= LType(len(lvalTypeStrings)) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LFunType denotes special functions.
type LFunType uint8

// LFunType constants.  LFunNone indicates a normal function.
const (
	LFunNone LFunType = iota
	LFunMacro
)

var lfunTypeStrings = []string{
	LFunNone:  "function",
	LFunMacro: "macro",
}

func (ft LFunType) String() string {
	if ft >= LFunType(len(lfunTypeStrings)) {
		return "invalid-function-type"
	}
	return lfunTypeStrings[ft]
}

// LBuiltin is a function implemented in Go.  Arguments are already evaluated
// (for functions) or unevaluated forms (for macros).
type LBuiltin func(env *LEnv, args []*LVal) *LVal

// LFunData holds the implementation of an LFun value.  Native functions set
// Builtin.  Lambdas and macros defined in lisp set Env, Params, Rest and
// Body.
type LFunData struct {
	ID      uint64
	Name    string
	Doc     string
	Builtin LBuiltin
	Env     *LEnv
	Params  []string
	Rest    string
	Body    []*LVal
}

// IsBuiltin returns true if fd is implemented in Go.
func (fd *LFunData) IsBuiltin() bool {
	return fd.Builtin != nil
}

// AtomData is the mutable cell of an LAtom.
type AtomData struct {
	ID    uint64
	Value *LVal
}

// LVal is a lisp value
type LVal struct {
	// Native is generic storage for data which cannot be represented as an
	// LVal (and thus can't be stored in Cells).
	Native interface{}

	// Source is the values originating location in source code.  Programs
	// should not modify the contents of Source as the reference may be shared
	// by multiple LVals.
	Source *token.Location

	// Str used by LString, LSymbol, LKeyword and LError values
	Str string

	// Cells used by lists, vectors and errors as a storage space for lisp
	// objects.
	Cells []*LVal

	// Type is the native type for a value in lisp.
	Type LType

	// Fields used for numeric and character types.
	Int   int64
	Float float64
	Char  rune

	// FunType used to further classify LFun values.
	FunType LFunType
}

// Symbols read as singleton values.
const (
	NilSymbol   = "nil"
	TrueSymbol  = "true"
	FalseSymbol = "false"
)

var valueIDs uint64

func nextValueID() uint64 {
	return atomic.AddUint64(&valueIDs, 1)
}

func nativeSource() *token.Location {
	return &token.Location{
		File: "<native code>",
		Pos:  -1,
	}
}

// Singleton LVals for nil, true, and false.  Code that receives one of these
// values must not modify it.
var (
	singletonNil   = &LVal{Type: LNil}
	singletonTrue  = &LVal{Type: LBool, Int: 1}
	singletonFalse = &LVal{Type: LBool}
)

// Nil returns the nil value.
func Nil() *LVal {
	return singletonNil
}

// Bool returns an LVal with truthiness identical to b.
func Bool(b bool) *LVal {
	if b {
		return singletonTrue
	}
	return singletonFalse
}

// Int returns an LVal representing the number x.
func Int(x int64) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// Float returns an LVal representation of the number x
func Float(x float64) *LVal {
	return &LVal{
		Type:  LFloat,
		Float: x,
	}
}

// String returns an LVal representing the string str.
func String(str string) *LVal {
	return &LVal{
		Type: LString,
		Str:  str,
	}
}

// Char returns an LVal representing the character c.
func Char(c rune) *LVal {
	return &LVal{
		Type: LChar,
		Char: c,
	}
}

// Symbol returns an LVal representing the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Keyword returns an LVal representing the keyword :s.  The leading colon
// must not be included in s.
func Keyword(s string) *LVal {
	return &LVal{
		Type: LKeyword,
		Str:  s,
	}
}

// List returns an LVal representing a list.  Provided cells are used as
// backing storage for the returned list and are not copied.
func List(cells []*LVal) *LVal {
	return &LVal{
		Type:  LList,
		Cells: cells,
	}
}

// Vector returns an LVal representing a vector.  Provided cells are used as
// backing storage for the returned vector and are not copied.
func Vector(cells []*LVal) *LVal {
	return &LVal{
		Type:  LVector,
		Cells: cells,
	}
}

// Map returns an empty map.
func Map() *LVal {
	return MapFromData(NewMapData(0))
}

// MapFromData returns a map backed by data.  The caller must not modify data
// after the map is returned.
func MapFromData(data *MapData) *LVal {
	return &LVal{
		Type:   LMap,
		Native: data,
	}
}

// Set returns a set containing members.
func Set(members ...*LVal) *LVal {
	data := NewMapData(len(members))
	for _, v := range members {
		data.Put(v, v)
	}
	return SetFromData(data)
}

// SetFromData returns a set backed by data.  The caller must not modify data
// after the set is returned.
func SetFromData(data *MapData) *LVal {
	return &LVal{
		Type:   LSet,
		Native: data,
	}
}

// Atom returns a new atom holding v.
func Atom(v *LVal) *LVal {
	return &LVal{
		Type: LAtom,
		Native: &AtomData{
			ID:    nextValueID(),
			Value: v,
		},
	}
}

// Fun returns an LVal representing a native function
func Fun(name string, fn LBuiltin) *LVal {
	return &LVal{
		Source: nativeSource(),
		Type:   LFun,
		Native: &LFunData{
			ID:      nextValueID(),
			Name:    name,
			Builtin: fn,
		},
	}
}

// Macro returns an LVal representing a native macro.  A native macro receives
// its argument forms unevaluated and returns a form to be evaluated in its
// place.
func Macro(name string, fn LBuiltin) *LVal {
	v := Fun(name, fn)
	v.FunType = LFunMacro
	return v
}

// Value conveniently converts v to an LVal.  Types which can be represented
// directly in lisp will be converted to the appropriate LVal.  Value returns
// an error value for any other type.
func Value(v interface{}) *LVal {
	switch v := v.(type) {
	case nil:
		return Nil()
	case *LVal:
		return v
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case rune:
		return Char(v)
	case int:
		return Int(int64(v))
	case int64:
		return Int(v)
	case float64:
		return Float(v)
	case []*LVal:
		return List(v)
	case error:
		return Error(v)
	default:
		return ErrorConditionf(CondBadArg, "cannot convert go value to lisp: %T", v)
	}
}

// IsNil returns true if v is the nil value.
func (v *LVal) IsNil() bool {
	return v.Type == LNil
}

// IsTrue returns true if v is truthy.  Only nil and false are falsy.
func (v *LVal) IsTrue() bool {
	switch v.Type {
	case LNil:
		return false
	case LBool:
		return v.Int != 0
	default:
		return true
	}
}

// IsNumeric returns true if v has a numeric type.
func (v *LVal) IsNumeric() bool {
	return v.Type == LInt || v.Type == LFloat
}

// IsSeq returns true if v is a list or a vector.
func (v *LVal) IsSeq() bool {
	return v.Type == LList || v.Type == LVector
}

// IsMacro returns true if v is a macro.
func (v *LVal) IsMacro() bool {
	return v.Type == LFun && v.FunType == LFunMacro
}

// IsSymbol returns true if v is the symbol name.
func (v *LVal) IsSymbol(name string) bool {
	return v.Type == LSymbol && v.Str == name
}

// Len returns the length of a collection value.  Len returns -1 if v is not a
// collection.
func (v *LVal) Len() int {
	switch v.Type {
	case LNil:
		return 0
	case LString:
		return len([]rune(v.Str))
	case LList, LVector:
		return len(v.Cells)
	case LMap, LSet:
		return v.MapData().Len()
	default:
		return -1
	}
}

// FunData returns the function data of an LFun value.
func (v *LVal) FunData() *LFunData {
	fd, _ := v.Native.(*LFunData)
	return fd
}

// MapData returns the entries of a map or set.
func (v *LVal) MapData() *MapData {
	m, _ := v.Native.(*MapData)
	return m
}

// AtomData returns the cell of an atom.
func (v *LVal) AtomData() *AtomData {
	a, _ := v.Native.(*AtomData)
	return a
}

// FunName returns the name of an LFun value, or the empty string for
// anonymous functions.
func (v *LVal) FunName() string {
	fd := v.FunData()
	if fd == nil {
		return ""
	}
	return fd.Name
}

// Seq returns the elements of v as a slice.  Nil is treated as an empty
// sequence.  Seq returns false if v is not a sequence.  Callers must not
// modify the returned slice.
func (v *LVal) Seq() ([]*LVal, bool) {
	switch v.Type {
	case LNil:
		return nil, true
	case LList, LVector:
		return v.Cells, true
	case LMap:
		entries := v.MapData().Entries()
		cells := make([]*LVal, len(entries))
		for i, e := range entries {
			cells[i] = Vector([]*LVal{e.Key, e.Val})
		}
		return cells, true
	case LSet:
		return v.MapData().Keys(), true
	case LString:
		runes := []rune(v.Str)
		cells := make([]*LVal, len(runes))
		for i, c := range runes {
			cells[i] = Char(c)
		}
		return cells, true
	default:
		return nil, false
	}
}

// WithSource returns v after setting its source location.  WithSource does
// not modify singleton values.
func (v *LVal) WithSource(loc *token.Location) *LVal {
	if v == singletonNil || v == singletonTrue || v == singletonFalse {
		return v
	}
	v.Source = loc
	return v
}

// GetType returns a keyword denoting v's type.
func GetType(v *LVal) *LVal {
	if v.Type == LFun && v.FunType == LFunMacro {
		return Keyword(v.FunType.String())
	}
	return Keyword(v.Type.String())
}
