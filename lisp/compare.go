// Copyright © 2018 The ELPS authors

package lisp

import (
	"math"
	"strings"
)

// FloatEpsilon is the relative tolerance used when comparing numbers where
// at least one operand is a float.
const FloatEpsilon = 1e-9

// typeRank orders values of different types for Compare.  Integers and
// floats share a rank.
var typeRank = [LTypeMax]int{
	LNil:         1,
	LBool:        2,
	LInt:         3,
	LFloat:       3,
	LChar:        4,
	LString:      5,
	LKeyword:     6,
	LSymbol:      7,
	LList:        8,
	LVector:      9,
	LMap:         10,
	LSet:         11,
	LAtom:        12,
	LFun:         13,
	LError:       14,
	LCaughtError: 14,
}

func rank(v *LVal) int {
	if v.Type >= LTypeMax {
		return 0
	}
	return typeRank[v.Type]
}

// Equal returns true if a and b are structurally equal.  Numbers compare by
// value regardless of their type, using fuzzy equality when either is a
// float.  Atoms and functions are equal only to themselves.
func Equal(a, b *LVal) bool {
	if a == b {
		return true
	}
	if a.IsNumeric() && b.IsNumeric() {
		return numEqual(a, b)
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LNil:
		return true
	case LBool:
		return a.Int == b.Int
	case LString, LSymbol, LKeyword:
		return a.Str == b.Str
	case LChar:
		return a.Char == b.Char
	case LList, LVector:
		if len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !Equal(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		return true
	case LMap:
		ma, mb := a.MapData(), b.MapData()
		if ma.Len() != mb.Len() {
			return false
		}
		for _, e := range ma.entries {
			v, ok := mb.Get(e.Key)
			if !ok || !Equal(e.Val, v) {
				return false
			}
		}
		return true
	case LSet:
		ma, mb := a.MapData(), b.MapData()
		if ma.Len() != mb.Len() {
			return false
		}
		for _, e := range ma.entries {
			if !mb.Has(e.Key) {
				return false
			}
		}
		return true
	case LAtom:
		return a.AtomData() == b.AtomData()
	case LFun:
		return a.FunData().ID == b.FunData().ID
	case LError, LCaughtError:
		return a.Str == b.Str && (*ErrorVal)(a).ErrorMessage() == (*ErrorVal)(b).ErrorMessage()
	}
	return false
}

func numEqual(a, b *LVal) bool {
	if a.Type == LInt && b.Type == LInt {
		return a.Int == b.Int
	}
	return FloatEqual(toFloat(a), toFloat(b))
}

// FloatEqual returns true if x and y are within a relative tolerance of
// FloatEpsilon.
func FloatEqual(x, y float64) bool {
	if x == y {
		return true
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return false
	}
	scale := math.Max(math.Abs(x), math.Abs(y))
	return math.Abs(x-y) <= FloatEpsilon*scale
}

func toFloat(v *LVal) float64 {
	if v.Type == LInt {
		return float64(v.Int)
	}
	return v.Float
}

// Compare returns a negative number if a orders before b, a positive number
// if b orders before a, and zero if a and b are Equal.  Values of different
// types order by type: nil, booleans, numbers, characters, strings, keywords,
// symbols, lists, vectors, maps, sets, atoms, functions, errors.
func Compare(a, b *LVal) int {
	if a == b {
		return 0
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmpInt(int64(ra), int64(rb))
	}
	switch a.Type {
	case LNil:
		return 0
	case LBool:
		return cmpInt(a.Int, b.Int)
	case LInt, LFloat:
		if numEqual(a, b) {
			return 0
		}
		if a.Type == LInt && b.Type == LInt {
			return cmpInt(a.Int, b.Int)
		}
		x, y := toFloat(a), toFloat(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		// NaN
		return cmpInt(int64(a.Type), int64(b.Type))
	case LChar:
		return cmpInt(int64(a.Char), int64(b.Char))
	case LString, LSymbol, LKeyword:
		return strings.Compare(a.Str, b.Str)
	case LList, LVector:
		return compareCells(a.Cells, b.Cells)
	case LMap:
		ea, eb := a.MapData().Entries(), b.MapData().Entries()
		for i := 0; i < len(ea) && i < len(eb); i++ {
			if c := Compare(ea[i].Key, eb[i].Key); c != 0 {
				return c
			}
			if c := Compare(ea[i].Val, eb[i].Val); c != 0 {
				return c
			}
		}
		if c := cmpInt(int64(len(ea)), int64(len(eb))); c != 0 {
			return c
		}
		return compareHashKeys(a.MapData(), b.MapData())
	case LSet:
		if c := compareCells(a.MapData().Keys(), b.MapData().Keys()); c != 0 {
			return c
		}
		return compareHashKeys(a.MapData(), b.MapData())
	case LAtom:
		return cmpUint(a.AtomData().ID, b.AtomData().ID)
	case LFun:
		return cmpUint(a.FunData().ID, b.FunData().ID)
	case LError, LCaughtError:
		if c := strings.Compare(a.Str, b.Str); c != 0 {
			return c
		}
		return strings.Compare((*ErrorVal)(a).ErrorMessage(), (*ErrorVal)(b).ErrorMessage())
	}
	return 0
}

func compareCells(a, b []*LVal) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(int64(len(a)), int64(len(b)))
}

// compareHashKeys breaks ties between maps or sets whose keys compare
// equal but which hold different keys, such as #{1} and #{1.0}.
func compareHashKeys(a, b *MapData) int {
	ha, hb := a.sortedHashKeys(), b.sortedHashKeys()
	for i := 0; i < len(ha) && i < len(hb); i++ {
		if c := strings.Compare(ha[i], hb[i]); c != 0 {
			return c
		}
	}
	return cmpInt(int64(len(ha)), int64(len(hb)))
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
