// Copyright © 2018 The ELPS authors

package lisp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	atom := Atom(Int(1))
	fun := Fun("f", builtinIdentity)
	tests := []struct {
		a, b  *LVal
		equal bool
	}{
		{Int(1), Int(1), true},
		{Int(1), Float(1), true},
		{Float(0.1), Float(0.1 + 1e-12), true},
		{Float(0.1), Float(0.2), false},
		{Float(math.NaN()), Float(math.NaN()), false},
		{Float(math.Inf(1)), Float(math.Inf(1)), true},
		{Int(1), String("1"), false},
		{String("a"), String("a"), true},
		{String("a"), Symbol("a"), false},
		{Symbol("a"), Symbol("a"), true},
		{Keyword("a"), Keyword("a"), true},
		{Char('a'), Char('a'), true},
		{Nil(), Nil(), true},
		{Nil(), Bool(false), false},
		{Bool(true), Bool(true), true},
		{List([]*LVal{Int(1)}), List([]*LVal{Float(1)}), true},
		{List([]*LVal{Int(1)}), Vector([]*LVal{Int(1)}), false},
		{List(nil), List([]*LVal{Int(1)}), false},
		{Set(Int(1), Int(2)), Set(Int(2), Int(1)), true},
		{Set(Int(1)), Set(Int(1), Int(2)), false},
		{Assoc(Map(), Keyword("a"), Int(1)), Assoc(Map(), Keyword("a"), Float(1)), true},
		{Assoc(Map(), Keyword("a"), Int(1)), Assoc(Map(), Keyword("b"), Int(1)), false},
		{atom, atom, true},
		{atom, Atom(Int(1)), false},
		{fun, fun, true},
		{fun, Fun("f", builtinIdentity), false},
		{ErrorConditionf(CondBadArg, "x"), ErrorConditionf(CondBadArg, "x"), true},
		{ErrorConditionf(CondBadArg, "x"), ErrorConditionf(CondUserError, "x"), false},
	}
	for i, test := range tests {
		assert.Equal(t, test.equal, Equal(test.a, test.b), "test %d: %v %v", i, test.a, test.b)
		assert.Equal(t, test.equal, Equal(test.b, test.a), "test %d (reversed)", i)
	}
}

func TestCompare(t *testing.T) {
	// values in increasing order
	ordered := []*LVal{
		Nil(),
		Bool(false),
		Bool(true),
		Int(-1),
		Float(0.5),
		Int(1),
		Char('a'),
		String("a"),
		String("b"),
		Keyword("a"),
		Symbol("a"),
		List([]*LVal{Int(1)}),
		List([]*LVal{Int(1), Int(2)}),
		Vector(nil),
		Map(),
		Set(),
	}
	for i := range ordered {
		assert.Equal(t, 0, Compare(ordered[i], ordered[i]), "%v", ordered[i])
		for j := i + 1; j < len(ordered); j++ {
			assert.True(t, Compare(ordered[i], ordered[j]) < 0, "%v < %v", ordered[i], ordered[j])
			assert.True(t, Compare(ordered[j], ordered[i]) > 0, "%v > %v", ordered[j], ordered[i])
		}
	}
	assert.Equal(t, 0, Compare(Int(1), Float(1)))
}

func TestHashKey(t *testing.T) {
	assert.Equal(t, Int(1).HashKey(), Int(1).HashKey())
	assert.NotEqual(t, Int(1).HashKey(), Float(1).HashKey())
	assert.NotEqual(t, String("a").HashKey(), Symbol("a").HashKey())
	assert.NotEqual(t, List(nil).HashKey(), Vector(nil).HashKey())
	assert.Equal(t,
		Vector([]*LVal{Keyword("a"), String("b")}).HashKey(),
		Vector([]*LVal{Keyword("a"), String("b")}).HashKey())
	assert.NotEqual(t, Atom(Int(1)).HashKey(), Atom(Int(1)).HashKey())

	m := NewMapData(2)
	m.Put(Int(1), Keyword("int"))
	m.Put(Float(1), Keyword("float"))
	assert.Equal(t, 2, m.Len())
	v, ok := m.Get(Int(1))
	assert.True(t, ok)
	assert.Equal(t, ":int", v.String())
	v, _ = m.Get(Float(1))
	assert.Equal(t, ":float", v.String())
	assert.Equal(t, "{1 :int 1.0 :float}", MapFromData(m).String())
}

func TestCompareMatchesEqual(t *testing.T) {
	vec := func(vs ...*LVal) *LVal { return Vector(vs) }
	pairs := []struct {
		a, b  *LVal
		equal bool
	}{
		{Int(1), Float(1), true},
		{vec(Int(1)), vec(Float(1)), true},
		{Set(Int(1)), Set(Int(1)), true},
		{Set(Int(1)), Set(Float(1)), false},
		{Set(Int(1), Int(2)), Set(Int(2), Float(1)), false},
		{Set(vec(Int(1))), Set(vec(Float(1))), false},
		{Assoc(Map(), Int(1), Keyword("a")), Assoc(Map(), Int(1), Keyword("a")), true},
		{Assoc(Map(), Int(1), Keyword("a")), Assoc(Map(), Float(1), Keyword("a")), false},
		{Assoc(Map(), Keyword("a"), Int(1)), Assoc(Map(), Keyword("a"), Float(1)), true},
	}
	for _, p := range pairs {
		assert.Equal(t, p.equal, Equal(p.a, p.b), "Equal(%v, %v)", p.a, p.b)
		assert.Equal(t, p.equal, Compare(p.a, p.b) == 0, "Compare(%v, %v)", p.a, p.b)
		assert.Equal(t, -Compare(p.a, p.b), Compare(p.b, p.a), "antisymmetry %v %v", p.a, p.b)
	}
}

func TestMapDataCopy(t *testing.T) {
	m := Assoc(Map(), Keyword("a"), Int(1))
	m2 := Assoc(m, Keyword("b"), Int(2))
	assert.Equal(t, "{:a 1}", m.String())
	assert.Equal(t, "{:a 1 :b 2}", m2.String())
	assert.Equal(t, "{:b 2}", Dissoc(m2, Keyword("a")).String())
	assert.Equal(t, "{:a 1 :b 2}", m2.String())

	s := SetConj(Set(), Int(1))
	assert.Equal(t, "#{1}", s.String())
	assert.Equal(t, "#{}", SetDisj(s, Int(1)).String())
	assert.Equal(t, "#{1}", s.String())
}
