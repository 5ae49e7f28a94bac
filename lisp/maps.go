// Copyright © 2018 The ELPS authors

package lisp

import "sort"

// MapEntry is a key-value pair stored in a MapData.
type MapEntry struct {
	Key *LVal
	Val *LVal
}

// MapData is the backing storage for maps and sets.  Entries are indexed by
// the HashKey of their key.  Map values are immutable from the perspective of
// programs, so a MapData must not be modified once it backs a value.
// Operations which add or remove entries copy the MapData first.
type MapData struct {
	entries map[string]MapEntry
}

// NewMapData returns an empty MapData with space for n entries.
func NewMapData(n int) *MapData {
	return &MapData{entries: make(map[string]MapEntry, n)}
}

// Len returns the number of entries in m.
func (m *MapData) Len() int {
	return len(m.entries)
}

// Get returns the value associated with k.
func (m *MapData) Get(k *LVal) (*LVal, bool) {
	e, ok := m.entries[k.HashKey()]
	if !ok {
		return nil, false
	}
	return e.Val, true
}

// Has returns true if m contains the key k.
func (m *MapData) Has(k *LVal) bool {
	_, ok := m.entries[k.HashKey()]
	return ok
}

// Put associates v with k, replacing any existing association.
func (m *MapData) Put(k, v *LVal) {
	m.entries[k.HashKey()] = MapEntry{Key: k, Val: v}
}

// Del removes k from m.
func (m *MapData) Del(k *LVal) {
	delete(m.entries, k.HashKey())
}

// Copy returns a shallow copy of m.  Keys and values are shared.
func (m *MapData) Copy() *MapData {
	cp := NewMapData(len(m.entries))
	for hk, e := range m.entries {
		cp.entries[hk] = e
	}
	return cp
}

// Entries returns the entries of m ordered by key.
func (m *MapData) Entries() []MapEntry {
	hks := m.sortedHashKeys()
	entries := make([]MapEntry, len(hks))
	for i, hk := range hks {
		entries[i] = m.entries[hk]
	}
	return entries
}

// Keys returns the keys of m in order.
func (m *MapData) Keys() []*LVal {
	hks := m.sortedHashKeys()
	keys := make([]*LVal, len(hks))
	for i, hk := range hks {
		keys[i] = m.entries[hk].Key
	}
	return keys
}

// Vals returns the values of m ordered by their keys.
func (m *MapData) Vals() []*LVal {
	hks := m.sortedHashKeys()
	vals := make([]*LVal, len(hks))
	for i, hk := range hks {
		vals[i] = m.entries[hk].Val
	}
	return vals
}

// sortedHashKeys orders keys using Compare, falling back to their hash keys
// for keys which compare equal (e.g. 1 and 1.0).
func (m *MapData) sortedHashKeys() []string {
	hks := make([]string, 0, len(m.entries))
	for hk := range m.entries {
		hks = append(hks, hk)
	}
	sort.Slice(hks, func(i, j int) bool {
		c := Compare(m.entries[hks[i]].Key, m.entries[hks[j]].Key)
		if c != 0 {
			return c < 0
		}
		return hks[i] < hks[j]
	})
	return hks
}

// Assoc returns a copy of the map m with k associated to v.
func Assoc(m, k, v *LVal) *LVal {
	data := m.MapData().Copy()
	data.Put(k, v)
	return MapFromData(data)
}

// Dissoc returns a copy of the map m without the key k.
func Dissoc(m, k *LVal) *LVal {
	data := m.MapData().Copy()
	data.Del(k)
	return MapFromData(data)
}

// SetConj returns a copy of set s with v added as a member.
func SetConj(s, v *LVal) *LVal {
	data := s.MapData().Copy()
	data.Put(v, v)
	return SetFromData(data)
}

// SetDisj returns a copy of set s without the member v.
func SetDisj(s, v *LVal) *LVal {
	data := s.MapData().Copy()
	data.Del(v)
	return SetFromData(data)
}
