// Copyright © 2018 The ELPS authors

package token

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	used := make(map[string]bool)
	for tok := Type(0); tok < numTokenTypes; tok++ {
		str := tok.String()
		if str == "" {
			t.Errorf("token type %x has empty string value", tok)
			continue
		}
		if used[str] {
			t.Errorf("token type string used twice: %v", tok)
		}
		used[str] = true
	}
	assert.Equal(t, "invalid", numTokenTypes.String())
}

func TestTypeIsMarker(t *testing.T) {
	for _, typ := range []Type{QUOTE, QUASIQUOTE, UNQUOTE, SPLICE_UNQUOTE, DEREF} {
		assert.True(t, typ.IsMarker(), typ.String())
	}
	for _, typ := range []Type{SYMBOL, COMMENT, PAREN_L, SET_L, EOF} {
		assert.False(t, typ.IsMarker(), typ.String())
	}
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "f", (&Location{File: "f", Pos: -1}).String())
	assert.Equal(t, "f[12]", (&Location{File: "f", Pos: 12}).String())
	assert.Equal(t, "f:3", (&Location{File: "f", Pos: 12, Line: 3}).String())
	assert.Equal(t, "f:3:4", (&Location{File: "f", Pos: 12, Line: 3, Col: 4}).String())

	inner := errors.New("bad")
	err := &LocationError{Err: inner, Source: &Location{File: "f", Line: 1, Col: 2}}
	assert.Equal(t, "f:1:2: bad", err.Error())
	assert.True(t, errors.Is(err, inner))
}
