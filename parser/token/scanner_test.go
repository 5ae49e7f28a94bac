// Copyright © 2018 The ELPS authors

package token

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerEOF(t *testing.T) {
	s := NewScannerString("", "xxxxxxxxxx")
	for i := 0; i < 10; i++ {
		err := s.ScanRune()
		require.NoError(t, err)
	}
	s.EmitToken(0)
	for i := 0; i < 3; i++ {
		tok := s.EmitToken(0)
		assert.Equal(t, "", tok.Text)
		err := s.ScanRune()
		assert.Equal(t, io.EOF, err)
		assert.True(t, s.EOF())
	}
}

func TestScannerReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("ab"), &failReader{boom})
	s := NewScanner("", r)
	assert.NoError(t, s.Err())
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	assert.Equal(t, boom, s.ScanRune())
	assert.Equal(t, boom, s.Err())
}

func TestScannerAcceptSeq(t *testing.T) {
	s := NewScannerString("", "xxxxxxxxxx")
	n := s.AcceptSeq(func(c rune) bool { return true })
	assert.Equal(t, 10, n)
	s.Ignore()
	assert.False(t, s.Accept(func(c rune) bool { return true }))
	assert.True(t, s.EOF())
}

func TestScannerAcceptString(t *testing.T) {
	s := NewScannerString("", "~@x")
	_, ok := s.AcceptString("~~")
	assert.False(t, ok)
	assert.Equal(t, "", s.Text())
	n, ok := s.AcceptString("~@")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, "~@", s.Text())
	assert.True(t, s.HasPrefix("x"))
}

func TestScanner(t *testing.T) {
	s := NewScannerString("", strings.Repeat("x", 27))

	var tokens []*Token
	for _, n := range []int{10, 7, 10} {
		for i := 0; i < n; i++ {
			require.NoError(t, s.ScanRune())
		}
		tokens = append(tokens, s.EmitToken(0))
	}
	assert.Equal(t, "xxxxxxxxxx", tokens[0].Text)
	assert.Equal(t, 0, tokens[0].Source.Pos)
	assert.Equal(t, "xxxxxxx", tokens[1].Text)
	assert.Equal(t, 10, tokens[1].Source.Pos)
	assert.Equal(t, "xxxxxxxxxx", tokens[2].Text)
	assert.Equal(t, 17, tokens[2].Source.Pos)
}

func TestScannerLoc(t *testing.T) {
	s := NewScannerString("test", strings.Repeat("123456789\n", 3))

	var tokens []*Token
	for _, n := range []int{10, 10, 5, 5} {
		for i := 0; i < n; i++ {
			require.NoError(t, s.ScanRune())
		}
		tokens = append(tokens, s.EmitToken(0))
	}
	assert.Equal(t, 0, tokens[0].Source.Pos)
	assert.Equal(t, 10, tokens[1].Source.Pos)
	assert.Equal(t, 20, tokens[2].Source.Pos)
	assert.Equal(t, 25, tokens[3].Source.Pos)
	assert.Equal(t, "test:1:1", tokens[0].Source.String())
	assert.Equal(t, "test:2:1", tokens[1].Source.String())
	assert.Equal(t, "test:3:1", tokens[2].Source.String())
	assert.Equal(t, "test:3:6", tokens[3].Source.String())
}

func TestScannerInvalidUTF8(t *testing.T) {
	s := NewScannerString("", "a\xffb")
	require.NoError(t, s.ScanRune())
	_, ok := s.Peek()
	assert.False(t, ok)
	assert.Error(t, s.ScanRune())
}

type failReader struct {
	err error
}

func (r *failReader) Read(b []byte) (int, error) {
	return 0, r.err
}
