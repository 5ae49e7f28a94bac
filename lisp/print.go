// Copyright © 2018 The ELPS authors

package lisp

import (
	"strconv"
	"strings"
)

// String returns the readable representation of v.
func (v *LVal) String() string {
	return v.Print(true)
}

// Print renders v.  When readable is true strings and characters are quoted
// so that the output can be read back as an equivalent value.  Otherwise they
// are written verbatim.
func (v *LVal) Print(readable bool) string {
	var b strings.Builder
	p := &printer{readable: readable}
	p.write(&b, v)
	return b.String()
}

// HashKey returns the canonical text of v used for map and set membership.
// Structurally equal values have equal keys, with the exception that integer
// and float values are never equal keys.
func (v *LVal) HashKey() string {
	var b strings.Builder
	p := &printer{readable: true, keyed: true}
	p.write(&b, v)
	return b.String()
}

type printer struct {
	readable bool
	keyed    bool
}

func (p *printer) write(b *strings.Builder, v *LVal) {
	switch v.Type {
	case LNil:
		b.WriteString(NilSymbol)
	case LBool:
		if v.Int != 0 {
			b.WriteString(TrueSymbol)
		} else {
			b.WriteString(FalseSymbol)
		}
	case LInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case LFloat:
		b.WriteString(formatFloat(v.Float))
	case LString:
		if p.readable {
			writeQuoted(b, v.Str)
		} else {
			b.WriteString(v.Str)
		}
	case LChar:
		if p.readable {
			writeChar(b, v.Char)
		} else {
			b.WriteRune(v.Char)
		}
	case LSymbol:
		b.WriteString(v.Str)
	case LKeyword:
		b.WriteString(":")
		b.WriteString(v.Str)
	case LList:
		p.writeCells(b, "(", v.Cells, ")")
	case LVector:
		p.writeCells(b, "[", v.Cells, "]")
	case LMap:
		b.WriteString("{")
		for i, e := range v.MapData().Entries() {
			if i > 0 {
				b.WriteString(" ")
			}
			p.write(b, e.Key)
			b.WriteString(" ")
			p.write(b, e.Val)
		}
		b.WriteString("}")
	case LSet:
		p.writeCells(b, "#{", v.MapData().Keys(), "}")
	case LAtom:
		b.WriteString("(atom ")
		if p.keyed {
			b.WriteString("#")
			b.WriteString(strconv.FormatUint(v.AtomData().ID, 10))
		} else {
			p.write(b, v.AtomData().Value)
		}
		b.WriteString(")")
	case LFun:
		fd := v.FunData()
		b.WriteString("#<")
		switch {
		case v.FunType == LFunMacro:
			b.WriteString("macro")
		case fd.IsBuiltin():
			b.WriteString("builtin")
		default:
			b.WriteString("function")
		}
		switch {
		case p.keyed:
			b.WriteString(" #")
			b.WriteString(strconv.FormatUint(fd.ID, 10))
		case fd.Name != "":
			b.WriteString(" ")
			b.WriteString(fd.Name)
		}
		b.WriteString(">")
	case LError, LCaughtError:
		b.WriteString("#<error ")
		b.WriteString(v.Str)
		b.WriteString(": ")
		b.WriteString((*ErrorVal)(v).ErrorMessage())
		b.WriteString(">")
	default:
		b.WriteString("#<invalid>")
	}
}

func (p *printer) writeCells(b *strings.Builder, open string, cells []*LVal, close string) {
	b.WriteString(open)
	for i, c := range cells {
		if i > 0 {
			b.WriteString(" ")
		}
		p.write(b, c)
	}
	b.WriteString(close)
}

// formatFloat renders x so that it is read back as a float.
func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}

var stringEscapes = map[rune]string{
	'"':  `\"`,
	'\\': `\\`,
	'\n': `\n`,
	'\t': `\t`,
	'\r': `\r`,
	'\a': `\a`,
	'\b': `\b`,
	'\f': `\f`,
	'\v': `\v`,
	0:    `\0`,
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteString(`"`)
	for _, c := range s {
		if esc, ok := stringEscapes[c]; ok {
			b.WriteString(esc)
			continue
		}
		b.WriteRune(c)
	}
	b.WriteString(`"`)
}

var charNames = map[rune]string{
	'\n': "newline",
	' ':  "space",
	'\t': "tab",
	'\r': "return",
}

func writeChar(b *strings.Builder, c rune) {
	b.WriteString(`\`)
	if name, ok := charNames[c]; ok {
		b.WriteString(name)
		return
	}
	if c < ' ' || c == 0x7f {
		b.WriteString("u")
		b.WriteString(strings.Repeat("0", 4-len(strconv.FormatInt(int64(c), 16))))
		b.WriteString(strconv.FormatInt(int64(c), 16))
		return
	}
	b.WriteRune(c)
}
