// Copyright © 2018 The ELPS authors

package lisp

// Symbols produced by the reader for quote-family markers and special forms
// which handle them.
const (
	QuoteSymbol         = "quote"
	QuasiquoteSymbol    = "quasiquote"
	UnquoteSymbol       = "unquote"
	SpliceUnquoteSymbol = "splice-unquote"
	DerefSymbol         = "deref"
)

// Quasiquote rewrites the template form into an expression which constructs
// it, substituting unquoted expressions.  Quasiquote does not evaluate
// anything.
//
//	(unquote x)                   => x
//	((splice-unquote x) rest...)  => (concat x <rest>)
//	(head rest...)                => (cons <head> <rest>)
//	[elems...]                    => (vec <(elems...)>)
//	{k v ...}                     => (apply hash-map <(k v ...)>)
//	#{elems...}                   => (apply hash-set <(elems...)>)
//	anything else                 => (quote form)
func Quasiquote(form *LVal) *LVal {
	switch form.Type {
	case LList:
		if len(form.Cells) == 0 {
			return quoteForm(form)
		}
		if isForm(form, UnquoteSymbol, 2) {
			return form.Cells[1]
		}
		head := form.Cells[0]
		rest := List(form.Cells[1:])
		if isForm(head, SpliceUnquoteSymbol, 2) {
			return List([]*LVal{Symbol("concat"), head.Cells[1], Quasiquote(rest)})
		}
		return List([]*LVal{Symbol("cons"), Quasiquote(head), Quasiquote(rest)})
	case LVector:
		return List([]*LVal{Symbol("vec"), Quasiquote(List(form.Cells))})
	case LMap:
		entries := form.MapData().Entries()
		kvs := make([]*LVal, 0, 2*len(entries))
		for _, e := range entries {
			kvs = append(kvs, e.Key, e.Val)
		}
		return List([]*LVal{Symbol("apply"), Symbol("hash-map"), Quasiquote(List(kvs))})
	case LSet:
		return List([]*LVal{Symbol("apply"), Symbol("hash-set"), Quasiquote(List(form.MapData().Keys()))})
	default:
		return quoteForm(form)
	}
}

func quoteForm(form *LVal) *LVal {
	return List([]*LVal{Symbol(QuoteSymbol), form})
}

// isForm returns true if v is a list of length n with the symbol name at its
// head.
func isForm(v *LVal, name string, n int) bool {
	return v.Type == LList && len(v.Cells) == n && v.Cells[0].IsSymbol(name)
}
