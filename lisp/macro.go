// Copyright © 2018 The ELPS authors

package lisp

import "github.com/sirupsen/logrus"

// MacroExpand expands form until its head is no longer a symbol bound to a
// macro.  The number of expansions is limited by
// env.Runtime.MaxMacroExpansionDepth.  A form whose head is unbound, or bound
// to anything other than a macro, is returned unchanged.
func (env *LEnv) MacroExpand(form *LVal) *LVal {
	limit := env.Runtime.MaxMacroExpansionDepth
	for n := 0; ; n++ {
		mac := env.macroFor(form)
		if mac == nil {
			return form
		}
		if limit > 0 && n >= limit {
			return env.ErrorConditionf(CondMacroExpansionLimit,
				"macro expansion exceeded %d steps expanding %s", limit, mac.FunName())
		}
		form = env.expand(mac, form, n)
		if form.Type == LError {
			return form
		}
	}
}

// MacroExpand1 performs at most one macro expansion of form.
func (env *LEnv) MacroExpand1(form *LVal) *LVal {
	mac := env.macroFor(form)
	if mac == nil {
		return form
	}
	return env.expand(mac, form, 0)
}

// macroFor returns the macro named by the head of form, or nil.
func (env *LEnv) macroFor(form *LVal) *LVal {
	if form.Type != LList || len(form.Cells) == 0 {
		return nil
	}
	head := form.Cells[0]
	if head.Type != LSymbol {
		return nil
	}
	e := env.find(head.Str)
	if e == nil {
		return nil
	}
	v := e.Scope[head.Str]
	if !v.IsMacro() {
		return nil
	}
	return v
}

func (env *LEnv) expand(mac, form *LVal, depth int) *LVal {
	if env.Runtime.traceEnabled() {
		env.Runtime.Logger.WithFields(logrus.Fields{
			"macro": mac.FunName(),
			"depth": depth,
		}).Trace("expanding macro")
	}
	env.setLoc(form.Source)
	expanded := env.FunCall(mac, form.Cells[1:])
	if expanded.Type == LError {
		return expanded
	}
	if expanded.Source == nil && form.Source != nil {
		expanded = expanded.WithSource(form.Source)
	}
	return expanded
}
