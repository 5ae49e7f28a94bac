// Copyright © 2018 The ELPS authors

package repl

import (
	"sort"
	"strings"

	"github.com/luthersystems/elk/lisp"
)

// symbolCompleter implements readline.AutoCompleter by enumerating the
// symbols bound in the REPL environment chain.
type symbolCompleter struct {
	env *lisp.LEnv
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// the word ends at the cursor and starts after whitespace or an opening
	// delimiter
	start := pos
	for start > 0 && !isWordBoundary(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// each entry is the suffix to append
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		result = append(result, []rune(sym[len(prefix):]))
	}
	return result, len(prefix)
}

func isWordBoundary(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '(', '[', '{', '\'', '`', '~', '@':
		return true
	}
	return false
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	seen := make(map[string]bool)
	var result []string
	for env := c.env; env != nil; env = env.Parent {
		for name := range env.Scope {
			if strings.HasPrefix(name, prefix) && !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}
	for _, name := range lisp.SpecialForms {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}
