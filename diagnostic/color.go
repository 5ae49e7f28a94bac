// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"fmt"
	"os"
	"strings"
)

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // detect based on terminal and NO_COLOR
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

var colorModeNames = map[string]ColorMode{
	"auto":   ColorAuto,
	"always": ColorAlways,
	"never":  ColorNever,
}

// ParseColorMode parses one of "auto", "always" or "never".  The empty
// string is ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	if s == "" {
		return ColorAuto, nil
	}
	mode, ok := colorModeNames[strings.ToLower(s)]
	if !ok {
		return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
	return mode, nil
}

type palette struct {
	bold     string
	yellow   string
	boldRed  string
	boldBlue string
	boldCyan string
	reset    string
}

var ansiPalette = palette{
	bold:     "\033[1m",
	yellow:   "\033[33m",
	boldRed:  "\033[1;31m",
	boldBlue: "\033[1;34m",
	boldCyan: "\033[1;36m",
	reset:    "\033[0m",
}

var noPalette = palette{}

// choosePalette selects the color palette for mode when writing to w, which
// may be nil if the output is not a file.
func choosePalette(mode ColorMode, w *os.File) palette {
	switch mode {
	case ColorAlways:
		return ansiPalette
	case ColorNever:
		return noPalette
	default:
		if os.Getenv("NO_COLOR") != "" || !isTerminal(w) {
			return noPalette
		}
		return ansiPalette
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
