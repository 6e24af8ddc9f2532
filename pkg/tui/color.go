// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui holds the small terminal pieces shared by the
// command-line tools: ANSI color wrapping, a progress spinner, and
// terminal width detection.
package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorGreen  = "\x1b[32m"
	ColorYellow = "\x1b[33m"
	ColorCyan   = "\x1b[36m"
	ColorDim    = "\x1b[90m"
)

// Colorizer wraps text in ANSI color codes when enabled and passes it
// through untouched otherwise, so call sites never branch on color
// support themselves.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that is enabled only when the
// caller wants color and the environment does not veto it: NO_COLOR
// set or a missing/dumb TERM disable color regardless of enabled.
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ColorizerFor returns a Colorizer for writing to w: enabled when w is
// a terminal and the environment allows color.
func ColorizerFor(w io.Writer) Colorizer {
	return NewColorizer(IsTerminal(w))
}

// Wrap surrounds text with the given color code and a reset, or
// returns it unchanged when color is off.
func (c Colorizer) Wrap(code, text string) string {
	if !c.Enabled || code == "" {
		return text
	}
	return code + text + ColorReset
}

// IsTerminal reports whether w is backed by a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
