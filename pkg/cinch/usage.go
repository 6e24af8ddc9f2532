// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import (
	"fmt"
	"strings"

	"github.com/cinchrun/cinch/pkg/program"
)

const (
	usageIndent = 4  // continuation indent within the usage line
	descCol     = 28 // column where slot descriptions start
)

// Render formats the help screen for a slot list: a banner from info
// (skipped when nil), the usage summary line, and one description
// block per slot, in slot order. It is a pure function of its
// arguments; the Runner writes it out on help requests and user
// errors.
func Render(info *program.Info, slots []*Slot, exe, prefix string, width int) string {
	var b strings.Builder
	if info != nil {
		writeBanner(&b, info)
	}

	b.WriteString("USAGE:\n")
	parts := []string{exe}
	for _, s := range slots {
		parts = append(parts, usageFragment(s, prefix))
	}
	for _, line := range strings.Split(wrap(strings.Join(parts, " "), width-usageIndent, usageIndent), "\n") {
		b.WriteString("    " + line + "\n")
	}

	var ordinals, named []*Slot
	for _, s := range slots {
		if s.Ordinal != NotOrdinal {
			ordinals = append(ordinals, s)
		} else {
			named = append(named, s)
		}
	}
	if len(ordinals) > 0 {
		b.WriteString("\nARGUMENTS:\n")
		for _, s := range ordinals {
			writeBlock(&b, s.ItemName, s.Description, width)
		}
	}
	if len(named) > 0 {
		b.WriteString("\nSWITCHES:\n")
		for _, s := range named {
			writeBlock(&b, switchDisplay(s, prefix), s.Description, width)
		}
	}
	return b.String()
}

func writeBanner(b *strings.Builder, info *program.Info) {
	if info.Name != "" {
		b.WriteString(info.Name)
		if info.Version != "" {
			b.WriteString(" " + info.Version)
		}
		if info.Description != "" {
			b.WriteString(" - " + info.Description)
		}
		b.WriteByte('\n')
	}
	if info.Copyright != "" {
		b.WriteString(info.Copyright)
		b.WriteByte('\n')
	}
	if info.Name != "" || info.Copyright != "" {
		b.WriteByte('\n')
	}
}

// usageFragment renders one slot for the usage summary line: bare when
// required, bracketed when optional, braced with two explicit items
// and an ellipsis when list-valued.
func usageFragment(s *Slot, prefix string) string {
	if s.Ordinal != NotOrdinal {
		switch {
		case s.List && s.Required:
			return "{" + s.ItemName + " " + s.ItemName + " ...}"
		case s.List:
			return "[{" + s.ItemName + " " + s.ItemName + " ...}]"
		case s.Required:
			return s.ItemName
		default:
			return "[" + s.ItemName + "]"
		}
	}
	frag := prefix + s.Name
	switch {
	case s.Flag:
	case s.List:
		frag += " {" + s.ItemName + " " + s.ItemName + " ...}"
	default:
		frag += " " + s.ItemName
	}
	if !s.Required {
		frag = "[" + frag + "]"
	}
	return frag
}

func switchDisplay(s *Slot, prefix string) string {
	switch {
	case s.Flag:
		return prefix + s.Name
	case s.List:
		return prefix + s.Name + " " + s.ItemName + "..."
	default:
		return prefix + s.Name + " " + s.ItemName
	}
}

// writeBlock writes one slot's description block: the display text in
// a fixed column, the wrapped description beside it, continuation
// lines aligned under the first. An overlong display spills the
// description onto the next line.
func writeBlock(b *strings.Builder, display, desc string, width int) {
	if desc == "" {
		fmt.Fprintf(b, "    %s\n", display)
		return
	}
	lines := strings.Split(wrap(desc, width-descCol, 0), "\n")
	pad := strings.Repeat(" ", descCol)
	if len(display) > descCol-6 {
		fmt.Fprintf(b, "    %s\n", display)
		for _, ln := range lines {
			b.WriteString(pad + ln + "\n")
		}
		return
	}
	fmt.Fprintf(b, "    %-*s%s\n", descCol-4, display, lines[0])
	for _, ln := range lines[1:] {
		b.WriteString(pad + ln + "\n")
	}
}

// wrap greedily packs space-separated words into lines of at most
// width columns, indenting continuation lines by indent spaces. A word
// is packed while it still fits after a joining space; words are never
// broken, so a word longer than the width overflows its line.
func wrap(text string, width, indent int) string {
	words := strings.Split(text, " ")
	var b strings.Builder
	line := 0
	for i, w := range words {
		if i == 0 {
			b.WriteString(w)
			line = len(w)
			continue
		}
		if line+1+len(w) <= width {
			b.WriteByte(' ')
			b.WriteString(w)
			line += 1 + len(w)
		} else {
			b.WriteByte('\n')
			for j := 0; j < indent; j++ {
				b.WriteByte(' ')
			}
			b.WriteString(w)
			line = indent + len(w)
		}
	}
	return b.String()
}
