// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import (
	"fmt"
	"strings"
)

// DefaultPrefix is the switch prefix used when a Runner is not
// configured with one.
const DefaultPrefix = "-"

// looksLikeSwitch reports whether t would be consumed by the switch
// phase: unquoted and starting with the prefix. Quoting a token always
// forces positional treatment.
func looksLikeSwitch(t Token, prefix string) bool {
	return !t.Quoted && strings.HasPrefix(t.Text, prefix)
}

// Bind assigns tokens to slots in place. slots must be a list produced
// by Discover, good for one pass. The first rule violation in token
// order is returned and later tokens are not examined; on failure the
// slots may be partially written.
//
// Phase one walks positional slots in ordinal order: a required scalar
// consumes the next token unconditionally, an optional scalar consumes
// it only when it does not look like a switch, and a trailing list
// slot consumes the run of consecutive non-switch-looking tokens.
// Phase two matches the remaining tokens as switches. Phase three
// checks that every required switch was seen.
func Bind(slots []*Slot, tokens []Token, prefix string) error {
	if prefix == "" {
		return &ConfigError{Reason: "switch prefix must not be empty"}
	}

	i := 0
	for _, s := range slots {
		if s.Ordinal == NotOrdinal {
			break
		}
		switch {
		case s.List:
			var n int
			var err error
			i, n, err = bindRun(s, tokens, i, prefix)
			if err != nil {
				return err
			}
			if n == 0 && s.Required {
				return &BindError{Slot: s.ItemName, Msg: "missing required argument: " + s.ItemName}
			}
		case !s.Required:
			if i < len(tokens) && !looksLikeSwitch(tokens[i], prefix) {
				v, err := s.convert(tokens[i].Text)
				if err != nil {
					return err
				}
				s.set(v)
				i++
			}
		default:
			if i >= len(tokens) {
				return &BindError{Slot: s.ItemName, Msg: "missing required argument: " + s.ItemName}
			}
			v, err := s.convert(tokens[i].Text)
			if err != nil {
				return err
			}
			s.set(v)
			i++
		}
	}

	named := make(map[string]*Slot)
	for _, s := range slots {
		if s.Ordinal == NotOrdinal {
			named[s.Name] = s
		}
	}
	for i < len(tokens) {
		t := tokens[i]
		if !looksLikeSwitch(t, prefix) {
			return &BindError{Token: t.Text, Msg: fmt.Sprintf("expected a switch, got %q", t.Text)}
		}
		s, ok := named[strings.TrimPrefix(t.Text, prefix)]
		if !ok {
			return &BindError{Token: t.Text, Msg: "unrecognized switch: " + t.Text}
		}
		if s.seen {
			return &BindError{Token: t.Text, Msg: "duplicate switch: " + t.Text}
		}
		s.seen = true
		i++
		if s.Flag {
			s.value.SetBool(true)
			continue
		}
		if i >= len(tokens) || looksLikeSwitch(tokens[i], prefix) {
			return &BindError{Slot: s.Name, Msg: "expected a value for " + t.Text}
		}
		if s.List {
			var err error
			i, _, err = bindRun(s, tokens, i, prefix)
			if err != nil {
				return err
			}
			continue
		}
		v, err := s.convert(tokens[i].Text)
		if err != nil {
			return err
		}
		s.set(v)
		i++
	}

	for _, s := range slots {
		if s.Ordinal == NotOrdinal && s.Required && !s.seen {
			return &BindError{Slot: s.Name, Msg: "missing required switch: " + prefix + s.Name}
		}
	}
	return nil
}

// bindRun consumes the run of consecutive non-switch-looking tokens
// starting at i into list slot s, resetting the container before the
// first element. Returns the new cursor and the number consumed.
func bindRun(s *Slot, tokens []Token, i int, prefix string) (int, int, error) {
	n := 0
	for i < len(tokens) && !looksLikeSwitch(tokens[i], prefix) {
		v, err := s.convert(tokens[i].Text)
		if err != nil {
			return i, n, err
		}
		if n == 0 {
			s.resetList()
		}
		s.append(v)
		i++
		n++
	}
	return i, n, nil
}
