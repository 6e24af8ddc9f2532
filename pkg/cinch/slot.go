// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NotOrdinal is the Ordinal of a slot matched by switch name rather
// than by position.
const NotOrdinal = -1

// Slot describes one declared argument binding point. Slots are built
// by Discover and consumed by Bind and Render; a slot list is good for
// one binding pass.
type Slot struct {
	Name        string       // switch name, or the field-derived name for positional slots
	Ordinal     int          // position, or NotOrdinal
	ItemName    string       // display name for one value in help and error text
	Description string       // help text
	Required    bool
	List        bool         // collects a run of values
	Flag        bool         // boolean switch that takes no value
	Type        reflect.Type // element type, never the slice type

	conv  converter
	value reflect.Value // settable binding target
	field string        // struct field name, for declaration errors
	seen  bool          // set when the switch phase consumes this slot
}

// reservedNameChars are rejected in slot names: quotes and whitespace
// break tokenization, and both conventional prefix characters are
// reserved so a slot set stays valid under any switch prefix.
const reservedNameChars = "\"' \t\n\r-/"

// Discover reflects over prog's exported tagged fields and returns the
// declared slots in binding order: positional slots by ascending
// ordinal, then required switches, then optional switches,
// alphabetical within each group. prog must be a non-nil pointer to a
// struct. Structural rule violations are reported as *ConfigError.
//
// Discover is cheap and idempotent; call it once per binding attempt.
func Discover(prog any) ([]*Slot, error) {
	rv := reflect.ValueOf(prog)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, &ConfigError{Reason: "program must be a non-nil pointer to a struct"}
	}
	sv := rv.Elem()
	st := sv.Type()

	var slots []*Slot
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		flagTag, hasFlag := field.Tag.Lookup("flag")
		posTag, hasPos := field.Tag.Lookup("pos")
		if !hasFlag && !hasPos {
			continue
		}
		if hasFlag && hasPos {
			return nil, &ConfigError{Slot: field.Name, Reason: "cannot be both a switch and positional"}
		}

		s := &Slot{
			Ordinal:     NotOrdinal,
			Description: field.Tag.Get("help"),
			field:       field.Name,
			value:       sv.Field(i),
		}

		isSlice := field.Type.Kind() == reflect.Slice
		if hasPos {
			s.Name = lowerFirst(field.Name)
			if err := parsePosTag(s, posTag, isSlice); err != nil {
				return nil, &ConfigError{Slot: field.Name, Reason: err.Error()}
			}
		} else {
			s.Name = flagTag
			if s.Name == "" {
				s.Name = lowerFirst(field.Name)
			}
			s.List = isSlice
			if req, ok := field.Tag.Lookup("required"); ok {
				b, err := strconv.ParseBool(req)
				if err != nil {
					return nil, &ConfigError{Slot: field.Name, Reason: fmt.Sprintf("bad required tag %q", req)}
				}
				s.Required = b
			}
		}
		if strings.ContainsAny(s.Name, reservedNameChars) {
			return nil, &ConfigError{Slot: field.Name, Reason: fmt.Sprintf("name %q contains a reserved character", s.Name)}
		}

		s.Type = field.Type
		if s.List {
			s.Type = field.Type.Elem()
		}
		s.Flag = s.Type.Kind() == reflect.Bool && s.Ordinal == NotOrdinal && !s.List
		if s.Type.Kind() == reflect.Bool {
			switch {
			case s.List:
				return nil, &ConfigError{Slot: field.Name, Reason: "a flag cannot be list-valued"}
			case s.Ordinal != NotOrdinal:
				return nil, &ConfigError{Slot: field.Name, Reason: "a flag cannot be positional"}
			case s.Required:
				return nil, &ConfigError{Slot: field.Name, Reason: "a flag cannot be required"}
			}
		}

		s.ItemName = field.Tag.Get("name")
		if s.ItemName == "" {
			s.ItemName = defaultItemName(s.Name, s.Type, s.List)
		}

		conv, err := resolveConverter(s.Type, field.Tag.Get("conv"))
		if err != nil {
			return nil, &ConfigError{Slot: field.Name, Reason: err.Error()}
		}
		s.conv = conv

		if def, ok := field.Tag.Lookup("default"); ok {
			if err := s.applyDefault(def); err != nil {
				return nil, &ConfigError{Slot: field.Name, Reason: fmt.Sprintf("bad default %q: %v", def, err)}
			}
		}

		slots = append(slots, s)
	}

	slices.SortFunc(slots, compareSlots)
	if err := validateSlots(slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// parsePosTag fills in the positional shape from a pos tag: "N" is a
// required scalar, "N?" an optional scalar, "N*" an optional list, and
// "N+" a required list. The list forms need a slice field.
func parsePosTag(s *Slot, tag string, isSlice bool) error {
	num := tag
	switch {
	case strings.HasSuffix(tag, "?"):
		num = strings.TrimSuffix(tag, "?")
	case strings.HasSuffix(tag, "*"):
		s.List = true
		num = strings.TrimSuffix(tag, "*")
	case strings.HasSuffix(tag, "+"):
		s.List = true
		s.Required = true
		num = strings.TrimSuffix(tag, "+")
	default:
		s.Required = true
	}
	if s.List != isSlice {
		if s.List {
			return fmt.Errorf("pos tag %q needs a slice field", tag)
		}
		return fmt.Errorf("slice field needs a pos tag ending in * or +")
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return fmt.Errorf("bad pos tag %q", tag)
	}
	s.Ordinal = n
	return nil
}

func compareSlots(a, b *Slot) int {
	aOrd, bOrd := a.Ordinal != NotOrdinal, b.Ordinal != NotOrdinal
	switch {
	case aOrd && bOrd:
		return a.Ordinal - b.Ordinal
	case aOrd:
		return -1
	case bOrd:
		return 1
	case a.Required != b.Required:
		if a.Required {
			return -1
		}
		return 1
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

// validateSlots checks the set-level rules over the sorted slot list:
// gapless unique ordinals from zero, optional or list positional slots
// only in last position, and unique switch names.
func validateSlots(slots []*Slot) error {
	names := make(map[string]bool)
	nextOrd := 0
	var lastOrd *Slot
	for _, s := range slots {
		if s.Ordinal == NotOrdinal {
			if names[s.Name] {
				return &ConfigError{Slot: s.field, Reason: fmt.Sprintf("duplicate switch name %q", s.Name)}
			}
			names[s.Name] = true
			continue
		}
		if lastOrd != nil {
			if lastOrd.Ordinal == s.Ordinal {
				return &ConfigError{Slot: s.field, Reason: fmt.Sprintf("duplicate ordinal %d", s.Ordinal)}
			}
			if lastOrd.List || !lastOrd.Required {
				return &ConfigError{Slot: lastOrd.field, Reason: "an optional or list-valued slot must be the last positional slot"}
			}
		}
		if s.Ordinal != nextOrd {
			return &ConfigError{Slot: s.field, Reason: fmt.Sprintf("ordinals must be gapless from 0, got %d", s.Ordinal)}
		}
		nextOrd++
		lastOrd = s
	}
	return nil
}

// defaultItemName derives the help display name for one value from
// the element type: the built-in file types carry conventional names,
// pluralized for lists, and everything else falls back to the slot
// name.
func defaultItemName(name string, t reflect.Type, list bool) string {
	var n string
	switch t {
	case inFileType:
		n = "input file"
	case outFileType:
		n = "output file"
	case pathType:
		n = "path"
	default:
		return name
	}
	if list {
		n += "s"
	}
	return n
}

// applyDefault seeds the field from the default tag through the slot's
// converter. A field the program already set keeps its value.
func (s *Slot) applyDefault(def string) error {
	if !s.value.IsZero() {
		return nil
	}
	v, err := s.convert(def)
	if err != nil {
		return err
	}
	if s.List {
		s.resetList()
		s.append(v)
		return nil
	}
	s.value.Set(v)
	return nil
}

func (s *Slot) set(v reflect.Value) {
	s.value.Set(v)
}

func (s *Slot) append(v reflect.Value) {
	s.value.Set(reflect.Append(s.value, v))
}

// resetList empties the slot's container. Binding resets before the
// first appended element, so a list that receives no tokens keeps its
// initial value.
func (s *Slot) resetList() {
	s.value.Set(reflect.MakeSlice(s.value.Type(), 0, 0))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
