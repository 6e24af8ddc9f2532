// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import (
	"errors"
	"fmt"
)

// ErrHelp is returned when the built-in help switch is present on the
// command line.
var ErrHelp = errors.New("help requested")

// ConfigError reports an argument declaration that violates the
// structural rules checked by Discover. It indicates a mistake in the
// program, not in user input, and is never followed by a usage screen.
type ConfigError struct {
	Slot   string // field or slot name, when known
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Slot == "" {
		return "invalid argument declaration: " + e.Reason
	}
	return fmt.Sprintf("invalid argument declaration for %s: %s", e.Slot, e.Reason)
}

// ConvertError is returned when a token cannot be interpreted as the
// slot's element type.
type ConvertError struct {
	ItemName string // display name of the slot
	Token    string // the offending token text
	Err      error  // underlying parse error, when any
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Token, e.ItemName)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// BindError is returned when the token stream violates the declared
// cardinality or ordering rules. Msg carries the user-facing message;
// Slot and Token identify the context when known.
type BindError struct {
	Slot  string // slot or item name involved, when known
	Token string // offending token text, when known
	Msg   string
}

func (e *BindError) Error() string {
	return e.Msg
}

// ResourceError is returned when a file named on the command line
// cannot be opened.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
