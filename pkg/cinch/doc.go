// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cinch binds command-line arguments to typed struct fields
// declared with tags.
//
// A program describes its arguments as exported fields on a struct:
//
//	type args struct {
//	    Input  *cinch.InFile  `pos:"0" help:"file to read"`
//	    Output *cinch.OutFile `pos:"1?" help:"file to write"`
//	    Level  int            `flag:"level" default:"3" help:"effort, 1-9"`
//	    Force  bool           `flag:"force" help:"overwrite existing output"`
//	    Tags   []string       `flag:"tag" help:"labels to attach"`
//	}
//
// # Slots
//
// Each tagged field declares one argument slot. `pos:"N"` declares a
// required positional slot at ordinal N; `pos:"N?"` an optional one,
// `pos:"N*"` an optional trailing list, and `pos:"N+"` a required
// trailing list (the field must be a slice for either list form).
// `flag:"name"` declares a named switch; a bool field becomes a flag
// that takes no value, a slice field collects a run of values, and
// `required:"true"` marks the switch mandatory. `name:"..."` overrides
// the display name used in help and error text, `help:"..."` supplies
// the description, `default:"..."` seeds a zero-valued field before
// binding, and `conv:"..."` selects a converter registered with
// RegisterNamed.
//
// # Binding
//
// Discover reflects over the struct and returns the slot list in
// binding order: ordinals ascending, then required switches, then
// optional switches, alphabetical within each group. Bind walks the
// token stream in three phases: positional slots consume tokens in
// ordinal order, then every remaining token must be a switch, then
// required switches are checked for presence. A token is treated as a
// switch only when it is unquoted and starts with the switch prefix,
// so quoting a value is always enough to pass it positionally.
//
// An optional positional slot is skipped whenever the next token looks
// like a switch, even if the user meant it positionally. This is a
// known limitation; quote the value to force positional treatment.
//
// # Values
//
// Tokens become typed values through the first matching strategy: the
// conv tag, a converter registered for the field's type (Register;
// time.Duration, url.URL, uuid.UUID and semver versions are
// pre-registered), the built-in file types (InFile, OutFile, Path),
// encoding.TextUnmarshaler, and finally the primitive kinds. A field
// type with no strategy is reported by Discover, before any token is
// examined.
//
// # Running
//
// Runner ties the pieces together for a main package:
//
//	func main() {
//	    var a args
//	    r := &cinch.Runner{Info: &program.Info{Name: "pack", Version: program.Version()}}
//	    os.Exit(r.Main(&a, os.Args[1:]))
//	}
//
// Runner discovers, honors the built-in help and describe switches,
// binds, calls the program's Run method, closes any file slots, and
// turns errors into a usage screen plus a one-line message on stderr.
package cinch
