// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/cinchrun/cinch/pkg/program"
	"github.com/cinchrun/cinch/pkg/tui"
)

// Exit codes returned by Runner.Main.
const (
	ExitOK     = 0 // success, unless the program sets its ExitCode field
	ExitError  = 1 // bad input, missing resource, or program failure
	ExitConfig = 2 // broken argument declarations
)

// Built-in switches. They are only honored when the program does not
// declare a switch with the same name; a positional slot cannot claim
// them.
const (
	helpSwitch     = "help"
	describeSwitch = "describe"
)

const defaultWidth = 79

// Runner drives a program from the command line: discover its slots,
// bind the arguments, run it, and report errors with usage text. The
// zero value is usable.
type Runner struct {
	Prefix string        // switch prefix, DefaultPrefix when empty
	Width  int           // help width, 0 detects the terminal with a 79 fallback
	Info   *program.Info // optional banner and manifest metadata
	Stdout io.Writer     // defaults to os.Stdout
	Stderr io.Writer     // defaults to os.Stderr
}

// Main binds argv onto prog, runs it, and returns the process exit
// code. argv is the argument vector without the leading executable
// name, as in os.Args[1:]. Arguments arriving through argv carry no
// quoting information, so every one of them is eligible to be a
// switch.
func (r *Runner) Main(prog any, argv []string) int {
	tokens := make([]Token, len(argv))
	for i, a := range argv {
		tokens[i] = Token{Text: a}
	}
	return r.run(prog, r.exeName(), tokens)
}

// MainLine tokenizes a raw command line, including the leading
// executable name, and otherwise behaves like Main. Unlike Main it
// preserves quoting, so a quoted argument is never mistaken for a
// switch.
func (r *Runner) MainLine(prog any, raw string) int {
	exe, tokens := Tokenize(raw)
	if exe == "" {
		exe = r.exeName()
	}
	return r.run(prog, exe, tokens)
}

func (r *Runner) run(prog any, exe string, tokens []Token) int {
	stdout, stderr := r.stdout(), r.stderr()
	prefix := r.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	slots, err := Discover(prog)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitConfig
	}
	defer closeStreams(stderr, slots)

	width := r.Width
	if width == 0 {
		width = tui.Width(stdout, defaultWidth)
	}
	usage := func() string { return Render(r.Info, slots, exe, prefix, width) }

	declared := make(map[string]bool, len(slots))
	for _, s := range slots {
		if s.Ordinal == NotOrdinal {
			declared[s.Name] = true
		}
	}
	for _, t := range tokens {
		if !looksLikeSwitch(t, prefix) {
			continue
		}
		switch strings.TrimPrefix(t.Text, prefix) {
		case helpSwitch:
			if !declared[helpSwitch] {
				fmt.Fprint(stdout, usage())
				return ExitOK
			}
		case describeSwitch:
			if !declared[describeSwitch] {
				out, err := NewManifest(r.Info, slots).YAML()
				if err != nil {
					r.errorLine(stderr, err)
					return ExitError
				}
				stdout.Write(out)
				return ExitOK
			}
		}
	}

	if err := Bind(slots, tokens, prefix); err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			fmt.Fprintln(stderr, err)
			return ExitConfig
		}
		fmt.Fprint(stderr, usage())
		r.errorLine(stderr, err)
		return ExitError
	}

	var runErr error
	if p, ok := prog.(interface{ Run() error }); ok {
		runErr = p.Run()
	}

	if runErr != nil {
		if errors.Is(runErr, ErrHelp) {
			fmt.Fprint(stdout, usage())
			return ExitOK
		}
		r.errorLine(stderr, runErr)
		return ExitError
	}
	return exitCode(prog)
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

func (r *Runner) exeName() string {
	if r.Info != nil && r.Info.Name != "" {
		return r.Info.Name
	}
	if len(os.Args) > 0 {
		return filepath.Base(os.Args[0])
	}
	return "program"
}

func (r *Runner) errorLine(w io.Writer, err error) {
	c := tui.ColorizerFor(w)
	fmt.Fprintf(w, "%s %v\n", c.Wrap(tui.ColorRed, "Error:"), err)
}

// closeStreams closes every stream the binder opened, list elements
// included. It runs deferred from run, so a failed binding releases
// the streams opened before the failure. The program usually closes
// its own streams; Close on both stream types is idempotent so the
// overlap is harmless.
func closeStreams(w io.Writer, slots []*Slot) {
	for _, s := range slots {
		if !s.value.IsValid() {
			continue
		}
		if s.List {
			for i := 0; i < s.value.Len(); i++ {
				closeStream(w, s.value.Index(i))
			}
			continue
		}
		closeStream(w, s.value)
	}
}

func closeStream(w io.Writer, v reflect.Value) {
	if !v.CanInterface() {
		return
	}
	switch x := v.Interface().(type) {
	case *InFile:
		if x != nil {
			x.Close()
		}
	case *OutFile:
		if x == nil {
			return
		}
		if err := x.Close(); err != nil {
			fmt.Fprintf(w, "warning: closing %s: %v\n", x.Name(), err)
		}
	}
}

// exitCode reads prog's optional ExitCode int field. Programs that
// want a nonzero code on success set it from Run; binding and
// configuration failures never reach here.
func exitCode(prog any) int {
	v := reflect.ValueOf(prog).Elem()
	if v.Kind() != reflect.Struct {
		return ExitOK
	}
	f := v.FieldByName("ExitCode")
	if f.IsValid() && f.Kind() == reflect.Int {
		return int(f.Int())
	}
	return ExitOK
}
