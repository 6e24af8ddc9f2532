// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cinchrun/cinch/pkg/cinch"
	"github.com/cinchrun/cinch/pkg/cmdutil"
	"github.com/cinchrun/cinch/pkg/compress"
	"github.com/cinchrun/cinch/pkg/env"
	"github.com/cinchrun/cinch/pkg/ftdetect"
	"github.com/cinchrun/cinch/pkg/program"
	"github.com/cinchrun/cinch/pkg/tui"
	"github.com/fatih/color"
)

var prefsFile = filepath.Join(os.Getenv("HOME"), ".config", "zpack", "zpack.toml")

// prefs are the on-disk defaults. Every value can be overridden by a
// ZPACK_* environment variable, and both lose to explicit switches.
type prefs struct {
	Format string `toml:"format" env:"FORMAT"`
	Level  int    `toml:"level" env:"LEVEL"`
	Quiet  bool   `toml:"quiet" env:"QUIET"`
}

func (p *prefs) load(path string) error {
	if _, err := toml.DecodeFile(path, p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return env.Apply("ZPACK", p)
}

type zpack struct {
	Input  *cinch.InFile  `pos:"0" help:"file to compress or extract"`
	Output *cinch.OutFile `pos:"1?" help:"destination, derived from the input name when omitted"`

	Extract bool            `flag:"x" help:"extract instead of compress"`
	Format  compress.Format `flag:"format" help:"compression format: zstd, gzip or flate"`
	Level   int             `flag:"level" default:"3" help:"compression level on the format's own scale"`
	Force   bool            `flag:"force" help:"overwrite the destination without asking"`
	Quiet   bool            `flag:"quiet" help:"suppress the spinner and summary"`
	Stats   bool            `flag:"stats" help:"report sizes and timing"`

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (c *zpack) Run() error {
	defer c.Input.Close()

	if c.Extract {
		return c.extract()
	}
	return c.compress()
}

func (c *zpack) compress() error {
	out := c.Output
	if out == nil {
		out = cinch.NewOutFile(c.Input.Name() + c.Format.Ext())
	}
	if err := c.confirmOverwrite(out.Name()); err != nil {
		return err
	}

	spin := c.spin("compressing " + filepath.Base(c.Input.Name()))
	defer spin.Stop()

	start := time.Now()
	zw, err := compress.NewWriter(out, c.Format, c.Level)
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, c.Input); err != nil {
		// Closing the encoder releases its worker goroutines.
		zw.Close()
		out.Close()
		return fmt.Errorf("compressing %s: %w", c.Input.Name(), err)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("compressing %s: %w", c.Input.Name(), err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	spin.Stop()
	c.summary("wrote", out, time.Since(start))
	return nil
}

func (c *zpack) extract() error {
	format, ok := ftdetect.Detect(c.Input)
	if !ok {
		format, ok = formatFromName(c.Input.Name())
	}
	if !ok {
		// Raw deflate has no magic number, so trust the switch.
		format = c.Format
	}

	out := c.Output
	if out == nil {
		out = cinch.NewOutFile(extractName(c.Input.Name()))
	}
	if err := c.confirmOverwrite(out.Name()); err != nil {
		return err
	}

	spin := c.spin("extracting " + filepath.Base(c.Input.Name()))
	defer spin.Stop()

	start := time.Now()
	zr, err := compress.NewReader(c.Input, format)
	if err != nil {
		return fmt.Errorf("reading %s as %s: %w", c.Input.Name(), format, err)
	}
	defer zr.Close()
	if _, err := io.Copy(out, zr); err != nil {
		out.Close()
		return fmt.Errorf("extracting %s: %w", c.Input.Name(), err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	spin.Stop()
	c.summary("extracted", out, time.Since(start))
	return nil
}

func (c *zpack) confirmOverwrite(path string) error {
	if c.Force {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	ok, err := cmdutil.Confirm(c.inR(), c.errW(), fmt.Sprintf("overwrite %s?", path))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("not overwriting %s", path)
	}
	return nil
}

// spin returns a spinner that is animating only when the session is
// interactive. Stop on a never started spinner is a no-op, so callers
// do not need to care which case they got.
func (c *zpack) spin(msg string) *tui.Spinner {
	s := tui.NewSpinner(c.errW(), tui.WithHideCursor(true),
		tui.WithColor(tui.ColorizerFor(c.errW()), tui.ColorCyan))
	if !c.Quiet && tui.IsTerminal(c.errW()) {
		s.Start(msg)
	}
	return s
}

func (c *zpack) summary(verb string, out *cinch.OutFile, elapsed time.Duration) {
	if c.Quiet {
		return
	}
	w := c.outW()
	fmt.Fprintf(w, "%s %s\n", color.GreenString(verb), out.Name())
	if !c.Stats {
		return
	}
	in, err := c.Input.Size()
	if err != nil {
		return
	}
	var written int64
	if fi, err := os.Stat(out.Name()); err == nil {
		written = fi.Size()
	}
	pct := 0.0
	if in > 0 {
		pct = float64(written) / float64(in) * 100
	}
	fmt.Fprintf(w, "  %d bytes in, %d bytes out (%.1f%%) in %v\n",
		in, written, pct, elapsed.Round(time.Millisecond))
}

func (c *zpack) inR() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

func (c *zpack) outW() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}

func (c *zpack) errW() io.Writer {
	if c.stderr != nil {
		return c.stderr
	}
	return os.Stderr
}

// formatFromName recognizes the conventional extensions of the
// supported formats.
func formatFromName(name string) (compress.Format, bool) {
	for _, f := range []compress.Format{compress.Zstd, compress.Gzip, compress.Flate} {
		if strings.HasSuffix(name, f.Ext()) {
			return f, true
		}
	}
	return 0, false
}

// extractName strips a recognized format extension, or appends ".out"
// when there is nothing to strip.
func extractName(name string) string {
	if f, ok := formatFromName(name); ok {
		return strings.TrimSuffix(name, f.Ext())
	}
	return name + ".out"
}

func main() {
	var p prefs
	if err := p.load(prefsFile); err != nil {
		log.Printf("failed to load preferences: %v", err)
	}

	cmd := &zpack{Level: p.Level, Quiet: p.Quiet}
	if p.Format != "" {
		f, err := compress.ParseFormat(p.Format)
		if err != nil {
			log.Printf("ignoring preferred format: %v", err)
		} else {
			cmd.Format = f
		}
	}

	r := &cinch.Runner{Info: &program.Info{
		Name:        "zpack",
		Version:     program.Normalize(program.Version()),
		Description: "compress and extract files",
	}}
	os.Exit(r.Main(cmd, os.Args[1:]))
}
