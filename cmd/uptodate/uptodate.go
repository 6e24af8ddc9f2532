// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cinchrun/cinch/pkg/cinch"
	"github.com/cinchrun/cinch/pkg/fileutil"
	"github.com/cinchrun/cinch/pkg/program"
	"golang.org/x/sync/errgroup"
)

// exitStale tells build scripts the target needs regenerating, distinct
// from exit 1 which means the check itself failed.
const exitStale = 3

type uptodate struct {
	Target  cinch.Path   `pos:"0" help:"the generated file to check"`
	Sources []cinch.Path `pos:"1+" help:"files the target was generated from"`

	Content bool          `flag:"content" help:"ignore touched sources whose bytes still match the target"`
	Grace   time.Duration `flag:"grace" default:"0s" help:"how much newer a source may be without counting"`

	// ExitCode is picked up by the runner after a clean Run.
	ExitCode int

	stdout io.Writer
}

func (c *uptodate) Run() error {
	stale, reason, err := c.check()
	if err != nil {
		return err
	}
	if stale {
		fmt.Fprintf(c.outW(), "stale: %s\n", reason)
		c.ExitCode = exitStale
		return nil
	}
	fmt.Fprintf(c.outW(), "%s is up to date\n", c.Target)
	return nil
}

func (c *uptodate) check() (bool, string, error) {
	if _, err := os.Stat(c.Target.Name); os.IsNotExist(err) {
		return true, fmt.Sprintf("%s does not exist", c.Target), nil
	}

	var candidates []cinch.Path
	for _, src := range c.Sources {
		stale, err := fileutil.Stale(c.Target.Name, src.Name, c.Grace)
		if err != nil {
			return false, "", err
		}
		if stale {
			candidates = append(candidates, src)
		}
	}
	if len(candidates) == 0 {
		return false, "", nil
	}
	if !c.Content {
		return true, fmt.Sprintf("%s is newer than %s", candidates[0], c.Target), nil
	}

	// A touched source only counts when its bytes differ from the
	// target. Hash the candidates concurrently.
	differs := make([]bool, len(candidates))
	var g errgroup.Group
	for i, src := range candidates {
		i, src := i, src
		g.Go(func() error {
			same, err := fileutil.Identical(c.Target.Name, src.Name)
			if err != nil {
				return err
			}
			differs[i] = !same
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, "", err
	}
	for i, d := range differs {
		if d {
			return true, fmt.Sprintf("%s differs from %s", candidates[i], c.Target), nil
		}
	}
	return false, "", nil
}

func (c *uptodate) outW() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}

func main() {
	r := &cinch.Runner{Info: &program.Info{
		Name:        "uptodate",
		Version:     program.Normalize(program.Version()),
		Description: "check whether a generated file is newer than its sources",
	}}
	os.Exit(r.Main(&uptodate{}, os.Args[1:]))
}
