// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cinchrun/cinch/pkg/cinch"
	"github.com/cinchrun/cinch/pkg/program"
)

type greet struct {
	Name     string   `pos:"0" help:"who to greet"`
	Extras   []string `pos:"1*" help:"more people to greet"`
	Greeting string   `flag:"greeting" default:"Hello" help:"salutation to use"`
	Shout    bool     `flag:"shout" help:"print in capitals"`
}

func (g *greet) Run() error {
	for _, name := range append([]string{g.Name}, g.Extras...) {
		line := fmt.Sprintf("%s, %s!", g.Greeting, name)
		if g.Shout {
			line = strings.ToUpper(line)
		}
		fmt.Println(line)
	}
	return nil
}

func main() {
	r := &cinch.Runner{Info: &program.Info{
		Name:        "greet",
		Version:     "1.0.0",
		Description: "greet people from the command line",
	}}
	os.Exit(r.Main(&greet{}, os.Args[1:]))
}
