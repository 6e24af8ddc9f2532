// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDiscoverOrder(t *testing.T) {
	type prog struct {
		Output  string   `flag:"output" required:"true"`
		Verbose bool     `flag:"verbose"`
		Count   int      `flag:"count" required:"true"`
		Input   string   `pos:"0"`
		Rest    []string `pos:"1*"`
		Mode    string   `flag:"mode"`
	}

	slots, err := Discover(&prog{})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	var names []string
	for _, s := range slots {
		names = append(names, s.Name)
	}
	want := []string{"input", "rest", "count", "output", "mode", "verbose"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("slot order = %v, want %v", names, want)
	}
}

func TestDiscoverIdempotent(t *testing.T) {
	type prog struct {
		Input  string   `pos:"0" help:"what to read"`
		Rest   []string `pos:"1*"`
		Width  int      `flag:"width" default:"80"`
		Force  bool     `flag:"force"`
		Output string   `flag:"output" required:"true" name:"destination"`
	}

	p := prog{}
	first, err := Discover(&p)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	second, err := Discover(&p)
	if err != nil {
		t.Fatalf("second Discover() error = %v", err)
	}
	opts := []cmp.Option{
		cmpopts.IgnoreUnexported(Slot{}),
		cmp.Comparer(func(a, b reflect.Type) bool { return a == b }),
	}
	if diff := cmp.Diff(first, second, opts...); diff != "" {
		t.Errorf("Discover() not idempotent (-first +second):\n%s", diff)
	}
}

func TestDiscoverShapes(t *testing.T) {
	type prog struct {
		Src   string        `pos:"0"`
		Dst   string        `pos:"1?"`
		Level int           `flag:"level"`
		Tags  []string      `flag:"tag"`
		Quiet bool          `flag:"quiet"`
		Files []*InFile     `flag:"file" required:"true"`
		Wait  time.Duration `flag:"wait"`
	}

	slots, err := Discover(&prog{})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	byName := make(map[string]*Slot)
	for _, s := range slots {
		byName[s.Name] = s
	}

	tests := []struct {
		name     string
		ordinal  int
		required bool
		list     bool
		flag     bool
		elemType reflect.Type
	}{
		{name: "src", ordinal: 0, required: true, elemType: reflect.TypeOf("")},
		{name: "dst", ordinal: 1, elemType: reflect.TypeOf("")},
		{name: "level", ordinal: NotOrdinal, elemType: reflect.TypeOf(0)},
		{name: "tag", ordinal: NotOrdinal, list: true, elemType: reflect.TypeOf("")},
		{name: "quiet", ordinal: NotOrdinal, flag: true, elemType: reflect.TypeOf(false)},
		{name: "file", ordinal: NotOrdinal, required: true, list: true, elemType: reflect.TypeOf((*InFile)(nil))},
		{name: "wait", ordinal: NotOrdinal, elemType: reflect.TypeOf(time.Duration(0))},
	}
	for _, tt := range tests {
		s := byName[tt.name]
		if s == nil {
			t.Fatalf("slot %q not discovered", tt.name)
		}
		if s.Ordinal != tt.ordinal {
			t.Errorf("%s: Ordinal = %d, want %d", tt.name, s.Ordinal, tt.ordinal)
		}
		if s.Required != tt.required {
			t.Errorf("%s: Required = %v, want %v", tt.name, s.Required, tt.required)
		}
		if s.List != tt.list {
			t.Errorf("%s: List = %v, want %v", tt.name, s.List, tt.list)
		}
		if s.Flag != tt.flag {
			t.Errorf("%s: Flag = %v, want %v", tt.name, s.Flag, tt.flag)
		}
		if s.Type != tt.elemType {
			t.Errorf("%s: Type = %v, want %v", tt.name, s.Type, tt.elemType)
		}
	}
}

func TestDiscoverErrors(t *testing.T) {
	tests := []struct {
		name string
		prog any
		want string // substring of the ConfigError reason
	}{
		{
			name: "not a struct pointer",
			prog: 42,
			want: "non-nil pointer to a struct",
		},
		{
			name: "required flag",
			prog: &struct {
				Force bool `flag:"force" required:"true"`
			}{},
			want: "a flag cannot be required",
		},
		{
			name: "positional bool",
			prog: &struct {
				On bool `pos:"0"`
			}{},
			want: "a flag cannot be positional",
		},
		{
			name: "list of bool",
			prog: &struct {
				On []bool `flag:"on"`
			}{},
			want: "a flag cannot be list-valued",
		},
		{
			name: "optional ordinal before another ordinal",
			prog: &struct {
				A string `pos:"0?"`
				B string `pos:"1"`
			}{},
			want: "must be the last positional slot",
		},
		{
			name: "list ordinal before another ordinal",
			prog: &struct {
				A []string `pos:"0*"`
				B string   `pos:"1"`
			}{},
			want: "must be the last positional slot",
		},
		{
			name: "duplicate ordinal",
			prog: &struct {
				A string `pos:"0"`
				B string `pos:"0"`
			}{},
			want: "duplicate ordinal 0",
		},
		{
			name: "ordinal gap",
			prog: &struct {
				A string `pos:"0"`
				B string `pos:"2"`
			}{},
			want: "gapless",
		},
		{
			name: "duplicate switch name",
			prog: &struct {
				A string `flag:"x"`
				B string `flag:"x"`
			}{},
			want: `duplicate switch name "x"`,
		},
		{
			name: "name with prefix character",
			prog: &struct {
				A string `flag:"dry-run"`
			}{},
			want: "reserved character",
		},
		{
			name: "name with space",
			prog: &struct {
				A string `flag:"dry run"`
			}{},
			want: "reserved character",
		},
		{
			name: "both flag and pos tags",
			prog: &struct {
				A string `flag:"a" pos:"0"`
			}{},
			want: "both a switch and positional",
		},
		{
			name: "list pos tag on scalar field",
			prog: &struct {
				A string `pos:"0*"`
			}{},
			want: "needs a slice field",
		},
		{
			name: "slice field without list pos tag",
			prog: &struct {
				A []string `pos:"0"`
			}{},
			want: "pos tag ending in * or +",
		},
		{
			name: "negative ordinal",
			prog: &struct {
				A string `pos:"-1"`
			}{},
			want: "bad pos tag",
		},
		{
			name: "no conversion for element type",
			prog: &struct {
				A chan int `flag:"a"`
			}{},
			want: "no conversion from string to chan int",
		},
		{
			name: "unknown converter hint",
			prog: &struct {
				A string `flag:"a" conv:"nope"`
			}{},
			want: `no converter registered under "nope"`,
		},
		{
			name: "bad default",
			prog: &struct {
				A int `flag:"a" default:"ten"`
			}{},
			want: `bad default "ten"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Discover(tt.prog)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Discover() error = %v, want *ConfigError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Discover() error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverItemNames(t *testing.T) {
	type prog struct {
		In    *InFile    `pos:"0"`
		Outs  []*OutFile `flag:"out"`
		Where Path       `flag:"where"`
		Count int        `flag:"count"`
		Src   *InFile    `flag:"src" name:"source archive"`
	}

	slots, err := Discover(&prog{})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := map[string]string{
		"in":    "input file",
		"out":   "output files",
		"where": "path",
		"count": "count",
		"src":   "source archive",
	}
	for _, s := range slots {
		if got := want[s.Name]; s.ItemName != got {
			t.Errorf("%s: ItemName = %q, want %q", s.Name, s.ItemName, got)
		}
	}
}

func TestDiscoverDefaults(t *testing.T) {
	type prog struct {
		Level int           `flag:"level" default:"3"`
		Wait  time.Duration `flag:"wait" default:"2s"`
		Tags  []string      `flag:"tag" default:"all"`
		Name  string        `flag:"name" default:"anon"`
	}

	p := prog{Name: "preset"}
	if _, err := Discover(&p); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if p.Level != 3 {
		t.Errorf("Level = %d, want 3", p.Level)
	}
	if p.Wait != 2*time.Second {
		t.Errorf("Wait = %v, want 2s", p.Wait)
	}
	if !reflect.DeepEqual(p.Tags, []string{"all"}) {
		t.Errorf("Tags = %v, want [all]", p.Tags)
	}
	if p.Name != "preset" {
		t.Errorf("Name = %q, want preset value kept", p.Name)
	}
}

func TestLowerFirst(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Input", "input"},
		{"URLCount", "uRLCount"},
		{"x", "x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := lowerFirst(tt.in); got != tt.want {
			t.Errorf("lowerFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
