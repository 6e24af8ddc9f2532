// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func toks(texts ...string) []Token {
	var ts []Token
	for _, s := range texts {
		ts = append(ts, Token{Text: s})
	}
	return ts
}

func bindProg(t *testing.T, prog any, tokens []Token, prefix string) error {
	t.Helper()
	slots, err := Discover(prog)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	return Bind(slots, tokens, prefix)
}

func TestBindOrdinalAndTrailingList(t *testing.T) {
	type prog struct {
		First string   `pos:"0"`
		Rest  []string `pos:"1*"`
	}

	p := prog{}
	if err := bindProg(t, &p, toks("a", "b", "c"), "--"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if p.First != "a" {
		t.Errorf("First = %q, want %q", p.First, "a")
	}
	if !reflect.DeepEqual(p.Rest, []string{"b", "c"}) {
		t.Errorf("Rest = %v, want [b c]", p.Rest)
	}
}

func TestBindSwitchStopsListRun(t *testing.T) {
	type prog struct {
		First string   `pos:"0"`
		Rest  []string `pos:"1*"`
		Flag  bool     `flag:"flag"`
	}

	p := prog{}
	if err := bindProg(t, &p, toks("a", "b", "--flag"), "--"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if p.First != "a" {
		t.Errorf("First = %q, want %q", p.First, "a")
	}
	if !reflect.DeepEqual(p.Rest, []string{"b"}) {
		t.Errorf("Rest = %v, want [b]", p.Rest)
	}
	if !p.Flag {
		t.Error("Flag = false, want true")
	}
}

func TestBindMissingRequiredOrdinal(t *testing.T) {
	type prog struct {
		Src *InFile `pos:"0"`
	}

	err := bindProg(t, &prog{}, nil, "--")
	var bindErr *BindError
	if !errors.As(err, &bindErr) {
		t.Fatalf("Bind() error = %v, want *BindError", err)
	}
	if got, want := bindErr.Error(), "missing required argument: input file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestBindDuplicateSwitch(t *testing.T) {
	type prog struct {
		Width int `flag:"width"`
	}

	err := bindProg(t, &prog{}, toks("--width", "10", "--width", "20"), "--")
	var bindErr *BindError
	if !errors.As(err, &bindErr) {
		t.Fatalf("Bind() error = %v, want *BindError", err)
	}
	if got, want := bindErr.Error(), "duplicate switch: --width"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestBindErrors(t *testing.T) {
	type prog struct {
		Name  string   `pos:"0?"`
		Width int      `flag:"width"`
		Tags  []string `flag:"tag"`
		Out   string   `flag:"out" required:"true"`
	}

	tests := []struct {
		name   string
		tokens []Token
		want   string
	}{
		{
			name:   "stray value after positions",
			tokens: toks("a", "zz", "--out", "x"),
			want:   `expected a switch, got "zz"`,
		},
		{
			name:   "unrecognized switch",
			tokens: toks("--nope"),
			want:   "unrecognized switch: --nope",
		},
		{
			name:   "switch at end without value",
			tokens: toks("--out", "x", "--width"),
			want:   "expected a value for --width",
		},
		{
			name:   "switch followed by switch",
			tokens: toks("--width", "--out", "x"),
			want:   "expected a value for --width",
		},
		{
			name:   "list switch without value",
			tokens: toks("--out", "x", "--tag"),
			want:   "expected a value for --tag",
		},
		{
			name:   "missing required switch",
			tokens: toks("a"),
			want:   "missing required switch: --out",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bindProg(t, &prog{}, tt.tokens, "--")
			var bindErr *BindError
			if !errors.As(err, &bindErr) {
				t.Fatalf("Bind() error = %v, want *BindError", err)
			}
			if got := bindErr.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// An optional positional slot never takes a switch-looking token, even
// one the user meant positionally. The value must be quoted to bind.
func TestBindOptionalOrdinalSkipsSwitchLooking(t *testing.T) {
	type prog struct {
		Target  string `pos:"0?"`
		Verbose bool   `flag:"verbose"`
	}

	p := prog{Target: "initial"}
	if err := bindProg(t, &p, toks("--verbose"), "--"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if p.Target != "initial" {
		t.Errorf("Target = %q, want initial value kept", p.Target)
	}
	if !p.Verbose {
		t.Error("Verbose = false, want true")
	}

	p = prog{}
	err := bindProg(t, &p, toks("--wat"), "--")
	if err == nil || !strings.Contains(err.Error(), "unrecognized switch: --wat") {
		t.Errorf("Bind() error = %v, want unrecognized switch", err)
	}
}

func TestBindQuotedTokenIsNotASwitch(t *testing.T) {
	type prog struct {
		Target  string `pos:"0?"`
		Verbose bool   `flag:"verbose"`
	}

	p := prog{}
	tokens := []Token{{Text: "--verbose", Quoted: true}}
	if err := bindProg(t, &p, tokens, "--"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if p.Target != "--verbose" {
		t.Errorf("Target = %q, want the quoted token", p.Target)
	}
	if p.Verbose {
		t.Error("Verbose = true, want false")
	}
}

func TestBindRequiredScalarConsumesAnything(t *testing.T) {
	type prog struct {
		First string `pos:"0"`
	}

	p := prog{}
	if err := bindProg(t, &p, toks("--odd"), "--"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if p.First != "--odd" {
		t.Errorf("First = %q, want %q", p.First, "--odd")
	}
}

func TestBindNamedList(t *testing.T) {
	type prog struct {
		Tags []string `flag:"tag" default:"all"`
	}

	p := prog{}
	if err := bindProg(t, &p, toks("--tag", "x", "y"), "--"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if !reflect.DeepEqual(p.Tags, []string{"x", "y"}) {
		t.Errorf("Tags = %v, want [x y]", p.Tags)
	}

	p = prog{}
	if err := bindProg(t, &p, nil, "--"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if !reflect.DeepEqual(p.Tags, []string{"all"}) {
		t.Errorf("Tags = %v, want the default kept", p.Tags)
	}
}

func TestBindRequiredOrdinalList(t *testing.T) {
	type prog struct {
		Files []string `pos:"0+"`
	}

	p := prog{}
	if err := bindProg(t, &p, toks("a", "b"), "--"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if !reflect.DeepEqual(p.Files, []string{"a", "b"}) {
		t.Errorf("Files = %v, want [a b]", p.Files)
	}

	err := bindProg(t, &prog{}, nil, "--")
	if err == nil || !strings.Contains(err.Error(), "missing required argument: files") {
		t.Errorf("Bind() error = %v, want missing required argument", err)
	}
}

func TestBindSlashPrefix(t *testing.T) {
	type prog struct {
		Mode string `flag:"mode"`
	}

	p := prog{}
	if err := bindProg(t, &p, toks("/mode", "fast"), "/"); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if p.Mode != "fast" {
		t.Errorf("Mode = %q, want %q", p.Mode, "fast")
	}
}

func TestBindEmptyPrefix(t *testing.T) {
	err := bindProg(t, &struct{}{}, nil, "")
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("Bind() error = %v, want *ConfigError", err)
	}
}

func TestBindConvertErrorPropagates(t *testing.T) {
	type prog struct {
		Count int `pos:"0"`
	}

	err := bindProg(t, &prog{}, toks("abc"), "--")
	var convErr *ConvertError
	if !errors.As(err, &convErr) {
		t.Fatalf("Bind() error = %v, want *ConvertError", err)
	}
	if convErr.Token != "abc" {
		t.Errorf("Token = %q, want %q", convErr.Token, "abc")
	}
}
