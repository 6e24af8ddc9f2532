// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package program carries the display metadata a command-line tool
// hands to the help renderer: name, version, one-line description, and
// copyright. Build one Info in main and pass it by reference; nothing
// here is global.
package program

import (
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Info describes a program to the help renderer's banner. All fields
// are optional; empty fields are omitted from the banner.
type Info struct {
	Name        string
	Version     string
	Description string
	Copyright   string
}

// buildVersion is injected at build time via -ldflags.
var buildVersion string

// Version returns the release version if set, otherwise falls back to
// the commit hash.
func Version() string {
	if v := strings.TrimSpace(buildVersion); v != "" {
		return v
	}
	return VersionCommit()
}

// VersionCommit returns the commit hash of the current build.
func VersionCommit() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var dirty bool
	var commit string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if commit == "" {
		return "dev"
	}

	if len(commit) >= 9 {
		commit = commit[:9]
	}
	if dirty {
		commit += "+dirty"
	}
	return commit
}

// Normalize canonicalizes a semantic version string, so "1.2" and
// "v1.2.0" both render as "1.2.0". Strings that do not parse as
// semantic versions come back unchanged, which keeps commit-hash
// versions intact.
func Normalize(v string) string {
	sv, err := semver.NewVersion(strings.TrimSpace(v))
	if err != nil {
		return v
	}
	return sv.String()
}
