// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdutil holds small helpers shared by the command-line tools.
package cmdutil

import (
	"fmt"
	"io"
	"strings"
)

// Confirm prints msg followed by a [y/N] prompt to w and reads one line
// from r. It returns true only for "y" or "yes", case insensitive; an
// empty line or anything else declines.
func Confirm(r io.Reader, w io.Writer, msg string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N]: ", msg)

	var confirm string
	_, err := fmt.Fscanln(r, &confirm)
	if err != nil && err.Error() != "unexpected newline" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(confirm) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
