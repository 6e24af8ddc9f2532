// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fileutil answers the "does this generated file need
// regenerating" question: timestamp comparison with a pure two-time
// core, plus a content-identity check for when timestamps lie.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"time"
)

// StaleTimes reports whether a file generated at gen needs
// regenerating against a source modified at src. Equal timestamps are
// not stale.
func StaleTimes(gen, src time.Time) bool {
	return gen.Before(src)
}

// Stale reports whether generated needs regenerating from source: true
// when generated is missing or older than source. grace is slack the
// source may be newer by before counting. A missing source is an
// error, not staleness.
func Stale(generated, source string, grace time.Duration) (bool, error) {
	srcInfo, err := os.Stat(source)
	if err != nil {
		return false, fmt.Errorf("stat source: %w", err)
	}
	genInfo, err := os.Stat(generated)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat generated: %w", err)
	}
	return StaleTimes(genInfo.ModTime().Add(grace), srcInfo.ModTime()), nil
}

// Identical reports whether the contents of two files are identical.
// A missing file compares as not identical. Files of different sizes
// are decided without reading them.
func Identical(file1, file2 string) (bool, error) {
	info1, err := os.Stat(file1)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	info2, err := os.Stat(file2)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info1.Size() != info2.Size() {
		return false, nil
	}

	sum1, err := hashFile(file1)
	if err != nil {
		return false, err
	}
	sum2, err := hashFile(file2)
	if err != nil {
		return false, err
	}
	return bytes.Equal(sum1, sum2), nil
}

func hashFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return h.Sum(nil), nil
}
