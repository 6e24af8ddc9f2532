// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compress

import (
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Format identifies a compression format.
type Format int

const (
	Zstd Format = iota
	Gzip
	Flate
)

func (f Format) String() string {
	switch f {
	case Zstd:
		return "zstd"
	case Gzip:
		return "gzip"
	case Flate:
		return "flate"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the conventional file extension for the format,
// including the dot.
func (f Format) Ext() string {
	switch f {
	case Zstd:
		return ".zst"
	case Gzip:
		return ".gz"
	case Flate:
		return ".flate"
	}
	return ""
}

// ParseFormat recognizes the format names and their common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "zstd", "zst":
		return Zstd, nil
	case "gzip", "gz":
		return Gzip, nil
	case "flate", "deflate":
		return Flate, nil
	}
	return 0, fmt.Errorf("unknown compression format %q", s)
}

// UnmarshalText parses a format name, so a Format field can be bound
// straight from a command-line token.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// NewWriter returns a writer that compresses into w. level follows the
// format's own scale: 1-22 for zstd, 1-9 for gzip and flate. Closing
// the returned writer flushes the stream but does not close w.
func NewWriter(w io.Writer, f Format, level int) (io.WriteCloser, error) {
	switch f {
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	case Gzip:
		return gzip.NewWriterLevel(w, level)
	case Flate:
		return flate.NewWriter(w, level)
	}
	return nil, fmt.Errorf("unknown compression format %v", f)
}

// NewReader returns a reader that decompresses from r.
func NewReader(r io.Reader, f Format) (io.ReadCloser, error) {
	switch f {
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case Gzip:
		return gzip.NewReader(r)
	case Flate:
		return flate.NewReader(r), nil
	}
	return nil, fmt.Errorf("unknown compression format %v", f)
}
