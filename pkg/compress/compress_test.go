// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compress

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{
			name:  "zstd",
			input: "zstd",
			want:  Zstd,
		},
		{
			name:  "zst alias",
			input: "zst",
			want:  Zstd,
		},
		{
			name:  "gzip",
			input: "gzip",
			want:  Gzip,
		},
		{
			name:  "gz alias",
			input: "gz",
			want:  Gzip,
		},
		{
			name:  "flate",
			input: "flate",
			want:  Flate,
		},
		{
			name:  "deflate alias",
			input: "deflate",
			want:  Flate,
		},
		{
			name:  "case insensitive",
			input: "Gzip",
			want:  Gzip,
		},
		{
			name:    "unknown",
			input:   "brotli",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFormat(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatUnmarshalText(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("zst")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if f != Zstd {
		t.Errorf("UnmarshalText(zst) = %v, want %v", f, Zstd)
	}
	if err := f.UnmarshalText([]byte("nope")); err == nil {
		t.Error("UnmarshalText(nope) succeeded, want error")
	}
}

func TestFormatStringAndExt(t *testing.T) {
	tests := []struct {
		format  Format
		wantStr string
		wantExt string
	}{
		{Zstd, "zstd", ".zst"},
		{Gzip, "gzip", ".gz"},
		{Flate, "flate", ".flate"},
	}

	for _, tt := range tests {
		t.Run(tt.wantStr, func(t *testing.T) {
			if got := tt.format.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
			if got := tt.format.Ext(); got != tt.wantExt {
				t.Errorf("Ext() = %q, want %q", got, tt.wantExt)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	payload := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 200)

	tests := []struct {
		name   string
		format Format
		level  int
	}{
		{
			name:   "zstd default level",
			format: Zstd,
			level:  3,
		},
		{
			name:   "zstd max level",
			format: Zstd,
			level:  19,
		},
		{
			name:   "gzip",
			format: Gzip,
			level:  6,
		},
		{
			name:   "gzip best",
			format: Gzip,
			level:  9,
		},
		{
			name:   "flate",
			format: Flate,
			level:  6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, tt.format, tt.level)
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}
			if _, err := io.WriteString(w, payload); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			if buf.Len() >= len(payload) {
				t.Errorf("compressed size %d >= original %d", buf.Len(), len(payload))
			}

			r, err := NewReader(&buf, tt.format)
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != payload {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
			}
		})
	}
}

func TestNewWriterLeavesUnderlyingOpen(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, Gzip, 6)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	io.WriteString(w, "hello")
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The underlying buffer is still usable after the compressor closes.
	buf.WriteString("trailer")
	if !bytes.HasSuffix(buf.Bytes(), []byte("trailer")) {
		t.Error("write to underlying buffer after Close failed")
	}
}

func TestNewReaderBadData(t *testing.T) {
	r, err := NewReader(strings.NewReader("not compressed"), Gzip)
	if err == nil {
		r.Close()
		t.Fatal("NewReader on garbage gzip succeeded, want error")
	}
}
