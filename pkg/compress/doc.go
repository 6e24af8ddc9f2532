// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compress wraps plain byte streams in compressing writers and
// decompressing readers for a small set of formats.
//
// # Supported Formats
//
// The package supports three compression algorithms:
//
//   - zstd (Zstandard) - Modern compression with excellent ratio and speed
//   - gzip - Widely supported, good general-purpose compression
//   - flate - Basic compression with broad compatibility
//
// Formats are named by the Format enum. ParseFormat accepts the canonical
// names plus common aliases ("zst", "gz", "deflate"), and Format implements
// encoding.TextUnmarshaler so it can be parsed anywhere text-based
// configuration is read.
//
// # Compressing
//
// NewWriter layers a compressing writer over any io.Writer:
//
//	zw, err := compress.NewWriter(dst, compress.Zstd, 3)
//	if err != nil {
//	    // handle error
//	}
//	io.Copy(zw, src)
//	zw.Close()
//
// Close flushes the compressed stream but leaves the underlying writer
// open; the caller still owns dst.
//
// The level parameter follows each format's native scale: 1-22 for zstd,
// 1-9 for gzip and flate. Zstd levels are mapped onto the encoder's
// fastest/default/better/best presets.
//
// # Decompressing
//
// NewReader layers a decompressing reader over any io.Reader:
//
//	zr, err := compress.NewReader(src, compress.Gzip)
//	if err != nil {
//	    // handle error
//	}
//	defer zr.Close()
//	io.Copy(dst, zr)
//
// The format of an existing file can be sniffed with the ftdetect package,
// which recognizes the magic numbers of the formats supported here.
package compress
