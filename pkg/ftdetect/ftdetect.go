// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ftdetect sniffs the compression format of a stream from its
// magic number.
package ftdetect

import (
	"io"

	"github.com/cinchrun/cinch/pkg/compress"
)

// Detect reports the compression format r starts with, if any. It reads
// a few bytes from the current position and seeks back before returning,
// so r can be handed to a decompressor unchanged.
//
// Raw deflate streams carry no magic number and are never detected.
func Detect(r io.ReadSeeker) (compress.Format, bool) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}
	var magic [4]byte
	n, _ := io.ReadFull(r, magic[:])
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return 0, false
	}
	if isZstd(magic[:n]) {
		return compress.Zstd, true
	}
	if isGzip(magic[:n]) {
		return compress.Gzip, true
	}
	return 0, false
}

func isZstd(bs []byte) bool {
	return len(bs) >= 4 && bs[0] == 0x28 && bs[1] == 0xb5 && bs[2] == 0x2f && bs[3] == 0xfd
}

func isGzip(bs []byte) bool {
	return len(bs) >= 2 && bs[0] == 0x1f && bs[1] == 0x8b
}
