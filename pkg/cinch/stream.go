// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import (
	"os"
	"strings"
)

// InFile is a readable file argument. The file is opened when the
// token is converted, so a missing path is reported during binding
// rather than on first read.
type InFile struct {
	f *os.File
}

// OpenInFile opens path for reading. A failure is reported as a
// *ResourceError. Binding does this for *InFile slots; it is exported
// for programs that build the value themselves.
func OpenInFile(path string) (*InFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	return &InFile{f: f}, nil
}

func (in *InFile) Read(p []byte) (int, error) {
	return in.f.Read(p)
}

func (in *InFile) Seek(offset int64, whence int) (int64, error) {
	return in.f.Seek(offset, whence)
}

// Name returns the path the file was opened from.
func (in *InFile) Name() string {
	return in.f.Name()
}

// Size returns the current size of the file in bytes.
func (in *InFile) Size() (int64, error) {
	fi, err := in.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// Close closes the file. Closing twice is a no-op.
func (in *InFile) Close() error {
	if in.f == nil {
		return nil
	}
	f := in.f
	in.f = nil
	return f.Close()
}

// OutFile is a writable file argument with demand-open semantics: the
// file is created on the first Write, so a declared output slot that
// nothing writes through leaves no file behind.
type OutFile struct {
	path string
	f    *os.File
	err  error // sticky open failure
}

// NewOutFile returns an OutFile for path without touching the
// filesystem.
func NewOutFile(path string) *OutFile {
	return &OutFile{path: path}
}

// Write creates or truncates the file on the first call, then writes p.
// An open failure is sticky and returned as a *ResourceError from this
// and every later call.
func (o *OutFile) Write(p []byte) (int, error) {
	if o.err != nil {
		return 0, o.err
	}
	if o.f == nil {
		f, err := os.Create(o.path)
		if err != nil {
			o.err = &ResourceError{Path: o.path, Err: err}
			return 0, o.err
		}
		o.f = f
	}
	return o.f.Write(p)
}

// Name returns the path the file will be (or was) created at.
func (o *OutFile) Name() string {
	return o.path
}

// Created reports whether a Write has opened the file.
func (o *OutFile) Created() bool {
	return o.f != nil
}

// Close closes the file if it was ever created. Closing an unwritten
// or already-closed OutFile is a no-op.
func (o *OutFile) Close() error {
	if o.f == nil {
		return nil
	}
	f := o.f
	o.f = nil
	return f.Close()
}

// Path is a filesystem path argument. Dir is resolved when the token
// is converted: a trailing separator forces a directory reference, and
// otherwise an existing directory at the path wins over the file
// interpretation.
type Path struct {
	Name string
	Dir  bool
}

func newPath(text string) Path {
	p := Path{Name: text}
	if strings.HasSuffix(text, "/") || strings.HasSuffix(text, string(os.PathSeparator)) {
		p.Dir = true
		return p
	}
	if fi, err := os.Stat(text); err == nil && fi.IsDir() {
		p.Dir = true
	}
	return p
}

func (p Path) String() string {
	return p.Name
}
