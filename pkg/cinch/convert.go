// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// ConvertFunc turns one raw token into a typed value. The returned
// value must be assignable to the element type the function was
// registered for (a pointer to it is dereferenced automatically).
type ConvertFunc func(token string) (any, error)

var (
	converters = map[reflect.Type]ConvertFunc{}
	namedConvs = map[string]ConvertFunc{}
)

// Register installs fn as the converter for element type t, replacing
// any previous registration. Converters registered here take priority
// over every built-in strategy except the conv tag. Register from init
// or early in main; the registry is not locked.
func Register(t reflect.Type, fn ConvertFunc) {
	converters[t] = fn
}

// RegisterNamed installs fn under key for fields that opt in with a
// conv:"key" tag.
func RegisterNamed(key string, fn ConvertFunc) {
	namedConvs[key] = fn
}

func init() {
	Register(reflect.TypeOf(time.Duration(0)), func(token string) (any, error) {
		return time.ParseDuration(token)
	})
	Register(reflect.TypeOf(url.URL{}), func(token string) (any, error) {
		return url.Parse(token)
	})
	Register(reflect.TypeOf((*url.URL)(nil)), func(token string) (any, error) {
		return url.Parse(token)
	})
	Register(reflect.TypeOf(uuid.UUID{}), func(token string) (any, error) {
		return uuid.Parse(token)
	})
	Register(reflect.TypeOf(semver.Version{}), func(token string) (any, error) {
		return semver.NewVersion(token)
	})
	Register(reflect.TypeOf((*semver.Version)(nil)), func(token string) (any, error) {
		return semver.NewVersion(token)
	})
}

// converter kinds, resolved once per slot at discovery.
type convKind int

const (
	convFunc   convKind = iota // registered or hinted ConvertFunc
	convInFile                 // eager-open readable file
	convOutFile                // demand-open writable file
	convPath                   // file-or-directory reference
	convText                   // encoding.TextUnmarshaler
	convKindOf                 // primitive kinds via reflection
)

type converter struct {
	kind convKind
	fn   ConvertFunc
}

var (
	inFileType          = reflect.TypeOf((*InFile)(nil))
	outFileType         = reflect.TypeOf((*OutFile)(nil))
	pathType            = reflect.TypeOf(Path{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// resolveConverter picks the conversion strategy for element type t.
// Strategies are tried in a fixed order: the conv tag hint, the type
// registry, the built-in file types, TextUnmarshaler, and the
// primitive kinds. No match is a declaration error, reported by
// Discover before any token is examined.
func resolveConverter(t reflect.Type, hint string) (converter, error) {
	if hint != "" {
		fn, ok := namedConvs[hint]
		if !ok {
			return converter{}, fmt.Errorf("no converter registered under %q", hint)
		}
		return converter{kind: convFunc, fn: fn}, nil
	}
	if fn, ok := converters[t]; ok {
		return converter{kind: convFunc, fn: fn}, nil
	}
	switch t {
	case inFileType:
		return converter{kind: convInFile}, nil
	case outFileType:
		return converter{kind: convOutFile}, nil
	case pathType:
		return converter{kind: convPath}, nil
	}
	if t.Implements(textUnmarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return converter{kind: convText}, nil
	}
	if kindConvertible(t) {
		return converter{kind: convKindOf}, nil
	}
	return converter{}, fmt.Errorf("no conversion from string to %s", t)
}

func kindConvertible(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Pointer:
		return kindConvertible(t.Elem())
	}
	return false
}

// convert turns one token into a value of the slot's element type.
// Failures are *ConvertError, except eager input-file opens which are
// *ResourceError.
func (s *Slot) convert(text string) (reflect.Value, error) {
	switch s.conv.kind {
	case convFunc:
		v, err := s.conv.fn(text)
		if err != nil {
			return reflect.Value{}, &ConvertError{ItemName: s.ItemName, Token: text, Err: err}
		}
		rv, ok := coerceValue(reflect.ValueOf(v), s.Type)
		if !ok {
			return reflect.Value{}, &ConvertError{
				ItemName: s.ItemName,
				Token:    text,
				Err:      fmt.Errorf("converter returned %T, want %s", v, s.Type),
			}
		}
		return rv, nil
	case convInFile:
		in, err := OpenInFile(text)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(in), nil
	case convOutFile:
		return reflect.ValueOf(NewOutFile(text)), nil
	case convPath:
		return reflect.ValueOf(newPath(text)), nil
	case convText:
		pv := reflect.New(s.Type)
		deref := true
		if s.Type.Kind() == reflect.Pointer {
			pv = reflect.New(s.Type.Elem())
			deref = false
		}
		if err := pv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return reflect.Value{}, &ConvertError{ItemName: s.ItemName, Token: text, Err: err}
		}
		if deref {
			return pv.Elem(), nil
		}
		return pv, nil
	default:
		pv := reflect.New(s.Type).Elem()
		if err := setKind(pv, text); err != nil {
			return reflect.Value{}, &ConvertError{ItemName: s.ItemName, Token: text, Err: err}
		}
		return pv, nil
	}
}

// coerceValue adapts rv to type want, dereferencing or taking the
// address of one pointer level when that is all that separates them.
func coerceValue(rv reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if !rv.IsValid() {
		return reflect.Value{}, false
	}
	if rv.Type().AssignableTo(want) {
		return rv, true
	}
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Type().Elem().AssignableTo(want) {
		return rv.Elem(), true
	}
	if want.Kind() == reflect.Pointer && rv.Type().AssignableTo(want.Elem()) {
		pv := reflect.New(want.Elem())
		pv.Elem().Set(rv)
		return pv, true
	}
	return reflect.Value{}, false
}

// setKind parses text into v according to v's reflect.Kind. Named
// types parse through their underlying kind, which is what makes
// enum-style string and integer types work without registration.
func setKind(v reflect.Value, text string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(text)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("invalid bool value %q: %w", text, err)
		}
		v.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(text, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q: %w", text, err)
		}
		v.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(text, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q: %w", text, err)
		}
		v.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q: %w", text, err)
		}
		v.SetFloat(f)
		return nil

	case reflect.Pointer:
		pv := reflect.New(v.Type().Elem())
		if err := setKind(pv.Elem(), text); err != nil {
			return err
		}
		v.Set(pv)
		return nil

	default:
		return fmt.Errorf("unsupported field type %s", v.Type())
	}
}
