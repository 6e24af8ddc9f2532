// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env applies environment-variable overrides to preference
// structs through env:"NAME" field tags.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// Apply overwrites tagged fields of the struct pointed to by v from
// the environment: a field tagged env:"NAME" is set from PREFIX_NAME
// when that variable is present. Untagged fields and unset variables
// are left alone. Supported field kinds are string, bool, and the
// integer kinds.
func Apply(prefix string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("env: want a pointer to a struct, got %T", v)
	}
	sv := rv.Elem()
	st := sv.Type()
	for i := 0; i < sv.NumField(); i++ {
		tag := st.Field(i).Tag.Get("env")
		if tag == "" {
			continue
		}
		name := tag
		if prefix != "" {
			name = prefix + "_" + tag
		}
		val, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := setField(sv.Field(i), val); err != nil {
			return fmt.Errorf("env: %s: %v", name, err)
		}
	}
	return nil
}

func setField(f reflect.Value, val string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(val)
		return nil
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", val)
		}
		f.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(val, 10, f.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", val)
		}
		f.SetInt(n)
		return nil
	default:
		return fmt.Errorf("unsupported field type %s", f.Type())
	}
}
