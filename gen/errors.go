// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import "fmt"

// ConfigError reports an invalid configuration value. It is returned
// before any generation begins.
type ConfigError struct {
	Key string // configuration key, eg. "target"
	Val string // offending value
	Why string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s=%q: %s", e.Key, e.Val, e.Why)
}

// WidthError reports a register or field width outside the supported
// 1..64 range. Generation of the offending item stops but its siblings
// are still generated.
type WidthError struct {
	Item  string // full path of the register or field
	Width uint
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("%s: unsupported width %d", e.Item, e.Width)
}

// IndexError reports an array index outside [0, Dim). Address
// calculation never produces it for in-range indices.
type IndexError struct {
	Item  string
	Index int
	Dim   uint
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Item, e.Index, e.Dim)
}
