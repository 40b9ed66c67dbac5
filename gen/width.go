// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

// RawType maps a register width to the Go type of its raw word. Only
// the four exact machine widths are valid register widths.
func RawType(width uint) (string, bool) {
	switch width {
	case 8:
		return "uint8", true
	case 16:
		return "uint16", true
	case 32:
		return "uint32", true
	case 64:
		return "uint64", true
	}
	return "", false
}

// FieldType maps a field width to the narrowest Go type that holds its
// value. Single-bit fields map to bool.
func FieldType(width uint) (string, bool) {
	switch {
	case width == 0:
		return "", false
	case width == 1:
		return "bool", true
	case width <= 8:
		return "uint8", true
	case width <= 16:
		return "uint16", true
	case width <= 32:
		return "uint32", true
	case width <= 64:
		return "uint64", true
	}
	return "", false
}
