// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"

	"github.com/hwregs/regen/ir"
)

// Address locates a register in the device address space: the peripheral
// base, the offsets of enclosing clusters, the register's own offset, an
// optional array stride and the configured bus shift. All emitted
// addresses derive from it, so the typed and raw renderings of the same
// register always agree.
type Address struct {
	Base   uint64
	Path   []uint64 // cluster offsets, outermost first
	Offset uint64
	Array  *ir.Array // nil for a scalar register
	Shift  uint
}

func (a Address) origin() uint64 {
	o := a.Base + a.Offset
	for _, p := range a.Path {
		o += p
	}
	return o
}

// Resolve returns the absolute address of a scalar register, or of
// element 0 of an array.
func (a Address) Resolve() uint64 {
	return a.origin() >> a.Shift
}

// Element returns the absolute address of array element n.
func (a Address) Element(item string, n int) (uint64, error) {
	if a.Array == nil {
		if n != 0 {
			return 0, &IndexError{Item: item, Index: n, Dim: 1}
		}
		return a.Resolve(), nil
	}
	if n < 0 || uint(n) >= a.Array.Dim {
		return 0, &IndexError{Item: item, Index: n, Dim: a.Array.Dim}
	}
	return (a.origin() + a.Array.Increment*uint64(n)) >> a.Shift, nil
}

// Elements returns the absolute addresses of all array elements, in
// index order. For a scalar register it returns one address.
func (a Address) Elements() []uint64 {
	if a.Array == nil {
		return []uint64{a.Resolve()}
	}
	out := make([]uint64, a.Array.Dim)
	for n := range out {
		out[n] = (a.origin() + a.Array.Increment*uint64(n)) >> a.Shift
	}
	return out
}

// Formula renders the address of element expr as a Go expression over a
// runtime base. The identity between Formula and Element for literal
// indices keeps raw and typed access interchangeable.
func (a Address) Formula(base, expr string) string {
	off := a.Offset
	for _, p := range a.Path {
		off += p
	}
	s := base
	if off != 0 {
		s = fmt.Sprintf("%s + %#x", s, off)
	}
	if a.Array != nil {
		s = fmt.Sprintf("%s + %#x*uintptr(%s)", s, a.Array.Increment, expr)
	}
	if a.Shift != 0 {
		s = fmt.Sprintf("(%s) >> %d", s, a.Shift)
	}
	return s
}
