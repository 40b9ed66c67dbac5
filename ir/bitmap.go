// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "fmt"

// Mask returns the bitmask of the field within its register: Width ones
// shifted left by Offset. A 64-bit wide field at offset 0 yields all ones.
func (f *Field) Mask() uint64 {
	if f.Width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1)<<f.Width - 1) << f.Offset
}

// Check reports an error if the field does not fit a register of the
// given bit width.
func (f *Field) Check(regWidth uint) error {
	if f.Width == 0 {
		return fmt.Errorf("field %s: zero bit width", f.Name)
	}
	if f.Offset+f.Width > regWidth {
		return fmt.Errorf(
			"field %s: bits [%d:%d] do not fit a %d-bit register",
			f.Name, f.Offset+f.Width-1, f.Offset, regWidth,
		)
	}
	return nil
}

// OneToModify returns the bitmap of register bits the hardware acts on
// when written 1. A written word must keep these bits 0 unless the caller
// names them, so the write baseline clears them out of the reset value.
func (r *Register) OneToModify() uint64 {
	var m uint64
	for _, f := range r.Fields {
		if f.Write.ActsOnOne() {
			m |= f.Mask()
		}
	}
	return m
}

// ZeroToModify returns the bitmap of register bits the hardware acts on
// when written 0. A written word must keep these bits 1 unless the caller
// names them, so the write baseline ORs them in.
func (r *Register) ZeroToModify() uint64 {
	var m uint64
	for _, f := range r.Fields {
		if f.Write.ActsOnZero() {
			m |= f.Mask()
		}
	}
	return m
}

// WriteBaseline is the word a register write starts from before the
// caller touches any field: the reset value with acts-on-one bits forced
// to 0 and acts-on-zero bits forced to 1.
func (r *Register) WriteBaseline() uint64 {
	return r.Reset&^r.OneToModify() | r.ZeroToModify()
}

// ModifyBaseline is the word a read-modify-write starts from, given the
// freshly loaded value: hardware state preserved except for act-on-write
// bits, which are reset to neutral so they cannot re-trigger.
func (r *Register) ModifyBaseline(current uint64) uint64 {
	return current&^r.OneToModify() | r.ZeroToModify()
}
