// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmio

// R is a register reader: one loaded word with field extraction helpers.
// Generated reader types wrap R with one method per field.
type R[T Uint] struct {
	bits T
}

// MakeR returns a reader over an already loaded word, for code that
// needs field extraction on a value it obtained some other way.
func MakeR[T Uint](bits T) R[T] {
	return R[T]{bits}
}

// Bits returns the raw word.
func (r R[T]) Bits() T {
	return r.bits
}

// Field extracts the wi-bit field at bit offset off.
func (r R[T]) Field(off, wi uint) T {
	return r.bits >> off & Mask[T](wi)
}

// Bit returns a reader over the single bit at offset off.
func (r R[T]) Bit(off uint) BitR {
	return BitR{r.bits>>off&1 != 0}
}

// BitR is a single-bit field reader.
type BitR struct {
	set bool
}

// MakeBitR returns a reader over a known bit value.
func MakeBitR(set bool) BitR {
	return BitR{set}
}

// Bit returns the value of the bit.
func (b BitR) Bit() bool { return b.set }

// BitIsSet reports whether the bit is 1.
func (b BitR) BitIsSet() bool { return b.set }

// BitIsClear reports whether the bit is 0.
func (b BitR) BitIsClear() bool { return !b.set }

// W is a register writer: the word under construction between the seed
// baseline and the final store. Generated writer types wrap *W with one
// method per field, exposing only the operations the field's write
// semantics allow.
type W[T Uint] struct {
	bits T
}

// Bits returns the word as composed so far.
func (w *W[T]) Bits() T {
	return w.bits
}

// UnsafeBits replaces the whole word. The caller takes responsibility
// for every bit, including reserved ones: an invalid value may corrupt
// unrelated hardware state.
func (w *W[T]) UnsafeBits(v T) *W[T] {
	w.bits = v
	return w
}

func (w *W[T]) splice(off, wi uint, v T) {
	m := Mask[T](wi)
	w.bits = w.bits&^(m<<off) | (v&m)<<off
}
