// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmio

// FieldW writes a multi-bit field. Its raw form is unchecked: generated
// code layers a checked Variant method over it when the field has a
// closed enumerated value set.
type FieldW[T Uint] struct {
	w   *W[T]
	off uint
	wi  uint
}

// Field returns a writer for the wi-bit field at bit offset off.
func Field[T Uint](w *W[T], off, wi uint) FieldW[T] {
	return FieldW[T]{w, off, wi}
}

// UnsafeBits splices the raw value into the field:
//
//	word = word &^ (mask(wi)<<off) | (v & mask(wi)) << off
//
// The caller guarantees v is valid for the hardware; this is not checked
// and a wrong value may put the device into an undocumented state.
func (f FieldW[T]) UnsafeBits(v T) *W[T] {
	f.w.splice(f.off, f.wi, v)
	return f.w
}

// SafeFieldW is a FieldW for fields whose every raw value is valid:
// full-range fields and fields whose enumerated set is closed over the
// width. Bits is checked by construction.
type SafeFieldW[T Uint] struct {
	FieldW[T]
}

// SafeField returns a checked writer for the wi-bit field at offset off.
func SafeField[T Uint](w *W[T], off, wi uint) SafeFieldW[T] {
	return SafeFieldW[T]{Field(w, off, wi)}
}

// Bits splices the value into the field.
func (f SafeFieldW[T]) Bits(v T) *W[T] {
	return f.UnsafeBits(v)
}

// BitW writes a single read-write bit: the stored bit becomes the
// written value.
type BitW[T Uint] struct {
	w   *W[T]
	off uint
}

// Bit returns a writer for the plain read-write bit at offset off.
func Bit[T Uint](w *W[T], off uint) BitW[T] {
	return BitW[T]{w, off}
}

// Bit writes the bit.
func (b BitW[T]) Bit(v bool) *W[T] {
	b.w.bits &^= T(1) << b.off
	if v {
		b.w.bits |= T(1) << b.off
	}
	return b.w
}

// SetBit sets the bit.
func (b BitW[T]) SetBit() *W[T] {
	b.w.bits |= T(1) << b.off
	return b.w
}

// ClearBit clears the bit.
func (b BitW[T]) ClearBit() *W[T] {
	b.w.bits &^= T(1) << b.off
	return b.w
}

// BitW1S writes a set-only (1S) bit: writing 1 sets it, writing 0 leaves
// it untouched, so only SetBit is exposed.
type BitW1S[T Uint] struct {
	w   *W[T]
	off uint
}

// Bit1S returns a writer for the set-only bit at offset off.
func Bit1S[T Uint](w *W[T], off uint) BitW1S[T] {
	return BitW1S[T]{w, off}
}

// SetBit sets the bit.
func (b BitW1S[T]) SetBit() *W[T] {
	b.w.bits |= T(1) << b.off
	return b.w
}

// BitW0C writes a clear-only (0C) bit: writing 0 clears it, writing 1
// leaves it untouched, so only ClearBit is exposed.
type BitW0C[T Uint] struct {
	w   *W[T]
	off uint
}

// Bit0C returns a writer for the clear-only bit at offset off.
func Bit0C[T Uint](w *W[T], off uint) BitW0C[T] {
	return BitW0C[T]{w, off}
}

// ClearBit clears the bit.
func (b BitW0C[T]) ClearBit() *W[T] {
	b.w.bits &^= T(1) << b.off
	return b.w
}

// BitW1C writes a clear-by-one (1C) bit: the hardware clears it when 1
// is written, so ClearBitByOne stores a 1.
type BitW1C[T Uint] struct {
	w   *W[T]
	off uint
}

// Bit1C returns a writer for the clear-by-one bit at offset off.
func Bit1C[T Uint](w *W[T], off uint) BitW1C[T] {
	return BitW1C[T]{w, off}
}

// ClearBitByOne clears the field bit by passing one.
func (b BitW1C[T]) ClearBitByOne() *W[T] {
	b.w.bits |= T(1) << b.off
	return b.w
}

// BitW0S writes a set-by-zero (0S) bit: the hardware sets it when 0 is
// written, so SetBitByZero stores a 0.
type BitW0S[T Uint] struct {
	w   *W[T]
	off uint
}

// Bit0S returns a writer for the set-by-zero bit at offset off.
func Bit0S[T Uint](w *W[T], off uint) BitW0S[T] {
	return BitW0S[T]{w, off}
}

// SetBitByZero sets the field bit by passing zero.
func (b BitW0S[T]) SetBitByZero() *W[T] {
	b.w.bits &^= T(1) << b.off
	return b.w
}

// BitW1T writes a toggle-by-one (1T) bit.
type BitW1T[T Uint] struct {
	w   *W[T]
	off uint
}

// Bit1T returns a writer for the toggle-by-one bit at offset off.
func Bit1T[T Uint](w *W[T], off uint) BitW1T[T] {
	return BitW1T[T]{w, off}
}

// ToggleBit toggles the field bit by passing one.
func (b BitW1T[T]) ToggleBit() *W[T] {
	b.w.bits |= T(1) << b.off
	return b.w
}

// BitW0T writes a toggle-by-zero (0T) bit.
type BitW0T[T Uint] struct {
	w   *W[T]
	off uint
}

// Bit0T returns a writer for the toggle-by-zero bit at offset off.
func Bit0T[T Uint](w *W[T], off uint) BitW0T[T] {
	return BitW0T[T]{w, off}
}

// ToggleBit toggles the field bit by passing zero.
func (b BitW0T[T]) ToggleBit() *W[T] {
	b.w.bits &^= T(1) << b.off
	return b.w
}
