// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmio implements the register access protocol used by generated
// peripheral packages: exact-count loads and stores of memory-mapped
// registers composed with per-register reset values and modify bitmaps
// and per-field write semantics.
//
// A register accessor models exclusive, un-arbitrated access to one fixed
// memory location. The package provides no locking, interrupt masking or
// reentrancy guarantees; the only guarantee is that every operation
// performs exactly its documented number of memory operations, observing
// the hardware afresh on each call.
package mmio

import "unsafe"

// Uint is the set of raw register types.
type Uint interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func width[T Uint]() uint {
	var v T
	return uint(unsafe.Sizeof(v)) * 8
}

// Mask returns the all-ones pattern for a field wi bits wide: 1<<wi - 1,
// or the full word when wi reaches the width of T.
func Mask[T Uint](wi uint) T {
	if wi >= width[T]() {
		return ^T(0)
	}
	return T(1)<<wi - 1
}

// Spec carries the compile-time constants of a register: its reset value
// and the two modify bitmaps. Generated register spec types are zero-size
// structs implementing Spec, so every Reg instantiation is monomorphized
// with its own constants.
type Spec[T Uint] interface {
	// ResetValue is the initial value of the register.
	ResetValue() T
	// OneToModify is the bitmap of bits the hardware acts on when
	// written 1; a write forces them to 0 unless explicitly set.
	OneToModify() T
	// ZeroToModify is the bitmap of bits the hardware acts on when
	// written 0; a write forces them to 1 unless explicitly cleared.
	ZeroToModify() T
}

// Reg is one memory-mapped register of raw type T described by the spec
// S. The struct is the memory cell itself: generated code overlays it on
// the device address space, either as a field of a register block laid
// over a compile-time base address or materialized on demand from a
// runtime one.
type Reg[T Uint, S Spec[T]] struct {
	v T
}

// Addr returns the memory address of the register.
func (r *Reg[T, S]) Addr() uintptr {
	return uintptr(unsafe.Pointer(&r.v))
}

//go:nosplit
func (r *Reg[T, S]) load() T {
	p := unsafe.Pointer(&r.v)
	switch unsafe.Sizeof(r.v) {
	case 1:
		return T(loadUint8((*uint8)(p)))
	case 2:
		return T(loadUint16((*uint16)(p)))
	case 4:
		return T(loadUint32((*uint32)(p)))
	}
	return T(loadUint64((*uint64)(p)))
}

//go:nosplit
func (r *Reg[T, S]) store(v T) {
	p := unsafe.Pointer(&r.v)
	switch unsafe.Sizeof(r.v) {
	case 1:
		storeUint8((*uint8)(p), uint8(v))
	case 2:
		storeUint16((*uint16)(p), uint16(v))
	case 4:
		storeUint32((*uint32)(p), uint32(v))
	default:
		storeUint64((*uint64)(p), uint64(v))
	}
}

// LoadBits performs one load and returns the raw word.
func (r *Reg[T, S]) LoadBits() T {
	return r.load()
}

// StoreBits performs one store of the raw word. The caller takes
// responsibility for every bit, including reserved ones.
func (r *Reg[T, S]) StoreBits(v T) {
	r.store(v)
}

// Read performs one load and returns a reader over the observed value.
func (r *Reg[T, S]) Read() R[T] {
	return R[T]{r.load()}
}

// Write passes a writer seeded with the write baseline to f and then
// performs exactly one store of the result. The baseline is
//
//	RESET_VALUE &^ ONE_TO_MODIFY | ZERO_TO_MODIFY
//
// so fields left untouched by f keep their reset value, except that
// act-on-one bits stay 0 and act-on-zero bits stay 1, both neutral for
// the hardware.
func (r *Reg[T, S]) Write(f func(*W[T])) {
	var s S
	w := W[T]{s.ResetValue()&^s.OneToModify() | s.ZeroToModify()}
	f(&w)
	r.store(w.bits)
}

// WriteZero is like Write but seeds the writer with an all-zero word
// instead of the baseline. The caller is responsible for registers whose
// bits must not be written 0.
func (r *Reg[T, S]) WriteZero(f func(*W[T])) {
	var w W[T]
	f(&w)
	r.store(w.bits)
}

// Modify performs one load, passes a reader over the loaded value and a
// writer seeded with
//
//	current &^ ONE_TO_MODIFY | ZERO_TO_MODIFY
//
// to f, and performs exactly one store of the result. Untouched fields
// preserve hardware state; act-on-write bits are reset to neutral so a
// modify cannot re-trigger them.
func (r *Reg[T, S]) Modify(f func(R[T], *W[T])) {
	var s S
	cur := r.load()
	w := W[T]{cur&^s.OneToModify() | s.ZeroToModify()}
	f(R[T]{cur}, &w)
	r.store(w.bits)
}

// Reset performs one store of the reset value.
func (r *Reg[T, S]) Reset() {
	var s S
	r.store(s.ResetValue())
}
