// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ir defines the normalized device model: an immutable tree of
// peripheral, cluster, register and field descriptors with the numeric
// metadata needed to derive addresses, bitmasks and identifiers.
package ir

// Access describes the access mode of a register or field.
type Access uint8

const (
	ReadWrite Access = iota
	ReadOnly
	WriteOnly
	WriteOnce
	ReadWriteOnce
)

// Readable reports whether a load of the register has defined contents.
func (a Access) Readable() bool {
	return a != WriteOnly && a != WriteOnce
}

// Writable reports whether the register accepts stores.
func (a Access) Writable() bool {
	return a != ReadOnly
}

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "read-only"
	case WriteOnly:
		return "write-only"
	case WriteOnce:
		return "writeOnce"
	case ReadWriteOnce:
		return "read-writeOnce"
	}
	return "read-write"
}

// WriteKind describes the hardware write-semantics of a field: what a
// written bit actually does to the stored one.
type WriteKind uint8

const (
	Modify       WriteKind = iota // bit := written value
	OneToSet                      // 1S: writing 1 sets, writing 0 keeps
	ZeroToClear                   // 0C: writing 0 clears, writing 1 keeps
	OneToClear                    // 1C: writing 1 clears, writing 0 keeps
	ZeroToSet                     // 0S: writing 0 sets, writing 1 keeps
	OneToToggle                   // 1T: writing 1 toggles, writing 0 keeps
	ZeroToToggle                  // 0T: writing 0 toggles, writing 1 keeps
)

// ActsOnOne reports whether the hardware acts on written 1s, so an
// untouched field must default to 0 in a written word.
func (k WriteKind) ActsOnOne() bool {
	return k == OneToSet || k == OneToClear || k == OneToToggle
}

// ActsOnZero reports whether the hardware acts on written 0s, so an
// untouched field must default to 1 in a written word.
func (k WriteKind) ActsOnZero() bool {
	return k == ZeroToSet || k == ZeroToClear || k == ZeroToToggle
}

// Array describes an arrayed peripheral, cluster or register: Dim
// elements, Increment address units apart. Index carries the per-element
// name suffixes when the description names elements individually; nil
// means plain 0-based numbering.
type Array struct {
	Dim       uint
	Increment uint64
	Index     []string
}

type Device struct {
	Name        string
	Descr       string
	Width       uint // default register width in bits
	Peripherals []*Peripheral
}

type Peripheral struct {
	Name       string
	Descr      string
	Group      string
	Base       uint64
	Array      *Array
	Interrupts []*Interrupt
	Clusters   []*Cluster
	Registers  []*Register
}

type Cluster struct {
	Name      string
	Descr     string
	Offset    uint64
	Array     *Array
	Clusters  []*Cluster
	Registers []*Register
}

type Register struct {
	Name   string
	Descr  string
	Offset uint64
	Width  uint // 8, 16, 32 or 64
	Access Access
	Reset  uint64
	Array  *Array
	Fields []*Field
}

type Field struct {
	Name   string
	Descr  string
	Offset uint
	Width  uint
	Access Access
	Write  WriteKind
	Enums  []*EnumValue
}

type EnumValue struct {
	Name  string
	Descr string
	Value uint64
}

type Interrupt struct {
	Name  string
	Descr string
	Value int
}
