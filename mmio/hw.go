// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64 || arm64

package mmio

// Memory-mapped loads and stores. The compiler elides and combines
// plain memory accesses; these are opaque to it, so every call reaches
// memory exactly once, at the access size of the register.

func loadUint8(p *uint8) uint8
func loadUint16(p *uint16) uint16
func loadUint32(p *uint32) uint32
func loadUint64(p *uint64) uint64

func storeUint8(p *uint8, v uint8)
func storeUint16(p *uint16, v uint16)
func storeUint32(p *uint32, v uint32)
func storeUint64(p *uint64, v uint64)
