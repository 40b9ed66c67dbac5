// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64 && !arm64

package mmio

// Fallback for targets without assembly accessors. The noinline call
// boundary keeps the access from being elided or combined with its
// neighbors; the access size still matches the register width.

//go:noinline
//go:nosplit
func loadUint8(p *uint8) uint8 { return *p }

//go:noinline
//go:nosplit
func loadUint16(p *uint16) uint16 { return *p }

//go:noinline
//go:nosplit
func loadUint32(p *uint32) uint32 { return *p }

//go:noinline
//go:nosplit
func loadUint64(p *uint64) uint64 { return *p }

//go:noinline
//go:nosplit
func storeUint8(p *uint8, v uint8) { *p = v }

//go:noinline
//go:nosplit
func storeUint16(p *uint16, v uint16) { *p = v }

//go:noinline
//go:nosplit
func storeUint32(p *uint32, v uint32) { *p = v }

//go:noinline
//go:nosplit
func storeUint64(p *uint64, v uint64) { *p = v }
