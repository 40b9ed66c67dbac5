// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hwregs/regen/ir"
)

func field(off, wi uint, k ir.WriteKind) *ir.Field {
	return &ir.Field{Name: "F", Offset: off, Width: wi, Write: k}
}

func TestMask(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0x1), field(0, 1, ir.Modify).Mask())
	assert.Equal(t, uint64(0x6), field(1, 2, ir.Modify).Mask())
	assert.Equal(t, uint64(0xF0), field(4, 4, ir.Modify).Mask())
	assert.Equal(t, ^uint64(0), field(0, 64, ir.Modify).Mask())
}

func TestCheck(t *testing.T) {
	t.Parallel()

	assert.NoError(t, field(24, 8, ir.Modify).Check(32))
	assert.Error(t, field(25, 8, ir.Modify).Check(32))
	assert.Error(t, field(0, 0, ir.Modify).Check(32))
	assert.NoError(t, field(0, 64, ir.Modify).Check(64))
}

func TestWriteBitmaps(t *testing.T) {
	t.Parallel()

	r := &ir.Register{
		Name:  "SR",
		Width: 32,
		Reset: 0xA5,
		Fields: []*ir.Field{
			field(0, 1, ir.OneToClear),   // acts on 1
			field(1, 1, ir.OneToSet),     // acts on 1
			field(2, 2, ir.OneToToggle),  // acts on 1
			field(4, 1, ir.ZeroToClear),  // acts on 0
			field(5, 1, ir.ZeroToSet),    // acts on 0
			field(6, 1, ir.ZeroToToggle), // acts on 0
			field(8, 4, ir.Modify),       // neither
		},
	}
	assert.Equal(t, uint64(0x0F), r.OneToModify())
	assert.Equal(t, uint64(0x70), r.ZeroToModify())
	assert.Equal(t, uint64(0xA5&^0x0F|0x70), r.WriteBaseline())
	assert.Equal(t, uint64(0x3C&^0x0F|0x70), r.ModifyBaseline(0x3C))
}

// A register with only act-on-one fields over the low byte: writes must
// start from the reset value with those bits forced to 0.
func TestBaselineNumeric(t *testing.T) {
	t.Parallel()

	r := &ir.Register{
		Name:  "ICR",
		Width: 8,
		Reset: 0xA5,
		Fields: []*ir.Field{
			field(0, 4, ir.OneToClear),
		},
	}
	assert.Equal(t, uint64(0x0F), r.OneToModify())
	assert.Equal(t, uint64(0x00), r.ZeroToModify())
	assert.Equal(t, uint64(0xA0), r.WriteBaseline())
	assert.Equal(t, uint64(0x30), r.ModifyBaseline(0x3C))
}

func TestAccessOf(t *testing.T) {
	t.Parallel()

	ro := ir.ReadOnly
	rw := ir.ReadWrite

	t.Run("explicit wins", func(t *testing.T) {
		t.Parallel()
		fs := []*ir.Field{{Access: ir.WriteOnly, Width: 1}}
		assert.Equal(t, ir.ReadOnly, ir.AccessOf(&ro, fs))
	})
	t.Run("unanimous read-only", func(t *testing.T) {
		t.Parallel()
		fs := []*ir.Field{{Access: ir.ReadOnly, Width: 1}, {Access: ir.ReadOnly, Width: 1}}
		assert.Equal(t, ir.ReadOnly, ir.AccessOf(nil, fs))
	})
	t.Run("all write-side", func(t *testing.T) {
		t.Parallel()
		fs := []*ir.Field{{Access: ir.WriteOnly, Width: 1}, {Access: ir.WriteOnce, Width: 1}}
		assert.Equal(t, ir.WriteOnly, ir.AccessOf(nil, fs))
	})
	t.Run("mixed defaults to read-write", func(t *testing.T) {
		t.Parallel()
		fs := []*ir.Field{{Access: ir.ReadOnly, Width: 1}, {Access: ir.WriteOnly, Width: 1}}
		assert.Equal(t, ir.ReadWrite, ir.AccessOf(nil, fs))
	})
	t.Run("no fields", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ir.ReadWrite, ir.AccessOf(nil, nil))
		assert.Equal(t, ir.ReadWrite, ir.AccessOf(&rw, nil))
	})
}

func TestAccessPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, ir.ReadWrite.Readable())
	assert.True(t, ir.ReadWrite.Writable())
	assert.True(t, ir.ReadOnly.Readable())
	assert.False(t, ir.ReadOnly.Writable())
	assert.False(t, ir.WriteOnly.Readable())
	assert.True(t, ir.WriteOnly.Writable())
	assert.False(t, ir.WriteOnce.Readable())
	assert.True(t, ir.WriteOnce.Writable())
	assert.True(t, ir.ReadWriteOnce.Readable())
	assert.True(t, ir.ReadWriteOnce.Writable())
}
