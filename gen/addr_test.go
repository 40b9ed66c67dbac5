// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwregs/regen/gen"
	"github.com/hwregs/regen/ir"
)

func TestAddressScalar(t *testing.T) {
	t.Parallel()

	a := gen.Address{Base: 0x4000_0000, Offset: 0x10}
	assert.Equal(t, uint64(0x4000_0010), a.Resolve())
	assert.Equal(t, []uint64{0x4000_0010}, a.Elements())

	got, err := a.Element("TIM1.CR", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x4000_0010), got)

	_, err = a.Element("TIM1.CR", 1)
	var ie *gen.IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Index)
}

func TestAddressArray(t *testing.T) {
	t.Parallel()

	a := gen.Address{
		Base:   0x4000_0000,
		Offset: 0x10,
		Array:  &ir.Array{Dim: 4, Increment: 4},
	}
	assert.Equal(t, []uint64{0x4000_0010, 0x4000_0014, 0x4000_0018, 0x4000_001C},
		a.Elements())

	got, err := a.Element("GPIOA.ODR", 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x4000_001C), got)

	_, err = a.Element("GPIOA.ODR", 4)
	var ie *gen.IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "GPIOA.ODR", ie.Item)
	assert.Equal(t, uint(4), ie.Dim)

	_, err = a.Element("GPIOA.ODR", -1)
	assert.Error(t, err)
}

func TestAddressClusterPath(t *testing.T) {
	t.Parallel()

	a := gen.Address{
		Base:   0x4002_0000,
		Path:   []uint64{0x100, 0x40},
		Offset: 0x8,
	}
	assert.Equal(t, uint64(0x4002_0148), a.Resolve())
}

func TestAddressShift(t *testing.T) {
	t.Parallel()

	a := gen.Address{Base: 0x8000, Offset: 0x10, Shift: 1}
	assert.Equal(t, uint64(0x4008), a.Resolve())

	a.Array = &ir.Array{Dim: 2, Increment: 4}
	got, err := a.Element("X.Y", 1)
	require.NoError(t, err)
	assert.Equal(t, uint64((0x8000+0x10+4)>>1), got)
}

// Formula must agree with Element for every literal index: the raw and
// typed renderings of a register share the address arithmetic.
func TestAddressFormula(t *testing.T) {
	t.Parallel()

	a := gen.Address{Offset: 0x10, Array: &ir.Array{Dim: 4, Increment: 4}}
	assert.Equal(t, "p.addr + 0x10 + 0x4*uintptr(n)", a.Formula("p.addr", "n"))

	a = gen.Address{Offset: 0}
	assert.Equal(t, "p.addr", a.Formula("p.addr", "n"))

	a = gen.Address{Offset: 0x8, Shift: 2}
	assert.Equal(t, "(p.addr + 0x8) >> 2", a.Formula("p.addr", "n"))
}

func TestWidthMapping(t *testing.T) {
	t.Parallel()

	for _, w := range []uint{8, 16, 32, 64} {
		typ, ok := gen.RawType(w)
		assert.True(t, ok)
		assert.NotEmpty(t, typ)
	}
	for _, w := range []uint{0, 1, 7, 12, 24, 48, 65} {
		_, ok := gen.RawType(w)
		assert.False(t, ok, "width %d", w)
	}

	cases := []struct {
		wi   uint
		want string
	}{
		{1, "bool"}, {2, "uint8"}, {8, "uint8"}, {9, "uint16"},
		{16, "uint16"}, {17, "uint32"}, {32, "uint32"}, {33, "uint64"},
		{64, "uint64"},
	}
	for _, tc := range cases {
		typ, ok := gen.FieldType(tc.wi)
		assert.True(t, ok, "width %d", tc.wi)
		assert.Equal(t, tc.want, typ, "width %d", tc.wi)
	}
	_, ok := gen.FieldType(0)
	assert.False(t, ok)
	_, ok = gen.FieldType(65)
	assert.False(t, ok)
}

func TestAccessorRaw(t *testing.T) {
	t.Parallel()

	a := gen.Accessor{Shape: gen.RegShape}
	assert.Equal(t, gen.RawRegShape, a.Raw().Shape)
	// degrading twice changes nothing
	assert.Equal(t, a.Raw(), a.Raw().Raw())

	arr := gen.Accessor{Shape: gen.ArrayShape}
	assert.Equal(t, gen.RawArrayShape, arr.Raw().Shape)
	assert.Equal(t, arr.Raw(), arr.Raw().Raw())

	assert.Equal(t, a, a.RawIf(false))
	assert.Equal(t, a.Raw(), a.RawIf(true))
	assert.Equal(t, a.Raw(), a.RawIf(true).RawIf(true))
}
