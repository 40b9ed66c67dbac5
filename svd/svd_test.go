// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svd_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwregs/regen/ir"
	"github.com/hwregs/regen/svd"
)

const testSVD = `<?xml version="1.0" encoding="utf-8"?>
<device>
  <name>TEST1</name>
  <version>1.0</version>
  <description>Test   device
  description</description>
  <width>32</width>
  <size>32</size>
  <resetValue>0x00000000</resetValue>
  <resetMask>0xFFFFFFFF</resetMask>
  <peripherals>
    <peripheral>
      <name>GPIOA</name>
      <description>General purpose I/O</description>
      <groupName>GPIO</groupName>
      <baseAddress>0x48000000</baseAddress>
      <resetValue>0xA8000000</resetValue>
      <interrupt>
        <name>EXTI0</name>
        <value>6</value>
      </interrupt>
      <registers>
        <register>
          <name>MODER</name>
          <description>port mode register</description>
          <addressOffset>0x0</addressOffset>
          <fields>
            <field>
              <name>MODE0</name>
              <bitOffset>0</bitOffset>
              <bitWidth>2</bitWidth>
              <enumeratedValues>
                <enumeratedValue>
                  <name>INPUT</name>
                  <value>0</value>
                </enumeratedValue>
                <enumeratedValue>
                  <name>OUTPUT</name>
                  <value>#01</value>
                </enumeratedValue>
                <enumeratedValue>
                  <name>ALT</name>
                  <value>#1x</value>
                </enumeratedValue>
                <enumeratedValue>
                  <name>OTHER</name>
                  <isDefault>true</isDefault>
                </enumeratedValue>
              </enumeratedValues>
            </field>
            <field>
              <name>LOCKED</name>
              <lsb>4</lsb>
              <msb>4</msb>
              <access>read-only</access>
            </field>
            <field>
              <name>CFG</name>
              <bitRange>[15:8]</bitRange>
            </field>
          </fields>
        </register>
        <register>
          <name>ICR</name>
          <addressOffset>0x10</addressOffset>
          <access>write-only</access>
          <fields>
            <field>
              <name>CLR</name>
              <bitOffset>0</bitOffset>
              <bitWidth>4</bitWidth>
              <modifiedWriteValues>oneToClear</modifiedWriteValues>
            </field>
          </fields>
        </register>
        <register>
          <name>ODR%s</name>
          <dim>4</dim>
          <dimIncrement>4</dimIncrement>
          <addressOffset>0x20</addressOffset>
        </register>
        <register>
          <name>CCR%s</name>
          <dim>2</dim>
          <dimIncrement>4</dimIncrement>
          <dimIndex>A,B</dimIndex>
          <addressOffset>0x30</addressOffset>
        </register>
        <register>
          <name>SEQ%s</name>
          <dim>2</dim>
          <dimIncrement>4</dimIncrement>
          <dimIndex>0-1</dimIndex>
          <addressOffset>0x38</addressOffset>
        </register>
        <register>
          <name>BAD</name>
          <addressOffset>0x40</addressOffset>
          <size>8</size>
          <fields>
            <field>
              <name>OOPS</name>
              <bitOffset>6</bitOffset>
              <bitWidth>4</bitWidth>
            </field>
          </fields>
        </register>
      </registers>
    </peripheral>
    <peripheral derivedFrom="GPIOA">
      <name>GPIOB</name>
      <baseAddress>0x48000400</baseAddress>
    </peripheral>
  </peripherals>
</device>`

func parse(t *testing.T) (*ir.Device, []error) {
	t.Helper()
	sd, err := svd.Parse(strings.NewReader(testSVD))
	require.NoError(t, err)
	return sd.Normalize()
}

func TestNormalizeDevice(t *testing.T) {
	t.Parallel()

	dev, _ := parse(t)
	assert.Equal(t, "TEST1", dev.Name)
	assert.Equal(t, "Test device description", dev.Descr)
	assert.Equal(t, uint(32), dev.Width)
	require.Len(t, dev.Peripherals, 2)
}

func TestNormalizeRegisters(t *testing.T) {
	t.Parallel()

	dev, probs := parse(t)
	p := dev.Peripherals[0]
	assert.Equal(t, "GPIOA", p.Name)
	assert.Equal(t, "GPIO", p.Group)
	assert.Equal(t, uint64(0x48000000), p.Base)
	require.Len(t, p.Interrupts, 1)
	assert.Equal(t, "EXTI0", p.Interrupts[0].Name)
	assert.Equal(t, 6, p.Interrupts[0].Value)

	// BAD is dropped: its field does not fit an 8-bit register
	require.Len(t, p.Registers, 5)
	var dropped bool
	for _, err := range probs {
		if strings.Contains(err.Error(), "BAD") {
			dropped = true
		}
	}
	assert.True(t, dropped, "expected a problem for register BAD")

	moder := p.Registers[0]
	assert.Equal(t, "MODER", moder.Name)
	assert.Equal(t, uint(32), moder.Width)
	assert.Equal(t, uint64(0xA8000000), moder.Reset)
	assert.Equal(t, ir.ReadWrite, moder.Access)

	icr := p.Registers[1]
	assert.Equal(t, ir.WriteOnly, icr.Access)
	require.Len(t, icr.Fields, 1)
	assert.Equal(t, ir.OneToClear, icr.Fields[0].Write)
	assert.Equal(t, uint64(0x0F), icr.OneToModify())

	odr := p.Registers[2]
	assert.Equal(t, "ODR", odr.Name)
	require.NotNil(t, odr.Array)
	assert.Equal(t, uint(4), odr.Array.Dim)
	assert.Equal(t, uint64(4), odr.Array.Increment)
	assert.Nil(t, odr.Array.Index)

	ccr := p.Registers[3]
	assert.Equal(t, "CCR", ccr.Name)
	require.NotNil(t, ccr.Array)
	assert.Equal(t, []string{"A", "B"}, ccr.Array.Index)

	// a 0-based dimIndex is the default numbering, left implicit
	seq := p.Registers[4]
	require.NotNil(t, seq.Array)
	assert.Nil(t, seq.Array.Index)
}

func TestNormalizeFields(t *testing.T) {
	t.Parallel()

	dev, _ := parse(t)
	moder := dev.Peripherals[0].Registers[0]
	require.Len(t, moder.Fields, 3)

	mode0 := moder.Fields[0]
	assert.Equal(t, uint(0), mode0.Offset)
	assert.Equal(t, uint(2), mode0.Width)
	// the valueless isDefault entry is skipped silently
	require.Len(t, mode0.Enums, 3)
	assert.Equal(t, uint64(0), mode0.Enums[0].Value)
	assert.Equal(t, uint64(1), mode0.Enums[1].Value) // #01 binary form
	assert.Equal(t, uint64(2), mode0.Enums[2].Value) // #1x, x counts as 0

	locked := moder.Fields[1]
	assert.Equal(t, uint(4), locked.Offset)
	assert.Equal(t, uint(1), locked.Width)
	assert.Equal(t, ir.ReadOnly, locked.Access)

	cfg := moder.Fields[2]
	assert.Equal(t, uint(8), cfg.Offset)
	assert.Equal(t, uint(8), cfg.Width)
}

func TestDerivedPeripheral(t *testing.T) {
	t.Parallel()

	dev, _ := parse(t)
	b := dev.Peripherals[1]
	assert.Equal(t, "GPIOB", b.Name)
	assert.Equal(t, uint64(0x48000400), b.Base)
	assert.Equal(t, "GPIO", b.Group)
	assert.Equal(t, "General purpose I/O", b.Descr)
	// full register copy from the base peripheral
	require.Len(t, b.Registers, 5)
	assert.Equal(t, "MODER", b.Registers[0].Name)
}

func TestEnumeratedValueVal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"12", 12},
		{"0x1F", 0x1F},
		{"#1011", 0b1011},
		{"#1x0x", 0b1000},
		{"#1X", 0b10},
	}
	for _, tc := range cases {
		v := tc.in
		ev := &svd.EnumeratedValue{Value: &v}
		got, err := ev.Val()
		assert.NoError(t, err, "Val(%q)", tc.in)
		assert.Equal(t, tc.want, got, "Val(%q)", tc.in)
	}

	ev := &svd.EnumeratedValue{}
	_, err := ev.Val()
	assert.ErrorIs(t, err, svd.ErrNilValue)
}
