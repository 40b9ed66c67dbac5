// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hwregs/regen/naming"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	cases := []struct {
		c    naming.Case
		in   string
		want string
	}{
		{naming.Pascal, "MODER", "Moder"},
		{naming.Pascal, "MODE0", "Mode0"},
		{naming.Pascal, "SPIClock", "SpiClock"},
		{naming.Pascal, "tx_empty", "TxEmpty"},
		{naming.Pascal, "2_wire", "2Wire"},
		{naming.Pascal, "Mode0", "Mode0"},
		{naming.Constant, "txEmpty", "TX_EMPTY"},
		{naming.Constant, "MODE0_INPUT", "MODE0_INPUT"},
		{naming.Constant, "SPIClock", "SPI_CLOCK"},
		{naming.Upper, "gpioa", "GPIOA"},
		{naming.Upper, "tx_empty", "TXEMPTY"},
		{naming.Snake, "SPIClock", "spi_clock"},
		{naming.Snake, "TXEmpty", "tx_empty"},
		{naming.Snake, "tx_empty", "tx_empty"},
		{naming.Unchanged, "WeIRD name", "WeIRD name"},
	}
	for _, tc := range cases {
		got := tc.c.Convert(tc.in)
		assert.Equal(t, tc.want, got, "%s(%q)", tc.c, tc.in)
		// converting again must be a no-op
		assert.Equal(t, got, tc.c.Convert(got), "%s(%q) not idempotent", tc.c, got)
	}
}

func TestIs(t *testing.T) {
	t.Parallel()

	assert.True(t, naming.Pascal.Is("Mode0"))
	assert.False(t, naming.Pascal.Is("MODER"))
	assert.False(t, naming.Pascal.Is("mode"))
	assert.True(t, naming.Constant.Is("TX_EMPTY"))
	assert.False(t, naming.Constant.Is("TX__EMPTY"))
	assert.False(t, naming.Constant.Is("_TX"))
	assert.True(t, naming.Snake.Is("tx_empty0"))
	assert.False(t, naming.Snake.Is("tx_empty_"))
	assert.True(t, naming.Upper.Is("GPIOA"))
	assert.False(t, naming.Upper.Is("GPIO_A"))
}

func TestParseCase(t *testing.T) {
	t.Parallel()

	for _, c := range []naming.Case{
		naming.Unchanged, naming.Constant, naming.Upper, naming.Pascal, naming.Snake,
	} {
		got, ok := naming.ParseCase(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := naming.ParseCase("camel")
	assert.False(t, ok)
}
