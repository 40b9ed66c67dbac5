// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwregs/regen/gen"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := gen.LoadConfig(strings.NewReader(`
target: cortex-m
import_root: example.org/mcu
raw_peripherals: [DMA2D]
names:
  enum_value:
    case: pascal
`))
	require.NoError(t, err)
	assert.Equal(t, "cortex-m", cfg.Target)
	assert.Equal(t, "example.org/mcu", cfg.ImportRoot)
}

func TestConfigErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing import root", func(t *testing.T) {
		t.Parallel()
		_, err := gen.LoadConfig(strings.NewReader("target: riscv\n"))
		var ce *gen.ConfigError
		require.ErrorAs(t, err, &ce)
	})
	t.Run("bad target", func(t *testing.T) {
		t.Parallel()
		_, err := gen.LoadConfig(strings.NewReader(
			"target: z80\nimport_root: example.org/mcu\n"))
		var ce *gen.ConfigError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "target", ce.Key)
	})
	t.Run("bad import root", func(t *testing.T) {
		t.Parallel()
		_, err := gen.LoadConfig(strings.NewReader("import_root: \"not a path\"\n"))
		var ce *gen.ConfigError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "import_root", ce.Key)
	})
	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()
		_, err := gen.LoadConfig(strings.NewReader(
			"import_root: example.org/mcu\nnames:\n  no_such_role: {case: pascal}\n"))
		var ce *gen.ConfigError
		require.ErrorAs(t, err, &ce)
	})
	t.Run("unknown case", func(t *testing.T) {
		t.Parallel()
		_, err := gen.LoadConfig(strings.NewReader(
			"import_root: example.org/mcu\nnames:\n  register: {case: camel}\n"))
		var ce *gen.ConfigError
		require.ErrorAs(t, err, &ce)
	})
	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()
		_, err := gen.LoadConfig(strings.NewReader(
			"import_root: example.org/mcu\nbogus: 1\n"))
		assert.Error(t, err)
	})
}

func TestParseTarget(t *testing.T) {
	t.Parallel()

	got, err := gen.ParseTarget("")
	require.NoError(t, err)
	assert.Equal(t, gen.Generic, got)

	for _, s := range []string{"generic", "cortex-m", "riscv", "msp430", "xtensa-lx"} {
		tgt, err := gen.ParseTarget(s)
		require.NoError(t, err)
		assert.Equal(t, s, tgt.String())
	}

	_, err = gen.ParseTarget("6502")
	assert.Error(t, err)
}
