// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"io"

	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/hwregs/regen/naming"
)

// Target selects the architecture the generated code is annotated for.
// It does not change the register protocol, only the interrupt table
// and the header of the generated files.
type Target int

const (
	Generic Target = iota
	CortexM
	RISCV
	MSP430
	XtensaLX
)

var targetNames = [...]string{"generic", "cortex-m", "riscv", "msp430", "xtensa-lx"}

func (t Target) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return "unknown"
}

// ParseTarget returns the target named by s. The empty string selects
// Generic.
func ParseTarget(s string) (Target, error) {
	if s == "" {
		return Generic, nil
	}
	for i, name := range targetNames {
		if s == name {
			return Target(i), nil
		}
	}
	return 0, &ConfigError{Key: "target", Val: s, Why: "unknown target"}
}

// NameRule overrides the naming rule for one identifier role.
type NameRule struct {
	Case   string `yaml:"case"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
	Escape *bool  `yaml:"escape"`
}

// Config controls one generation run. The zero value is valid except
// for ImportRoot, which must name the module the generated tree is
// rooted at.
type Config struct {
	// Target is the architecture annotation, one of the ParseTarget
	// names.
	Target string `yaml:"target"`

	// ImportRoot is the module path of the generated tree. Peripheral
	// packages import each other and the mmap package relative to it.
	ImportRoot string `yaml:"import_root"`

	// AddressShift is subtracted from every emitted address by a right
	// shift, for devices that map the register file through a narrow
	// bus window.
	AddressShift uint `yaml:"address_shift"`

	// RawAccess emits peripherals as address holders constructed at
	// runtime instead of typed register blocks at fixed addresses.
	RawAccess bool `yaml:"raw_access"`

	// RawPeripherals lists peripheral names emitted raw even when
	// RawAccess is off.
	RawPeripherals []string `yaml:"raw_peripherals"`

	// Names overrides naming rules per role, keyed by role name.
	Names map[string]NameRule `yaml:"names"`

	target Target
	table  *naming.Table
	raw    map[string]bool
}

// LoadConfig reads a YAML configuration.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Check validates the configuration and resolves the naming table. It
// must be called before Generate; LoadConfig calls it.
func (c *Config) Check() error {
	t, err := ParseTarget(c.Target)
	if err != nil {
		return err
	}
	c.target = t
	if c.ImportRoot == "" {
		return &ConfigError{Key: "import_root", Why: "required"}
	}
	if err := module.CheckPath(c.ImportRoot); err != nil {
		return &ConfigError{Key: "import_root", Val: c.ImportRoot, Why: err.Error()}
	}
	table := naming.DefaultTable()
	for name, nr := range c.Names {
		role, ok := naming.ParseRole(name)
		if !ok {
			return &ConfigError{Key: "names", Val: name, Why: "unknown role"}
		}
		rule := table.Rule(role)
		if nr.Case != "" {
			cs, ok := naming.ParseCase(nr.Case)
			if !ok {
				return &ConfigError{Key: "names." + name, Val: nr.Case, Why: "unknown case"}
			}
			rule.Case = cs
		}
		if nr.Prefix != "" {
			rule.Prefix = nr.Prefix
		}
		if nr.Suffix != "" {
			rule.Suffix = nr.Suffix
		}
		if nr.Escape != nil {
			rule.Escape = *nr.Escape
		}
		table.Set(role, rule)
	}
	c.table = table
	c.raw = make(map[string]bool, len(c.RawPeripherals))
	for _, p := range c.RawPeripherals {
		c.raw[p] = true
	}
	return nil
}

func (c *Config) rawPeriph(name string) bool {
	return c.RawAccess || c.raw[name]
}
