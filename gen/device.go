// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gen renders a normalized device model into a tree of Go
// packages: one package per peripheral group, a mmap package with the
// base addresses and an irq package with the interrupt numbers.
// Generation is a pure function of the model and the configuration, so
// the same inputs always produce byte-identical files.
package gen

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/hwregs/regen/ir"
	"github.com/hwregs/regen/naming"
)

// Version of the generator, recorded in the go.mod of the generated
// tree.
const Version = "0.1.0"

// Result is the outcome of one generation run. Problems lists the
// items that could not be generated; their siblings are complete.
type Result struct {
	Files    []File
	Problems []error
}

// Generate renders the device into source files. It fails outright
// only on a bad configuration; per-item trouble lands in
// Result.Problems.
func Generate(dev *ir.Device, cfg *Config) (*Result, error) {
	if cfg.table == nil {
		if err := cfg.Check(); err != nil {
			return nil, err
		}
	}
	res := new(Result)
	for _, g := range groupPeriphs(dev.Peripherals) {
		f, probs := emitPeriphPackage(cfg, g.key, g.insts)
		res.Problems = append(res.Problems, probs...)
		if f.Path != "" {
			res.Files = append(res.Files, f)
		}
	}
	if f, err := emitMmap(cfg, dev); err != nil {
		res.Problems = append(res.Problems, err)
	} else {
		res.Files = append(res.Files, f)
	}
	if f, err := emitIRQ(cfg, dev); err != nil {
		res.Problems = append(res.Problems, err)
	} else if f.Path != "" {
		res.Files = append(res.Files, f)
	}
	res.Files = append(res.Files, goMod(cfg))
	sort.Slice(res.Files, func(i, j int) bool { return res.Files[i].Path < res.Files[j].Path })
	return res, nil
}

type periphGroup struct {
	key   string
	insts []*ir.Peripheral
}

// groupPeriphs merges peripherals that share both a group name and a
// register layout into one package. A peripheral whose layout differs
// from the rest of its group gets its own package under its own name.
func groupPeriphs(periphs []*ir.Peripheral) []periphGroup {
	var out []periphGroup
	idx := map[string]int{}
	for _, p := range periphs {
		key := groupKey(p)
		sig := layoutSig(p.Registers, p.Clusters)
		if i, ok := idx[key]; ok {
			g := &out[i]
			if layoutSig(g.insts[0].Registers, g.insts[0].Clusters) == sig {
				g.insts = append(g.insts, p)
				continue
			}
			key = p.Name
			if i, ok := idx[key]; ok {
				out[i].insts = append(out[i].insts, p)
				continue
			}
		}
		idx[key] = len(out)
		out = append(out, periphGroup{key: key, insts: []*ir.Peripheral{p}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// emitMmap writes the package with the base address of every
// peripheral instance, grouped the way the vendor groups peripherals.
func emitMmap(cfg *Config, dev *ir.Device) (File, error) {
	e := newEmitter(cfg)
	e.donotedit()
	e.printf("// Package mmap provides the base memory addresses of all %s peripherals.\n", dev.Name)
	e.printf("package mmap\n\n")

	type memGroup struct {
		descr string
		insts []instance
	}
	var order []string
	groups := map[string]*memGroup{}
	for _, p := range dev.Peripherals {
		key := groupKey(p)
		g := groups[key]
		if g == nil {
			g = &memGroup{descr: p.Group}
			groups[key] = g
			order = append(order, key)
		}
		g.insts = append(g.insts, instances(p)...)
	}
	sort.Strings(order)
	for _, key := range order {
		g := groups[key]
		sort.Slice(g.insts, func(i, j int) bool { return g.insts[i].Name < g.insts[j].Name })
		if g.descr != "" {
			e.printf("// %s\n", g.descr)
		}
		e.printf("const (\n")
		for _, inst := range g.insts {
			name := e.unique(inst.Name, naming.PeripheralSingleton) + "_BASE"
			e.printf("\t%s uintptr = %#X", name, inst.Base)
			if inst.Descr != "" {
				e.printf(" // %s", inst.Descr)
			}
			e.printf("\n")
		}
		e.printf(")\n\n")
	}
	return e.file("mmap/mmap.go")
}

// emitIRQ writes the package listing the external interrupts of the
// device. Devices without interrupt metadata get no irq package.
func emitIRQ(cfg *Config, dev *ir.Device) (File, error) {
	var irqs []*ir.Interrupt
	seen := map[string]bool{}
	for _, p := range dev.Peripherals {
		for _, irq := range p.Interrupts {
			if !seen[irq.Name] {
				seen[irq.Name] = true
				irqs = append(irqs, irq)
			}
		}
	}
	if len(irqs) == 0 {
		return File{}, nil
	}
	sort.Slice(irqs, func(i, j int) bool {
		if irqs[i].Value != irqs[j].Value {
			return irqs[i].Value < irqs[j].Value
		}
		return irqs[i].Name < irqs[j].Name
	})
	e := newEmitter(cfg)
	e.donotedit()
	e.printf("// Package irq provides the list of external interrupts of the %s.\n", dev.Name)
	e.printf("package irq\n\n")
	tw := tabwriter.NewWriter(&e.buf, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "const (")
	for _, irq := range irqs {
		name := e.unique(irq.Name, naming.Interrupt)
		fmt.Fprintf(tw, "\t%s\t= %d", name, irq.Value)
		if irq.Descr != "" {
			fmt.Fprintf(tw, "\t// %s", irq.Descr)
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintln(tw, ")")
	tw.Flush()
	return e.file("irq/irq.go")
}

// goMod writes the module file of the generated tree, pinned to the
// generator release whose runtime package the tree imports.
func goMod(cfg *Config) File {
	src := fmt.Sprintf("module %s\n\ngo 1.23\n\nrequire github.com/hwregs/regen v%s\n",
		cfg.ImportRoot, Version)
	return File{Path: "go.mod", Data: []byte(src)}
}
