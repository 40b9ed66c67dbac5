// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decode

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/marcinbor85/gohex"

	"github.com/hwregs/regen/cmd/regen/internal/util"
	"github.com/hwregs/regen/gen"
	"github.com/hwregs/regen/ir"
)

const Descr = "decode an Intel HEX memory snapshot against the device model"

func Main(args []string) {
	if len(args) == 0 {
		fmt.Println(Descr)
		return
	}
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage:\n  decode SVD_FILE HEX_FILE\n")
	}
	fs.Parse(args[1:])
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(1)
	}
	dev := util.ReadDevice(fs.Arg(0))
	f, err := os.Open(fs.Arg(1))
	util.FatalErr(fs.Arg(1), err)
	mem := gohex.NewMemory()
	err = mem.ParseIntelHex(f)
	f.Close()
	util.FatalErr(fs.Arg(1), err)

	regs := flatten(dev)
	for _, seg := range mem.GetDataSegments() {
		decodeSegment(uint64(seg.Address), seg.Data, regs)
	}
}

// regAt is one register instance at an absolute address.
type regAt struct {
	name string
	addr uint64
	r    *ir.Register
}

// flatten expands the device tree into a sorted flat list of register
// instances with absolute addresses.
func flatten(dev *ir.Device) []regAt {
	var out []regAt
	for _, p := range dev.Peripherals {
		dim, incr := uint(1), uint64(0)
		if p.Array != nil {
			dim, incr = p.Array.Dim, p.Array.Increment
		}
		for n := uint(0); n < dim; n++ {
			name := p.Name
			switch {
			case p.Array != nil && len(p.Array.Index) > 0:
				name += p.Array.Index[n]
			case p.Array != nil:
				name = fmt.Sprintf("%s%d", name, n)
			}
			base := p.Base + incr*uint64(n)
			walk(&out, name+".", base, p.Registers, p.Clusters)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].addr < out[j].addr })
	return out
}

func walk(out *[]regAt, prefix string, base uint64, regs []*ir.Register, clusters []*ir.Cluster) {
	for _, r := range regs {
		a := gen.Address{Base: base, Offset: r.Offset, Array: r.Array}
		for i, addr := range a.Elements() {
			name := prefix + r.Name
			if r.Array != nil {
				name = fmt.Sprintf("%s[%d]", name, i)
			}
			*out = append(*out, regAt{name, addr, r})
		}
	}
	for _, c := range clusters {
		dim, incr := uint(1), uint64(0)
		if c.Array != nil {
			dim, incr = c.Array.Dim, c.Array.Increment
		}
		for n := uint(0); n < dim; n++ {
			name := c.Name
			if c.Array != nil {
				name = fmt.Sprintf("%s[%d]", name, n)
			}
			walk(out, prefix+name+".", base+c.Offset+incr*uint64(n), c.Registers, c.Clusters)
		}
	}
}

// decodeSegment prints every register the segment fully covers,
// followed by its decoded fields. Registers are read little endian.
func decodeSegment(base uint64, data []byte, regs []regAt) {
	end := base + uint64(len(data))
	for _, ra := range regs {
		wb := uint64(ra.r.Width / 8)
		if ra.addr < base || ra.addr+wb > end {
			continue
		}
		var val uint64
		for i := uint64(0); i < wb; i++ {
			val |= uint64(data[ra.addr-base+i]) << (8 * i)
		}
		fmt.Printf("0x%08X  %s = 0x%0*X\n", ra.addr, ra.name, int(ra.r.Width/4), val)
		for _, f := range ra.r.Fields {
			v := val & f.Mask() >> f.Offset
			fmt.Printf("            %s=%s\n", f.Name, fieldValue(f, v))
		}
	}
}

// fieldValue formats a field value, with the enumerated name when the
// device description has one.
func fieldValue(f *ir.Field, v uint64) string {
	s := fmt.Sprintf("%#x", v)
	for _, ev := range f.Enums {
		if ev.Value == v {
			s += " (" + ev.Name + ")"
			break
		}
	}
	return s
}
