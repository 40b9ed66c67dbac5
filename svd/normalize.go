// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hwregs/regen/ir"
)

// props are the register defaults in force at some level of the tree.
type props struct {
	width  uint
	access *ir.Access
	reset  uint64
	rmask  uint64
}

func (p props) merge(g *RegisterPropertiesGroup) props {
	if g == nil {
		return p
	}
	if g.Size != nil {
		p.width = uint(*g.Size)
	}
	if g.Access != nil {
		if a, ok := parseAccess(*g.Access); ok {
			p.access = &a
		}
	}
	if g.ResetValue != nil {
		p.reset = uint64(*g.ResetValue)
	}
	if g.ResetMask != nil {
		p.rmask = uint64(*g.ResetMask)
	}
	return p
}

func parseAccess(s string) (ir.Access, bool) {
	switch s {
	case "read-only":
		return ir.ReadOnly, true
	case "write-only":
		return ir.WriteOnly, true
	case "read-write":
		return ir.ReadWrite, true
	case "writeOnce":
		return ir.WriteOnce, true
	case "read-writeOnce":
		return ir.ReadWriteOnce, true
	}
	return ir.ReadWrite, false
}

func parseWriteKind(s string) (ir.WriteKind, bool) {
	switch s {
	case "modify":
		return ir.Modify, true
	case "oneToSet":
		return ir.OneToSet, true
	case "oneToClear":
		return ir.OneToClear, true
	case "oneToToggle":
		return ir.OneToToggle, true
	case "zeroToSet":
		return ir.ZeroToSet, true
	case "zeroToClear":
		return ir.ZeroToClear, true
	case "zeroToToggle":
		return ir.ZeroToToggle, true
	}
	return ir.Modify, false
}

// norm collects per-item problems without stopping the lowering of
// sibling items.
type norm struct {
	probs []error
}

func (n *norm) warnf(format string, args ...any) {
	n.probs = append(n.probs, fmt.Errorf(format, args...))
}

// Normalize lowers the SVD tree into the ir device model. Problems with
// individual items are reported in the returned slice; the offending item
// is dropped and its siblings survive.
func (d *Device) Normalize() (*ir.Device, []error) {
	n := new(norm)
	dev := &ir.Device{
		Name:  d.Name,
		Descr: respace(d.Description),
		Width: uint(d.Width),
	}
	defs := props{width: 32, rmask: ^uint64(0)}
	defs = defs.merge(d.RegisterPropertiesGroup)
	if dev.Width == 0 {
		dev.Width = defs.width
	}

	base := make(map[string]*Peripheral, len(d.Peripherals))
	for _, sp := range d.Peripherals {
		base[sp.Name] = sp
	}
	for _, sp := range d.Peripherals {
		from := sp
		if sp.DerivedFrom != nil {
			from = base[*sp.DerivedFrom]
			if from == nil {
				n.warnf("%s: derivedFrom unknown peripheral %s", sp.Name, *sp.DerivedFrom)
				continue
			}
		}
		name := sp.Name
		p := &ir.Peripheral{
			Base:  uint64(sp.BaseAddress),
			Descr: strDescr(sp.Description, from.Description),
			Array: n.array(sp.Name, sp.DimElementGroup, &name),
		}
		p.Name = name
		if sp.GroupName != nil {
			p.Group = *sp.GroupName
		} else if from.GroupName != nil {
			p.Group = *from.GroupName
		}
		pp := defs.merge(from.RegisterPropertiesGroup).merge(sp.RegisterPropertiesGroup)
		for _, si := range firstIRQs(sp.Interrupts, from.Interrupts) {
			p.Interrupts = append(p.Interrupts, &ir.Interrupt{
				Name:  si.Name,
				Descr: strDescr(si.Description, nil),
				Value: int(si.Value),
			})
		}
		p.Registers = n.registers(p.Name, pp, from.Registers)
		p.Clusters = n.clusters(p.Name, pp, from.Clusters)
		dev.Peripherals = append(dev.Peripherals, p)
	}
	return dev, n.probs
}

func firstIRQs(own, derived []*Interrupt) []*Interrupt {
	if len(own) != 0 {
		return own
	}
	return derived
}

func strDescr(s, fallback *string) string {
	if s != nil {
		return respace(*s)
	}
	if fallback != nil {
		return respace(*fallback)
	}
	return ""
}

// respace collapses runs of whitespace, the way vendor descriptions tend
// to need.
func respace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (n *norm) clusters(path string, pp props, scs []*Cluster) []*ir.Cluster {
	var out []*ir.Cluster
	for _, sc := range scs {
		cpath := path + "." + sc.Name
		if sc.DerivedFrom != nil {
			n.warnf("%s: derived clusters not supported", cpath)
			continue
		}
		name := sc.Name
		c := &ir.Cluster{
			Offset: uint64(sc.AddressOffset),
			Descr:  strDescr(sc.Description, nil),
			Array:  n.array(cpath, &sc.DimElementGroup, &name),
		}
		c.Name = name
		cp := pp.merge(sc.RegisterPropertiesGroup)
		c.Registers = n.registers(cpath, cp, sc.Registers)
		c.Clusters = n.clusters(cpath, cp, sc.Clusters)
		out = append(out, c)
	}
	return out
}

func (n *norm) registers(path string, pp props, srs []*Register) []*ir.Register {
	var out []*ir.Register
	for _, sr := range srs {
		rpath := path + "." + sr.Name
		if sr.DerivedFrom != nil {
			n.warnf("%s: derived registers not supported", rpath)
			continue
		}
		rp := pp.merge(sr.RegisterPropertiesGroup)
		name := sr.Name
		r := &ir.Register{
			Offset: uint64(sr.AddressOffset),
			Descr:  strDescr(sr.Description, nil),
			Width:  rp.width,
			Reset:  rp.reset & rp.rmask,
			Array:  n.array(rpath, &sr.DimElementGroup, &name),
		}
		r.Name = name
		r.Fields = n.fields(rpath, rp, sr.Fields)
		r.Access = ir.AccessOf(rp.access, r.Fields)
		ok := true
		for _, f := range r.Fields {
			if err := f.Check(r.Width); err != nil {
				n.warnf("%s: %v", rpath, err)
				ok = false
			}
		}
		if !ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (n *norm) fields(path string, rp props, sfs []*Field) []*ir.Field {
	var out []*ir.Field
	for _, sf := range sfs {
		fpath := path + "." + sf.Name
		if sf.DerivedFrom != nil {
			n.warnf("%s: derived fields not supported", fpath)
			continue
		}
		f := &ir.Field{
			Name:   sf.Name,
			Descr:  strDescr(sf.Description, nil),
			Access: accessOr(sf.Access, rp),
		}
		switch {
		case sf.BitRangeOffsetWidth != nil:
			f.Offset = uint(sf.BitRangeOffsetWidth.BitOffset)
			f.Width = 1
			if w := sf.BitRangeOffsetWidth.BitWidth; w != nil {
				f.Width = uint(*w)
			}
		case sf.BitRangeLSBMSB != nil:
			lsb := uint(sf.BitRangeLSBMSB.LSB)
			msb := uint(sf.BitRangeLSBMSB.MSB)
			if msb < lsb {
				n.warnf("%s: msb %d below lsb %d", fpath, msb, lsb)
				continue
			}
			f.Offset = lsb
			f.Width = msb - lsb + 1
		case sf.BitRangePattern != nil:
			off, wi, err := parseBitRange(*sf.BitRangePattern)
			if err != nil {
				n.warnf("%s: %v", fpath, err)
				continue
			}
			f.Offset, f.Width = off, wi
		default:
			n.warnf("%s: bit range not specified", fpath)
			continue
		}
		if sf.ModifiedWriteValues != nil {
			k, ok := parseWriteKind(*sf.ModifiedWriteValues)
			if !ok {
				n.warnf("%s: bad modifiedWriteValues %q", fpath, *sf.ModifiedWriteValues)
			}
			f.Write = k
		}
		for _, sevs := range sf.EnumeratedValues {
			for _, sev := range sevs.EnumeratedValue {
				if sev.Name == nil {
					continue
				}
				v, err := sev.Val()
				if err != nil {
					if sev.IsDefault == nil || !*sev.IsDefault {
						n.warnf("%s.%s: %v", fpath, *sev.Name, err)
					}
					continue
				}
				f.Enums = append(f.Enums, &ir.EnumValue{
					Name:  *sev.Name,
					Descr: strDescr(sev.Description, nil),
					Value: v,
				})
			}
		}
		out = append(out, f)
	}
	return out
}

func accessOr(s *string, rp props) ir.Access {
	if s != nil {
		if a, ok := parseAccess(*s); ok {
			return a
		}
	}
	if rp.access != nil {
		return *rp.access
	}
	return ir.ReadWrite
}

// parseBitRange parses the "[msb:lsb]" bit range form.
func parseBitRange(s string) (off, wi uint, err error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return 0, 0, fmt.Errorf("bad bit range %q", s)
	}
	msbs, lsbs, ok := strings.Cut(s[1:len(s)-1], ":")
	if !ok {
		return 0, 0, fmt.Errorf("bad bit range %q", s)
	}
	msb, err1 := strconv.ParseUint(strings.TrimSpace(msbs), 10, 8)
	lsb, err2 := strconv.ParseUint(strings.TrimSpace(lsbs), 10, 8)
	if err1 != nil || err2 != nil || msb < lsb {
		return 0, 0, fmt.Errorf("bad bit range %q", s)
	}
	return uint(lsb), uint(msb - lsb + 1), nil
}

// array interprets the dim element group. A dimensioned item must carry
// the [%s] (or %s) placeholder in its name; the placeholder is stripped
// from *name. A dimIndex naming individual elements is carried into
// ir.Array.Index; the default 0-based numbering is left implicit.
func (n *norm) array(path string, g *DimElementGroup, name *string) *ir.Array {
	if g == nil || g.Dim == 0 {
		return nil
	}
	switch {
	case strings.Contains(*name, "[%s]"):
		*name = strings.Replace(*name, "[%s]", "", 1)
	case strings.Contains(*name, "%s"):
		*name = strings.Replace(*name, "%s", "", 1)
	default:
		n.warnf("%s: dim without %%s placeholder in name", path)
		return nil
	}
	a := &ir.Array{Dim: uint(g.Dim), Increment: uint64(g.DimIncrement)}
	if g.DimIndex != nil {
		idx, err := parseDimIndex(*g.DimIndex, a.Dim)
		switch {
		case err != nil:
			n.warnf("%s: %v", path, err)
		case !sequential(idx):
			a.Index = idx
		}
	}
	return a
}

// parseDimIndex parses the two dimIndex forms: an integer range
// "lo-hi" and a comma-separated name list.
func parseDimIndex(s string, dim uint) ([]string, error) {
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		l, err1 := strconv.Atoi(strings.TrimSpace(lo))
		h, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 == nil && err2 == nil {
			if h < l || uint(h-l+1) != dim {
				return nil, fmt.Errorf("dimIndex %q does not cover dim %d", s, dim)
			}
			idx := make([]string, 0, dim)
			for v := l; v <= h; v++ {
				idx = append(idx, strconv.Itoa(v))
			}
			return idx, nil
		}
	}
	idx := strings.Split(s, ",")
	for i := range idx {
		idx[i] = strings.TrimSpace(idx[i])
	}
	if uint(len(idx)) != dim {
		return nil, fmt.Errorf("dimIndex %q does not cover dim %d", s, dim)
	}
	return idx, nil
}

// sequential reports whether idx is the default 0-based numbering.
func sequential(idx []string) bool {
	for i, s := range idx {
		if s != strconv.Itoa(i) {
			return false
		}
	}
	return true
}
