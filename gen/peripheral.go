// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hwregs/regen/ir"
	"github.com/hwregs/regen/naming"
)

// mmioImport is the package generated code accesses registers through.
const mmioImport = "github.com/hwregs/regen/mmio"

// instance is one concrete peripheral at a fixed base address. An
// arrayed peripheral expands into one instance per element.
type instance struct {
	Name  string
	Base  uint64
	Descr string
	IRQs  []*ir.Interrupt
}

func instances(p *ir.Peripheral) []instance {
	if p.Array == nil {
		return []instance{{p.Name, p.Base, p.Descr, p.Interrupts}}
	}
	out := make([]instance, p.Array.Dim)
	for i := range out {
		out[i] = instance{
			Name:  p.Name + elemSuffix(p.Array, i),
			Base:  p.Base + p.Array.Increment*uint64(i),
			Descr: p.Descr,
		}
		if i == 0 {
			out[i].IRQs = p.Interrupts
		}
	}
	return out
}

// elemSuffix is the name suffix of array element i.
func elemSuffix(a *ir.Array, i int) string {
	if a.Index != nil {
		return a.Index[i]
	}
	return strconv.Itoa(i)
}

// groupKey merges derived peripherals sharing one register layout into
// one package.
func groupKey(p *ir.Peripheral) string {
	if p.Group != "" {
		return p.Group
	}
	return p.Name
}

// layoutSig fingerprints a register layout so only peripherals that
// really share it end up in one package.
func layoutSig(regs []*ir.Register, clusters []*ir.Cluster) string {
	var b strings.Builder
	for _, c := range clusters {
		fmt.Fprintf(&b, "c%s@%#x", c.Name, c.Offset)
		sigArray(&b, c.Array)
		b.WriteString("{" + layoutSig(c.Registers, c.Clusters) + "}")
	}
	for _, r := range regs {
		fmt.Fprintf(&b, "r%s@%#x/%d", r.Name, r.Offset, r.Width)
		sigArray(&b, r.Array)
	}
	return b.String()
}

func sigArray(b *strings.Builder, a *ir.Array) {
	if a == nil {
		return
	}
	fmt.Fprintf(b, "[%d+%#x", a.Dim, a.Increment)
	for _, s := range a.Index {
		b.WriteString("," + s)
	}
	b.WriteString("]")
}

// lowerIdent derives an unexported storage field name from an exported
// type name.
func lowerIdent(name string) string {
	s := strings.ToLower(name[:1]) + name[1:]
	if naming.IsReserved(s) {
		s += "_"
	}
	return s
}

// expressible reports whether a register block can be laid out as a Go
// struct: members in offset order without overlap, arrays with a
// stride matching the element size.
func expressible(regs []*ir.Register, clusters []*ir.Cluster) bool {
	type span struct{ off, size uint64 }
	var spans []span
	for _, r := range regs {
		size := uint64(r.Width / 8)
		if r.Array != nil {
			// Sparse register arrays are expanded into scalars, so
			// any stride not below the word size fits.
			if r.Array.Increment < size {
				return false
			}
			size = r.Array.Increment * uint64(r.Array.Dim)
		}
		spans = append(spans, span{r.Offset, size})
	}
	for _, c := range clusters {
		if !expressible(c.Registers, c.Clusters) {
			return false
		}
		size := blockSpan(c.Registers, c.Clusters)
		if c.Array != nil {
			if size > c.Array.Increment {
				return false
			}
			size = c.Array.Increment * uint64(c.Array.Dim)
		}
		spans = append(spans, span{c.Offset, size})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].off < spans[j].off })
	var cursor uint64
	for _, s := range spans {
		if s.off < cursor {
			return false
		}
		cursor = s.off + s.size
	}
	return true
}

// blockSpan is the natural byte span of a register block.
func blockSpan(regs []*ir.Register, clusters []*ir.Cluster) uint64 {
	var end uint64
	for _, r := range regs {
		e := r.Offset + uint64(r.Width/8)
		if r.Array != nil {
			e = r.Offset + r.Array.Increment*uint64(r.Array.Dim)
		}
		if e > end {
			end = e
		}
	}
	for _, c := range clusters {
		size := blockSpan(c.Registers, c.Clusters)
		if c.Array != nil {
			if c.Array.Increment > size {
				size = c.Array.Increment
			}
			size *= uint64(c.Array.Dim)
		}
		e := c.Offset + size
		if e > end {
			end = e
		}
	}
	return end
}

// periphEmitter emits one peripheral package.
type periphEmitter struct {
	*emitter
	raw   bool
	shift uint
}

// emitPeriphPackage writes the package of one peripheral group. All
// insts share the register layout of the first one.
func emitPeriphPackage(cfg *Config, key string, insts []*ir.Peripheral) (File, []error) {
	model := insts[0]
	pkg := cfg.table.Sanitize(strings.ToLower(key), naming.PackageName)

	pe := &periphEmitter{
		emitter: newEmitter(cfg),
		raw:     cfg.rawPeriph(model.Name) || cfg.rawPeriph(key) || cfg.AddressShift != 0,
		shift:   cfg.AddressShift,
	}
	if !pe.raw && !expressible(model.Registers, model.Clusters) {
		pe.raw = true
	}

	pe.header(pkg, key, insts)
	ptype := pe.unique(key, naming.Peripheral)
	pe.emitBlock(block{
		typ:   ptype,
		item:  model.Name,
		descr: "registers of the " + key + " peripheral",
		regs:  model.Registers,
		subs:  model.Clusters,
	})
	pe.emitInstances(ptype, insts)

	f, err := pe.file(pkg + "/" + pkg + ".go")
	if err != nil {
		pe.probs = append(pe.probs, err)
		return File{}, pe.probs
	}
	return f, pe.probs
}

func (pe *periphEmitter) header(pkg, key string, insts []*ir.Peripheral) {
	pe.donotedit()
	pe.printf("// Package %s provides access to the registers of the %s peripheral.\n", pkg, key)
	pe.printf("//\n// Instances:\n")
	tw := tabwriter.NewWriter(&pe.buf, 0, 0, 1, ' ', 0)
	for _, p := range insts {
		for _, inst := range instances(p) {
			fmt.Fprintf(tw, "//  %s\t %#x\t", inst.Name, inst.Base)
			if inst.Descr != "" {
				fmt.Fprintf(tw, " %s", inst.Descr)
			}
			fmt.Fprintln(tw)
		}
	}
	tw.Flush()
	pe.printf("// Registers:\n")
	tw = tabwriter.NewWriter(&pe.buf, 0, 0, 1, ' ', 0)
	model := insts[0]
	regTable(tw, "", model.Registers, model.Clusters)
	tw.Flush()
	pe.printf("package %s\n\n", pkg)
	nregs := countRegs(model.Registers, model.Clusters)
	pe.printf("import (\n")
	if !pe.raw || nregs > 0 {
		pe.printf("\t\"unsafe\"\n\n")
	}
	if nregs > 0 {
		pe.printf("\t%q\n\n", mmioImport)
	}
	pe.printf("\t%q\n)\n\n", pe.cfg.ImportRoot+"/mmap")
}

// countRegs counts the registers with a representable width.
func countRegs(regs []*ir.Register, clusters []*ir.Cluster) int {
	n := 0
	for _, r := range regs {
		if _, ok := RawType(r.Width); ok {
			n++
		}
	}
	for _, c := range clusters {
		n += countRegs(c.Registers, c.Clusters)
	}
	return n
}

func regTable(tw *tabwriter.Writer, prefix string, regs []*ir.Register, clusters []*ir.Cluster) {
	for _, r := range regs {
		name := prefix + r.Name
		if r.Array != nil {
			name = fmt.Sprintf("%s[%d]", name, r.Array.Dim)
		}
		fmt.Fprintf(tw, "//  0x%03X\t%2d\t %s\t", r.Offset, r.Width, name)
		if r.Descr != "" {
			fmt.Fprintf(tw, " %s", r.Descr)
		}
		fmt.Fprintln(tw)
	}
	for _, c := range clusters {
		name := prefix + c.Name
		if c.Array != nil {
			name = fmt.Sprintf("%s[%d]", name, c.Array.Dim)
		}
		regTable(tw, name+".", c.Registers, c.Clusters)
	}
}

// block is one register block to lay out: the peripheral itself or a
// cluster.
type block struct {
	typ     string
	item    string
	descr   string
	prefix  string // raw name prefix for types declared by nested items
	regs    []*ir.Register
	subs    []*ir.Cluster
	minSize uint64 // pad the struct to this size (cluster array stride)
}

// member is one laid-out item of a block.
type member struct {
	off   uint64
	size  uint64
	field string // typed storage field declaration
	emit  func() // accessor emission, after the struct
}

// emitBlock writes the struct type of a block, its member accessors and
// the register types they return. Cluster types are emitted before the
// block that contains them. Returns the struct size.
func (pe *periphEmitter) emitBlock(b block) uint64 {
	var members []member
	for _, c := range b.subs {
		members = append(members, pe.clusterMember(b, c))
	}
	for _, r := range b.regs {
		m, ok := pe.regMember(b, r)
		if !ok {
			continue
		}
		members = append(members, m...)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].off < members[j].off })

	if b.descr != "" {
		pe.printf("// %s: %s.\n", b.typ, b.descr)
	}
	if pe.raw {
		pe.printf("type %s struct{ addr uintptr }\n\n", b.typ)
	} else {
		pe.printf("type %s struct {\n", b.typ)
		var cursor uint64
		for _, m := range members {
			if m.off > cursor {
				pe.printf("\t_ [%d]byte\n", m.off-cursor)
			}
			pe.printf("\t%s\n", m.field)
			cursor = m.off + m.size
		}
		if b.minSize > cursor {
			pe.printf("\t_ [%d]byte\n", b.minSize-cursor)
		}
		pe.printf("}\n\n")
	}
	for _, m := range members {
		m.emit()
	}
	size := blockSpan(b.regs, b.subs)
	if b.minSize > size {
		size = b.minSize
	}
	return size
}

// clusterMember emits the cluster's own types and returns its slot in
// the enclosing block.
func (pe *periphEmitter) clusterMember(b block, c *ir.Cluster) member {
	ctype := pe.unique(b.prefix+c.Name, naming.Cluster)
	item := b.item + "." + c.Name
	stride := blockSpan(c.Registers, c.Clusters)
	if c.Array != nil && c.Array.Increment > stride {
		stride = c.Array.Increment
	}
	size := pe.emitBlock(block{
		typ:     ctype,
		item:    item,
		descr:   dropDot(c.Descr),
		prefix:  b.prefix + c.Name + "_",
		regs:    c.Registers,
		subs:    c.Clusters,
		minSize: stride,
	})
	field := lowerIdent(ctype)
	m := member{off: c.Offset, size: size}
	switch {
	case c.Array != nil:
		m.size = size * uint64(c.Array.Dim)
		m.field = fmt.Sprintf("%s [%d]%s", field, c.Array.Dim, ctype)
		dim, incr := c.Array.Dim, c.Array.Increment
		m.emit = func() {
			if pe.raw {
				pe.printf("func (p %s) %s(n int) %s {\n", b.typ, ctype, ctype)
				pe.printf("\tif uint(n) >= %d {\n\t\tpanic(%q)\n\t}\n",
					dim, item+": index out of range")
				pe.printf("\treturn %s{p.addr + %#x + %#x*uintptr(n)}\n}\n\n",
					ctype, c.Offset, incr)
			} else {
				pe.printf("func (p *%s) %s(n int) *%s { return &p.%s[n] }\n\n",
					b.typ, ctype, ctype, field)
			}
		}
	default:
		m.field = field + " " + ctype
		m.emit = func() {
			if pe.raw {
				pe.printf("func (p %s) %s() %s { return %s{p.addr + %#x} }\n\n",
					b.typ, ctype, ctype, ctype, c.Offset)
			} else {
				pe.printf("func (p *%s) %s() *%s { return &p.%s }\n\n",
					b.typ, ctype, ctype, field)
			}
		}
	}
	return m
}

// regMember claims the register's identifiers and returns its slots in
// the enclosing block. A sparse typed array expands into one slot per
// element sharing the register types.
func (pe *periphEmitter) regMember(b block, r *ir.Register) ([]member, bool) {
	word, ok := RawType(r.Width)
	if !ok {
		pe.probs = append(pe.probs, &WidthError{Item: b.item + "." + r.Name, Width: r.Width})
		return nil, false
	}
	names := pe.regNames(b.prefix, r)
	item := b.item + "." + r.Name
	wb := uint64(r.Width / 8)
	addr := Address{Offset: r.Offset, Array: r.Array, Shift: pe.shift}
	emitTypes := func() { pe.emitRegister(item, r, word, names) }

	field := lowerIdent(names.Type)
	switch {
	case r.Array != nil && (pe.raw || r.Array.Increment == wb):
		acc := Accessor{
			Shape: ArrayShape,
			Recv:  b.typ,
			Name:  names.Type,
			Type:  names.Type,
			Field: field,
			Item:  item,
			Addr:  addr,
		}.RawIf(pe.raw)
		// Individually named elements get forwarders to the indexed
		// accessor.
		var elems []Accessor
		for i, suffix := range r.Array.Index {
			elems = append(elems, Accessor{
				Shape:  ArrayElemShape,
				Recv:   b.typ,
				Name:   pe.unique(b.prefix+r.Name+suffix, naming.Register),
				Type:   names.Type,
				Target: names.Type,
				Index:  i,
			}.RawIf(pe.raw))
		}
		m := member{
			off:   r.Offset,
			size:  r.Array.Increment * uint64(r.Array.Dim),
			field: fmt.Sprintf("%s [%d]%s", field, r.Array.Dim, names.Type),
			emit: func() {
				acc.Render(&pe.buf)
				pe.println()
				for _, el := range elems {
					el.Render(&pe.buf)
					pe.println()
				}
				emitTypes()
			},
		}
		return []member{m}, true
	case r.Array != nil:
		// Sparse array in a typed block: one padded slot per element,
		// all sharing the register types.
		pad := r.Array.Increment - wb
		out := make([]member, r.Array.Dim)
		for i := range out {
			i := i
			elemName := pe.unique(b.prefix+r.Name+elemSuffix(r.Array, i), naming.Register)
			efield := lowerIdent(elemName)
			decl := efield + " " + names.Type
			if pad > 0 && i < len(out)-1 {
				decl += fmt.Sprintf("\n\t_ [%d]byte", pad)
			}
			out[i] = member{
				off:   r.Offset + r.Array.Increment*uint64(i),
				size:  r.Array.Increment,
				field: decl,
				emit: func() {
					acc := Accessor{
						Shape: RegShape,
						Recv:  b.typ,
						Name:  elemName,
						Type:  names.Type,
						Field: efield,
					}
					acc.Render(&pe.buf)
					pe.println()
					if i == 0 {
						emitTypes()
					}
				},
			}
			if i == len(out)-1 {
				out[i].size = wb
			}
		}
		return out, true
	default:
		acc := Accessor{
			Shape: RegShape,
			Recv:  b.typ,
			Name:  names.Type,
			Type:  names.Type,
			Field: field,
			Item:  item,
			Addr:  addr,
		}.RawIf(pe.raw)
		m := member{
			off:   r.Offset,
			size:  wb,
			field: field + " " + names.Type,
			emit: func() {
				acc.Render(&pe.buf)
				pe.println()
				emitTypes()
			},
		}
		return []member{m}, true
	}
}

// emitInstances writes the package-level singletons, one per concrete
// peripheral instance, plus the runtime constructor for raw layouts.
func (pe *periphEmitter) emitInstances(ptype string, insts []*ir.Peripheral) {
	if pe.raw {
		pe.printf("// %sAt returns the peripheral at a runtime base address.\n", ptype)
		pe.printf("func %sAt(addr uintptr) %s { return %s{addr} }\n\n", ptype, ptype, ptype)
	}
	pe.printf("var (\n")
	for _, p := range insts {
		for _, inst := range instances(p) {
			name := pe.unique(inst.Name, naming.PeripheralSingleton)
			base := pe.name(inst.Name, naming.PeripheralSingleton) + "_BASE"
			if pe.raw {
				pe.printf("\t%s = %s{uintptr(mmap.%s)}\n", name, ptype, base)
			} else {
				pe.printf("\t%s = (*%s)(unsafe.Pointer(mmap.%s))\n", name, ptype, base)
			}
		}
	}
	pe.printf(")\n")
}

func dropDot(s string) string {
	return strings.TrimSuffix(s, ".")
}
