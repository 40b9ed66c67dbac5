// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"github.com/hwregs/regen/ir"
	"github.com/hwregs/regen/naming"
)

// regNames are the top-level identifiers emitted for one register: the
// register value type (also the base of its accessor method), its spec
// type, and its reader and writer types. R and W are empty when the
// access mode rules the direction out.
type regNames struct {
	Type string
	Spec string
	R    string
	W    string
}

// regNames claims the register identifiers in the file scope. prefix
// keeps registers of sibling clusters distinct.
func (e *emitter) regNames(prefix string, r *ir.Register) regNames {
	raw := prefix + r.Name
	n := regNames{
		Type: e.unique(raw, naming.Register),
		Spec: e.unique(raw, naming.RegisterSpec),
	}
	if r.Access.Readable() {
		n.R = e.unique(raw, naming.FieldReader)
	}
	if r.Access.Writable() {
		n.W = e.unique(raw, naming.FieldWriter)
	}
	return n
}

var bitCtor = map[ir.WriteKind]string{
	ir.Modify:       "Bit",
	ir.OneToSet:     "Bit1S",
	ir.ZeroToClear:  "Bit0C",
	ir.OneToClear:   "Bit1C",
	ir.ZeroToSet:    "Bit0S",
	ir.OneToToggle:  "Bit1T",
	ir.ZeroToToggle: "Bit0T",
}

var bitType = map[ir.WriteKind]string{
	ir.Modify:       "BitW",
	ir.OneToSet:     "BitW1S",
	ir.ZeroToClear:  "BitW0C",
	ir.OneToClear:   "BitW1C",
	ir.ZeroToSet:    "BitW0S",
	ir.OneToToggle:  "BitW1T",
	ir.ZeroToToggle: "BitW0T",
}

// fieldCode carries the resolved identifiers of one field.
type fieldCode struct {
	f      *ir.Field
	acc    string // accessor method name, shared by reader and writer
	enum   string // enum type, empty for plain fields
	enumW  string // enum field writer type, empty when not writable
	ftype  string // narrow Go type of the field value
	consts []string
}

// enumerated reports whether the field gets an enum type: single-bit
// fields read and write as bool whatever their value list says.
func enumerated(f *ir.Field) bool {
	return f.Width > 1 && len(f.Enums) > 0
}

// fieldCodes claims the per-field identifiers. Method names share one
// scope between the reader and the writer so both sides of a field use
// the same name. Fields with no narrow Go type are reported through
// the emitter problem list and dropped.
func (e *emitter) fieldCodes(item string, r *ir.Register, writable bool) []fieldCode {
	fscope := map[string]int{"Bits": 1, "UnsafeBits": 1}
	out := make([]fieldCode, 0, len(r.Fields))
	for _, f := range r.Fields {
		ftype, ok := FieldType(f.Width)
		if !ok {
			e.probs = append(e.probs, &WidthError{Item: item + "." + f.Name, Width: f.Width})
			continue
		}
		fc := fieldCode{
			f:     f,
			acc:   e.cfg.table.Unique(fscope, e.name(f.Name, naming.FieldAccessor)),
			ftype: ftype,
		}
		if enumerated(f) {
			fc.enum = e.unique(f.Name, naming.EnumType)
			if writable && f.Access.Writable() {
				fc.enumW = e.unique(f.Name, naming.FieldWriter)
			}
			fc.consts = make([]string, len(f.Enums))
			for i, ev := range f.Enums {
				fc.consts[i] = e.unique(f.Name+"_"+ev.Name, naming.EnumValue)
			}
		}
		out = append(out, fc)
	}
	return out
}

// emitRegister writes everything one register needs besides its
// accessor: the spec type, the register value type with its protocol
// methods, the enum types, and the reader and writer types with their
// field methods. word is the Go type of the raw register word.
func (e *emitter) emitRegister(item string, r *ir.Register, word string, n regNames) {
	fields := e.fieldCodes(item, r, n.W != "")

	e.printf("// %s: reset value and write bitmaps of %s.\n", n.Spec, r.Name)
	e.printf("type %s struct{}\n\n", n.Spec)
	e.printf("func (%s) ResetValue() %s { return %#x }\n", n.Spec, word, r.Reset)
	e.printf("func (%s) OneToModify() %s { return %#x }\n", n.Spec, word, r.OneToModify())
	e.printf("func (%s) ZeroToModify() %s { return %#x }\n\n", n.Spec, word, r.ZeroToModify())

	if r.Descr != "" {
		e.printf("// %s is the %s register: %s\n", n.Type, r.Name, dot(r.Descr))
	} else {
		e.printf("// %s is the %s register.\n", n.Type, r.Name)
	}
	e.printf("type %s struct{ r mmio.Reg[%s, %s] }\n\n", n.Type, word, n.Spec)
	e.printf("// Addr returns the register address.\n")
	e.printf("func (r *%s) Addr() uintptr { return r.r.Addr() }\n\n", n.Type)

	if n.R != "" {
		e.printf("// Read performs one load of the register.\n")
		e.printf("func (r *%s) Read() %s { return %s{r.r.Read()} }\n\n", n.Type, n.R, n.R)
		e.printf("// LoadBits performs one load and returns the raw word.\n")
		e.printf("func (r *%s) LoadBits() %s { return r.r.LoadBits() }\n\n", n.Type, word)
	}
	if n.W != "" {
		e.printf("// Write stores the word built by f, starting from the write\n")
		e.printf("// baseline, with exactly one store.\n")
		e.printf("func (r *%s) Write(f func(*%s)) {\n", n.Type, n.W)
		e.printf("\tr.r.Write(func(w *mmio.W[%s]) { f(&%s{w}) })\n}\n\n", word, n.W)
		e.printf("// WriteZero is like Write but starts from an all-zero word.\n")
		e.printf("func (r *%s) WriteZero(f func(*%s)) {\n", n.Type, n.W)
		e.printf("\tr.r.WriteZero(func(w *mmio.W[%s]) { f(&%s{w}) })\n}\n\n", word, n.W)
		e.printf("// StoreBits performs one store of the raw word.\n")
		e.printf("func (r *%s) StoreBits(v %s) { r.r.StoreBits(v) }\n\n", n.Type, word)
		e.printf("// Reset stores the reset value.\n")
		e.printf("func (r *%s) Reset() { r.r.Reset() }\n\n", n.Type)
	}
	if n.R != "" && n.W != "" {
		e.printf("// Modify stores the word derived by f from the current value,\n")
		e.printf("// with exactly one load and one store.\n")
		e.printf("func (r *%s) Modify(f func(%s, *%s)) {\n", n.Type, n.R, n.W)
		e.printf("\tr.r.Modify(func(cur mmio.R[%s], w *mmio.W[%s]) { f(%s{cur}, &%s{w}) })\n}\n\n",
			word, word, n.R, n.W)
	}

	for _, fc := range fields {
		if fc.enum == "" {
			continue
		}
		e.printf("// %s: %s field values.\n", fc.enum, fc.f.Name)
		e.printf("type %s %s\n\n", fc.enum, fc.ftype)
		e.printf("const (\n")
		for i, ev := range fc.f.Enums {
			e.printf("\t%s %s = %#x", fc.consts[i], fc.enum, ev.Value)
			if ev.Descr != "" {
				e.printf(" // %s", ev.Descr)
			}
			e.printf("\n")
		}
		e.printf(")\n\n")
	}

	if n.R != "" {
		e.emitReader(r, word, n, fields)
	}
	if n.W != "" {
		e.emitWriter(r, word, n, fields)
	}
}

func (e *emitter) emitReader(r *ir.Register, word string, n regNames, fields []fieldCode) {
	e.printf("// %s reads the fields of a %s value.\n", n.R, r.Name)
	e.printf("type %s struct{ r mmio.R[%s] }\n\n", n.R, word)
	e.printf("// Bits returns the raw word.\n")
	e.printf("func (r %s) Bits() %s { return r.r.Bits() }\n\n", n.R, word)
	for _, fc := range fields {
		f := fc.f
		if !f.Access.Readable() {
			continue
		}
		switch {
		case f.Width == 1:
			e.printf("func (r %s) %s() bool { return r.r.Bit(%d).BitIsSet() }\n\n",
				n.R, fc.acc, f.Offset)
		case fc.enum != "":
			e.printf("func (r %s) %s() %s { return %s(r.r.Field(%d, %d)) }\n\n",
				n.R, fc.acc, fc.enum, fc.enum, f.Offset, f.Width)
		default:
			e.printf("func (r %s) %s() %s { return %s(r.r.Field(%d, %d)) }\n\n",
				n.R, fc.acc, fc.ftype, fc.ftype, f.Offset, f.Width)
		}
	}
}

func (e *emitter) emitWriter(r *ir.Register, word string, n regNames, fields []fieldCode) {
	e.printf("// %s builds a %s value to store.\n", n.W, r.Name)
	e.printf("type %s struct{ w *mmio.W[%s] }\n\n", n.W, word)
	e.printf("// Bits returns the word as built so far.\n")
	e.printf("func (w *%s) Bits() %s { return w.w.Bits() }\n\n", n.W, word)
	e.printf("// UnsafeBits replaces the whole word. The caller takes\n")
	e.printf("// responsibility for every bit, including reserved ones.\n")
	e.printf("func (w *%s) UnsafeBits(v %s) *%s { w.w.UnsafeBits(v); return w }\n\n",
		n.W, word, n.W)
	for _, fc := range fields {
		f := fc.f
		if !f.Access.Writable() {
			continue
		}
		switch {
		case f.Width == 1:
			e.printf("func (w *%s) %s() mmio.%s[%s] { return mmio.%s(w.w, %d) }\n\n",
				n.W, fc.acc, bitType[f.Write], word, bitCtor[f.Write], f.Offset)
		case fc.enumW != "":
			e.emitEnumWriter(n, fc, word)
		case fullWidth(f.Width):
			e.printf("func (w *%s) %s() mmio.SafeFieldW[%s] { return mmio.SafeField(w.w, %d, %d) }\n\n",
				n.W, fc.acc, word, f.Offset, f.Width)
		default:
			e.printf("func (w *%s) %s() mmio.FieldW[%s] { return mmio.Field(w.w, %d, %d) }\n\n",
				n.W, fc.acc, word, f.Offset, f.Width)
		}
	}
}

// emitEnumWriter writes the field writer type of an enumerated field:
// writes go through the enum type or named variant methods, with
// UnsafeBits as the raw escape hatch.
func (e *emitter) emitEnumWriter(n regNames, fc fieldCode, word string) {
	f := fc.f
	e.printf("// %s selects the value written to the %s field.\n", fc.enumW, f.Name)
	e.printf("type %s struct{ f mmio.FieldW[%s] }\n\n", fc.enumW, word)
	e.printf("func (w *%s) %s() %s { return %s{mmio.Field(w.w, %d, %d)} }\n\n",
		n.W, fc.acc, fc.enumW, fc.enumW, f.Offset, f.Width)
	e.printf("// Variant writes an enumerated value.\n")
	e.printf("func (w %s) Variant(v %s) { w.f.UnsafeBits(%s(v)) }\n\n",
		fc.enumW, fc.enum, word)
	e.printf("// UnsafeBits writes a raw field value. The caller must ensure\n")
	e.printf("// the hardware accepts it.\n")
	e.printf("func (w %s) UnsafeBits(v %s) { w.f.UnsafeBits(v) }\n\n", fc.enumW, word)
	vscope := map[string]int{"Variant": 1, "UnsafeBits": 1}
	for i, ev := range f.Enums {
		vn := e.cfg.table.Unique(vscope, e.name(ev.Name, naming.FieldAccessor))
		e.printf("func (w %s) %s() { w.Variant(%s) }\n\n", fc.enumW, vn, fc.consts[i])
	}
}

// fullWidth reports whether a field spans its narrow Go type exactly,
// making every value of that type valid.
func fullWidth(wi uint) bool {
	return wi == 8 || wi == 16 || wi == 32 || wi == 64
}

// dot terminates a description for use in a doc comment.
func dot(descr string) string {
	if descr == "" {
		return ""
	}
	last := descr[len(descr)-1]
	if last == '.' || last == '!' || last == '?' {
		return descr
	}
	return descr + "."
}
