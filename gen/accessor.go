// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"io"
	"text/template"
)

// Shape selects how an accessor reaches its register: through the typed
// register block or by computing a pointer from a runtime base address.
type Shape int

const (
	RegShape       Shape = iota // typed scalar
	RawRegShape                 // computed scalar
	ArrayShape                  // typed array, indexed
	RawArrayShape               // computed array, bounds checked
	ArrayElemShape              // named element, forwards to the array accessor
)

// Accessor renders one register accessor method. Recv is the receiver
// type (the peripheral or an enclosing cluster), Name the method name,
// Type the register value type. Field is the storage field of the typed
// layout; Addr locates the register for the computed layouts.
type Accessor struct {
	Shape Shape
	Recv  string
	Name  string
	Type  string
	Doc   string
	Field string
	Item  string // full path, for the bounds panic
	Addr  Address

	// Target and Index forward an ArrayElemShape accessor to its
	// sibling array accessor.
	Target string
	Index  int

	valueRecv bool
}

// RecvDecl is the receiver declaration: computed layouts hold only an
// address and take a value receiver.
func (a Accessor) RecvDecl() string {
	if a.Computed() || a.Shape == ArrayElemShape && a.valueRecv {
		return "p " + a.Recv
	}
	return "p *" + a.Recv
}

// Raw degrades a typed accessor to its computed form. Computed and
// element accessors are returned unchanged, so Raw is idempotent; an
// element accessor degrades through the array accessor it forwards to.
func (a Accessor) Raw() Accessor {
	switch a.Shape {
	case RegShape:
		a.Shape = RawRegShape
	case ArrayShape:
		a.Shape = RawArrayShape
	case ArrayElemShape:
		a.valueRecv = true
	}
	return a
}

// RawIf returns a.Raw() when raw is set and a unchanged otherwise.
func (a Accessor) RawIf(raw bool) Accessor {
	if raw {
		return a.Raw()
	}
	return a
}

// Computed reports whether the accessor materializes its register from
// an address instead of the typed block.
func (a Accessor) Computed() bool {
	return a.Shape == RawRegShape || a.Shape == RawArrayShape
}

func (a Accessor) Dim() uint {
	if a.Addr.Array == nil {
		return 1
	}
	return a.Addr.Array.Dim
}

func (a Accessor) Formula() string {
	return a.Addr.Formula("p.addr", "n")
}

var accessorTmpl = template.Must(template.New("accessor").Parse(`
{{- define "reg" -}}
{{.Doc}}func ({{.RecvDecl}}) {{.Name}}() *{{.Type}} {
	return &p.{{.Field}}
}
{{end -}}

{{- define "rawreg" -}}
{{.Doc}}func ({{.RecvDecl}}) {{.Name}}() *{{.Type}} {
	return (*{{.Type}})(unsafe.Pointer({{.Formula}}))
}
{{end -}}

{{- define "array" -}}
{{.Doc}}func ({{.RecvDecl}}) {{.Name}}(n int) *{{.Type}} {
	return &p.{{.Field}}[n]
}
{{end -}}

{{- define "rawarray" -}}
{{.Doc}}func ({{.RecvDecl}}) {{.Name}}(n int) *{{.Type}} {
	if uint(n) >= {{.Dim}} {
		panic("{{.Item}}: index out of range")
	}
	return (*{{.Type}})(unsafe.Pointer({{.Formula}}))
}
{{end -}}

{{- define "elem" -}}
{{.Doc}}func ({{.RecvDecl}}) {{.Name}}() *{{.Type}} {
	return p.{{.Target}}({{.Index}})
}
{{end -}}
`))

var shapeTmpl = [...]string{
	RegShape:       "reg",
	RawRegShape:    "rawreg",
	ArrayShape:     "array",
	RawArrayShape:  "rawarray",
	ArrayElemShape: "elem",
}

// Render writes the accessor method source.
func (a Accessor) Render(w io.Writer) error {
	return accessorTmpl.ExecuteTemplate(w, shapeTmpl[a.Shape], a)
}
