// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"bytes"
	"fmt"
	"go/format"

	"github.com/hwregs/regen/naming"
)

// File is one generated source file. Path is relative to the root of
// the generated tree.
type File struct {
	Path string
	Data []byte
}

// emitter accumulates the source of one generated file. Top-level
// identifiers go through the scope map so a file never declares the
// same name twice.
type emitter struct {
	cfg   *Config
	buf   bytes.Buffer
	scope map[string]int
	probs []error
}

func newEmitter(cfg *Config) *emitter {
	return &emitter{cfg: cfg, scope: make(map[string]int)}
}

func (e *emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

func (e *emitter) println(args ...any) {
	fmt.Fprintln(&e.buf, args...)
}

func (e *emitter) donotedit() {
	e.buf.WriteString("// Code generated by regen. DO NOT EDIT.\n\n")
}

// name sanitizes raw under role without claiming it in the file scope.
func (e *emitter) name(raw string, role naming.Role) string {
	return e.cfg.table.Sanitize(raw, role)
}

// unique sanitizes raw under role and claims the result in the file
// scope, numbering later collisions.
func (e *emitter) unique(raw string, role naming.Role) string {
	return e.cfg.table.Unique(e.scope, e.cfg.table.Sanitize(raw, role))
}

// file formats the accumulated source. Formatting failure means the
// emitter produced invalid Go, which is a bug worth surfacing with the
// raw text attached.
func (e *emitter) file(path string) (File, error) {
	src, err := format.Source(e.buf.Bytes())
	if err != nil {
		return File{}, fmt.Errorf("%s: emitted invalid Go: %w\n%s", path, err, e.buf.Bytes())
	}
	return File{Path: path, Data: src}, nil
}
