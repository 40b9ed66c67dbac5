// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package naming derives valid, collision-free target-language
// identifiers from raw hardware description names. Sanitizing is a pure
// function of (input, role, rule table) and never fails: pathological
// input degrades to a non-empty fallback identifier.
package naming

import (
	"strconv"
	"strings"
)

// Role scopes a naming rule. Every identifier the generator emits is
// sanitized under exactly one role.
type Role uint8

const (
	FieldAccessor Role = iota
	FieldReader
	FieldWriter
	EnumType
	EnumValue
	Cluster
	Register
	RegisterSpec
	Peripheral
	PeripheralSingleton
	Interrupt
	PackageName

	numRoles
)

var roleNames = [numRoles]string{
	"field_accessor", "field_reader", "field_writer", "enum_type",
	"enum_value", "cluster", "register", "register_spec", "peripheral",
	"peripheral_singleton", "interrupt", "package_name",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// ParseRole maps a configuration string to a Role.
func ParseRole(s string) (Role, bool) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), true
		}
	}
	return 0, false
}

// Rule is the per-role identifier format: case transform, fixed prefix
// and suffix, and whether the result is escaped against the reserved
// words of the emitted language and the register protocol method names.
type Rule struct {
	Case   Case
	Prefix string
	Suffix string
	Escape bool
}

// Characters some vendors use in peripheral and field names that are not
// valid in an identifier.
const blacklist = "()[]/ -"

// Method names of the register access protocol. A field accessor may not
// shadow them, whatever its case.
var internals = map[string]bool{
	"set_bit": true, "clear_bit": true, "bit": true, "bits": true,
}

// Table maps roles to naming rules.
type Table struct {
	rules    [numRoles]Rule
	reserved map[string]bool
}

// DefaultTable returns the rule table for generated Go: Pascal for types
// and exported accessor methods, Constant for enum values, Snake for
// package-level names. Accessor and package roles are escaped.
func DefaultTable() *Table {
	t := &Table{reserved: goReserved}
	t.rules = [numRoles]Rule{
		FieldAccessor:       {Case: Pascal, Escape: true},
		FieldReader:         {Case: Pascal, Suffix: "R"},
		FieldWriter:         {Case: Pascal, Suffix: "W"},
		EnumType:            {Case: Pascal},
		EnumValue:           {Case: Constant},
		Cluster:             {Case: Pascal},
		Register:            {Case: Pascal, Escape: true},
		RegisterSpec:        {Case: Pascal, Suffix: "Spec"},
		Peripheral:          {Case: Pascal, Escape: true},
		PeripheralSingleton: {Case: Upper},
		Interrupt:           {Case: Unchanged},
		PackageName:         {Case: Snake, Escape: true},
	}
	return t
}

// Rule returns the rule for a role.
func (t *Table) Rule(role Role) Rule {
	return t.rules[role]
}

// Set replaces the rule for a role.
func (t *Table) Set(role Role, r Rule) {
	t.rules[role] = r
}

// Sanitize derives the identifier for raw under the given role. The
// pipeline: strip blacklisted characters, apply the role's case transform
// (idempotently), escape a leading digit with '_' unless a prefix is
// configured (the prefix supersedes the escape), append the suffix, and
// for escaped roles append a trailing '_' on a reserved-word or protocol
// collision.
func (t *Table) Sanitize(raw string, role Role) string {
	r := t.rules[role]
	s := raw
	if strings.ContainsAny(s, blacklist) {
		s = strings.Map(func(c rune) rune {
			if strings.ContainsRune(blacklist, c) {
				return -1
			}
			return c
		}, s)
	}
	cased := r.Case.Convert(s)
	if cased == "" {
		cased = r.Case.Convert("reserved")
	}
	var id string
	switch {
	case r.Prefix != "":
		id = r.Prefix + cased + r.Suffix
	case s != "" && s[0] >= '0' && s[0] <= '9':
		id = "_" + cased + r.Suffix
	default:
		id = cased + r.Suffix
	}
	if r.Escape && (t.reserved[id] || internals[Snake.Convert(id)]) {
		id += "_"
	}
	return id
}

// Unique resolves local collisions within one emitted scope: the first
// occurrence of an identifier is returned as is, later ones get a numeric
// suffix. The scope map carries the occurrence counts.
func (t *Table) Unique(scope map[string]int, id string) string {
	n := scope[id]
	scope[id] = n + 1
	if n == 0 {
		return id
	}
	return id + strconv.Itoa(n)
}
