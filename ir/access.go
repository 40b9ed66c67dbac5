// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// AccessOf derives the access mode of a register. An explicitly specified
// mode wins. Otherwise the unanimous mode of the fields is used; a mix of
// write-only and write-once fields degrades to write-only and any other
// disagreement defaults to read-write, as does an empty field list.
func AccessOf(explicit *Access, fields []*Field) Access {
	if explicit != nil {
		return *explicit
	}
	if len(fields) == 0 {
		return ReadWrite
	}
	all := func(a Access) bool {
		for _, f := range fields {
			if f.Access != a {
				return false
			}
		}
		return true
	}
	switch {
	case all(ReadOnly):
		return ReadOnly
	case all(WriteOnce):
		return WriteOnce
	case all(ReadWriteOnce):
		return ReadWriteOnce
	}
	for _, f := range fields {
		if f.Access != WriteOnly && f.Access != WriteOnce {
			return ReadWrite
		}
	}
	return WriteOnly
}
