// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package naming

import (
	"strings"
	"unicode"
)

// Case is an identifier case transform. Convert is idempotent: a string
// already in the target case comes back unchanged.
type Case uint8

const (
	Unchanged Case = iota
	Constant       // UPPER_SNAKE
	Upper          // UPPERFLAT
	Pascal         // PascalCase
	Snake          // lower_snake
)

func (c Case) String() string {
	switch c {
	case Constant:
		return "constant"
	case Upper:
		return "upper"
	case Pascal:
		return "pascal"
	case Snake:
		return "snake"
	}
	return "unchanged"
}

// ParseCase maps a configuration string to a Case.
func ParseCase(s string) (Case, bool) {
	for _, c := range [...]Case{Unchanged, Constant, Upper, Pascal, Snake} {
		if c.String() == s {
			return c, true
		}
	}
	return Unchanged, false
}

// words splits an identifier into its word parts: separators are
// non-alphanumeric runes, a lower-to-upper transition, the end of an
// all-caps run followed by a lowercase rune (SPIClock -> SPI, Clock) and
// a letter-to-digit transition.
func words(s string) []string {
	var ws []string
	rs := []rune(s)
	start := 0
	flush := func(end int) {
		if end > start {
			ws = append(ws, string(rs[start:end]))
		}
		start = end
	}
	for i, r := range rs {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush(i)
			start = i + 1
		case i == 0:
		case unicode.IsUpper(r) && unicode.IsLower(rs[i-1]):
			flush(i)
		case unicode.IsLower(r) && unicode.IsUpper(rs[i-1]):
			// end of an acronym: the last upper rune opens the new word
			if i-1 > start {
				flush(i - 1)
			}
		case unicode.IsDigit(r) != unicode.IsDigit(rs[i-1]):
			flush(i)
		}
	}
	flush(len(rs))
	return ws
}

// Convert transforms s into the target case.
func (c Case) Convert(s string) string {
	if c == Unchanged || s == "" {
		return s
	}
	if c.Is(s) {
		return s
	}
	ws := words(s)
	var b strings.Builder
	for i, w := range ws {
		switch c {
		case Constant:
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteString(strings.ToUpper(w))
		case Upper:
			b.WriteString(strings.ToUpper(w))
		case Snake:
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteString(strings.ToLower(w))
		case Pascal:
			r := []rune(strings.ToLower(w))
			r[0] = unicode.ToUpper(r[0])
			b.WriteString(string(r))
		}
	}
	return b.String()
}

// Is reports whether s is already in the target case.
func (c Case) Is(s string) bool {
	if c == Unchanged || s == "" {
		return true
	}
	switch c {
	case Constant:
		return !strings.ContainsFunc(s, func(r rune) bool {
			return !unicode.IsUpper(r) && !unicode.IsDigit(r) && r != '_'
		}) && !strings.Contains(s, "__") &&
			!strings.HasPrefix(s, "_") && !strings.HasSuffix(s, "_")
	case Upper:
		return !strings.ContainsFunc(s, func(r rune) bool {
			return !unicode.IsUpper(r) && !unicode.IsDigit(r)
		})
	case Snake:
		return !strings.ContainsFunc(s, func(r rune) bool {
			return !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '_'
		}) && !strings.Contains(s, "__") &&
			!strings.HasPrefix(s, "_") && !strings.HasSuffix(s, "_")
	case Pascal:
		rs := []rune(s)
		if !unicode.IsUpper(rs[0]) {
			return false
		}
		prevUpper := true
		for _, r := range rs[1:] {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return false
			}
			// two adjacent uppers mean an acronym, which Convert
			// would fold to a single capital
			if unicode.IsUpper(r) && prevUpper {
				return false
			}
			prevUpper = unicode.IsUpper(r)
		}
		return true
	}
	return false
}
