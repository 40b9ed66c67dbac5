// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Regen generates compile-time-checked register access packages from
// SVD device descriptions.
package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/hwregs/regen/cmd/regen/internal/decode"
	"github.com/hwregs/regen/cmd/regen/internal/dump"
	"github.com/hwregs/regen/cmd/regen/internal/generate"
)

type tool struct {
	descr string
	main  func(args []string)
}

var tools = map[string]tool{
	"gen":    {generate.Descr, generate.Main},
	"decode": {decode.Descr, decode.Main},
	"dump":   {dump.Descr, dump.Main},
}

func printToolList() {
	names := slices.Sorted(maps.Keys(tools))
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  regen COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, tools[name].descr)
	}
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		printToolList()
		return
	}
	tool, ok := tools[os.Args[1]]
	if !ok {
		printToolList()
		os.Exit(1)
	}
	tool.main(os.Args[1:])
}
