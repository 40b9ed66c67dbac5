// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dump

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/hwregs/regen/cmd/regen/internal/util"
)

const Descr = "dump the normalized device model of an SVD file"

func Main(args []string) {
	if len(args) == 0 {
		fmt.Println(Descr)
		return
	}
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage:\n  dump SVD_FILE...\n")
	}
	fs.Parse(args[1:])
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}
	conf := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	for _, file := range fs.Args() {
		conf.Dump(util.ReadDevice(file))
	}
}
