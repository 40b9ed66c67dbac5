// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package generate

import (
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hwregs/regen/cmd/regen/internal/util"
	"github.com/hwregs/regen/gen"
)

const Descr = "generate register access packages from SVD files"

func Main(args []string) {
	if len(args) == 0 {
		fmt.Println(Descr)
		return
	}
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage:\n  gen [OPTIONS] SVD_FILE...\nOptions:\n")
		fs.PrintDefaults()
	}
	cfgPath := fs.String("c", "", "configuration file (YAML)")
	root := fs.String("root", "", "import root of the generated trees (overrides config)")
	out := fs.String("o", ".", "output directory")
	fs.Parse(args[1:])
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}

	cfg := new(gen.Config)
	if *cfgPath != "" {
		f, err := os.Open(*cfgPath)
		util.FatalErr(*cfgPath, err)
		cfg, err = gen.LoadConfig(f)
		f.Close()
		util.FatalErr(*cfgPath, err)
	}
	if *root != "" {
		cfg.ImportRoot = *root
	}

	g := new(errgroup.Group)
	for _, file := range fs.Args() {
		g.Go(func() error { return genFile(file, cfg, *out) })
	}
	util.FatalErr("", g.Wait())
}

// genFile generates the tree of one device under outdir. Every device
// gets its own subdirectory and module, rooted at the configured
// import root.
func genFile(file string, base *gen.Config, outdir string) error {
	dev := util.ReadDevice(file)
	name := strings.ToLower(dev.Name)

	cfg := *base
	cfg.ImportRoot = path.Join(base.ImportRoot, name)
	if err := cfg.Check(); err != nil {
		return err
	}
	res, err := gen.Generate(dev, &cfg)
	if err != nil {
		return err
	}
	for _, p := range res.Problems {
		fmt.Fprintf(os.Stderr, "%s: warning: %v\n", dev.Name, p)
	}
	dir := filepath.Join(outdir, name)
	for _, f := range res.Files {
		fpath := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(fpath, f.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
