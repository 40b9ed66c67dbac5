// Copyright 2026 The Regen Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"os"

	"github.com/hwregs/regen/ir"
	"github.com/hwregs/regen/svd"
)

// FatalErr prints the error prefixed with what and exits. A nil error
// is a no-op.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// ReadDevice parses an SVD file and normalizes it into the device
// model. Normalization problems are warnings: the affected items are
// dropped and the rest of the device survives.
func ReadDevice(file string) *ir.Device {
	f, err := os.Open(file)
	FatalErr(file, err)
	defer f.Close()
	sd, err := svd.Parse(f)
	FatalErr(file, err)
	dev, probs := sd.Normalize()
	for _, p := range probs {
		fmt.Fprintf(os.Stderr, "%s: warning: %v\n", file, p)
	}
	return dev
}
