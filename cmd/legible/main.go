// Legible - keep text colours readable
//
// Legible checks text/background colour pairs against the WCAG contrast
// thresholds and fixes the ones that fail, changing them as little as
// perceptually possible.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/legible/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
