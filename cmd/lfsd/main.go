// Command lfsd is a source-based package manager for a from-scratch
// Unix-like distribution: it resolves recipe dependencies, builds
// packages into per-package staging roots, applies them onto the live
// filesystem with a pre-apply snapshot, and removes them again with
// reverse-dependency safety.
package main

import (
	"os"

	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/pterm/pterm"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		pterm.Error.Printfln("%v", err)
		os.Exit(lfsderrors.ExitCode(err))
	}
}
