package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// setupColor resolves LFSD_COLOR (always|never|auto) against whether
// stdout is a terminal, and toggles pterm's global color output to match.
func setupColor(cfg string) {
	switch cfg {
	case "always":
		pterm.EnableColor()
	case "never":
		pterm.DisableColor()
	default:
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			pterm.EnableColor()
		} else {
			pterm.DisableColor()
		}
	}
}
