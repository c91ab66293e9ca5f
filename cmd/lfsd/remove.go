package main

import (
	"github.com/fcanata061/lfsd/pkg/removeengine"
	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <package>",
		Aliases: []string{"rm"},
		Short:   "Uninstall a package, refusing if another package still depends on it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return removeengine.Remove(args[0], a.cfg, a.reg, a.store)
		},
	}
}
