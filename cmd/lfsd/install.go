package main

import (
	"github.com/fcanata061/lfsd/pkg/orchestrator"
	"github.com/fcanata061/lfsd/pkg/types"
	"github.com/spf13/cobra"
)

var (
	installStrip bool
	installPack  bool
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install <package>...",
		Aliases: []string{"i"},
		Short:   "Plan, build, and apply one or more packages and their dependencies",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := types.BuildOptions{Strip: installStrip, Pack: installPack}
			return orchestrator.Install(cmd.Context(), args, a.store, a.cfg, a.reg, opts)
		},
	}
	cmd.Flags().BoolVar(&installStrip, "strip", false, "strip ELF binaries after install")
	cmd.Flags().BoolVar(&installPack, "pack", false, "pack a binary archive after install")
	return cmd
}
