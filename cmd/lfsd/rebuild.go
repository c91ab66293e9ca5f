package main

import (
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/stagebuilder"
	"github.com/fcanata061/lfsd/pkg/types"
	"github.com/spf13/cobra"
)

func newRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild <package>",
		Short: "Rebuild a single package without touching its dependents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			r, ok := a.store[name]
			if !ok {
				return lfsderrors.Newf(lfsderrors.ErrRecipeParse, "no recipe named %s", name)
			}
			return stagebuilder.Build(cmd.Context(), r, a.cfg, a.reg, types.BuildOptions{})
		},
	}
}
