package main

import (
	"github.com/fcanata061/lfsd/pkg/applyengine"
	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Mirror every built pkgroot onto the live filesystem",
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyengine.Apply(cmd.Context(), a.cfg)
		},
	}
}
