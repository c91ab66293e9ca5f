package main

import (
	"github.com/fcanata061/lfsd/pkg/reciperepo"
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sync [repo]",
		Aliases: []string{"s"},
		Short:   "Synchronize the local recipe tree with its remote",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if len(args) == 1 {
				target := *a.cfg
				target.RecipesDir = args[0]
				cfg = &target
			}
			return reciperepo.Sync(cmd.Context(), cfg)
		},
	}
}
