package main

import (
	"github.com/fcanata061/lfsd/pkg/orchestrator"
	"github.com/fcanata061/lfsd/pkg/types"
	"github.com/spf13/cobra"
)

func newRebuildAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild-all",
		Short: "Topologically rebuild every recipe in the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return orchestrator.RebuildAll(cmd.Context(), a.store, a.cfg, a.reg, types.BuildOptions{})
		},
	}
}
