package main

import (
	"github.com/fcanata061/lfsd/pkg/orchestrator"
	"github.com/fcanata061/lfsd/pkg/types"
	"github.com/spf13/cobra"
)

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Rebuild and apply every installed package whose recipe version changed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return orchestrator.Upgrade(cmd.Context(), a.store, a.cfg, a.reg, types.BuildOptions{})
		},
	}
}
