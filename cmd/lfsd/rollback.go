package main

import (
	"github.com/fcanata061/lfsd/pkg/snapshotstore"
	"github.com/spf13/cobra"
)

func newRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <snapshot>",
		Short: "Restore the covered filesystem subtree from a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return snapshotstore.Rollback(cmd.Context(), a.cfg, args[0])
		},
	}
}
