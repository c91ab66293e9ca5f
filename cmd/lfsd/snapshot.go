package main

import (
	"github.com/fcanata061/lfsd/pkg/snapshotstore"
	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [label]",
		Short: "Create or list snapshots of the covered filesystem subtree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				snaps, err := snapshotstore.List(a.cfg)
				if err != nil {
					return err
				}
				for _, s := range snaps {
					cmd.Println(s.Name)
				}
				return nil
			}
			path, err := snapshotstore.Create(cmd.Context(), a.cfg, args[0])
			if err != nil {
				return err
			}
			cmd.Println(path)
			return nil
		},
	}
	return cmd
}
