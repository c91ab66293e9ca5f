package main

import (
	"github.com/fcanata061/lfsd/pkg/depgraph"
	"github.com/fcanata061/lfsd/pkg/planstore"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <package>...",
		Aliases: []string{"p"},
		Short: "Compute and persist a dependency-ordered build plan",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closure := depgraph.Closure(args, a.store)
			order, err := depgraph.TopoSort(closure)
			if err != nil {
				return err
			}
			if err := planstore.Write(a.cfg.StateDir, order); err != nil {
				return err
			}
			for _, name := range order {
				cmd.Println(name)
			}
			return nil
		},
	}
}
