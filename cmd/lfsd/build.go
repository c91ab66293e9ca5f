package main

import (
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/planstore"
	"github.com/fcanata061/lfsd/pkg/stagebuilder"
	"github.com/fcanata061/lfsd/pkg/types"
	"github.com/spf13/cobra"
)

var (
	buildStrip bool
	buildPack  bool
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "build",
		Aliases: []string{"b"},
		Short:   "Build every package in the persisted plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := planstore.Read(a.cfg.StateDir)
			if err != nil {
				return err
			}

			opts := types.BuildOptions{Strip: buildStrip, Pack: buildPack}
			for _, name := range order {
				r, ok := a.store[name]
				if !ok {
					return lfsderrors.Newf(lfsderrors.ErrRecipeParse, "no recipe for planned package %s", name)
				}
				if err := stagebuilder.Build(cmd.Context(), r, a.cfg, a.reg, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&buildStrip, "strip", false, "strip ELF binaries after install")
	cmd.Flags().BoolVar(&buildPack, "pack", false, "pack a binary archive after install")
	return cmd
}
