package main

import (
	"github.com/fcanata061/lfsd/pkg/pkgarchive"
	"github.com/spf13/cobra"
)

func newInstallBinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install-bin <archive.tar.zst>",
		Short: "Extract a prebuilt binary package archive directly over /",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkgarchive.InstallBin(cmd.Context(), args[0], "/")
		},
	}
}
