package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newManCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:    "man",
		Short:  "Generate man pages for every lfsd command",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{Title: "LFSD", Section: "1"}
			return doc.GenManTree(cmd.Root(), header, outDir)
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write man pages into")
	return cmd
}
