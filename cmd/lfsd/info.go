package main

import (
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Show a recipe's version, dependencies, and install status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			r, ok := a.store[name]
			if !ok {
				return lfsderrors.Newf(lfsderrors.ErrNotFound, "no recipe named %s", name)
			}

			pterm.Println(pterm.Bold.Sprint(r.Name), r.Version)
			pterm.Println("depends:", r.Depends)

			if info, ok := a.reg[name]; ok {
				pterm.Success.Printfln("installed %s at %s", info.Version, info.InstalledAt)
			} else {
				pterm.Warning.Println("not installed")
			}
			return nil
		},
	}
}
