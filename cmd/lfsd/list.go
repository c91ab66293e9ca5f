package main

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every recipe and whether it is installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(a.store))
			for name := range a.store {
				names = append(names, name)
			}
			sort.Strings(names)

			var items []pterm.BulletListItem
			for _, name := range names {
				mark := " "
				version := ""
				if info, ok := a.reg[name]; ok {
					mark = "x"
					version = " (" + info.Version + ")"
				}
				items = append(items, pterm.BulletListItem{
					Level: 0,
					Text:  "[" + mark + "] " + name + version,
				})
			}
			return pterm.DefaultBulletList.WithItems(items).Render()
		},
	}
}
