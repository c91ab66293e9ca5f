package main

import (
	"fmt"

	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/fcanata061/lfsd/pkg/logging"
	"github.com/fcanata061/lfsd/pkg/recipe"
	"github.com/fcanata061/lfsd/pkg/registry"
	"github.com/fcanata061/lfsd/pkg/statelock"
	"github.com/fcanata061/lfsd/pkg/types"
	"github.com/spf13/cobra"
)

// app holds the state every subcommand needs: configuration, the
// loaded recipe store, and the installed registry. It is populated
// once in rootCmd's PersistentPreRunE, mirroring the teacher's
// singleton config access pattern.
type app struct {
	cfg   *config.Config
	store map[string]*types.Recipe
	reg   map[string]types.InstalledInfo
	lock  *statelock.Lock
}

var (
	a         app
	verbosity int
	dryRun    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lfsd",
		Short:         "A source-based package manager for a from-scratch distribution",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging verbosity")
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report what would happen without changing anything")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.DryRun = dryRun
		logging.Setup(verbosity, cfg.LogDir)
		setupColor(cfg.Color)

		if needsLock(cmd) {
			lock, err := statelock.Acquire(cfg.StateDir)
			if err != nil {
				return err
			}
			a.lock = lock
		}

		store, err := recipe.LoadAll(cfg.RecipesDir)
		if err != nil {
			return err
		}
		reg, err := registry.Load(cfg.StateDir)
		if err != nil {
			return err
		}

		a.cfg = cfg
		a.store = store
		a.reg = reg
		return nil
	}

	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a.lock != nil {
			return a.lock.Unlock()
		}
		return nil
	}

	root.AddCommand(
		newVersionCmd(),
		newSyncCmd(),
		newListCmd(),
		newInfoCmd(),
		newPlanCmd(),
		newBuildCmd(),
		newApplyCmd(),
		newInstallCmd(),
		newInstallBinCmd(),
		newRemoveCmd(),
		newSnapshotCmd(),
		newRollbackCmd(),
		newUpgradeCmd(),
		newRebuildCmd(),
		newRebuildAllCmd(),
		newCompletionCmd(),
		newManCmd(),
	)

	return root
}

// needsLock reports whether cmd mutates shared state and therefore
// needs the advisory state-directory lock; read-only commands like
// list/info/version skip it so they never contend with a running build.
func needsLock(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "list", "info", "version", "help", "completion", "man":
		return false
	default:
		return true
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lfsd version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

var version = "dev"
