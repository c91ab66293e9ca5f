// Package testutil provides small fixtures shared by lfsd's package
// tests: a scratch config rooted under a temp directory and a minimal
// recipe builder, so individual package tests don't each reinvent
// directory scaffolding.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/fcanata061/lfsd/pkg/types"
)

// NewConfig returns a Config rooted under a fresh temp directory with
// every owned directory already created.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		RecipesDir:      filepath.Join(root, "recipes"),
		StateDir:        filepath.Join(root, "state"),
		StageDir:        filepath.Join(root, "stage"),
		CacheDir:        filepath.Join(root, "cache"),
		SourcesDir:      filepath.Join(root, "cache", "sources"),
		BinDir:          filepath.Join(root, "cache", "bin"),
		LogDir:          filepath.Join(root, "log"),
		Channel:         "stable",
		SnapshotBackend: "tar",
		Jobs:            1,
	}
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("creating test config directories: %v", err)
	}
	return cfg
}

// Recipe builds a minimal bin_only recipe for tests that don't care
// about the build pipeline, only about dependency graphs and registry
// bookkeeping.
func Recipe(name string, deps ...string) *types.Recipe {
	return &types.Recipe{
		Name:    name,
		Version: "1.0",
		Depends: deps,
		BinOnly: true,
	}
}
