package orchestrator_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/fcanata061/lfsd/pkg/orchestrator"
	"github.com/fcanata061/lfsd/pkg/planstore"
	"github.com/fcanata061/lfsd/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		StateDir:   filepath.Join(root, "state"),
		StageDir:   filepath.Join(root, "stage"),
		CacheDir:   filepath.Join(root, "cache"),
		SourcesDir: filepath.Join(root, "cache", "sources"),
		BinDir:     filepath.Join(root, "cache", "bin"),
		LogDir:     filepath.Join(root, "log"),
		Jobs:       1,
	}
	require.NoError(t, cfg.EnsureDirs())
	return cfg
}

func requireTarZstd(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tar"); err != nil {
		t.Skip("tar not available")
	}
	if _, err := exec.LookPath("zstd"); err != nil {
		t.Skip("zstd not available")
	}
}

func TestInstallWritesPlanAndBuildsBinOnlyClosure(t *testing.T) {
	requireTarZstd(t)
	cfg := testConfig(t)

	store := map[string]*types.Recipe{
		"glibc": {Name: "glibc", BinOnly: true},
		"zlib":  {Name: "zlib", BinOnly: true, Depends: []string{"glibc"}},
	}
	reg := map[string]types.InstalledInfo{}

	err := orchestrator.Install(context.Background(), []string{"zlib"}, store, cfg, reg, types.BuildOptions{})
	require.NoError(t, err)

	order, err := planstore.Read(cfg.StateDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"glibc", "zlib"}, order)
}

func TestUpgradeSkipsPackagesMissingRecipes(t *testing.T) {
	requireTarZstd(t)
	cfg := testConfig(t)

	store := map[string]*types.Recipe{}
	reg := map[string]types.InstalledInfo{"orphan": {Version: "1.0"}}

	err := orchestrator.Upgrade(context.Background(), store, cfg, reg, types.BuildOptions{})
	require.NoError(t, err)
}

func TestUpgradeSkipsPackagesAlreadyAtRecipeVersion(t *testing.T) {
	requireTarZstd(t)
	cfg := testConfig(t)

	store := map[string]*types.Recipe{
		"zlib": {Name: "zlib", Version: "1.3.1", BinOnly: true},
	}
	reg := map[string]types.InstalledInfo{
		"zlib": {Version: "1.3.1"},
	}

	err := orchestrator.Upgrade(context.Background(), store, cfg, reg, types.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, "1.3.1", reg["zlib"].Version)
	assert.Empty(t, reg["zlib"].InstalledAt)
}

func TestUpgradeRebuildsPackagesWithNewerRecipeVersion(t *testing.T) {
	requireTarZstd(t)
	cfg := testConfig(t)

	store := map[string]*types.Recipe{
		"zlib": {Name: "zlib", Version: "1.3.2", BinOnly: false},
	}
	reg := map[string]types.InstalledInfo{
		"zlib": {Version: "1.3.1"},
	}

	err := orchestrator.Upgrade(context.Background(), store, cfg, reg, types.BuildOptions{})
	require.NoError(t, err)
}
