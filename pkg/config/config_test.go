package config_test

import (
	"path/filepath"
	"testing"

	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesEnvOverridesAndCreatesDirs(t *testing.T) {
	root := t.TempDir()
	t.Setenv("LFSD_RECIPES_DIR", filepath.Join(root, "recipes"))
	t.Setenv("LFSD_STATE_DIR", filepath.Join(root, "state"))
	t.Setenv("LFSD_STAGE_DIR", filepath.Join(root, "stage"))
	t.Setenv("LFSD_CACHE_DIR", filepath.Join(root, "cache"))
	t.Setenv("LFSD_BIN", filepath.Join(root, "cache", "bin"))
	t.Setenv("LFSD_SOURCES", filepath.Join(root, "cache", "sources"))
	t.Setenv("LFSD_LOG_DIR", filepath.Join(root, "log"))
	t.Setenv("LFSD_JOBS", "4")
	t.Setenv("LFSD_COLOR", "never")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "recipes"), cfg.RecipesDir)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, "never", cfg.Color)
	assert.DirExists(t, cfg.StateDir)
	assert.DirExists(t, cfg.StageDir)
}

func TestLoadDefaultsJobsToNumCPUWhenUnset(t *testing.T) {
	root := t.TempDir()
	t.Setenv("LFSD_RECIPES_DIR", filepath.Join(root, "recipes"))
	t.Setenv("LFSD_STATE_DIR", filepath.Join(root, "state"))
	t.Setenv("LFSD_STAGE_DIR", filepath.Join(root, "stage"))
	t.Setenv("LFSD_CACHE_DIR", filepath.Join(root, "cache"))
	t.Setenv("LFSD_BIN", filepath.Join(root, "bin"))
	t.Setenv("LFSD_SOURCES", filepath.Join(root, "sources"))
	t.Setenv("LFSD_LOG_DIR", filepath.Join(root, "log"))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cfg.Jobs, 1)
}
