package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fcanata061/lfsd/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWalksStageDir(t *testing.T) {
	stage := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(stage, "usr", "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stage, "usr", "bin", "tool"), []byte("bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stage, "usr", "lib.so"), []byte("lib"), 0o644))

	entries, err := manifest.Build(stage)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "/usr/bin/tool", entries[0].Path)
	assert.Equal(t, "/usr/lib.so", entries[1].Path)
	assert.NotEmpty(t, entries[0].SHA256)
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zlib.manifest")

	stage := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(stage, "f"), []byte("x"), 0o644))
	entries, err := manifest.Build(stage)
	require.NoError(t, err)

	require.NoError(t, manifest.Write(path, entries))
	read, err := manifest.Read(path)
	require.NoError(t, err)
	assert.Equal(t, entries, read)
}
