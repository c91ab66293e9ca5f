package recipe_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fcanata061/lfsd/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecipe(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadDecodesFullRecipe(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "zlib.toml", `
name = "zlib"
version = "1.3.1"
sources = ["https://example.org/zlib-1.3.1.tar.gz"]
sha256 = "deadbeef"
depends = ["glibc"]
configure = ["./configure --prefix=/usr"]
make = ["make"]
install = ["make install"]
`)

	r, err := recipe.Load(filepath.Join(dir, "zlib.toml"))
	require.NoError(t, err)
	assert.Equal(t, "zlib", r.Name)
	assert.Equal(t, "1.3.1", r.Version)
	assert.Equal(t, []string{"glibc"}, r.Depends)
}

func TestLoadRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "bad.toml", `version = "1.0"`)

	_, err := recipe.Load(filepath.Join(dir, "bad.toml"))
	assert.Error(t, err)
}

func TestLoadAllSkipsMalformedRecipe(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "bash")
	bad := filepath.Join(dir, "broken")
	require.NoError(t, os.MkdirAll(good, 0o755))
	require.NoError(t, os.MkdirAll(bad, 0o755))

	writeRecipe(t, good, "recipe.toml", `name = "bash"
version = "5.2"`)
	writeRecipe(t, bad, "recipe.toml", "this is not [valid toml")
	writeRecipe(t, dir, "notes.txt", "ignore me")

	recipes, err := recipe.LoadAll(dir)
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
	assert.Contains(t, recipes, "bash")
}

func TestLoadAllIgnoresNonRecipeTomlFiles(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "notes.toml", `name = "decoy"`)

	recipes, err := recipe.LoadAll(dir)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestLoadAllKeepsLastWalkedOnDuplicateName(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.MkdirAll(a, 0o755))
	require.NoError(t, os.MkdirAll(b, 0o755))

	writeRecipe(t, a, "recipe.toml", `name = "dup"
version = "1"`)
	writeRecipe(t, b, "recipe.toml", `name = "dup"
version = "2"`)

	recipes, err := recipe.LoadAll(dir)
	require.NoError(t, err)
	require.Contains(t, recipes, "dup")
	assert.Equal(t, "2", recipes["dup"].Version)
}
