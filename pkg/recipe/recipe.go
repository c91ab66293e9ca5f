// Package recipe loads package build recipes from TOML files on disk.
// Where the original parsed recipes with a hand-rolled, prefix-matching
// line scanner, this package decodes them with a real TOML parser so
// that a key like "sha256sum" is never mistaken for "sha256".
package recipe

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/logging"
	"github.com/fcanata061/lfsd/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

var log = logging.GetLogger("recipe")

// file is the on-disk TOML shape of a recipe, decoded then converted
// into types.Recipe.
type file struct {
	Name      string   `toml:"name"`
	Version   string   `toml:"version"`
	Sources   []string `toml:"sources"`
	Git       string   `toml:"git"`
	Patches   []string `toml:"patches"`
	SHA256    string   `toml:"sha256"`
	Depends   []string `toml:"depends"`
	Configure []string `toml:"configure"`
	Make      []string `toml:"make"`
	Install   []string `toml:"install"`
	Tests     []string `toml:"tests"`
	BinOnly   bool     `toml:"bin_only"`
}

// Load decodes a single recipe file.
func Load(path string) (*types.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lfsderrors.Wrapf(err, lfsderrors.ErrRecipeParse, "reading recipe %s", path)
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, lfsderrors.Wrapf(err, lfsderrors.ErrRecipeParse, "parsing recipe %s", path)
	}

	if f.Name == "" {
		return nil, lfsderrors.Newf(lfsderrors.ErrRecipeParse, "recipe %s has no name", path)
	}

	return &types.Recipe{
		Name:      f.Name,
		Version:   f.Version,
		Sources:   f.Sources,
		Git:       f.Git,
		Patches:   f.Patches,
		SHA256:    f.SHA256,
		Depends:   f.Depends,
		Configure: f.Configure,
		Make:      f.Make,
		Install:   f.Install,
		Tests:     f.Tests,
		BinOnly:   f.BinOnly,
		Path:      path,
	}, nil
}

// LoadAll walks root for files named recipe.toml and returns every recipe
// keyed by package name. A single malformed recipe is logged and
// skipped rather than failing the whole walk, since one broken recipe
// should never make every other package unbuildable.
func LoadAll(root string) (map[string]*types.Recipe, error) {
	recipes := make(map[string]*types.Recipe)

	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Base(path) == "recipe.toml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, lfsderrors.Wrapf(err, lfsderrors.ErrRecipeParse, "walking recipe tree %s", root)
	}

	sort.Strings(paths)

	for _, p := range paths {
		r, err := Load(p)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("skipping unreadable recipe")
			continue
		}
		if existing, ok := recipes[r.Name]; ok {
			log.Warn().Str("name", r.Name).Str("dropped", existing.Path).Str("kept", r.Path).
				Msg("duplicate recipe name, most recently walked wins")
		}
		recipes[r.Name] = r
	}

	return recipes, nil
}
