// Package reciperepo keeps the local recipe tree in sync with a remote
// git repository: a fast-forward pull if it is already a checkout,
// otherwise a fresh clone of the configured channel branch.
package reciperepo

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/fcanata061/lfsd/pkg/execshell"
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
)

// Sync brings cfg.RecipesDir up to date with cfg.RemoteURL.
func Sync(ctx context.Context, cfg *config.Config) error {
	if isGitCheckout(cfg.RecipesDir) {
		res, err := execshell.Argv(ctx, cfg.RecipesDir, []string{"git", "pull", "--ff-only"}, nil)
		if err != nil {
			return lfsderrors.Wrapf(err, lfsderrors.ErrFetchNetwork, "recipe sync pull failed (stderr: %s)", res.Stderr)
		}
		return nil
	}

	if cfg.RemoteURL == "" {
		return lfsderrors.New(lfsderrors.ErrConfig, "recipes directory is not a git checkout and no remote URL is configured")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.RecipesDir), 0o755); err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrInternal, "creating recipes parent directory")
	}

	branch := cfg.Channel
	if branch == "" {
		branch = "stable"
	}

	res, err := execshell.Argv(ctx, filepath.Dir(cfg.RecipesDir), []string{
		"git", "clone", "--branch", branch, cfg.RemoteURL, cfg.RecipesDir,
	}, nil)
	if err != nil {
		return lfsderrors.Wrapf(err, lfsderrors.ErrFetchNetwork, "recipe sync clone failed (stderr: %s)", res.Stderr)
	}
	return nil
}

func isGitCheckout(dir string) bool {
	st, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && st.IsDir()
}
