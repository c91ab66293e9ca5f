// Package snapshotstore creates, lists, and restores tar+zstd archives
// of the covered live-filesystem subtree, used by the apply engine for
// pre-apply safety and exposed directly as a "snapshot"/"rollback" CLI
// command pair.
package snapshotstore

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/fcanata061/lfsd/pkg/execshell"
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/google/uuid"
)

// Snapshot describes one stored archive.
type Snapshot struct {
	Name    string
	Path    string
	ModTime time.Time
}

func snapDir(cfg *config.Config) string {
	return filepath.Join(cfg.CacheDir, "snaps")
}

func subtree(cfg *config.Config) string {
	if cfg.CoveredSubtree != "" {
		return cfg.CoveredSubtree
	}
	return "usr"
}

// Create archives the covered subtree under label, disambiguating with
// a short uuid suffix if an archive with that label already exists
// (two manual snapshots taken within the same second, for example).
func Create(ctx context.Context, cfg *config.Config, label string) (string, error) {
	dir := snapDir(cfg)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", lfsderrors.Wrap(err, lfsderrors.ErrInternal, "creating snapshot directory")
	}

	dest := filepath.Join(dir, label+".tar.zst")
	if _, err := os.Stat(dest); err == nil {
		dest = filepath.Join(dir, label+"-"+uuid.New().String()[:8]+".tar.zst")
	}

	res, err := execshell.Argv(ctx, "/", []string{
		"tar", "-C", "/", "-I", "zstd", "-cpf", dest, subtree(cfg),
	}, nil)
	if err != nil {
		return "", lfsderrors.Wrapf(err, lfsderrors.ErrInternal, "snapshot creation failed (stderr: %s)", res.Stderr)
	}
	return dest, nil
}

// List returns every stored snapshot, most recent first.
func List(cfg *config.Config) ([]Snapshot, error) {
	dir := snapDir(cfg)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, lfsderrors.Wrap(err, lfsderrors.ErrInternal, "listing snapshots")
	}

	var snaps []Snapshot
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{Name: e.Name(), Path: filepath.Join(dir, e.Name()), ModTime: info.ModTime()})
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ModTime.After(snaps[j].ModTime) })
	return snaps, nil
}

// Rollback extracts the named snapshot back over /, restoring the
// covered subtree to the state it captured.
func Rollback(ctx context.Context, cfg *config.Config, name string) error {
	path := filepath.Join(snapDir(cfg), name)
	if _, err := os.Stat(path); err != nil {
		return lfsderrors.Wrapf(err, lfsderrors.ErrNotFound, "snapshot %s not found", name)
	}

	res, err := execshell.Argv(ctx, "/", []string{
		"tar", "-C", "/", "-I", "zstd", "-xpf", path,
	}, nil)
	if err != nil {
		return lfsderrors.Wrapf(err, lfsderrors.ErrInternal, "rollback failed (stderr: %s)", res.Stderr)
	}
	return nil
}
