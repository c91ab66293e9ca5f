// Package applyengine mirrors built packages' pkgroots onto the live
// filesystem. It delegates the actual tree-mirroring to rsync rather
// than walking and copying files in Go.
package applyengine

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/fcanata061/lfsd/pkg/execshell"
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/logging"
	"github.com/fcanata061/lfsd/pkg/snapshotstore"
)

var log = logging.GetLogger("applyengine")

// Apply snapshots the covered subtree, then mirrors every pkgroot under
// cfg.StageDir onto /, running all of them even if one fails, and
// returning a combined error if any did.
func Apply(ctx context.Context, cfg *config.Config) error {
	pkgroots, err := discoverPkgroots(cfg.StageDir)
	if err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrApply, "discovering pkgroots")
	}

	if cfg.DryRun {
		for _, root := range pkgroots {
			log.Info().Str("pkgroot", root).Msg("dry-run: would apply pkgroot to /")
		}
		return nil
	}

	label := "apply-" + time.Now().UTC().Format("20060102-150405")
	if _, err := snapshotstore.Create(ctx, cfg, label); err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrApply, "pre-apply snapshot failed")
	}

	var firstErr error
	for _, root := range pkgroots {
		if err := mirror(ctx, root); err != nil {
			log.Error().Err(err).Str("pkgroot", root).Msg("apply failed for pkgroot")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		log.Info().Str("pkgroot", root).Msg("applied pkgroot to /")
	}

	if firstErr != nil {
		return lfsderrors.Wrap(firstErr, lfsderrors.ErrApply, "one or more pkgroots failed to apply")
	}
	return nil
}

func discoverPkgroots(stageDir string) ([]string, error) {
	var roots []string
	entries, err := os.ReadDir(stageDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		root := filepath.Join(stageDir, e.Name(), "pkgroot")
		if st, err := os.Stat(root); err == nil && st.IsDir() {
			roots = append(roots, root)
		}
	}
	return roots, nil
}

func mirror(ctx context.Context, pkgroot string) error {
	res, err := execshell.Argv(ctx, pkgroot, []string{
		"rsync", "-aHAX", "--delete", pkgroot + "/", "/",
	}, nil)
	if err != nil {
		return lfsderrors.Wrapf(err, lfsderrors.ErrApply, "rsync failed (stderr: %s)", res.Stderr)
	}
	return nil
}
