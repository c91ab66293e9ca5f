// Package removeengine uninstalls a package: it refuses to remove a
// package something else still depends on, deletes the package's
// recorded files (warning, not blocking, on a manifest digest
// mismatch), and erases the registry entry.
package removeengine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/fcanata061/lfsd/pkg/fetch"
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/logging"
	"github.com/fcanata061/lfsd/pkg/manifest"
	"github.com/fcanata061/lfsd/pkg/registry"
	"github.com/fcanata061/lfsd/pkg/types"
)

var log = logging.GetLogger("removeengine")

// Remove uninstalls pkg, persisting the updated registry on success.
func Remove(pkg string, cfg *config.Config, reg map[string]types.InstalledInfo, store map[string]*types.Recipe) error {
	info, ok := reg[pkg]
	if !ok {
		return lfsderrors.Newf(lfsderrors.ErrRemoveMissing, "%s is not installed", pkg)
	}

	if dependents := reverseDependents(pkg, reg, store); len(dependents) > 0 {
		return lfsderrors.Newf(lfsderrors.ErrRemoveReverseDep, "%s is depended on by: %v", pkg, dependents)
	}

	if cfg.DryRun {
		for _, path := range info.Files {
			log.Info().Str("package", pkg).Str("path", path).Msg("dry-run: would remove file")
		}
		return nil
	}

	manifestEntries, err := manifestFor(info)
	digestByPath := make(map[string]string, len(manifestEntries))
	for _, e := range manifestEntries {
		digestByPath[e.Path] = e.SHA256
	}
	if err != nil {
		log.Warn().Err(err).Str("package", pkg).Msg("could not load manifest for digest check, removing files unconditionally")
	}

	for _, path := range info.Files {
		checkDigest(path, digestByPath[path])
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn().Err(rmErr).Str("path", path).Msg("failed to remove file, continuing")
		}
	}

	delete(reg, pkg)
	if err := registry.Save(cfg.StateDir, reg); err != nil {
		return err
	}

	return appendRemoveLog(cfg.LogDir, pkg)
}

func reverseDependents(pkg string, reg map[string]types.InstalledInfo, store map[string]*types.Recipe) []string {
	var dependents []string
	for name := range reg {
		if name == pkg {
			continue
		}
		r, ok := store[name]
		if !ok {
			continue
		}
		for _, dep := range r.Depends {
			if dep == pkg {
				dependents = append(dependents, name)
				break
			}
		}
	}
	sort.Strings(dependents)
	return dependents
}

func manifestFor(info types.InstalledInfo) ([]types.ManifestEntry, error) {
	if info.Manifest == "" {
		return nil, nil
	}
	return manifest.Read(info.Manifest)
}

// checkDigest recomputes path's SHA-256 and logs a warning, never an
// error, if it no longer matches what the manifest recorded — a
// hand-edited config file should not trap a package in an unremovable
// state.
func checkDigest(path, want string) {
	if want == "" {
		return
	}
	if err := fetch.VerifyDigest(path, want); err != nil {
		log.Warn().Str("path", path).Msg("file was modified since install, removing anyway")
	}
}

func appendRemoveLog(logDir, pkg string) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrInternal, "creating log directory")
	}
	stamp := time.Now().UTC().Format("20060102-150405")
	path := filepath.Join(logDir, fmt.Sprintf("%s-remove-%s.log", stamp, pkg))
	line := fmt.Sprintf("%s removed %s\n", stamp, pkg)
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrInternal, "writing remove log")
	}
	return nil
}
