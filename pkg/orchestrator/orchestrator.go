// Package orchestrator composes the lower-level engines into the
// higher-level commands: installing a target and its dependencies,
// upgrading installed packages whose recipe version has changed, and
// rebuilding the whole recipe store from scratch.
package orchestrator

import (
	"context"
	"sort"

	"github.com/fcanata061/lfsd/pkg/applyengine"
	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/fcanata061/lfsd/pkg/depgraph"
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/logging"
	"github.com/fcanata061/lfsd/pkg/planstore"
	"github.com/fcanata061/lfsd/pkg/stagebuilder"
	"github.com/fcanata061/lfsd/pkg/types"
)

var log = logging.GetLogger("orchestrator")

// Install resolves targets' dependency closure, persists the plan,
// builds everything in topological order, then applies the results.
func Install(ctx context.Context, targets []string, store map[string]*types.Recipe, cfg *config.Config, reg map[string]types.InstalledInfo, opts types.BuildOptions) error {
	closure := depgraph.Closure(targets, store)
	order, err := depgraph.TopoSort(closure)
	if err != nil {
		return err
	}

	if err := planstore.Write(cfg.StateDir, order); err != nil {
		return err
	}

	for _, name := range order {
		r := closure[name]
		if r == nil {
			return lfsderrors.Newf(lfsderrors.ErrRecipeParse, "no recipe found for dependency %s", name)
		}
		if err := stagebuilder.Build(ctx, r, cfg, reg, opts); err != nil {
			return err
		}
	}

	return applyengine.Apply(ctx, cfg)
}

// RebuildAll topo-sorts the entire recipe store and rebuilds every
// package in dependency order.
func RebuildAll(ctx context.Context, store map[string]*types.Recipe, cfg *config.Config, reg map[string]types.InstalledInfo, opts types.BuildOptions) error {
	order, err := depgraph.TopoSort(store)
	if err != nil {
		return err
	}
	if err := planstore.Write(cfg.StateDir, order); err != nil {
		return err
	}
	for _, name := range order {
		r := store[name]
		if r == nil {
			return lfsderrors.Newf(lfsderrors.ErrRecipeParse, "no recipe found for dependency %s", name)
		}
		if err := stagebuilder.Build(ctx, r, cfg, reg, opts); err != nil {
			return err
		}
	}
	return applyengine.Apply(ctx, cfg)
}

// Upgrade rebuilds every currently-installed package whose recipe
// version differs from the installed version, then applies. Packages
// are visited in package-name order (the order the registry file keeps
// them in) rather than a topologically re-sorted one — an acknowledged
// limitation carried forward from the original, which never re-sorted
// upgrade order either.
func Upgrade(ctx context.Context, store map[string]*types.Recipe, cfg *config.Config, reg map[string]types.InstalledInfo, opts types.BuildOptions) error {
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r, ok := store[name]
		if !ok {
			log.Warn().Str("package", name).Msg("installed package has no recipe, skipping upgrade")
			continue
		}
		if r.Version == reg[name].Version {
			continue
		}
		if err := stagebuilder.Build(ctx, r, cfg, reg, opts); err != nil {
			return err
		}
	}

	return applyengine.Apply(ctx, cfg)
}
