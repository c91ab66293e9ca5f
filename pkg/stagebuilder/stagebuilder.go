// Package stagebuilder runs the per-package staged build pipeline:
// reset the work tree, fetch sources, apply patches, substitute build
// environment variables, run configure/make/tests/install in order,
// generate a manifest, optionally pack and strip, and update the
// registry. ${STAGE} is the package's pkgroot itself, so the install
// steps write straight into the tree the apply engine reads; no
// separate promote copy is made.
package stagebuilder

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fcanata061/lfsd/pkg/config"
	"github.com/fcanata061/lfsd/pkg/execshell"
	"github.com/fcanata061/lfsd/pkg/fetch"
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/logging"
	"github.com/fcanata061/lfsd/pkg/manifest"
	"github.com/fcanata061/lfsd/pkg/pkgarchive"
	"github.com/fcanata061/lfsd/pkg/registry"
	"github.com/fcanata061/lfsd/pkg/types"
)

var log = logging.GetLogger("stagebuilder")

// Build runs the full staged pipeline for one recipe, mutating the
// registry map in place and persisting it on success.
func Build(ctx context.Context, r *types.Recipe, cfg *config.Config, reg map[string]types.InstalledInfo, opts types.BuildOptions) error {
	if r.BinOnly {
		log.Info().Str("package", r.Name).Msg("bin_only recipe has no build steps")
		return nil
	}

	if cfg.DryRun {
		log.Info().Str("package", r.Name).Str("version", r.Version).Msg("dry-run: would fetch, build, and install this package")
		return nil
	}

	pkgDir := filepath.Join(cfg.StageDir, r.Name+"-"+r.Version)
	workDir := filepath.Join(pkgDir, "work")
	pkgroot := filepath.Join(pkgDir, "pkgroot")

	if err := resetWorkTree(pkgDir, workDir, pkgroot); err != nil {
		return err
	}

	srcDir, err := fetchSources(ctx, r, cfg)
	if err != nil {
		return err
	}

	if err := applyPatches(ctx, r, cfg, srcDir); err != nil {
		return err
	}

	env := buildEnv(pkgroot, cfg.Jobs)

	if err := runSteps(ctx, "configure", r.Configure, srcDir, env, lfsderrors.ErrBuildConfigure); err != nil {
		return err
	}
	if err := runSteps(ctx, "make", r.Make, srcDir, env, lfsderrors.ErrBuildMake); err != nil {
		return err
	}
	if err := runSteps(ctx, "tests", r.Tests, srcDir, env, lfsderrors.ErrBuildTests); err != nil {
		return err
	}
	if err := runSteps(ctx, "install", r.Install, srcDir, env, lfsderrors.ErrBuildInstall); err != nil {
		return err
	}

	entries, err := manifest.Build(pkgroot)
	if err != nil {
		return lfsderrors.Wrapf(err, lfsderrors.ErrInternal, "generating manifest for %s", r.Name)
	}

	manifestPath := filepath.Join(cfg.StateDir, "manifests", r.Name+"-"+r.Version+".manifest")
	if err := manifest.Write(manifestPath, entries); err != nil {
		return err
	}

	if opts.Pack {
		if _, err := pkgarchive.Pack(ctx, pkgroot, cfg.CacheDir, r.Name, r.Version); err != nil {
			log.Warn().Err(err).Str("package", r.Name).Msg("pack step failed, pkgroot remains available for apply")
		}
	}

	if opts.Strip {
		if err := pkgarchive.Strip(ctx, pkgroot); err != nil {
			log.Warn().Err(err).Str("package", r.Name).Msg("strip step failed, continuing with unstripped binaries")
		}
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		files = append(files, e.Path)
	}

	reg[r.Name] = types.InstalledInfo{
		Version:     r.Version,
		InstalledAt: time.Now().UTC().Format("20060102-150405"),
		Manifest:    manifestPath,
		Files:       files,
		SourceHash:  r.SHA256,
	}

	if err := registry.Save(cfg.StateDir, reg); err != nil {
		return err
	}

	log.Info().Str("package", r.Name).Str("version", r.Version).Msg("build complete, promoted to pkgroot")
	return nil
}

func resetWorkTree(pkgDir, workDir, pkgroot string) error {
	if err := os.RemoveAll(pkgDir); err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrInternal, "resetting stage work tree")
	}
	for _, d := range []string{workDir, pkgroot} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return lfsderrors.Wrap(err, lfsderrors.ErrInternal, "creating stage directory")
		}
	}
	return nil
}

func fetchSources(ctx context.Context, r *types.Recipe, cfg *config.Config) (string, error) {
	srcDir := filepath.Join(cfg.StageDir, r.Name+"-"+r.Version, "work", r.Name)

	if r.Git != "" {
		if err := fetch.CloneGit(ctx, r.Git, srcDir); err != nil {
			return "", err
		}
		return srcDir, nil
	}

	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return "", lfsderrors.Wrap(err, lfsderrors.ErrInternal, "creating source directory")
	}

	for i, url := range r.Sources {
		path, err := fetch.Archive(ctx, r.Name, r.Version, url, cfg.SourcesDir, i)
		if err != nil {
			return "", err
		}
		if err := fetch.VerifyDigest(path, r.SHA256); err != nil {
			return "", err
		}
		if res, err := execshell.Argv(ctx, srcDir, []string{"tar", "-xf", path, "-C", srcDir, "--strip-components=1"}, nil); err != nil {
			return "", lfsderrors.Wrapf(err, lfsderrors.ErrInternal, "extracting %s failed (stderr: %s)", path, res.Stderr)
		}
	}

	return srcDir, nil
}

func applyPatches(ctx context.Context, r *types.Recipe, cfg *config.Config, srcDir string) error {
	for i, url := range r.Patches {
		path, err := fetch.Patch(ctx, r.Name, r.Version, url, cfg.SourcesDir, i)
		if err != nil {
			return err
		}
		if res, err := execshell.Argv(ctx, srcDir, []string{"patch", "-p1", "-i", path}, nil); err != nil {
			return lfsderrors.Wrapf(err, lfsderrors.ErrFetchPatch, "applying patch %s failed (stderr: %s)", path, res.Stderr)
		}
	}
	return nil
}

// buildEnv composes the environment handed to every build step, with
// STAGE and JOBS available both as environment variables and as
// ${STAGE}/${JOBS} template substitutions (see substitute).
func buildEnv(pkgroot string, jobs int) []string {
	return []string{
		"STAGE=" + pkgroot,
		"JOBS=" + strconv.Itoa(jobs),
	}
}

func substitute(cmd string, env []string) string {
	repl := make([]string, 0, len(env)*2)
	for _, kv := range env {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		repl = append(repl, "${"+parts[0]+"}", parts[1])
	}
	return strings.NewReplacer(repl...).Replace(cmd)
}

func runSteps(ctx context.Context, stage string, steps []string, dir string, env []string, code lfsderrors.ErrorCode) error {
	for i, step := range steps {
		cmd := substitute(step, env)
		res, err := execshell.Shell(ctx, dir, cmd, env)
		if err != nil {
			return lfsderrors.Wrapf(err, code, "%s step %d failed: %s (stderr: %s)", stage, i+1, cmd, res.Stderr)
		}
	}
	return nil
}
