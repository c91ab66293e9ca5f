// Package pkgarchive packs a build's pkgroot into a binary package
// archive, strips ELF binaries within it, and installs prebuilt
// archives straight over the live filesystem. All three delegate to
// external tools (tar, zstd, file, strip) rather than reimplementing
// archive or object-file formats in Go.
package pkgarchive

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fcanata061/lfsd/pkg/execshell"
	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/logging"
)

var log = logging.GetLogger("pkgarchive")

// Pack creates <cacheDir>/bin/<name>-<version>.tar.zst from pkgroot's
// contents, rooted so that extracting it at / reproduces the package's
// files at their final paths.
func Pack(ctx context.Context, pkgroot, cacheDir, name, version string) (string, error) {
	binDir := filepath.Join(cacheDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return "", lfsderrors.Wrap(err, lfsderrors.ErrInternal, "creating bin cache directory")
	}

	dest := filepath.Join(binDir, name+"-"+version+".tar.zst")
	res, err := execshell.Argv(ctx, pkgroot, []string{
		"tar", "-C", pkgroot, "-I", "zstd", "-cpf", dest, ".",
	}, nil)
	if err != nil {
		return "", lfsderrors.Wrapf(err, lfsderrors.ErrInternal, "packing %s-%s failed (stderr: %s)", name, version, res.Stderr)
	}
	return dest, nil
}

// Strip walks root and runs `strip` on every file under bin, sbin, or
// lib that `file` reports as an ELF binary or shared object, discarding
// debug symbols to shrink the package. Paths outside those directories
// are skipped without even probing them, matching lfsd's traditional
// policy of only stripping executables and shared libraries.
func Strip(ctx context.Context, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !isStrippablePath(path) {
			return nil
		}
		isELF, err := isELFBinary(ctx, path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("file type detection failed, skipping strip")
			return nil
		}
		if !isELF {
			return nil
		}
		if res, err := execshell.Argv(ctx, root, []string{"strip", "--strip-unneeded", path}, nil); err != nil {
			log.Warn().Err(err).Str("path", path).Str("stderr", res.Stderr).Msg("strip failed, leaving binary untouched")
		}
		return nil
	})
}

// isStrippablePath reports whether path sits under a bin, sbin, or lib
// directory, the only places lfsd strips binaries.
func isStrippablePath(path string) bool {
	return strings.Contains(path, "/bin/") ||
		strings.Contains(path, "/sbin/") ||
		strings.Contains(path, "/lib/")
}

func isELFBinary(ctx context.Context, path string) (bool, error) {
	res, err := execshell.Argv(ctx, "", []string{"file", "-b", path}, nil)
	if err != nil {
		return false, err
	}
	out := strings.ToLower(res.Stdout)
	return strings.Contains(out, "elf"), nil
}

// InstallBin extracts a prebuilt archive directly over the live root,
// bypassing the build pipeline entirely.
func InstallBin(ctx context.Context, archivePath, root string) error {
	res, err := execshell.Argv(ctx, root, []string{
		"tar", "-C", root, "-I", "zstd", "-xpf", archivePath,
	}, nil)
	if err != nil {
		return lfsderrors.Wrapf(err, lfsderrors.ErrInternal, "install-bin failed for %s (stderr: %s)", archivePath, res.Stderr)
	}
	return nil
}
