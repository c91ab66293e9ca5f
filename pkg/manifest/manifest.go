// Package manifest computes and persists per-file SHA-256 digests for
// everything a build stage installs, so that apply and remove can later
// tell which files belong to a package and whether they still match
// what was installed.
package manifest

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/types"
)

// Build walks every regular file under stageDir and returns a sorted
// list of manifest entries keyed by path relative to stageDir.
func Build(stageDir string) ([]types.ManifestEntry, error) {
	var entries []types.ManifestEntry

	err := filepath.WalkDir(stageDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(stageDir, path)
		if err != nil {
			return err
		}
		sum, err := digest(path)
		if err != nil {
			return err
		}
		entries = append(entries, types.ManifestEntry{Path: "/" + rel, SHA256: sum})
		return nil
	})
	if err != nil {
		return nil, lfsderrors.Wrap(err, lfsderrors.ErrInternal, "building manifest")
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Write persists entries to path as "path<SP>sha256" lines.
func Write(path string, entries []types.ManifestEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrInternal, "creating manifest directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrInternal, "creating manifest file")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s %s\n", e.Path, e.SHA256); err != nil {
			return lfsderrors.Wrap(err, lfsderrors.ErrInternal, "writing manifest")
		}
	}
	return w.Flush()
}

// Read parses a manifest file written by Write.
func Read(path string) ([]types.ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lfsderrors.Wrap(err, lfsderrors.ErrInternal, "reading manifest")
	}

	var entries []types.ManifestEntry
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		entries = append(entries, types.ManifestEntry{Path: fields[0], SHA256: fields[1]})
	}
	return entries, nil
}
