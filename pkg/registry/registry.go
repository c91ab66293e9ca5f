// Package registry persists the set of installed packages as JSON
// under the state directory. Writes are always strict JSON; reads
// tolerate the legacy trailing-comma JSON the original emitted, so
// that upgrading lfsd never orphans an existing installation record.
package registry

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"github.com/fcanata061/lfsd/pkg/types"
)

const fileName = "installed.json"

// Path returns the registry file path under a state directory.
func Path(stateDir string) string {
	return filepath.Join(stateDir, fileName)
}

// trailingComma matches a comma immediately followed by optional
// whitespace and a closing brace or bracket.
var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// Load reads the registry file. A missing file is not an error; it
// means no packages are installed yet.
func Load(stateDir string) (map[string]types.InstalledInfo, error) {
	data, err := os.ReadFile(Path(stateDir))
	if os.IsNotExist(err) {
		return map[string]types.InstalledInfo{}, nil
	}
	if err != nil {
		return nil, lfsderrors.Wrap(err, lfsderrors.ErrRegistry, "reading registry")
	}

	var reg map[string]types.InstalledInfo
	if err := json.Unmarshal(data, &reg); err != nil {
		// Legacy registries emitted a trailing comma before the final
		// closing brace of each object; strip those and retry once.
		cleaned := trailingComma.ReplaceAll(data, []byte("$1"))
		if err2 := json.Unmarshal(cleaned, &reg); err2 != nil {
			return nil, lfsderrors.Wrap(err, lfsderrors.ErrRegistry, "parsing registry")
		}
	}
	if reg == nil {
		reg = map[string]types.InstalledInfo{}
	}
	return reg, nil
}

// Save writes the registry atomically: encode to a temp file in the
// same directory, then rename over the final path, so a crash mid-write
// never leaves a truncated installed.json behind.
func Save(stateDir string, reg map[string]types.InstalledInfo) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reg); err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrRegistry, "encoding registry")
	}

	dest := Path(stateDir)
	tmp, err := os.CreateTemp(stateDir, ".installed-*.json.tmp")
	if err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrRegistry, "creating temp registry file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return lfsderrors.Wrap(err, lfsderrors.ErrRegistry, "writing temp registry file")
	}
	if err := tmp.Close(); err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrRegistry, "closing temp registry file")
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrRegistry, "renaming registry into place")
	}
	return nil
}
