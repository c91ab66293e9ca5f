// Package planstore persists the most recent build plan (a topologically
// ordered package list) so that "lfsd plan" and "lfsd build" can be run
// as separate steps, the plan computed by the first and consumed by the
// second.
package planstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fcanata061/lfsd/pkg/lfsderrors"
)

const fileName = "pending.plan"

// Path returns the plan file path under a state directory.
func Path(stateDir string) string {
	return filepath.Join(stateDir, fileName)
}

// Write stores the build order, one package name per line.
func Write(stateDir string, order []string) error {
	content := strings.Join(order, "\n")
	if len(order) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(Path(stateDir), []byte(content), 0o644); err != nil {
		return lfsderrors.Wrap(err, lfsderrors.ErrInternal, "writing plan file")
	}
	return nil
}

// Read returns the last stored build order. It returns ErrNoPlan if no
// plan has been written yet.
func Read(stateDir string) ([]string, error) {
	data, err := os.ReadFile(Path(stateDir))
	if os.IsNotExist(err) {
		return nil, lfsderrors.New(lfsderrors.ErrNoPlan, "no build plan found, run \"lfsd plan\" first")
	}
	if err != nil {
		return nil, lfsderrors.Wrap(err, lfsderrors.ErrInternal, "reading plan file")
	}

	var order []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			order = append(order, line)
		}
	}
	return order, nil
}
