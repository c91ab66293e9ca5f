// Package statelock provides an advisory exclusive lock on the state
// directory, so two lfsd invocations never interleave writes to the
// registry, plan file, or manifests. The original had no locking at
// all; this is purely additive.
package statelock

import (
	"os"
	"path/filepath"

	"github.com/fcanata061/lfsd/pkg/lfsderrors"
	"golang.org/x/sys/unix"
)

const fileName = ".lock"

// Lock holds an open, flock'd file descriptor. Release it with Unlock.
type Lock struct {
	f *os.File
}

// Acquire takes an exclusive, non-blocking flock on stateDir/.lock.
// It fails immediately if another lfsd process already holds it.
func Acquire(stateDir string) (*Lock, error) {
	path := filepath.Join(stateDir, fileName)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, lfsderrors.Wrap(err, lfsderrors.ErrInternal, "opening lock file")
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, lfsderrors.Wrap(err, lfsderrors.ErrInternal, "another lfsd process holds the state lock")
	}

	return &Lock{f: f}, nil
}

// Unlock releases the lock and closes the underlying file.
func (l *Lock) Unlock() error {
	if l == nil || l.f == nil {
		return nil
	}
	if err := unix.Flock(int(l.f.Fd()), unix.LOCK_UN); err != nil {
		l.f.Close()
		return lfsderrors.Wrap(err, lfsderrors.ErrInternal, "releasing state lock")
	}
	return l.f.Close()
}
