// Package lock serializes `wt sync` runs within one repository.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileName is the lock file inside <git-common-dir>/wt/.
const FileName = "sync.lock"

// ErrHeld is returned when another process holds the lock.
var ErrHeld = errors.New("another wt sync is already running in this repository: wait for it to finish")

// Lock is an acquired repository lock.
type Lock struct {
	fl *flock.Flock
}

// Path returns the lock file location for the repository whose git common
// directory is commonDir.
func Path(commonDir string) string {
	return filepath.Join(commonDir, "wt", FileName)
}

// TryAcquire takes the lock without blocking. It returns ErrHeld when the
// lock is taken by someone else.
func TryAcquire(commonDir string) (*Lock, error) {
	path := Path(commonDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrHeld
	}
	return &Lock{fl: fl}, nil
}

// Release unlocks. The lock file is left in place.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
