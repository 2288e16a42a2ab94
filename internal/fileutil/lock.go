package fileutil

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another process holds the lock.
var ErrLocked = errors.New("file is locked by another process")

// Lock is an exclusive advisory lock on a sidecar file.
type Lock struct {
	lock *flock.Flock
}

// TryLock takes an exclusive lock on path+".lock" without blocking. It
// returns ErrLocked when another holder already has it.
func TryLock(path string) (*Lock, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lock.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lock.Path())
	}
	return &Lock{lock: lock}, nil
}

// Unlock releases the lock. The sidecar file is left in place.
func (l *Lock) Unlock() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
