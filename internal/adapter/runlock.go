package adapter

import (
	"fmt"

	"github.com/gofrs/flock"

	m "recase.dev/pkg/recase/internal/model"
)

// RunLock guards a tree against two concurrent live runs. A second run
// mutating the same files would corrupt the backup/rollback bookkeeping.
type RunLock interface {
	// Acquire takes the lock without blocking. The returned release func must
	// be called when the run finishes.
	Acquire() (release func(), err error)
}

// FileRunLock implements RunLock with a cross-process flock file.
type FileRunLock struct {
	path m.Path
}

// NewFileRunLock constructs a FileRunLock at the given lock file path.
func NewFileRunLock(path m.Path) *FileRunLock {
	return &FileRunLock{path: path}
}

// Acquire tries to take the flock; it fails immediately when another run
// already holds it.
func (l *FileRunLock) Acquire() (func(), error) {
	lock := flock.New(string(l.path))

	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock %s: %w", l.path, err)
	}

	if !locked {
		return nil, fmt.Errorf("run lock %s is held by another recase process", l.path)
	}

	return func() { _ = lock.Unlock() }, nil
}
