// Package domain contains the core batch-renaming engine.
package domain

import (
	"errors"
	"fmt"

	m "recase.dev/pkg/recase/internal/model"
)

// ErrInvalidRoot is returned by the pre-flight check when the root path does
// not exist, is not a directory, or is not readable. It aborts the run before
// any other component touches the tree.
var ErrInvalidRoot = errors.New("invalid root path")

// FileAccessError is a per-file read failure. The file is skipped and counted
// in the stats; the run continues.
type FileAccessError struct {
	Path m.Path
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// BackupFailureError means a file's content could not be persisted before
// mutation. It is fatal for the run: the engine never mutates a file it
// cannot guarantee it can restore.
type BackupFailureError struct {
	Path m.Path
	Err  error
}

func (e *BackupFailureError) Error() string {
	return fmt.Sprintf("backup failed for %s: %v", e.Path, e.Err)
}

func (e *BackupFailureError) Unwrap() error { return e.Err }

// RewriteError means writing mutated content failed after the backup was
// taken. In live mode it triggers the run-wide rollback: a partially mutated
// tree is never an acceptable end state.
type RewriteError struct {
	Path m.Path
	Err  error
}

func (e *RewriteError) Error() string {
	return fmt.Sprintf("rewrite failed for %s: %v", e.Path, e.Err)
}

func (e *RewriteError) Unwrap() error { return e.Err }
