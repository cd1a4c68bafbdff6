// Package adapter contains infrastructure adapters for the recase CLI.
package adapter

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "recase.dev/pkg/recase/internal/model"
)

// SourceFS abstracts the filesystem operations the engine relies on when
// scanning and rewriting user projects. It hides direct `os` access so the
// domain logic can be tested without touching the disk.
type SourceFS interface {
	// Walk traverses the tree under root in deterministic lexical order.
	Walk(root m.Path, fn WalkDirFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// Stat returns metadata for a path so the domain can check existence or
	// distinguish files from directories.
	Stat(path m.Path) (os.FileInfo, error)

	// ReadDirNames lists the entry names of a directory. Used by the
	// pre-flight check to prove the root is actually readable.
	ReadDirNames(path m.Path) ([]string, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path, perm os.FileMode) error

	// CopyFile copies a single file preserving its mode.
	CopyFile(src, dst m.Path) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// WalkDirFunc mirrors the callback shape of filepath.WalkDir. Defined here so
// the standard-library type does not leak into the domain layer.
type WalkDirFunc func(path string, entry fs.DirEntry, err error) error

// LocalSourceFS is the os-backed SourceFS implementation.
type LocalSourceFS struct{}

// NewLocalSourceFS constructs a LocalSourceFS ready to be wired into the
// workflow.
func NewLocalSourceFS() *LocalSourceFS {
	return &LocalSourceFS{}
}

// Walk iterates over entries under root in lexical order.
func (a *LocalSourceFS) Walk(root m.Path, fn WalkDirFunc) error {
	return filepath.WalkDir(string(root), func(path string, entry fs.DirEntry, err error) error {
		return fn(path, entry, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFS) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// Stat returns os.FileInfo metadata for the given path.
func (a *LocalSourceFS) Stat(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ReadDirNames lists directory entry names.
func (a *LocalSourceFS) ReadDirNames(path m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}

// MkdirAll creates a directory and any missing parents.
func (a *LocalSourceFS) MkdirAll(path m.Path, perm os.FileMode) error {
	return os.MkdirAll(string(path), perm)
}

// CopyFile copies a single file preserving its mode.
func (a *LocalSourceFS) CopyFile(src, dst m.Path) error {
	info, err := os.Stat(string(src))
	if err != nil {
		return err
	}

	// #nosec G304 - src is an internal project file path, not user input
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is an internal destination path, not user input
	destFile, err := os.Create(string(dst))
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(string(dst), info.Mode())
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFS) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFS) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
