package domain

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"recase.dev/pkg/recase/internal/adapter"
	m "recase.dev/pkg/recase/internal/model"
)

// defaultExcludedDirs are directory names the scanner never descends into:
// version-control metadata, build output, dependency trees.
var defaultExcludedDirs = []string{
	".git", ".hg", ".svn",
	"build", "out", "target", "dist",
	"node_modules", "vendor",
}

// DefaultExtensions is the candidate extension allow-list.
var DefaultExtensions = []string{".java"}

// Scanner walks a root path and yields candidate file paths in deterministic
// lexical order. It is read-only.
type Scanner struct {
	fs         adapter.SourceFS
	excluded   map[string]struct{}
	extensions map[string]struct{}
}

// NewScanner constructs a Scanner. Extra excluded directory names and a
// custom extension allow-list extend or replace the defaults.
func NewScanner(sourceFS adapter.SourceFS, extraExcluded []string, extensions []string) *Scanner {
	excluded := make(map[string]struct{}, len(defaultExcludedDirs)+len(extraExcluded))
	for _, name := range defaultExcludedDirs {
		excluded[name] = struct{}{}
	}

	for _, name := range extraExcluded {
		excluded[name] = struct{}{}
	}

	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		allowed[strings.ToLower(ext)] = struct{}{}
	}

	return &Scanner{fs: sourceFS, excluded: excluded, extensions: allowed}
}

// Preflight verifies the root exists, is a directory, and is readable. Any
// failure wraps ErrInvalidRoot and must abort the run before anything else
// happens.
func (s *Scanner) Preflight(root m.Path) error {
	info, err := s.fs.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	if _, err := s.fs.ReadDirNames(root); err != nil {
		return fmt.Errorf("%w: %s is not readable: %v", ErrInvalidRoot, root, err)
	}

	return nil
}

// Scan returns the ordered candidate file list under root. Excluded and
// hidden directories are pruned; files must pass the extension allow-list.
func (s *Scanner) Scan(root m.Path) ([]m.Path, error) {
	if err := s.Preflight(root); err != nil {
		return nil, err
	}

	var candidates []m.Path

	err := s.fs.Walk(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are logged and pruned; only the root itself
			// is fatal, and Preflight already covered that.
			slog.Warn("skipping unreadable path", "path", path, "error", err)

			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		name := entry.Name()

		if entry.IsDir() {
			if path == string(root) {
				return nil
			}

			if _, skip := s.excluded[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if _, ok := s.extensions[strings.ToLower(filepath.Ext(name))]; ok {
			candidates = append(candidates, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	slog.Debug("scan complete", "root", root, "candidates", len(candidates))

	return candidates, nil
}
