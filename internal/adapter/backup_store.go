package adapter

import (
	"fmt"
	"time"

	m "recase.dev/pkg/recase/internal/model"
)

// BackupStore persists pre-mutation file content under a backup root that
// mirrors each file's path relative to the tree root. A plain hierarchical
// file store is all the engine needs; there is no database behind this.
type BackupStore interface {
	// Save copies the current content of path into the backup root and
	// returns the record proving it. Save must succeed before the caller is
	// allowed to overwrite path.
	Save(treeRoot, backupRoot, path m.Path, runID string) (m.BackupRecord, error)

	// Restore writes the backed-up content referenced by record back to its
	// original location.
	Restore(record m.BackupRecord) error
}

// LocalBackupStore implements BackupStore on top of a SourceFS.
type LocalBackupStore struct {
	fs SourceFS
}

// NewLocalBackupStore constructs a LocalBackupStore.
func NewLocalBackupStore(fs SourceFS) *LocalBackupStore {
	return &LocalBackupStore{fs: fs}
}

// Save mirrors path's tree-relative location under backupRoot and copies the
// file there.
func (s *LocalBackupStore) Save(treeRoot, backupRoot, path m.Path, runID string) (m.BackupRecord, error) {
	rel, err := s.fs.RelPath(treeRoot, path)
	if err != nil {
		return m.BackupRecord{}, fmt.Errorf("resolve backup path for %s: %w", path, err)
	}

	backupPath := s.fs.JoinPath(string(backupRoot), runID, string(rel))

	if err := s.fs.CopyFile(path, backupPath); err != nil {
		return m.BackupRecord{}, fmt.Errorf("copy %s to backup: %w", path, err)
	}

	return m.BackupRecord{
		OriginalPath: path,
		BackupPath:   backupPath,
		RunID:        runID,
		CreatedAt:    time.Now(),
	}, nil
}

// Restore copies the backed-up content back over the original file.
func (s *LocalBackupStore) Restore(record m.BackupRecord) error {
	if err := s.fs.CopyFile(record.BackupPath, record.OriginalPath); err != nil {
		return fmt.Errorf("restore %s: %w", record.OriginalPath, err)
	}

	return nil
}
