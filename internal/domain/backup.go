package domain

import (
	"context"
	"log/slog"
	"sync"

	"recase.dev/pkg/recase/internal/adapter"
	m "recase.dev/pkg/recase/internal/model"
)

// BackupManager owns every BackupRecord of the current run and is the sole
// authority permitted to restore them. The discipline is acquire-before-
// mutate: Backup must succeed before the caller may overwrite the file.
type BackupManager interface {
	// Backup persists path's current content and records it. The returned
	// error is always a *BackupFailureError when non-nil.
	Backup(ctx context.Context, path m.Path) (m.BackupRecord, error)

	// RollbackAll restores every file backed up during this run to its
	// backed-up content. Used when a fatal error occurs mid-run in live mode.
	RollbackAll(ctx context.Context) (restored int, err error)

	// Records returns a snapshot of the records taken so far. After a
	// successful run they are retained for audit only.
	Records() []m.BackupRecord
}

type backupManager struct {
	store      adapter.BackupStore
	treeRoot   m.Path
	backupRoot m.Path
	runID      string

	mu      sync.Mutex
	records []m.BackupRecord
}

// NewBackupManager constructs a BackupManager for one run.
func NewBackupManager(store adapter.BackupStore, treeRoot, backupRoot m.Path, runID string) BackupManager {
	return &backupManager{
		store:      store,
		treeRoot:   treeRoot,
		backupRoot: backupRoot,
		runID:      runID,
	}
}

func (b *backupManager) Backup(ctx context.Context, path m.Path) (m.BackupRecord, error) {
	if err := ctx.Err(); err != nil {
		return m.BackupRecord{}, &BackupFailureError{Path: path, Err: err}
	}

	record, err := b.store.Save(b.treeRoot, b.backupRoot, path, b.runID)
	if err != nil {
		return m.BackupRecord{}, &BackupFailureError{Path: path, Err: err}
	}

	b.mu.Lock()
	b.records = append(b.records, record)
	b.mu.Unlock()

	slog.Debug("backed up", "path", path, "backup", record.BackupPath)

	return record, nil
}

func (b *backupManager) RollbackAll(_ context.Context) (int, error) {
	b.mu.Lock()
	records := make([]m.BackupRecord, len(b.records))
	copy(records, b.records)
	b.mu.Unlock()

	restored := 0

	var firstErr error

	// Restore everything we can even if one record fails; a partial rollback
	// is still better than none.
	for _, record := range records {
		if err := b.store.Restore(record); err != nil {
			slog.Error("rollback failed", "path", record.OriginalPath, "error", err)

			if firstErr == nil {
				firstErr = err
			}

			continue
		}

		restored++
	}

	slog.Info("rollback complete", "restored", restored, "total", len(records))

	return restored, firstErr
}

func (b *backupManager) Records() []m.BackupRecord {
	b.mu.Lock()
	defer b.mu.Unlock()

	records := make([]m.BackupRecord, len(b.records))
	copy(records, b.records)

	return records
}
