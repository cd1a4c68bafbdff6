package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recase.dev/pkg/recase/internal/adapter"
	m "recase.dev/pkg/recase/internal/model"
)

func TestBackupManager_BackupAndRollback(t *testing.T) {
	root := t.TempDir()
	backupRoot := filepath.Join(root, ".recase-backups")

	original := []byte("int user_id = 1;\n")
	file := filepath.Join(root, "Main.java")
	require.NoError(t, os.WriteFile(file, original, 0o644))

	fs := adapter.NewLocalSourceFS()
	manager := NewBackupManager(adapter.NewLocalBackupStore(fs), m.Path(root), m.Path(backupRoot), "run-1")

	record, err := manager.Backup(context.Background(), m.Path(file))
	require.NoError(t, err)
	assert.Equal(t, m.Path(file), record.OriginalPath)
	assert.Equal(t, "run-1", record.RunID)

	backed, err := os.ReadFile(string(record.BackupPath))
	require.NoError(t, err)
	assert.Equal(t, original, backed)

	// Mutate the original, then roll back.
	require.NoError(t, os.WriteFile(file, []byte("int userId = 1;\n"), 0o644))

	restored, err := manager.RollbackAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, restored)

	current, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, original, current)
}

func TestBackupManager_RecordsAccumulate(t *testing.T) {
	root := t.TempDir()

	for _, name := range []string{"A.java", "B.java"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("class X {}\n"), 0o644))
	}

	fs := adapter.NewLocalSourceFS()
	manager := NewBackupManager(adapter.NewLocalBackupStore(fs), m.Path(root), m.Path(filepath.Join(root, "bak")), "run-2")

	_, err := manager.Backup(context.Background(), m.Path(filepath.Join(root, "A.java")))
	require.NoError(t, err)
	_, err = manager.Backup(context.Background(), m.Path(filepath.Join(root, "B.java")))
	require.NoError(t, err)

	require.Len(t, manager.Records(), 2)
}

type failingBackupStore struct{}

func (failingBackupStore) Save(_, _, path m.Path, _ string) (m.BackupRecord, error) {
	return m.BackupRecord{}, errors.New("disk full")
}

func (failingBackupStore) Restore(m.BackupRecord) error {
	return errors.New("disk full")
}

func TestBackupManager_BackupFailureIsTyped(t *testing.T) {
	manager := NewBackupManager(failingBackupStore{}, "/src", "/bak", "run-3")

	_, err := manager.Backup(context.Background(), "/src/Main.java")
	require.Error(t, err)

	var failure *BackupFailureError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, m.Path("/src/Main.java"), failure.Path)
}
