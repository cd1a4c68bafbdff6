package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "recase.dev/pkg/recase/internal/model"
)

func TestRunCommand_Defaults(t *testing.T) {
	stub := swapWorkflow(t)

	_, err := executeCommand(t, "run")
	require.NoError(t, err)

	require.NotNil(t, stub.runArgs)
	assert.Equal(t, m.Path("."), stub.runArgs.Root)
	assert.False(t, stub.runArgs.DryRun)
	assert.Equal(t, defaultBatchSize, stub.runArgs.BatchSize)
	assert.False(t, stub.runArgs.Parallel)
	assert.Equal(t, defaultWorkers, stub.runArgs.Workers)
	assert.Equal(t, m.Path(defaultBackupDir), stub.runArgs.BackupDir)
	assert.Equal(t, m.Path(defaultReportsDir), stub.runArgs.Reports)
	assert.Equal(t, []string{".java"}, stub.runArgs.Extensions)
	assert.Equal(t, defaultChecker, stub.runArgs.CheckerCommand)
	assert.Equal(t, defaultSample, stub.runArgs.ValidationSample)
	assert.Equal(t, time.Duration(defaultGraceSeconds)*time.Second, stub.runArgs.GraceTimeout)
}

func TestRunCommand_Flags(t *testing.T) {
	stub := swapWorkflow(t)

	root := t.TempDir()

	_, err := executeCommand(t,
		"run", "--dry-run",
		"--batch-size", "10",
		"--parallel",
		"--workers", "2",
		"--backup-dir", "/tmp/bak",
		"--exclude", "legacy",
		root,
	)
	require.NoError(t, err)

	require.NotNil(t, stub.runArgs)
	assert.Equal(t, m.Path(root), stub.runArgs.Root)
	assert.True(t, stub.runArgs.DryRun)
	assert.Equal(t, 10, stub.runArgs.BatchSize)
	assert.True(t, stub.runArgs.Parallel)
	assert.Equal(t, 2, stub.runArgs.Workers)
	assert.Equal(t, m.Path("/tmp/bak"), stub.runArgs.BackupDir)
	assert.Contains(t, stub.runArgs.Exclude, "legacy")
}

func TestRunCommand_RejectsExtraArgs(t *testing.T) {
	swapWorkflow(t)

	_, err := executeCommand(t, "run", "one", "two")
	require.Error(t, err)
}
