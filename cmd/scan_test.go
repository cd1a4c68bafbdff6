package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "recase.dev/pkg/recase/internal/model"
)

func TestScanCommand(t *testing.T) {
	stub := swapWorkflow(t)

	root := t.TempDir()

	_, err := executeCommand(t, "scan", root)
	require.NoError(t, err)

	require.NotNil(t, stub.scanArgs)
	assert.Equal(t, m.Path(root), stub.scanArgs.Root)
	assert.Equal(t, []string{".java"}, stub.scanArgs.Extensions)
	assert.Nil(t, stub.runArgs, "scan must not trigger a run")
}

func TestScanCommand_DefaultRoot(t *testing.T) {
	stub := swapWorkflow(t)

	_, err := executeCommand(t, "scan")
	require.NoError(t, err)

	require.NotNil(t, stub.scanArgs)
	assert.Equal(t, m.Path("."), stub.scanArgs.Root)
}
