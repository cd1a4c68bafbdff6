package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestInitCommand_WritesConfig(t *testing.T) {
	swapWorkflow(t)
	chdir(t, t.TempDir())

	_, err := executeCommand(t, "init")
	require.NoError(t, err)

	content, err := os.ReadFile(configFileName)
	require.NoError(t, err)
	assert.Contains(t, string(content), "version:")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	swapWorkflow(t)
	chdir(t, t.TempDir())

	_, err := executeCommand(t, "init")
	require.NoError(t, err)

	_, err = executeCommand(t, "init")
	require.Error(t, err)
}
