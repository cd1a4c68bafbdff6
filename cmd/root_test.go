package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recase.dev/pkg/recase/internal/domain"
	m "recase.dev/pkg/recase/internal/model"
)

// stubWorkflow records the arguments each operation was called with.
type stubWorkflow struct {
	runArgs  *domain.RunArgs
	scanArgs *domain.ScanArgs
	viewArgs *domain.ViewArgs
	err      error
}

func (s *stubWorkflow) Run(_ context.Context, args domain.RunArgs) error {
	s.runArgs = &args
	return s.err
}

func (s *stubWorkflow) Scan(_ context.Context, args domain.ScanArgs) error {
	s.scanArgs = &args
	return s.err
}

func (s *stubWorkflow) View(_ context.Context, args domain.ViewArgs) error {
	s.viewArgs = &args
	return s.err
}

// swapWorkflow installs a stub for the duration of one test and keeps test
// logging out of the working directory.
func swapWorkflow(t *testing.T) *stubWorkflow {
	t.Helper()

	stub := &stubWorkflow{}

	previous := workflow
	workflow = stub

	previousLog := viper.GetString(logFilenameKey)
	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "recase-test.log"))

	t.Cleanup(func() {
		workflow = previous

		viper.Set(logFilenameKey, previousLog)
	})

	return stub
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	if args == nil {
		// SetArgs(nil) would fall back to os.Args.
		args = []string{}
	}

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestRootCommand_ShowsHelp(t *testing.T) {
	swapWorkflow(t)

	output, err := executeCommand(t)
	require.NoError(t, err)
	assert.Contains(t, output, "recase")
	assert.Contains(t, output, "Available Commands")
}

func TestParseRoot(t *testing.T) {
	assert.Equal(t, m.Path("."), parseRoot(nil))
	assert.Equal(t, m.Path("/some/tree"), parseRoot([]string{"/some/tree"}))
}
