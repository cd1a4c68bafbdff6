package adapter

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	m "recase.dev/pkg/recase/internal/model"
)

// SyntaxChecker abstracts the external compiler/checker the validation gate
// samples modified files with. The engine only needs this binary contract,
// not any specific tool.
type SyntaxChecker interface {
	// CheckFile runs the checker on a single file. A non-nil error means the
	// file failed the check; output carries the tool's combined output.
	CheckFile(ctx context.Context, path m.Path) (output string, err error)
}

// LocalSyntaxChecker runs a configurable command via os/exec.
type LocalSyntaxChecker struct {
	command string
	timeout time.Duration
}

// NewLocalSyntaxChecker constructs a LocalSyntaxChecker with a 30s per-file
// timeout.
func NewLocalSyntaxChecker(command string) *LocalSyntaxChecker {
	return &LocalSyntaxChecker{
		command: command,
		timeout: 30 * time.Second,
	}
}

// CheckFile invokes the checker command with the file path as its only
// argument.
func (a *LocalSyntaxChecker) CheckFile(ctx context.Context, path m.Path) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.command, string(path))

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String() + stderr.String(), err
}
