package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recase.dev/pkg/recase/internal/adapter"
	m "recase.dev/pkg/recase/internal/model"
)

// DefaultValidationSample bounds how many modified files the gate checks.
// Sampling keeps the post-run check cheap; it cannot prove the whole tree.
const DefaultValidationSample = 5

// ValidationGate runs the external checker over a sample of modified files
// after a live run. Failures are advisory warnings, never fatal.
type ValidationGate struct {
	checker adapter.SyntaxChecker
	sample  int
}

// NewValidationGate constructs a ValidationGate. A sample of zero or less
// falls back to the default.
func NewValidationGate(checker adapter.SyntaxChecker, sample int) *ValidationGate {
	if sample <= 0 {
		sample = DefaultValidationSample
	}

	return &ValidationGate{checker: checker, sample: sample}
}

// Validate checks up to the configured sample of modified files and returns
// one warning string per failure.
func (g *ValidationGate) Validate(ctx context.Context, modified []m.Path) []string {
	if g.checker == nil || len(modified) == 0 {
		return nil
	}

	sample := modified
	if len(sample) > g.sample {
		sample = sample[:g.sample]
	}

	var warnings []string

	for _, path := range sample {
		output, err := g.checker.CheckFile(ctx, path)
		if err == nil {
			continue
		}

		slog.Warn("validation check failed", "path", path, "error", err)

		warning := fmt.Sprintf("validation: %s: %v", path, err)
		if trimmed := strings.TrimSpace(output); trimmed != "" {
			warning += ": " + firstLine(trimmed)
		}

		warnings = append(warnings, warning)
	}

	return warnings
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
