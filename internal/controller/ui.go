// Package controller provides output adapters for displaying refactor
// progress and results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "recase.dev/pkg/recase/internal/model"
)

// ScanRow is one line of the scan command's table: a candidate file, its
// classification, and how many convention-violating identifiers it holds.
type ScanRow struct {
	Path           string
	Classification m.Classification
	Violations     int
}

// UI defines the interface for displaying run progress and results.
// Implementations can use different output methods (simple text, TUI).
type UI interface {
	// Start initializes the UI before processing begins.
	Start(ctx context.Context) error
	// Close finalizes the UI once processing is over.
	Close(ctx context.Context)
	// DisplayPreflight announces the run parameters.
	DisplayPreflight(ctx context.Context, root m.Path, candidates int, dryRun bool)
	// DisplayConcurrencyInfo shows worker-pool settings.
	DisplayConcurrencyInfo(ctx context.Context, workers, batchSize int)
	// DisplayBatchProgress reports completion of one batch.
	DisplayBatchProgress(ctx context.Context, batch, totalBatches, processed, total int)
	// DisplayScanTable renders the scan command's per-file table.
	DisplayScanTable(ctx context.Context, rows []ScanRow, totalViolations int) error
	// DisplaySummary renders the final run report.
	DisplaySummary(ctx context.Context, report m.RunReport) error
	// DisplayWarnings prints validation warnings.
	DisplayWarnings(ctx context.Context, warnings []string)
	// DisplayRollback announces that the run was rolled back.
	DisplayRollback(ctx context.Context, err error)
}

// NewUI selects the TUI on an interactive terminal and the plain printer
// otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	simple := NewSimpleUI(cmd)
	if interactive {
		return NewTUI(simple)
	}

	return simple
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
