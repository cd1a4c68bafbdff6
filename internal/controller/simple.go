package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "recase.dev/pkg/recase/internal/model"
)

var (
	okAccent   = color.New(color.FgGreen).SprintFunc()
	warnAccent = color.New(color.FgYellow).SprintFunc()
	failAccent = color.New(color.FgRed, color.Bold).SprintFunc()
)

// SimpleUI implements UI using the cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// DisplayPreflight announces the run parameters.
func (s *SimpleUI) DisplayPreflight(ctx context.Context, root m.Path, candidates int, dryRun bool) {
	if ctx.Err() != nil {
		return
	}

	mode := "live"
	if dryRun {
		mode = "dry-run"
	}

	s.cmd.Printf("Scanning %s: %d candidate file(s), mode %s\n", root, candidates, mode)
}

// DisplayConcurrencyInfo shows worker-pool settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, workers, batchSize int) {
	if ctx.Err() != nil {
		return
	}

	s.cmd.Printf("Processing in batches of %d with %d worker(s)\n", batchSize, workers)
}

// DisplayBatchProgress prints one progress line per completed batch.
func (s *SimpleUI) DisplayBatchProgress(ctx context.Context, batch, totalBatches, processed, total int) {
	if ctx.Err() != nil {
		return
	}

	pct := 0.0
	if total > 0 {
		pct = float64(processed) / float64(total) * 100
	}

	s.cmd.Printf("Batch %d/%d complete: %d/%d files (%.0f%%)\n", batch, totalBatches, processed, total, pct)
}

// DisplayScanTable renders the per-file violation counts.
func (s *SimpleUI) DisplayScanTable(ctx context.Context, rows []ScanRow, totalViolations int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Classification", "Violations"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	for _, row := range rows {
		table.Append([]string{row.Path, string(row.Classification), fmt.Sprintf("%d", row.Violations)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(rows)),
		"",
		fmt.Sprintf("%d", totalViolations),
	})

	table.Render()

	s.cmd.Printf("\n%s", tableBuffer.String())

	return nil
}

// DisplaySummary renders the final stats and the change ledger.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(report.Changes) > 0 {
		var tableBuffer bytes.Buffer

		table := tablewriter.NewWriter(&tableBuffer)
		table.SetHeader([]string{"Path", "Original", "Converted"})
		table.SetBorder(false)
		table.SetCenterSeparator("")

		for _, change := range report.Changes {
			table.Append([]string{string(change.Path), change.Original, change.Converted})
		}

		table.Render()

		s.cmd.Printf("\n%s\n", tableBuffer.String())
	}

	verb := "renamed"
	if report.DryRun {
		verb = "would rename"
	}

	s.cmd.Printf("%s %d identifier(s) across %d file(s)\n",
		okAccent(verb), report.Stats.IdentifiersRenamed, report.Stats.FilesModified)
	s.cmd.Printf("processed %d, modified %d, skipped %d, errors %d\n",
		report.Stats.FilesProcessed, report.Stats.FilesModified,
		report.Stats.FilesSkipped, report.Stats.ErrorCount)

	if report.RolledBack {
		s.cmd.Printf("%s\n", failAccent("run rolled back; the tree was restored"))
	}

	return nil
}

// DisplayWarnings prints validation warnings.
func (s *SimpleUI) DisplayWarnings(ctx context.Context, warnings []string) {
	if ctx.Err() != nil {
		return
	}

	for _, warning := range warnings {
		s.cmd.Printf("%s %s\n", warnAccent("warning:"), warning)
	}
}

// DisplayRollback announces the fatal-error rollback.
func (s *SimpleUI) DisplayRollback(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}

	s.cmd.Printf("%s %v\n", failAccent("fatal:"), err)
}
