package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"recase.dev/pkg/recase/internal/adapter"
	"recase.dev/pkg/recase/internal/controller"
	m "recase.dev/pkg/recase/internal/model"
	"recase.dev/pkg/recase/pkg"
)

// RunArgs contains the arguments for a refactor run.
type RunArgs struct {
	Root             m.Path
	DryRun           bool
	BatchSize        int
	Parallel         bool
	Workers          int
	BackupDir        m.Path
	Reports          m.Path
	Exclude          []string
	Extensions       []string
	CheckerCommand   string
	ValidationSample int
	GraceTimeout     time.Duration
}

// ScanArgs contains the arguments for the analysis-only scan.
type ScanArgs struct {
	Root       m.Path
	Exclude    []string
	Extensions []string
}

// ViewArgs contains the arguments for viewing a saved report.
type ViewArgs struct {
	Reports m.Path
}

// Workflow is the use-case facade the CLI drives.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Scan(ctx context.Context, args ScanArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	fs      adapter.SourceFS
	backups adapter.BackupStore
	reports adapter.ReportStore
	ui      controller.UI

	newChecker func(command string) adapter.SyntaxChecker
	newLock    func(path m.Path) adapter.RunLock
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	fs adapter.SourceFS,
	backups adapter.BackupStore,
	reports adapter.ReportStore,
	ui controller.UI,
	newChecker func(command string) adapter.SyntaxChecker,
	newLock func(path m.Path) adapter.RunLock,
) Workflow {
	return &workflow{
		fs:         fs,
		backups:    backups,
		reports:    reports,
		ui:         ui,
		newChecker: newChecker,
		newLock:    newLock,
	}
}

// Run executes a full refactor run: scan, classify, process in batches,
// validate a sample, persist the report. On a fatal error in live mode the
// tree is rolled back and the returned error makes the process exit non-zero.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	runID := uuid.NewString()
	startedAt := time.Now()

	slog.Info("run starting", "run_id", runID, "root", args.Root, "dry_run", args.DryRun)

	scanner := NewScanner(w.fs, args.Exclude, args.Extensions)
	backupMgr := NewBackupManager(w.backups, args.Root, args.BackupDir, runID)

	ledger, err := pkg.NewJournal[m.Change]()
	if err != nil {
		return fmt.Errorf("create change ledger: %w", err)
	}

	defer func() {
		_ = ledger.Close()
		_ = ledger.Remove()
	}()

	scheduler := NewScheduler(
		w.fs,
		NewClassifier(nil),
		backupMgr,
		ledger,
		SchedulerConfig{
			DryRun:       args.DryRun,
			BatchSize:    args.BatchSize,
			Parallel:     args.Parallel,
			Workers:      args.Workers,
			GraceTimeout: args.GraceTimeout,
		},
		func(batch, totalBatches, processed, total int) {
			w.ui.DisplayBatchProgress(ctx, batch, totalBatches, processed, total)
		},
	)

	scheduler.MarkScanning()

	candidates, err := scanner.Scan(args.Root)
	if err != nil {
		return err
	}

	if !args.DryRun {
		release, err := w.newLock(w.fs.JoinPath(string(args.Root), ".recase.lock")).Acquire()
		if err != nil {
			return err
		}

		defer release()
	}

	w.ui.DisplayPreflight(ctx, args.Root, len(candidates), args.DryRun)

	if args.Parallel {
		w.ui.DisplayConcurrencyInfo(ctx, args.Workers, args.BatchSize)
	}

	if err := w.ui.Start(ctx); err != nil {
		return err
	}

	result, runErr := scheduler.Run(ctx, candidates)

	w.ui.Close(ctx)

	var warnings []string

	if runErr == nil && !args.DryRun && len(result.Modified) > 0 {
		scheduler.MarkValidating()

		gate := NewValidationGate(w.newChecker(args.CheckerCommand), args.ValidationSample)
		warnings = gate.Validate(ctx, result.Modified)
	}

	scheduler.MarkReporting()

	rolledBack := runErr != nil && !args.DryRun

	report, err := BuildReport(
		runID, args.Root, args.DryRun,
		startedAt, time.Now(),
		result, ledger, warnings, rolledBack,
	)
	if err != nil {
		if runErr != nil {
			return runErr
		}

		return err
	}

	reportPath, err := w.reports.Save(args.Reports, report)
	if err != nil {
		slog.Error("failed to save report", "error", err)
	} else {
		slog.Info("report saved", "path", reportPath)
	}

	if runErr != nil {
		w.ui.DisplayRollback(ctx, runErr)
		return runErr
	}

	w.ui.DisplayWarnings(ctx, warnings)

	if err := w.ui.DisplaySummary(ctx, report); err != nil {
		return err
	}

	scheduler.MarkDone()

	slog.Info("run complete", "run_id", runID,
		"processed", report.Stats.FilesProcessed,
		"modified", report.Stats.FilesModified,
		"skipped", report.Stats.FilesSkipped,
		"renamed", report.Stats.IdentifiersRenamed)

	return nil
}

// Scan analyses the tree without any mutation path at all: candidate files,
// their classification, and per-file violation counts.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	scanner := NewScanner(w.fs, args.Exclude, args.Extensions)
	classifier := NewClassifier(nil)

	candidates, err := scanner.Scan(args.Root)
	if err != nil {
		return err
	}

	rows := make([]controller.ScanRow, 0, len(candidates))
	totalViolations := 0

	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}

		file := m.SourceFile{Path: path}

		content, err := w.fs.ReadFile(path)
		if err != nil {
			file.Classification = m.ClassAccessError
			rows = append(rows, controller.ScanRow{
				Path:           string(file.Path),
				Classification: file.Classification,
			})

			continue
		}

		file.Classification = classifier.Classify(path, content)

		violations := 0
		if file.Classification == m.ClassEligible {
			violations = len(ExtractRenames(content))
		}

		totalViolations += violations

		rows = append(rows, controller.ScanRow{
			Path:           string(file.Path),
			Classification: file.Classification,
			Violations:     violations,
		})
	}

	return w.ui.DisplayScanTable(ctx, rows, totalViolations)
}

// View renders the most recent saved report.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.reports.LoadLatest(args.Reports)
	if err != nil {
		return err
	}

	w.ui.DisplayWarnings(ctx, report.Warnings)

	return w.ui.DisplaySummary(ctx, report)
}
