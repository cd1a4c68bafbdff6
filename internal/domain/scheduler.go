package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"recase.dev/pkg/recase/internal/adapter"
	m "recase.dev/pkg/recase/internal/model"
	"recase.dev/pkg/recase/pkg"
)

// State is the scheduler's run phase.
type State string

// Scheduler states. RolledBack is terminal and distinct from Done.
const (
	StateIdle        State = "idle"
	StateScanning    State = "scanning"
	StateClassifying State = "classifying"
	StateProcessing  State = "processing"
	StateValidating  State = "validating"
	StateReporting   State = "reporting"
	StateDone        State = "done"
	StateRollingBack State = "rolling-back"
	StateRolledBack  State = "rolled-back"
)

// SchedulerConfig controls batching and concurrency.
type SchedulerConfig struct {
	DryRun    bool
	BatchSize int
	Parallel  bool
	Workers   int
	// GraceTimeout bounds how long the scheduler waits for in-flight file
	// operations after a fatal error before abandoning them.
	GraceTimeout time.Duration
}

// DefaultBatchSize is the number of files per scheduling unit.
const DefaultBatchSize = 50

// DefaultWorkers is the worker-pool size for parallel batches.
const DefaultWorkers = 4

// DefaultGraceTimeout bounds the post-fatal drain of in-flight workers.
const DefaultGraceTimeout = 10 * time.Second

func (c SchedulerConfig) normalized() SchedulerConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}

	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}

	if !c.Parallel {
		c.Workers = 1
	}

	if c.GraceTimeout <= 0 {
		c.GraceTimeout = DefaultGraceTimeout
	}

	return c
}

// ProgressFunc receives a progress notification after every batch.
type ProgressFunc func(batch, totalBatches, processed, total int)

// fileResult is the immutable value a worker returns for one file. A single
// aggregator folds these into the run stats; workers never share counters.
type fileResult struct {
	outcome m.FileOutcome
	changes []m.Change
	fatal   error
}

// ScheduleResult is the aggregate outcome of the processing phase. Changes
// are not held here; they are spilled to the run's ledger journal as results
// are folded.
type ScheduleResult struct {
	Stats    m.Stats
	Outcomes []m.FileOutcome
	Modified []m.Path
}

// Scheduler drives per-file processing over fixed-size batches, sequentially
// or via a bounded worker pool, and owns the run's state machine.
type Scheduler struct {
	fs         adapter.SourceFS
	classifier *Classifier
	backups    BackupManager
	ledger     pkg.Journal[m.Change]
	cfg        SchedulerConfig
	progress   ProgressFunc

	state atomic.Value
}

// NewScheduler constructs a Scheduler for one run. The ledger receives one
// Change per applied (or would-be) rename.
func NewScheduler(
	fs adapter.SourceFS,
	classifier *Classifier,
	backups BackupManager,
	ledger pkg.Journal[m.Change],
	cfg SchedulerConfig,
	progress ProgressFunc,
) *Scheduler {
	s := &Scheduler{
		fs:         fs,
		classifier: classifier,
		backups:    backups,
		ledger:     ledger,
		cfg:        cfg.normalized(),
		progress:   progress,
	}
	s.state.Store(StateIdle)

	return s
}

// State returns the current run phase.
func (s *Scheduler) State() State {
	return s.state.Load().(State)
}

func (s *Scheduler) transition(next State) {
	slog.Debug("scheduler state", "from", s.State(), "to", next)
	s.state.Store(next)
}

// MarkScanning flags the candidate-discovery phase. The workflow calls it
// around the scanner so the state machine covers the whole run.
func (s *Scheduler) MarkScanning() { s.transition(StateScanning) }

// MarkValidating flags the post-mutation validation phase.
func (s *Scheduler) MarkValidating() { s.transition(StateValidating) }

// MarkReporting flags report generation.
func (s *Scheduler) MarkReporting() { s.transition(StateReporting) }

// MarkDone flags successful completion.
func (s *Scheduler) MarkDone() { s.transition(StateDone) }

// Run classifies every candidate, partitions the eligible files into batches,
// and processes them. On a fatal error in live mode it rolls the tree back
// and returns the error; the partial result is still returned for reporting.
func (s *Scheduler) Run(ctx context.Context, candidates []m.Path) (ScheduleResult, error) {
	result := ScheduleResult{}

	s.transition(StateClassifying)

	eligible := s.classifyAll(candidates, &result)

	s.transition(StateProcessing)

	batches := partition(eligible, s.cfg.BatchSize)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var fatal error

	processed := len(result.Outcomes)
	total := len(candidates)

	for i, batch := range batches {
		results, batchFatal := s.processBatch(runCtx, batch)

		// Fold even the partial batch so skipped/modified counts stay exact.
		for _, r := range results {
			s.fold(&result, r)
		}

		processed += len(results)

		if s.progress != nil {
			s.progress(i+1, len(batches), processed, total)
		}

		if batchFatal != nil {
			fatal = batchFatal

			cancel()

			break
		}
	}

	if fatal == nil && ctx.Err() != nil {
		fatal = ctx.Err()
	}

	if fatal != nil {
		if s.cfg.DryRun {
			// Dry-run has no rollback path; nothing was mutated.
			return result, fatal
		}

		s.transition(StateRollingBack)

		restored, rollbackErr := s.backups.RollbackAll(ctx)
		if rollbackErr != nil {
			slog.Error("rollback incomplete", "restored", restored, "error", rollbackErr)
		}

		s.transition(StateRolledBack)

		return result, fmt.Errorf("run aborted, %d file(s) restored: %w", restored, fatal)
	}

	return result, nil
}

// classifyAll reads and tags every candidate, recording skips immediately and
// returning the eligible paths in scan order.
func (s *Scheduler) classifyAll(candidates []m.Path, result *ScheduleResult) []m.Path {
	var eligible []m.Path

	for _, path := range candidates {
		content, err := s.fs.ReadFile(path)
		if err != nil {
			accessErr := &FileAccessError{Path: path, Err: err}
			slog.Warn("skipping file", "path", path, "reason", "access", "error", err)
			s.fold(result, fileResult{outcome: m.FileOutcome{
				Path:  path,
				Skip:  m.SkipAccessError,
				Error: accessErr.Error(),
			}})

			continue
		}

		switch s.classifier.Classify(path, content) {
		case m.ClassGenerated:
			s.fold(result, fileResult{outcome: m.FileOutcome{Path: path, Skip: m.SkipGenerated}})
		case m.ClassSyntaxUnsafe:
			s.fold(result, fileResult{outcome: m.FileOutcome{Path: path, Skip: m.SkipSyntaxUnsafe}})
		default:
			eligible = append(eligible, path)
		}
	}

	return eligible
}

// processBatch runs one batch through the worker pool and returns the folded
// results plus the first fatal error, if any. A fatal result cancels the
// group context, so files of this batch that have not started yet are not
// dispatched; in-flight workers get a bounded grace period to finish.
func (s *Scheduler) processBatch(ctx context.Context, batch []m.Path) ([]fileResult, error) {
	// Buffered to the batch size so a worker send never blocks, even when
	// the pool is abandoned after the grace period.
	results := make(chan fileResult, len(batch))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.Workers)

	for _, path := range batch {
		currentPath := path

		group.Go(func() error {
			r := s.processFile(groupCtx, currentPath)
			results <- r

			return r.fatal
		})
	}

	waitErr := s.waitWithGrace(group, groupCtx)

	var (
		collected []fileResult
		fatal     error
	)

drain:
	for {
		select {
		case r := <-results:
			collected = append(collected, r)

			if r.fatal != nil && fatal == nil {
				fatal = r.fatal
			}
		default:
			break drain
		}
	}

	if fatal == nil {
		fatal = waitErr
	}

	return collected, fatal
}

// waitWithGrace waits for the pool. The wait is unbounded during normal
// operation; once the group context is cancelled (fatal error or run
// cancellation) in-flight workers get GraceTimeout before being abandoned so
// the process is guaranteed to exit.
func (s *Scheduler) waitWithGrace(group *errgroup.Group, groupCtx context.Context) error {
	done := make(chan error, 1)

	go func() { done <- group.Wait() }()

	select {
	case err := <-done:
		return err
	case <-groupCtx.Done():
	}

	select {
	case err := <-done:
		return err
	case <-time.After(s.cfg.GraceTimeout):
		slog.Error("worker pool did not drain within grace period", "timeout", s.cfg.GraceTimeout)
		return fmt.Errorf("worker pool did not drain within %s", s.cfg.GraceTimeout)
	}
}

// processFile runs one file through extract → convert → rewrite → backup →
// write. Exactly one worker owns a file; there is no shared per-file state.
func (s *Scheduler) processFile(ctx context.Context, path m.Path) fileResult {
	if err := ctx.Err(); err != nil {
		// Cancelled before this file started; count it as skipped so the
		// processed total stays exact.
		return fileResult{outcome: m.FileOutcome{Path: path, Skip: m.SkipClean}}
	}

	content, err := s.fs.ReadFile(path)
	if err != nil {
		accessErr := &FileAccessError{Path: path, Err: err}

		return fileResult{outcome: m.FileOutcome{
			Path:  path,
			Skip:  m.SkipAccessError,
			Error: accessErr.Error(),
		}}
	}

	mapping := ExtractRenames(content)
	if len(mapping) == 0 {
		return fileResult{outcome: m.FileOutcome{Path: path, Skip: m.SkipClean}}
	}

	rewritten := ApplyRenames(content, mapping)
	if !rewritten.Modified {
		return fileResult{outcome: m.FileOutcome{Path: path, Skip: m.SkipClean}}
	}

	changes := make([]m.Change, 0, len(mapping))
	for _, rename := range mapping {
		changes = append(changes, m.Change{
			Path:      path,
			Original:  rename.Original,
			Converted: rename.Converted,
		})
	}

	if s.cfg.DryRun {
		return fileResult{
			outcome: m.FileOutcome{Path: path, Modified: true, Renamed: len(mapping)},
			changes: changes,
		}
	}

	// Backup must succeed before the write is permitted.
	if _, err := s.backups.Backup(ctx, path); err != nil {
		return fileResult{
			outcome: m.FileOutcome{Path: path, Skip: m.SkipAccessError, Error: err.Error()},
			fatal:   err,
		}
	}

	perm := os.FileMode(defaultFileMode)
	if info, err := s.fs.Stat(path); err == nil {
		perm = info.Mode()
	}

	if err := s.fs.WriteFile(path, rewritten.Rewritten, perm); err != nil {
		rewriteErr := &RewriteError{Path: path, Err: err}

		return fileResult{
			outcome: m.FileOutcome{Path: path, Skip: m.SkipAccessError, Error: rewriteErr.Error()},
			fatal:   rewriteErr,
		}
	}

	return fileResult{
		outcome: m.FileOutcome{Path: path, Modified: true, Renamed: len(mapping)},
		changes: changes,
	}
}

const defaultFileMode = 0o644

// fold is the single aggregation point turning immutable worker results into
// run statistics.
func (s *Scheduler) fold(result *ScheduleResult, r fileResult) {
	result.Stats.FilesProcessed++

	switch {
	case r.outcome.Modified:
		result.Stats.FilesModified++
		result.Stats.IdentifiersRenamed += r.outcome.Renamed
		result.Modified = append(result.Modified, r.outcome.Path)
	default:
		result.Stats.FilesSkipped++
	}

	if r.outcome.Error != "" {
		result.Stats.ErrorCount++
	}

	result.Outcomes = append(result.Outcomes, r.outcome)

	if s.ledger != nil && len(r.changes) > 0 {
		if err := s.ledger.AppendBatch(r.changes); err != nil {
			slog.Error("failed to journal changes", "path", r.outcome.Path, "error", err)
		}
	}
}

// partition splits paths into fixed-size scheduling units.
func partition(paths []m.Path, size int) [][]m.Path {
	if len(paths) == 0 {
		return nil
	}

	batches := make([][]m.Path, 0, (len(paths)+size-1)/size)

	for start := 0; start < len(paths); start += size {
		end := start + size
		if end > len(paths) {
			end = len(paths)
		}

		batches = append(batches, paths[start:end])
	}

	return batches
}
