package domain

import (
	"fmt"
	"sort"
	"time"

	m "recase.dev/pkg/recase/internal/model"
	"recase.dev/pkg/recase/pkg"
)

// BuildReport assembles the structured run record from the schedule result
// and the change ledger. Outcomes and changes are sorted so the report is
// byte-reproducible for the same inputs in both sequential and parallel mode.
func BuildReport(
	runID string,
	root m.Path,
	dryRun bool,
	startedAt, finishedAt time.Time,
	result ScheduleResult,
	ledger pkg.Journal[m.Change],
	warnings []string,
	rolledBack bool,
) (m.RunReport, error) {
	var changes []m.Change

	if ledger != nil {
		err := ledger.Range(func(_ uint64, change m.Change) error {
			changes = append(changes, change)
			return nil
		})
		if err != nil {
			return m.RunReport{}, fmt.Errorf("replay change ledger: %w", err)
		}
	}

	m.SortChanges(changes)

	outcomes := make([]m.FileOutcome, len(result.Outcomes))
	copy(outcomes, result.Outcomes)

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Path < outcomes[j].Path
	})

	return m.RunReport{
		RunID:      runID,
		Root:       root,
		DryRun:     dryRun,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		RolledBack: rolledBack,
		Stats:      result.Stats,
		Changes:    changes,
		Outcomes:   outcomes,
		Warnings:   warnings,
	}, nil
}
