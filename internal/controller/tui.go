package controller

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "recase.dev/pkg/recase/internal/model"
)

var tuiLabelStyle = lipgloss.NewStyle().Bold(true)

// TUI implements UI with a Bubble Tea progress display during processing.
// Everything outside the progress phase delegates to the plain printer.
type TUI struct {
	simple  *SimpleUI
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a TUI wrapping the given SimpleUI.
func NewTUI(simple *SimpleUI) *TUI {
	return &TUI{simple: simple}
}

// Start launches the progress program.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newProgressModel()

	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		model.width = width
	}

	t.program = tea.NewProgram(model, tea.WithOutput(os.Stdout))
	t.done = make(chan struct{})

	go func() {
		_, _ = t.program.Run()
		close(t.done)
	}()

	return nil
}

// Close stops the progress program and waits briefly for it to shut down.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Send(finishedMsg{})

	select {
	case <-t.done:
	case <-time.After(time.Second):
		t.program.Kill()
	}

	t.program = nil
}

// DisplayBatchProgress feeds the progress bar.
func (t *TUI) DisplayBatchProgress(ctx context.Context, batch, totalBatches, processed, total int) {
	if ctx.Err() != nil {
		return
	}

	if t.program == nil {
		t.simple.DisplayBatchProgress(ctx, batch, totalBatches, processed, total)
		return
	}

	t.program.Send(progressMsg{
		batch:        batch,
		totalBatches: totalBatches,
		processed:    processed,
		total:        total,
	})
}

// DisplayPreflight delegates to the plain printer.
func (t *TUI) DisplayPreflight(ctx context.Context, root m.Path, candidates int, dryRun bool) {
	t.simple.DisplayPreflight(ctx, root, candidates, dryRun)
}

// DisplayConcurrencyInfo delegates to the plain printer.
func (t *TUI) DisplayConcurrencyInfo(ctx context.Context, workers, batchSize int) {
	t.simple.DisplayConcurrencyInfo(ctx, workers, batchSize)
}

// DisplayScanTable delegates to the plain printer.
func (t *TUI) DisplayScanTable(ctx context.Context, rows []ScanRow, totalViolations int) error {
	return t.simple.DisplayScanTable(ctx, rows, totalViolations)
}

// DisplaySummary delegates to the plain printer.
func (t *TUI) DisplaySummary(ctx context.Context, report m.RunReport) error {
	return t.simple.DisplaySummary(ctx, report)
}

// DisplayWarnings delegates to the plain printer.
func (t *TUI) DisplayWarnings(ctx context.Context, warnings []string) {
	t.simple.DisplayWarnings(ctx, warnings)
}

// DisplayRollback delegates to the plain printer.
func (t *TUI) DisplayRollback(ctx context.Context, err error) {
	t.simple.DisplayRollback(ctx, err)
}

type progressMsg struct {
	batch        int
	totalBatches int
	processed    int
	total        int
}

type finishedMsg struct{}

// progressModel is the Bubble Tea model backing the processing phase.
type progressModel struct {
	bar          progress.Model
	batch        int
	totalBatches int
	processed    int
	total        int
	width        int
	quitting     bool
}

func newProgressModel() progressModel {
	return progressModel{
		bar: progress.New(progress.WithDefaultGradient()),
	}
}

func (pm progressModel) Init() tea.Cmd {
	return nil
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.width = msg.Width
		pm.bar.Width = msg.Width - 20

		return pm, nil

	case progressMsg:
		pm.batch = msg.batch
		pm.totalBatches = msg.totalBatches
		pm.processed = msg.processed
		pm.total = msg.total

		return pm, nil

	case finishedMsg:
		pm.quitting = true
		return pm, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			pm.quitting = true
			return pm, tea.Quit
		}
	}

	return pm, nil
}

func (pm progressModel) View() string {
	if pm.quitting {
		return ""
	}

	pct := 0.0
	if pm.total > 0 {
		pct = float64(pm.processed) / float64(pm.total)
	}

	var b strings.Builder

	b.WriteString(tuiLabelStyle.Render(fmt.Sprintf("Batch %d/%d", pm.batch, pm.totalBatches)))
	b.WriteString("  ")
	b.WriteString(pm.bar.ViewAs(pct))
	b.WriteString(fmt.Sprintf("  %d/%d files\n", pm.processed, pm.total))

	return b.String()
}
