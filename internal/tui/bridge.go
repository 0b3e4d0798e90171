package tui

import (
	"context"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/multiplier"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter.
// It drains the progress channel and forwards updates as bubbletea messages.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

// Verify interface compliance.
var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg to the TUI.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numRuns int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numRuns)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		avg := agg.Update(update)
		finished, failed := agg.Done()
		t.ref.Send(ProgressMsg{
			Generation: t.generation,
			Average:    avg,
			Finished:   finished,
			Failed:     failed,
			Total:      agg.NumRuns(),
		})
	}
}

// evaluateCmd parses expr and evaluates it with every multiplier in
// multipliers. Operations that never multiply run once.
func evaluateCmd(ctx context.Context, ref *programRef, gen uint64, expr string, radix int, multipliers []multiplier.Multiplier, opts []orchestration.ExecuteOption) tea.Cmd {
	return func() tea.Msg {
		op, err := cli.ParseExpression(expr, radix)
		if err != nil {
			return EvaluationMsg{Generation: gen, Expr: expr, Radix: radix, Err: err}
		}
		if !op.UsesMultiplier() && len(multipliers) > 1 {
			multipliers = multipliers[:1]
		}
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		results := orchestration.Execute(ctx, multipliers, op, reporter, io.Discard, opts...)
		return EvaluationMsg{Generation: gen, Expr: expr, Radix: radix, Op: op, Results: results}
	}
}
