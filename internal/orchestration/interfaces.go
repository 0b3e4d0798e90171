package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
)

// CalculationResult encapsulates the outcome of evaluating an operation with
// one multiplier. It is the shared domain type between orchestration and
// presentation layers.
type CalculationResult struct {
	// Name is the multiplier used (e.g., "Karatsuba").
	Name string
	// Values holds the results, labelled by Operation.Labels. It is nil if an
	// error occurred.
	Values []bigint.Int
	// Duration is the time taken to complete the evaluation.
	Duration time.Duration
	// Err contains any error that occurred during the evaluation.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Radix   int
	Verbose bool
	Details bool
	Quiet   bool
}

// ProgressReporter defines the interface for displaying evaluation progress.
// Implementations handle the visual representation (spinners, TUI status
// lines) while the orchestration layer coordinates the evaluations.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer) {
	f(wg, progressChan, numRuns, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting results.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays the final result of op.
	PresentResult(result CalculationResult, op Operation, opts PresentationOptions, out io.Writer)

	// HandleError reports a failure and returns the exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
