package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during evaluations.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing evaluations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numRuns int, out io.Writer) {
	DisplayProgress(wg, progressChan, numRuns, out)
}

// CLIColorProvider supplies the current theme's colors to apperrors.
type CLIColorProvider struct{}

func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for results in the command-line
// interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable displays the comparison summary table with
// multiplier names, durations, and status in a formatted tabular layout.
// Column widths are measured on the uncolored text so ANSI codes do not
// skew the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	const nameHeader, durationHeader = "Multiplier", "Duration"
	maxNameLen := runewidth.StringWidth(nameHeader)
	maxDurationLen := runewidth.StringWidth(durationHeader)
	for _, res := range results {
		maxNameLen = max(maxNameLen, runewidth.StringWidth(res.Name))
		maxDurationLen = max(maxDurationLen, runewidth.StringWidth(format.FormatExecutionDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %sStatus%s\n",
		ui.ColorUnderline(), nameHeader, ui.ColorReset(), padRight("", maxNameLen-runewidth.StringWidth(nameHeader)),
		ui.ColorUnderline(), durationHeader, ui.ColorReset(), padRight("", maxDurationLen-runewidth.StringWidth(durationHeader)),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-runewidth.StringWidth(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-runewidth.StringWidth(duration)),
			status)
	}
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// PresentResult displays the final result using DisplayResult.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, op orchestration.Operation, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, op, opts, out)
}

// HandleError handles evaluation errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayResult prints the values of a successful evaluation.
//
// In quiet mode only the values are printed, one per line. Otherwise each
// value is labelled, grouped by thousands in radix 10, and truncated beyond
// TruncationLimit digits unless opts.Verbose is set. opts.Details adds the
// digit, bit and limb counts of every value.
func DisplayResult(result orchestration.CalculationResult, op orchestration.Operation, opts orchestration.PresentationOptions, out io.Writer) {
	radix := opts.Radix
	if radix == 0 {
		radix = 10
	}
	if opts.Quiet {
		DisplayQuietResult(out, result.Values, radix)
		return
	}

	fmt.Fprintf(out, "\n--- Result ---\n")
	fmt.Fprintf(out, "%s%s%s computed by %s%s%s in %s%s%s.\n",
		ui.ColorMagenta(), op.Op, ui.ColorReset(),
		ui.ColorBlue(), result.Name, ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())

	labels := op.Labels()
	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}

	truncated := false
	for i, v := range result.Values {
		label := "result"
		if i < len(labels) {
			label = labels[i]
		}
		text, cut := formatValue(v, radix, opts.Verbose)
		truncated = truncated || cut
		fmt.Fprintf(out, "%s = %s%s%s\n",
			padRight(label, labelWidth-runewidth.StringWidth(label)),
			ui.ColorGreen(), text, ui.ColorReset())
		if opts.Details {
			displayDetails(v, radix, out)
		}
	}
	if truncated {
		fmt.Fprintf(out, "%s(truncated) Tip: use -v to display the full value.%s\n", ui.ColorGrey(), ui.ColorReset())
	}
}

// formatValue renders v in radix and reports whether it was truncated.
func formatValue(v bigint.Int, radix int, verbose bool) (string, bool) {
	s := v.Text(radix)
	digits := strings.TrimPrefix(s, "-")
	if !verbose && len(digits) > TruncationLimit {
		return format.TruncateDigits(s, DisplayEdges), true
	}
	if radix == 10 {
		return format.FormatNumberString(s), false
	}
	return s, false
}

func displayDetails(v bigint.Int, radix int, out io.Writer) {
	digits := len(strings.TrimPrefix(v.Text(radix), "-"))
	fmt.Fprintf(out, "    Digits (radix %d): %s%s%s\n", radix, ui.ColorBlue(), format.FormatCount(digits), ui.ColorReset())
	fmt.Fprintf(out, "    Bits:             %s%s%s\n", ui.ColorBlue(), format.FormatCount(v.BitLen()), ui.ColorReset())
	fmt.Fprintf(out, "    Limbs:            %s%s%s\n", ui.ColorBlue(), format.FormatCount(v.Len()), ui.ColorReset())
}

// DisplayMemoryStats shows memory statistics after an evaluation.
func DisplayMemoryStats(snap metrics.MemorySnapshot, delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Allocated:       %s\n", format.FormatBytes(delta.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snap.PauseTotalNs)/1e6)
}
