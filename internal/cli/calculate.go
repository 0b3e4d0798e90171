package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/multiplier"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the operation, timeout, environment details, and multiplier
// thresholds.
//
// Parameters:
//   - cfg: The application configuration.
//   - op: The parsed operation.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, op orchestration.Operation, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%s%s (%s limbs) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), op.Op, ui.ColorReset(), format.FormatCount(op.MaxLimbs()),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorBlue(), runtime.NumCPU(), ui.ColorReset(), ui.ColorBlue(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Multiplier thresholds: Karatsuba=%s%d%s limbs, FFT=%s%d%s limbs.\n",
		ui.ColorBlue(), cfg.KaratsubaThreshold, ui.ColorReset(), ui.ColorBlue(), cfg.FFTThreshold, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single multiplier vs comparison).
//
// Parameters:
//   - multipliers: The multipliers that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(multipliers []multiplier.Multiplier, out io.Writer) {
	var modeDesc string
	switch {
	case len(multipliers) > 1:
		modeDesc = "Parallel comparison of all multipliers"
	case len(multipliers) == 1:
		modeDesc = fmt.Sprintf("Single evaluation with the %s%s%s multiplier",
			ui.ColorGreen(), multipliers[0].Name(), ui.ColorReset())
	default:
		modeDesc = "No multiplier selected"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
