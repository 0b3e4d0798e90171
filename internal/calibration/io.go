package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// printKaratsubaResults prints the ranking of Karatsuba base-case thresholds.
func printKaratsubaResults(out io.Writer, results []calibrationResult, best int) {
	fmt.Fprintf(out, "\n--- Karatsuba Threshold ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreshold%s    │ %sExecution Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		highlight := ""
		if res.Threshold == best && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %s%s%s%s\n",
			ui.ColorBlue(), fmt.Sprintf("%d limbs", res.Threshold), ui.ColorReset(),
			ui.ColorYellow(), durationCell(res.Duration, res.Err), ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printFFTResults prints the FFT versus Karatsuba race at each size.
func printFFTResults(out io.Writer, results []calibrationResult, threshold int, found bool) {
	fmt.Fprintf(out, "\n--- FFT Crossover ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sOperand size%s │ %sKaratsuba%s      │ %sFFT%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 16), strings.Repeat("─", 25))
	for _, res := range results {
		highlight := ""
		if found && res.Threshold == threshold {
			highlight = fmt.Sprintf(" %s(Crossover)%s", ui.ColorGreen(), ui.ColorReset())
		}
		var baseline string
		if res.Baseline > 0 {
			baseline = format.FormatExecutionDuration(res.Baseline)
		} else {
			baseline = "N/A"
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %-14s │ %s%s%s%s\n",
			ui.ColorBlue(), fmt.Sprintf("%d limbs", res.Threshold), ui.ColorReset(),
			baseline, ui.ColorYellow(), durationCell(res.Duration, res.Err), ui.ColorReset(), highlight)
	}
	tw.Flush()
	if !found {
		fmt.Fprintf(out, "%sFFT never beat Karatsuba at the tested sizes; using the estimate of %d limbs.%s\n",
			ui.ColorGrey(), threshold, ui.ColorReset())
	}
}

func durationCell(d time.Duration, err error) string {
	if err != nil {
		return fmt.Sprintf("%sN/A (%v)%s", ui.ColorRed(), err, ui.ColorReset())
	}
	return format.FormatExecutionDuration(d)
}

func printRecommendation(out io.Writer, karatsuba, fft int) {
	fmt.Fprintf(out, "\n%s✅ Recommendation for this machine: %s--karatsuba-threshold %d --fft-threshold %d%s\n",
		ui.ColorGreen(), ui.ColorYellow(), karatsuba, fft, ui.ColorReset())
}

// printCalibrationOutput prints the thresholds chosen by auto-calibration.
func printCalibrationOutput(cfg config.AppConfig, elapsed time.Duration, out io.Writer) {
	fmt.Fprintf(out, "%sAuto-calibration%s (%s): Karatsuba=%s%d%s limbs, FFT=%s%d%s limbs\n",
		ui.ColorGreen(), ui.ColorReset(), format.FormatExecutionDuration(elapsed),
		ui.ColorYellow(), cfg.KaratsubaThreshold, ui.ColorReset(),
		ui.ColorYellow(), cfg.FFTThreshold, ui.ColorReset())
}
