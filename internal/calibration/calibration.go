package calibration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// CalibrationOptions configures the calibration process. Zero values select
// the defaults.
type CalibrationOptions struct {
	// ProfilePath is the path to save/load the calibration profile.
	// If empty, uses the default path.
	ProfilePath string
	// SaveProfile indicates whether to save the calibration results.
	SaveProfile bool
	// LoadProfile indicates whether to try loading an existing profile.
	LoadProfile bool
	// Logger receives one debug event per measurement.
	Logger zerolog.Logger

	// KaratsubaCandidates are the base-case thresholds to rank.
	KaratsubaCandidates []int
	// FFTCandidates are the operand sizes at which FFT races Karatsuba.
	FFTCandidates []int
	// BenchLimbs is the operand size used to rank Karatsuba thresholds.
	BenchLimbs int
	// Trials is the number of timed products per measurement.
	Trials int
}

func (o CalibrationOptions) withDefaults() CalibrationOptions {
	if len(o.KaratsubaCandidates) == 0 {
		o.KaratsubaCandidates = GenerateKaratsubaCandidates()
	}
	if len(o.FFTCandidates) == 0 {
		o.FFTCandidates = GenerateFFTCandidates()
	}
	if o.BenchLimbs <= 0 {
		o.BenchLimbs = defaultBenchLimbs
	}
	return o
}

// Outcome is the result of a calibration run.
type Outcome struct {
	KaratsubaThreshold int
	FFTThreshold       int
	// FFTFound is false when FFT never beat Karatsuba; FFTThreshold then
	// holds the heuristic estimate.
	FFTFound  bool
	Karatsuba []calibrationResult
	FFT       []calibrationResult
	Elapsed   time.Duration
}

// Calibrate measures both crossovers. progress, if non-nil, receives one
// update per candidate; it is not closed.
func Calibrate(ctx context.Context, opts CalibrationOptions, progress chan<- orchestration.ProgressUpdate) (Outcome, error) {
	opts = opts.withDefaults()
	start := time.Now()
	runner := newCalibrationRunner(ctx, opts.Trials, opts.Logger)

	total := len(opts.KaratsubaCandidates) + len(opts.FFTCandidates)
	report := func(offset int) func(int, error) {
		return func(i int, err error) {
			if progress != nil {
				progress <- orchestration.ProgressUpdate{Index: offset + i, Name: "calibration", Value: 1, Err: err}
			}
		}
	}

	var out Outcome
	out.Karatsuba = runner.karatsubaResults(opts.KaratsubaCandidates, opts.BenchLimbs, report(0))
	if err := ctx.Err(); err != nil {
		return out, err
	}
	best, ok := bestKaratsuba(out.Karatsuba)
	if !ok {
		return out, fmt.Errorf("calibration failed: no valid Karatsuba measurement among %d candidates", len(opts.KaratsubaCandidates))
	}
	out.KaratsubaThreshold = best

	out.FFT = runner.fftResults(opts.FFTCandidates, best, report(len(opts.KaratsubaCandidates)))
	if err := ctx.Err(); err != nil {
		return out, err
	}
	out.FFTThreshold, out.FFTFound = firstFFTWin(out.FFT)
	if !out.FFTFound {
		out.FFTThreshold = EstimateOptimalFFTThreshold()
	}
	out.Elapsed = time.Since(start)
	opts.Logger.Info().
		Int("karatsuba_threshold", out.KaratsubaThreshold).
		Int("fft_threshold", out.FFTThreshold).
		Bool("fft_measured", out.FFTFound).
		Int("candidates", total).
		Dur("elapsed", out.Elapsed).
		Msg("calibration finished")
	return out, nil
}

// RunCalibration executes the full benchmark that determines the Karatsuba
// and FFT crossovers for the current hardware, prints a summary and, if
// requested, saves the profile.
//
// Returns:
//   - int: The exit code (0 for success, non-zero for errors).
func RunCalibration(ctx context.Context, out io.Writer, opts CalibrationOptions) int {
	fmt.Fprintf(out, "--- Calibration Mode: Finding the Multiplication Crossovers ---\n")

	if opts.LoadProfile {
		profile, loaded := LoadOrCreateProfile(opts.ProfilePath)
		if loaded {
			fmt.Fprintf(out, "%sLoaded existing calibration profile%s\n", ui.ColorGreen(), ui.ColorReset())
			fmt.Fprintf(out, "Profile: %s\n", profile.String())
			printRecommendation(out, profile.OptimalKaratsubaThreshold, profile.OptimalFFTThreshold)
			return apperrors.ExitSuccess
		}
	}

	opts = opts.withDefaults()
	numRuns := len(opts.KaratsubaCandidates) + len(opts.FFTCandidates)
	fmt.Fprintf(out, "%sTesting %d Karatsuba thresholds on %d-limb operands and %d FFT crossover sizes%s\n",
		ui.ColorBlue(), len(opts.KaratsubaCandidates), opts.BenchLimbs, len(opts.FFTCandidates), ui.ColorReset())

	var wg sync.WaitGroup
	progressChan := make(chan orchestration.ProgressUpdate, numRuns)
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, numRuns, out)

	start := time.Now()
	outcome, err := Calibrate(ctx, opts, progressChan)
	close(progressChan)
	wg.Wait()

	if err != nil {
		if isCancellation(err) {
			fmt.Fprintf(out, "\n%sCalibration interrupted.%s\n", ui.ColorYellow(), ui.ColorReset())
			return apperrors.HandleCalculationError(err, time.Since(start), out, cli.CLIColorProvider{})
		}
		fmt.Fprintf(out, "\n%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}

	printKaratsubaResults(out, outcome.Karatsuba, outcome.KaratsubaThreshold)
	printFFTResults(out, outcome.FFT, outcome.FFTThreshold, outcome.FFTFound)
	printRecommendation(out, outcome.KaratsubaThreshold, outcome.FFTThreshold)

	if opts.SaveProfile {
		profile := newOutcomeProfile(outcome, opts.BenchLimbs)
		if err := profile.SaveProfile(opts.ProfilePath); err != nil {
			fmt.Fprintf(out, "%sWarning: failed to save profile: %v%s\n", ui.ColorYellow(), err, ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%sCalibration profile saved to %s%s\n", ui.ColorGreen(), profilePath(opts.ProfilePath), ui.ColorReset())
		}
	}
	return apperrors.ExitSuccess
}

// AutoCalibrate runs a quick startup calibration and fills the thresholds
// that cfg leaves at zero. A valid cached profile is used instead of
// benchmarking. Explicit thresholds are never overridden.
//
// Returns:
//   - config.AppConfig: The updated configuration.
//   - bool: True if thresholds were calibrated or loaded, false otherwise.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, logger zerolog.Logger) (config.AppConfig, bool) {
	if cfg.KaratsubaThreshold != 0 && cfg.FFTThreshold != 0 {
		return cfg, false
	}
	if updated, ok := LoadCachedCalibration(cfg, cfg.CalibrationProfile); ok {
		fmt.Fprintf(out, "%sUsing cached calibration%s: Karatsuba=%s%d%s limbs, FFT=%s%d%s limbs\n",
			ui.ColorGreen(), ui.ColorReset(),
			ui.ColorYellow(), updated.KaratsubaThreshold, ui.ColorReset(),
			ui.ColorYellow(), updated.FFTThreshold, ui.ColorReset())
		return updated, true
	}

	outcome, err := Calibrate(ctx, CalibrationOptions{
		Logger:              logger,
		KaratsubaCandidates: GenerateQuickKaratsubaCandidates(),
		FFTCandidates:       GenerateQuickFFTCandidates(),
		BenchLimbs:          quickBenchLimbs,
		Trials:              1,
	}, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("auto-calibration failed, keeping estimated thresholds")
		return cfg, false
	}

	updated := applyOutcome(cfg, outcome.KaratsubaThreshold, outcome.FFTThreshold)
	profile := newOutcomeProfile(outcome, quickBenchLimbs)
	if err := profile.SaveProfile(cfg.CalibrationProfile); err != nil {
		fmt.Fprintf(out, "%sWarning: could not save calibration profile: %v%s\n", ui.ColorYellow(), err, ui.ColorReset())
	}
	printCalibrationOutput(updated, outcome.Elapsed, out)
	return updated, true
}

// LoadCachedCalibration applies a cached calibration profile to the
// thresholds cfg leaves at zero. Returns the updated config and true if a
// valid cached profile was found.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	profile, loaded := LoadOrCreateProfile(path)
	if !loaded {
		return cfg, false
	}
	return applyOutcome(cfg, profile.OptimalKaratsubaThreshold, profile.OptimalFFTThreshold), true
}

// applyOutcome fills unset thresholds.
func applyOutcome(cfg config.AppConfig, karatsuba, fft int) config.AppConfig {
	if cfg.KaratsubaThreshold == 0 && karatsuba > 0 {
		cfg.KaratsubaThreshold = karatsuba
	}
	if cfg.FFTThreshold == 0 && fft > 0 {
		cfg.FFTThreshold = fft
	}
	return cfg
}

func newOutcomeProfile(outcome Outcome, benchLimbs int) *CalibrationProfile {
	profile := NewProfile()
	profile.OptimalKaratsubaThreshold = outcome.KaratsubaThreshold
	profile.OptimalFFTThreshold = outcome.FFTThreshold
	profile.BenchmarkLimbs = benchLimbs
	profile.CalibrationTime = outcome.Elapsed.Round(time.Millisecond).String()
	return profile
}

func profilePath(path string) string {
	if path == "" {
		return GetDefaultProfilePath()
	}
	return path
}
