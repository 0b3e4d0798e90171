package calibration

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/multiplier"
)

const (
	// defaultBenchLimbs is the operand size used to rank Karatsuba thresholds.
	defaultBenchLimbs = 1024
	// quickBenchLimbs is the operand size used by auto-calibration.
	quickBenchLimbs = 256
	// defaultTrials is the number of timed products per measurement; the
	// fastest one is kept.
	defaultTrials = 3
	// operandSeed makes every calibration multiply the same operands.
	operandSeed = 0x5eed
)

// calibrationResult holds the result of a single candidate test. For the
// FFT search, Threshold is the operand size, Duration the FFT time and
// Baseline the Karatsuba time at that size.
type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Baseline  time.Duration
	Err       error
}

// won reports whether FFT beat Karatsuba for this result.
func (r calibrationResult) won() bool {
	return r.Err == nil && r.Duration < r.Baseline
}

// calibrationRunner times multiplications under a context.
type calibrationRunner struct {
	ctx    context.Context
	trials int
	rng    *rand.Rand
	logger zerolog.Logger
}

func newCalibrationRunner(ctx context.Context, trials int, logger zerolog.Logger) *calibrationRunner {
	if trials <= 0 {
		trials = defaultTrials
	}
	return &calibrationRunner{
		ctx:    ctx,
		trials: trials,
		rng:    rand.New(rand.NewPCG(operandSeed, operandSeed)),
		logger: logger,
	}
}

// operand returns a random magnitude of exactly n limbs.
func (r *calibrationRunner) operand(n int) []uint32 {
	x := make([]uint32, n)
	for i := range x {
		x[i] = r.rng.Uint32()
	}
	if n > 0 && x[n-1] == 0 {
		x[n-1] = 1
	}
	return x
}

// timeProduct returns the best of r.trials timings of m.Multiply(x, y).
func (r *calibrationRunner) timeProduct(m multiplier.Multiplier, x, y []uint32) (time.Duration, error) {
	var best time.Duration
	for i := range r.trials {
		if err := r.ctx.Err(); err != nil {
			return 0, err
		}
		start := time.Now()
		if _, err := m.Multiply(x, y); err != nil {
			return 0, err
		}
		d := time.Since(start)
		if i == 0 || d < best {
			best = d
		}
	}
	return best, nil
}

// karatsubaResults times Karatsuba with each candidate base-case threshold
// on benchLimbs-limb operands. onDone is called after every candidate.
func (r *calibrationRunner) karatsubaResults(candidates []int, benchLimbs int, onDone func(int, error)) []calibrationResult {
	x, y := r.operand(benchLimbs), r.operand(benchLimbs)
	results := make([]calibrationResult, 0, len(candidates))
	for i, c := range candidates {
		d, err := r.timeProduct(multiplier.Karatsuba{Threshold: c}, x, y)
		r.logger.Debug().Int("threshold", c).Dur("duration", d).Err(err).Msg("karatsuba candidate")
		results = append(results, calibrationResult{Threshold: c, Duration: d, Err: err})
		if onDone != nil {
			onDone(i, err)
		}
		if isCancellation(err) {
			break
		}
	}
	return results
}

// fftResults races FFT against Karatsuba (with the given base case) at each
// candidate operand size. A precision failure counts as a loss for FFT.
func (r *calibrationRunner) fftResults(sizes []int, karatsubaThreshold int, onDone func(int, error)) []calibrationResult {
	k := multiplier.Karatsuba{Threshold: karatsubaThreshold}
	results := make([]calibrationResult, 0, len(sizes))
	for i, n := range sizes {
		x, y := r.operand(n), r.operand(n)
		res := calibrationResult{Threshold: n}
		res.Baseline, res.Err = r.timeProduct(k, x, y)
		if res.Err == nil {
			res.Duration, res.Err = r.timeProduct(multiplier.FFT{}, x, y)
		}
		r.logger.Debug().Int("limbs", n).Dur("fft", res.Duration).Dur("karatsuba", res.Baseline).Err(res.Err).Msg("fft candidate")
		results = append(results, res)
		if onDone != nil {
			onDone(i, res.Err)
		}
		if isCancellation(res.Err) {
			break
		}
	}
	return results
}

// bestKaratsuba returns the fastest successful candidate.
func bestKaratsuba(results []calibrationResult) (int, bool) {
	best, found := calibrationResult{}, false
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if !found || res.Duration < best.Duration {
			best, found = res, true
		}
	}
	return best.Threshold, found
}

// firstFFTWin returns the smallest size at which FFT won and stayed ahead at
// every larger size tested.
func firstFFTWin(results []calibrationResult) (int, bool) {
	threshold, found := 0, false
	for _, res := range results {
		switch {
		case res.won() && !found:
			threshold, found = res.Threshold, true
		case !res.won() && !errors.Is(res.Err, apperrors.ErrPrecision):
			threshold, found = 0, false
		}
	}
	return threshold, found
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
