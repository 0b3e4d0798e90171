package orchestration

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/bigfft"
	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/multiplier"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. Each run sends two updates, so runs never block on a slow UI.
const ProgressBufferMultiplier = 5

// tracerName is the instrumentation scope of the spans opened by Execute.
const tracerName = "github.com/agbru/bigcalc/internal/orchestration"

type executeOptions struct {
	recorder *metrics.Recorder
	logger   zerolog.Logger
}

// ExecuteOption configures Execute.
type ExecuteOption func(*executeOptions)

// WithRecorder records every run in r.
func WithRecorder(r *metrics.Recorder) ExecuteOption {
	return func(o *executeOptions) { o.recorder = r }
}

// WithLogger logs a debug line per run.
func WithLogger(l zerolog.Logger) ExecuteOption {
	return func(o *executeOptions) { o.logger = l }
}

// Execute evaluates op once per multiplier, each in its own goroutine, and
// returns the results in the order of multipliers.
//
// A run that does not finish before ctx is done reports ctx.Err(); the
// arithmetic itself cannot be interrupted, so its goroutine completes in the
// background.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - multipliers: The strategies to run.
//   - op: The operation to evaluate.
//   - progressReporter: displays updates (NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []CalculationResult: one result per multiplier.
func Execute(ctx context.Context, multipliers []multiplier.Multiplier, op Operation, progressReporter ProgressReporter, out io.Writer, opts ...ExecuteOption) []CalculationResult {
	o := executeOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	if op.UsesMultiplier() {
		bigfft.EnsurePoolsWarmed(op.MaxLimbs())
	}

	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(multipliers))
	progressChan := make(chan ProgressUpdate, len(multipliers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(multipliers), out)

	tracer := otel.Tracer(tracerName)
	for i, m := range multipliers {
		idx, mul := i, m
		g.Go(func() error {
			spanCtx, span := tracer.Start(ctx, "bigcalc."+op.Op, trace.WithAttributes(
				attribute.String("bigcalc.multiplier", mul.Name()),
				attribute.Int("bigcalc.limbs", op.MaxLimbs()),
			))
			defer span.End()

			progressChan <- ProgressUpdate{Index: idx, Name: mul.Name()}
			start := time.Now()
			values, err := runWithContext(spanCtx, func() ([]bigint.Int, error) { return op.Apply(mul) })
			elapsed := time.Since(start)
			if err != nil {
				err = apperrors.CalculationError{Strategy: mul.Name(), Cause: err}
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			results[idx] = CalculationResult{Name: mul.Name(), Values: values, Duration: elapsed, Err: err}
			progressChan <- ProgressUpdate{Index: idx, Name: mul.Name(), Value: 1, Err: err}

			bitLen := 0
			if len(values) > 0 {
				bitLen = values[0].BitLen()
			}
			o.recorder.ObserveOperation(op.Op, mul.Name(), elapsed, bitLen, err)
			o.logger.Debug().
				Str("op", op.Op).
				Str("algo", mul.Name()).
				Dur("duration", elapsed).
				Err(err).
				Msg("evaluation completed")
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// runWithContext runs fn and returns early with ctx.Err() when ctx is done
// first.
func runWithContext(ctx context.Context, fn func() ([]bigint.Int, error)) ([]bigint.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	type outcome struct {
		values []bigint.Int
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		values, err := fn()
		done <- outcome{values, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.values, r.err
	}
}

// AnalyzeComparisonResults sorts results by execution time, validates
// consistency across successful runs and presents the summary.
//
// Parameters:
//   - results: The results to analyze (sorted in place).
//   - op: The evaluated operation.
//   - opts: Presentation options.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, op Operation, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValidResult *CalculationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	if len(results) > 1 && !opts.Quiet {
		presenter.PresentComparisonTable(results, out)
	}

	if successCount == 0 {
		if !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No multiplier could complete the operation.\n")
		}
		return presenter.HandleError(firstError, 0, out)
	}

	if HasMismatch(results) {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the multipliers.\n")
		return apperrors.ExitErrorMismatch
	}

	if len(results) > 1 && !opts.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(*firstValidResult, op, opts, out)
	return apperrors.ExitSuccess
}

// HasMismatch reports whether two successful results disagree.
func HasMismatch(results []CalculationResult) bool {
	var ref []bigint.Int
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if ref == nil {
			ref = res.Values
			continue
		}
		if !slices.EqualFunc(ref, res.Values, bigint.Int.Equal) {
			return true
		}
	}
	return false
}
