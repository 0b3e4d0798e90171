package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/multiplier"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// runCalculate evaluates the operation given on the command line.
func (a *Application) runCalculate(ctx context.Context, registry *multiplier.Registry, recorder *metrics.Recorder, out io.Writer, execOpts []orchestration.ExecuteOption) int {
	op, err := orchestration.NewOperation(a.Config)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	multipliers := selectMultipliers(a.Config.Algo, op, registry)
	if len(multipliers) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no multiplier available for '%s'\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	silent := a.Config.Quiet || a.Config.JSONOutput
	if !silent {
		cli.PrintExecutionConfig(a.Config, op, out)
		cli.PrintExecutionMode(multipliers, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if silent {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	results := orchestration.Execute(ctx, multipliers, op, reporter, progressOut, execOpts...)
	after := collector.Snapshot()

	radix := a.Config.ResultRadix()
	if a.Config.JSONOutput {
		return a.writeJSONResults(results, op, radix, recorder, out)
	}

	best, found := cli.BestResult(results)
	presOpts := orchestration.PresentationOptions{
		Radix:   radix,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
		Quiet:   a.Config.Quiet,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, op, presOpts, cli.CLIResultPresenter{}, out)
	if exitCode == apperrors.ExitErrorMismatch {
		recorder.ObserveMismatch()
	}
	if exitCode != apperrors.ExitSuccess || !found {
		return exitCode
	}

	if a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(after, after.Since(before), out)
	}
	return a.saveResult(best, results, op, radix, out)
}

// selectMultipliers resolves --algo. Operations that never multiply give
// the same answer under every strategy, so they run once.
func selectMultipliers(algo string, op orchestration.Operation, registry *multiplier.Registry) []multiplier.Multiplier {
	multipliers := orchestration.GetMultipliersToRun(algo, registry)
	if op.UsesMultiplier() || len(multipliers) <= 1 {
		return multipliers
	}
	if auto, err := registry.Get("auto"); err == nil {
		return []multiplier.Multiplier{auto}
	}
	return multipliers[:1]
}

// writeJSONResults prints every run as a JSON document. Failures and
// mismatches still produce a document when at least one run succeeded.
func (a *Application) writeJSONResults(results []orchestration.CalculationResult, op orchestration.Operation, radix int, recorder *metrics.Recorder, out io.Writer) int {
	best, found := cli.BestResult(results)
	if !found {
		return cli.CLIResultPresenter{}.HandleError(results[0].Err, 0, a.ErrWriter)
	}
	doc := cli.NewResultDocument(best, results, op, radix)
	if err := cli.WriteJSON(out, doc); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing JSON: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if orchestration.HasMismatch(results) {
		recorder.ObserveMismatch()
		fmt.Fprintln(a.ErrWriter, "Error: the multipliers disagree on the result")
		return apperrors.ExitErrorMismatch
	}
	if err := cli.WriteResultToFile(doc, a.outputConfig(radix)); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) saveResult(best orchestration.CalculationResult, results []orchestration.CalculationResult, op orchestration.Operation, radix int, out io.Writer) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	doc := cli.NewResultDocument(best, results, op, radix)
	if err := cli.SaveResult(out, doc, a.outputConfig(radix)); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) outputConfig(radix int) cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Format:     a.Config.OutputFormat,
		Radix:      radix,
		Quiet:      a.Config.Quiet,
	}
}
