package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/calibration"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/multiplier"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/tui"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name. A cached calibration profile fills the
// thresholds the user left unset; the remaining ones are estimated from the
// hardware unless auto-calibration will measure them at startup.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	availableAlgos := multiplier.NewRegistry(multiplier.DefaultThresholds(), zerolog.Nop()).List()
	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableAlgos)
	if err != nil {
		return nil, err
	}

	if cached, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = cached
	}
	if !cfg.AutoCalibrate {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}

	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	logger := a.logger()

	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if a.Config.Calibrate {
		return calibration.RunCalibration(ctx, out, calibration.CalibrationOptions{
			ProfilePath: a.Config.CalibrationProfile,
			SaveProfile: true,
			Logger:      logger,
		})
	}

	if a.Config.AutoCalibrate {
		if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out, logger); ok {
			a.Config = updated
		}
		a.Config = config.ApplyAdaptiveThresholds(a.Config)
	}

	registry := multiplier.NewRegistry(a.Config.Thresholds(), logger)
	recorder := metrics.NewRecorder()
	if auto, err := registry.Get("auto"); err == nil {
		if sel, ok := auto.(*multiplier.Selector); ok {
			if err := recorder.RegisterFallbackCounter(sel.Fallbacks); err != nil {
				logger.Warn().Err(err).Msg("cannot export FFT fallback counter")
			}
		}
		prev := bigint.SetDefaultMultiplier(auto)
		defer bigint.SetDefaultMultiplier(prev)
	}
	defer a.writeMetrics(recorder, logger)

	execOpts := []orchestration.ExecuteOption{
		orchestration.WithRecorder(recorder),
		orchestration.WithLogger(logger),
	}

	switch {
	case a.Config.Interactive:
		repl := cli.NewREPL(registry, cli.REPLConfig{
			DefaultAlgo: a.Config.Algo,
			Timeout:     a.Config.Timeout,
			Radix:       a.Config.Radix,
			Verbose:     a.Config.Verbose,
		})
		repl.SetOutput(out)
		repl.Start()
		return apperrors.ExitSuccess
	case a.Config.TUI:
		ctx, cancels := SetupLifecycle(ctx, 0)
		defer cancels.Cleanup()
		return tui.Run(ctx, registry, a.Config, Version, execOpts...)
	default:
		return a.runCalculate(ctx, registry, recorder, out, execOpts)
	}
}

// logger builds the structured logger writing to ErrWriter. Quiet and JSON
// modes only surface warnings.
func (a *Application) logger() zerolog.Logger {
	level := logging.ParseLevel(a.Config.LogLevel)
	if (a.Config.Quiet || a.Config.JSONOutput) && level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}
	return logging.NewLogger(a.ErrWriter, "bigcalc").Zerolog().Level(level)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	algos := multiplier.NewRegistry(a.Config.Thresholds(), zerolog.Nop()).List()
	if err := cli.GenerateCompletion(out, a.Config.Completion, algos); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) writeMetrics(recorder *metrics.Recorder, logger zerolog.Logger) {
	if a.Config.MetricsFile == "" {
		return
	}
	if err := recorder.WriteToTextfile(a.Config.MetricsFile); err != nil {
		logger.Error().Err(err).Str("path", a.Config.MetricsFile).Msg("cannot write metrics file")
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
