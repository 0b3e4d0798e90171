// Package config provides the configuration management for the bigcalc
// application. It defines the configuration structure, parses command-line
// arguments, merges the optional TOML file and BIGCALC_* environment
// variables, and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/rs/zerolog"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/multiplier"
)

const (
	// EnvPrefix is the prefix for all environment variables used by bigcalc.
	EnvPrefix = "BIGCALC_"
)

// Default configuration values.
// These can be overridden via the config file, environment variables or flags.
const (
	// DefaultTimeout is the default calculation timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultAlgo runs every registered multiplier and compares the results.
	DefaultAlgo = "all"
	// DefaultRadix is the radix used for operands and results.
	DefaultRadix = 10
	// DefaultOutputFormat is the format used when writing to a file.
	DefaultOutputFormat = "text"
	// DefaultLogLevel is the zerolog level name used by the application.
	DefaultLogLevel = "info"
)

// Output formats accepted by --format.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// opArity is the number of integer operands each operation consumes. Shift
// operations take one integer plus the shift count.
var opArity = map[string]int{
	"add":    2,
	"sub":    2,
	"mul":    2,
	"quo":    2,
	"rem":    2,
	"divmod": 2,
	"and":    2,
	"or":     2,
	"xor":    2,
	"andnot": 2,
	"cmp":    2,
	"lsh":    1,
	"rsh":    1,
	"neg":    1,
	"abs":    1,
	"not":    1,
	"sqr":    1,
}

// OpArity returns the operand count of op and whether op is known.
func OpArity(op string) (int, bool) {
	n, ok := opArity[op]
	return n, ok
}

// Operations returns the known operation names in sorted order.
func Operations() []string {
	ops := make([]string, 0, len(opArity))
	for op := range opArity {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Op is the operation to evaluate (see Operations).
	Op string
	// Left and Right are the operand texts, in Radix.
	Left, Right string
	// Radix is the radix of the operands.
	Radix int
	// OutputRadix is the radix of the displayed result; 0 means Radix.
	OutputRadix int
	// Shift is the bit count for lsh and rsh.
	Shift int
	// Algo selects the multiplier: "all" or a registry name.
	Algo string
	// KaratsubaThreshold is the limb count from which Karatsuba is used.
	// Zero selects an adaptive estimate; a negative value disables Karatsuba.
	KaratsubaThreshold int
	// FFTThreshold is the limb count from which FFT multiplication is used.
	// Zero selects an adaptive estimate; a negative value disables FFT.
	FFTThreshold int
	// Timeout sets the maximum duration for the calculation.
	Timeout time.Duration
	// Verbose, if true, displays the full result however long it is.
	Verbose bool
	// Details, if true, displays digit, bit and limb counts.
	Details bool
	// Quiet mode prints only the result.
	Quiet bool
	// JSONOutput, if true, prints the results as a JSON document.
	JSONOutput bool
	// OutputFile, if specified, saves the result to this file path.
	OutputFile string
	// OutputFormat is the file format: text, json or msgpack.
	OutputFormat string
	// Calibrate runs the full calibration mode.
	Calibrate bool
	// AutoCalibrate runs a short calibration at startup.
	AutoCalibrate bool
	// CalibrationProfile is the path to a calibration profile file.
	// If empty, uses the default path (~/.bigcalc_calibration.json).
	CalibrationProfile string
	// NoColor disables color output. Also respects NO_COLOR.
	NoColor bool
	// Interactive starts the REPL.
	Interactive bool
	// TUI starts the interactive terminal calculator.
	TUI bool
	// MetricsFile, if set, receives the Prometheus metrics in text format.
	MetricsFile string
	// ConfigFile is the optional TOML configuration file.
	ConfigFile string
	// LogLevel is a zerolog level name.
	LogLevel string
	// Completion, if set, generates a shell completion script.
	Completion string
}

// Thresholds converts the configured crossovers for the multiplier selector.
func (c AppConfig) Thresholds() multiplier.Thresholds {
	return multiplier.Thresholds{
		Karatsuba: c.KaratsubaThreshold,
		FFT:       c.FFTThreshold,
	}
}

// ShiftCount returns Shift as an unsigned bit count.
func (c AppConfig) ShiftCount() (uint, error) {
	k, err := safecast.Conv[uint](c.Shift)
	if err != nil {
		return 0, apperrors.NewConfigError("invalid shift count %d: %v", c.Shift, err)
	}
	return k, nil
}

// ResultRadix returns the radix used to print results.
func (c AppConfig) ResultRadix() int {
	if c.OutputRadix == 0 {
		return c.Radix
	}
	return c.OutputRadix
}

// NeedsOperation reports whether the configured mode evaluates Op from the
// command line.
func (c AppConfig) NeedsOperation() bool {
	return !c.Calibrate && !c.Interactive && !c.TUI && c.Completion == ""
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Parameters:
//   - availableAlgos: the valid multiplier names (e.g., ["fft", "karatsuba"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Radix < 2 || c.Radix > 36 {
		return apperrors.NewConfigError("radix must be between 2 and 36: %d", c.Radix)
	}
	if c.OutputRadix != 0 && (c.OutputRadix < 2 || c.OutputRadix > 36) {
		return apperrors.NewConfigError("output radix must be between 2 and 36: %d", c.OutputRadix)
	}
	if c.Algo != DefaultAlgo && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	switch c.OutputFormat {
	case FormatText, FormatJSON, FormatMsgpack:
	default:
		return apperrors.NewConfigError("unknown output format '%s' (text, json, msgpack)", c.OutputFormat)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level '%s'", c.LogLevel)
	}
	if !c.NeedsOperation() {
		return nil
	}
	arity, ok := OpArity(c.Op)
	if !ok {
		return apperrors.NewConfigError("unknown operation '%s'. Valid operations are: [%s]", c.Op, strings.Join(Operations(), ", "))
	}
	if c.Left == "" {
		return apperrors.NewConfigError("operation '%s' needs an operand", c.Op)
	}
	if arity == 2 && c.Right == "" {
		return apperrors.NewConfigError("operation '%s' needs two operands", c.Op)
	}
	if c.Op == "lsh" || c.Op == "rsh" {
		if _, err := c.ShiftCount(); err != nil {
			return err
		}
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig.
// Positional arguments, when present, are read as "<op> <x> [y]".
//
// Values are merged with the priority: flags > environment > config file >
// defaults. The config file path comes from --config or BIGCALC_CONFIG.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: the command-line arguments (typically os.Args[1:]).
//   - errorWriter: where parsing errors and usage information are printed.
//   - availableAlgos: the valid multiplier names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing, file loading or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	config := AppConfig{}
	fs := newFlagSet(programName, errorWriter, availableAlgos, &config)
	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if config.ConfigFile != "" {
		file, err := LoadFile(config.ConfigFile)
		if err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, err
		}
		file.apply(&config, fs)
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)
	applyPositionalArgs(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	config.Op = strings.ToLower(config.Op)
	config.OutputFormat = strings.ToLower(config.OutputFormat)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}

// newFlagSet declares every command-line flag, bound to the fields of cfg.
func newFlagSet(programName string, errorWriter io.Writer, availableAlgos []string, cfg *AppConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Multiplier to use: 'all' (default) or one of [%s].", strings.Join(availableAlgos, ", "))

	fs.StringVar(&cfg.Op, "op", "", fmt.Sprintf("Operation: one of [%s].", strings.Join(Operations(), ", ")))
	fs.StringVar(&cfg.Left, "x", "", "Left (or only) operand.")
	fs.StringVar(&cfg.Right, "y", "", "Right operand.")
	fs.IntVar(&cfg.Radix, "radix", DefaultRadix, "Radix of the operands (2-36).")
	fs.IntVar(&cfg.OutputRadix, "output-radix", 0, "Radix of the result (default: same as --radix).")
	fs.IntVar(&cfg.Shift, "shift", 0, "Bit count for lsh and rsh.")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, algoHelp)
	fs.IntVar(&cfg.KaratsubaThreshold, "karatsuba-threshold", 0, "Limb count from which Karatsuba is used (0 = adaptive, <0 disables).")
	fs.IntVar(&cfg.FFTThreshold, "fft-threshold", 0, "Limb count from which FFT multiplication is used (0 = adaptive, <0 disables).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the calculation.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Display the full value of the result (can be very long).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&cfg.Details, "d", false, "Display result metadata (digits, bits, limbs).")
	fs.BoolVar(&cfg.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Quiet mode - print only the result.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "Output results in JSON format.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Output file path (shorthand).")
	fs.StringVar(&cfg.OutputFormat, "format", DefaultOutputFormat, "Output file format: text, json or msgpack.")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Run calibration mode to measure the multiplier crossovers.")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "Run a quick calibration at startup.")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Path to calibration profile file (default: ~/.bigcalc_calibration.json).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the interactive terminal calculator.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit.")
	fs.StringVar(&cfg.ConfigFile, "config", getEnvString("CONFIG", ""), "Path to a TOML configuration file.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")

	return fs
}

// FlagInfo describes one command-line flag accepted by ParseConfig.
type FlagInfo struct {
	Name     string
	Usage    string
	DefValue string
	IsBool   bool
}

// Flags lists the flags accepted by ParseConfig in lexical order.
func Flags(availableAlgos []string) []FlagInfo {
	fs := newFlagSet("bigcalc", io.Discard, availableAlgos, &AppConfig{})
	var infos []FlagInfo
	fs.VisitAll(func(f *flag.Flag) {
		bf, ok := f.Value.(interface{ IsBoolFlag() bool })
		infos = append(infos, FlagInfo{
			Name:     f.Name,
			Usage:    f.Usage,
			DefValue: f.DefValue,
			IsBool:   ok && bf.IsBoolFlag(),
		})
	})
	return infos
}

// applyPositionalArgs reads "<op> <x> [y]" from the remaining arguments.
// Positional values win over every other source.
func applyPositionalArgs(config *AppConfig, fs *flag.FlagSet) {
	rest := fs.Args()
	if len(rest) > 0 {
		config.Op = rest[0]
	}
	if len(rest) > 1 {
		config.Left = rest[1]
	}
	if len(rest) > 2 {
		config.Right = rest[2]
	}
}

func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [flags] <op> <x> [y]\n\n", fs.Name())
		fmt.Fprintf(out, "Operations: %s\n\n", strings.Join(Operations(), ", "))
		fmt.Fprintln(out, "Examples:")
		fmt.Fprintf(out, "  %s mul 123456789012345678901234567890 987654321098765432109876543210\n", fs.Name())
		fmt.Fprintf(out, "  %s -radix 16 -shift 4 lsh ff\n", fs.Name())
		fmt.Fprintf(out, "  %s -algo fft -d sqr 12345678901234567890\n\n", fs.Name())
		fmt.Fprintln(out, "Flags:")
		fs.PrintDefaults()
	}
}
