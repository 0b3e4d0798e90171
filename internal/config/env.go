// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the BIGCALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intOverride(target func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*target(c) = parsed
		}
	}
}

func boolOverride(target func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := target(c)
		*p = parseBoolEnv(v, *p)
	}
}

func stringOverride(target func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *target(c) = v }
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Operation
	{"OP", []string{"op"}, stringOverride(func(c *AppConfig) *string { return &c.Op })},
	{"X", []string{"x"}, stringOverride(func(c *AppConfig) *string { return &c.Left })},
	{"Y", []string{"y"}, stringOverride(func(c *AppConfig) *string { return &c.Right })},

	// Numeric overrides
	{"RADIX", []string{"radix"}, intOverride(func(c *AppConfig) *int { return &c.Radix })},
	{"OUTPUT_RADIX", []string{"output-radix"}, intOverride(func(c *AppConfig) *int { return &c.OutputRadix })},
	{"SHIFT", []string{"shift"}, intOverride(func(c *AppConfig) *int { return &c.Shift })},
	{"KARATSUBA_THRESHOLD", []string{"karatsuba-threshold"}, intOverride(func(c *AppConfig) *int { return &c.KaratsubaThreshold })},
	{"FFT_THRESHOLD", []string{"fft-threshold"}, intOverride(func(c *AppConfig) *int { return &c.FFTThreshold })},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"ALGO", []string{"algo"}, stringOverride(func(c *AppConfig) *string { return &c.Algo })},
	{"OUTPUT", []string{"output", "o"}, stringOverride(func(c *AppConfig) *string { return &c.OutputFile })},
	{"FORMAT", []string{"format"}, stringOverride(func(c *AppConfig) *string { return &c.OutputFormat })},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, stringOverride(func(c *AppConfig) *string { return &c.CalibrationProfile })},
	{"METRICS_FILE", []string{"metrics-file"}, stringOverride(func(c *AppConfig) *string { return &c.MetricsFile })},
	{"LOG_LEVEL", []string{"log-level"}, stringOverride(func(c *AppConfig) *string { return &c.LogLevel })},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolOverride(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"JSON", []string{"json"}, boolOverride(func(c *AppConfig) *bool { return &c.JSONOutput })},
	{"CALIBRATE", []string{"calibrate"}, boolOverride(func(c *AppConfig) *bool { return &c.Calibrate })},
	{"AUTO_CALIBRATE", []string{"auto-calibrate"}, boolOverride(func(c *AppConfig) *bool { return &c.AutoCalibrate })},
	{"NO_COLOR", []string{"no-color"}, boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
	{"INTERACTIVE", []string{"interactive"}, boolOverride(func(c *AppConfig) *bool { return &c.Interactive })},
	{"TUI", []string{"tui"}, boolOverride(func(c *AppConfig) *bool { return &c.TUI })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > file > Defaults.
//
// Supported environment variables (all prefixed with BIGCALC_):
//   - OP, X, Y, RADIX, OUTPUT_RADIX, SHIFT, KARATSUBA_THRESHOLD, FFT_THRESHOLD,
//     TIMEOUT, ALGO, OUTPUT, FORMAT, CALIBRATION_PROFILE, METRICS_FILE,
//     LOG_LEVEL, VERBOSE, DETAILS, QUIET, JSON, CALIBRATE, AUTO_CALIBRATE,
//     NO_COLOR, INTERACTIVE, TUI
//   - CONFIG names the TOML file and is read before parsing.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
