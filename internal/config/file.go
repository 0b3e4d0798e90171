package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig is the layout of the optional TOML configuration file:
//
//	algo = "karatsuba"
//	radix = 16
//	timeout = "30s"
//	log_level = "debug"
//
//	[thresholds]
//	karatsuba = 48
//	fft = 4096
//
//	[output]
//	format = "json"
//	file = "result.json"
//	details = true
type FileConfig struct {
	Algo               string `toml:"algo"`
	Radix              int    `toml:"radix"`
	OutputRadix        int    `toml:"output_radix"`
	Timeout            string `toml:"timeout"`
	LogLevel           string `toml:"log_level"`
	CalibrationProfile string `toml:"calibration_profile"`
	MetricsFile        string `toml:"metrics_file"`
	NoColor            bool   `toml:"no_color"`

	Thresholds struct {
		Karatsuba int `toml:"karatsuba"`
		FFT       int `toml:"fft"`
	} `toml:"thresholds"`

	Output struct {
		Format  string `toml:"format"`
		File    string `toml:"file"`
		Verbose bool   `toml:"verbose"`
		Details bool   `toml:"details"`
		Quiet   bool   `toml:"quiet"`
	} `toml:"output"`

	meta    toml.MetaData
	timeout time.Duration
}

// LoadFile decodes the TOML file at path.
func LoadFile(path string) (*FileConfig, error) {
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("timeout") {
		if cfg.timeout, err = time.ParseDuration(cfg.Timeout); err != nil {
			return nil, fmt.Errorf("%s: invalid timeout %q: %w", path, cfg.Timeout, err)
		}
	}
	cfg.meta = meta
	return &cfg, nil
}

// fileOverride applies one file key when the matching flag was not set.
type fileOverride struct {
	key   []string
	flags []string
	apply func(*AppConfig, *FileConfig)
}

var fileOverrides = []fileOverride{
	{[]string{"algo"}, []string{"algo"}, func(c *AppConfig, f *FileConfig) { c.Algo = f.Algo }},
	{[]string{"radix"}, []string{"radix"}, func(c *AppConfig, f *FileConfig) { c.Radix = f.Radix }},
	{[]string{"output_radix"}, []string{"output-radix"}, func(c *AppConfig, f *FileConfig) { c.OutputRadix = f.OutputRadix }},
	{[]string{"timeout"}, []string{"timeout"}, func(c *AppConfig, f *FileConfig) { c.Timeout = f.timeout }},
	{[]string{"log_level"}, []string{"log-level"}, func(c *AppConfig, f *FileConfig) { c.LogLevel = f.LogLevel }},
	{[]string{"calibration_profile"}, []string{"calibration-profile"}, func(c *AppConfig, f *FileConfig) { c.CalibrationProfile = f.CalibrationProfile }},
	{[]string{"metrics_file"}, []string{"metrics-file"}, func(c *AppConfig, f *FileConfig) { c.MetricsFile = f.MetricsFile }},
	{[]string{"no_color"}, []string{"no-color"}, func(c *AppConfig, f *FileConfig) { c.NoColor = f.NoColor }},
	{[]string{"thresholds", "karatsuba"}, []string{"karatsuba-threshold"}, func(c *AppConfig, f *FileConfig) { c.KaratsubaThreshold = f.Thresholds.Karatsuba }},
	{[]string{"thresholds", "fft"}, []string{"fft-threshold"}, func(c *AppConfig, f *FileConfig) { c.FFTThreshold = f.Thresholds.FFT }},
	{[]string{"output", "format"}, []string{"format"}, func(c *AppConfig, f *FileConfig) { c.OutputFormat = f.Output.Format }},
	{[]string{"output", "file"}, []string{"output", "o"}, func(c *AppConfig, f *FileConfig) { c.OutputFile = f.Output.File }},
	{[]string{"output", "verbose"}, []string{"v", "verbose"}, func(c *AppConfig, f *FileConfig) { c.Verbose = f.Output.Verbose }},
	{[]string{"output", "details"}, []string{"d", "details"}, func(c *AppConfig, f *FileConfig) { c.Details = f.Output.Details }},
	{[]string{"output", "quiet"}, []string{"q", "quiet"}, func(c *AppConfig, f *FileConfig) { c.Quiet = f.Output.Quiet }},
}

// apply copies every key defined in the file onto config unless the
// corresponding flag was given on the command line.
func (f *FileConfig) apply(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range fileOverrides {
		if !f.meta.IsDefined(o.key...) || isFlagSetAny(fs, o.flags...) {
			continue
		}
		o.apply(config, f)
	}
}
