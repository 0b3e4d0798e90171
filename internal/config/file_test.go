package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bigcalc.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleFile = `
algo = "karatsuba"
radix = 16
timeout = "45s"
log_level = "debug"

[thresholds]
karatsuba = 64
fft = -1

[output]
format = "json"
details = true
`

func TestLoadFile(t *testing.T) {
	t.Parallel()
	f, err := LoadFile(writeConfigFile(t, sampleFile))
	if err != nil {
		t.Fatal(err)
	}
	if f.Algo != "karatsuba" || f.Radix != 16 || f.Thresholds.Karatsuba != 64 || f.Output.Format != "json" {
		t.Errorf("decoded %+v", f)
	}
	if f.timeout != 45*time.Second {
		t.Errorf("timeout = %s", f.timeout)
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name, content, want string
	}{
		{"syntax", "algo = ", "failed to parse TOML"},
		{"unknown key", "colour = true", "unknown key"},
		{"bad timeout", `timeout = "later"`, "invalid timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFile(writeConfigFile(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestConfigFilePriority(t *testing.T) {
	path := writeConfigFile(t, sampleFile)
	t.Setenv("BIGCALC_RADIX", "8")

	cfg, err := ParseConfig("bigcalc", []string{"-config", path, "-algo", "simple", "neg", "17"}, &bytes.Buffer{}, testAlgos)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Algo != "simple" {
		t.Errorf("flag should beat file, got %q", cfg.Algo)
	}
	if cfg.Radix != 8 {
		t.Errorf("env should beat file, got %d", cfg.Radix)
	}
	if cfg.Timeout != 45*time.Second || cfg.LogLevel != "debug" || cfg.OutputFormat != "json" || !cfg.Details {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.KaratsubaThreshold != 64 || cfg.FFTThreshold != -1 {
		t.Errorf("thresholds = %d, %d", cfg.KaratsubaThreshold, cfg.FFTThreshold)
	}
}

func TestConfigFileFromEnv(t *testing.T) {
	path := writeConfigFile(t, `algo = "fft"`)
	t.Setenv("BIGCALC_CONFIG", path)

	cfg, err := ParseConfig("bigcalc", []string{"sqr", "9"}, &bytes.Buffer{}, testAlgos)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ConfigFile != path || cfg.Algo != "fft" {
		t.Errorf("config from BIGCALC_CONFIG not loaded: %+v", cfg)
	}
}

func TestConfigFileLoadFailure(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	_, err := ParseConfig("bigcalc", []string{"-config", filepath.Join(t.TempDir(), "nope.toml"), "neg", "1"}, &errBuf, testAlgos)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(errBuf.String(), "Configuration error") {
		t.Errorf("missing diagnostic: %s", errBuf.String())
	}
}
