package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/multiplier"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Timeout: 30 * time.Second, KaratsubaThreshold: 32, FFTThreshold: 2048}
	op := mustOperation(t, "mul", "18446744073709551616", "3")
	var buf bytes.Buffer
	PrintExecutionConfig(cfg, op, &buf)
	for _, want := range []string{"Evaluating mul (3 limbs)", "timeout of 30s", "Karatsuba=32 limbs", "FFT=2048 limbs"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output should contain %q:\n%s", want, buf.String())
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		multipliers []multiplier.Multiplier
		want        string
	}{
		{"single", []multiplier.Multiplier{multiplier.FFT{}}, "Single evaluation with the FFT multiplier"},
		{"comparison", []multiplier.Multiplier{multiplier.FFT{}, multiplier.Simple{}}, "Parallel comparison"},
		{"none", nil, "No multiplier selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			PrintExecutionMode(tt.multipliers, &buf)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q should contain %q", buf.String(), tt.want)
			}
		})
	}
}
