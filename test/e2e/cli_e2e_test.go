package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the bigcalc binary and runs it end to end.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	tmpDir := t.TempDir()
	binName := "bigcalc"
	if runtime.GOOS == "windows" {
		binName = "bigcalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/bigcalc")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build bigcalc: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Quiet Product",
			args:     []string{"-q", "mul", "12", "34"},
			wantOut:  "408",
			wantCode: 0,
		},
		{
			name:     "All Multipliers Comparison",
			args:     []string{"-v", "mul", "123456789", "987654321"},
			wantOut:  "consistent",
			wantCode: 0,
		},
		{
			name:     "Hex Shift",
			args:     []string{"-q", "-radix", "16", "-shift", "4", "lsh", "ff"},
			wantOut:  "ff0",
			wantCode: 0,
		},
		{
			name:     "Euclidean Divmod",
			args:     []string{"-q", "divmod", "-7", "2"},
			wantOut:  "-4\n1",
			wantCode: 0,
		},
		{
			name:     "JSON Output",
			args:     []string{"--json", "add", "2", "3"},
			wantOut:  `"operation"`,
			wantCode: 0,
		},
		{
			name:     "Division By Zero",
			args:     []string{"quo", "1", "0"},
			wantOut:  "division by zero",
			wantCode: 4,
		},
		{
			name:     "Unknown Operation",
			args:     []string{"pow", "2", "3"},
			wantOut:  "unknown operation",
			wantCode: 4,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "bigcalc",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1", "HOME="+tmpDir)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			if err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("Command did not run: %v", err)
				}
				code = exitErr.ExitCode()
			}
			if code != tt.wantCode {
				t.Errorf("Exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
