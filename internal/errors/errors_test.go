package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--radix"),
			expected: "invalid value 42 for flag --radix",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		strategy    string
		cause       error
		expectedMsg string
		checkIs     error
	}{
		{
			name:        "Error returns cause message",
			cause:       errors.New("boom"),
			expectedMsg: "boom",
		},
		{
			name:        "Error is prefixed with strategy",
			strategy:    "FFT",
			cause:       errors.New("boom"),
			expectedMsg: "FFT: boom",
		},
		{
			name:        "errors.Is works with wrapped error",
			cause:       context.Canceled,
			expectedMsg: "context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CalculationError{Strategy: tt.strategy, Cause: tt.cause}

			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
			if err.Unwrap() != tt.cause {
				t.Error("Unwrap should return the original cause")
			}
			if tt.checkIs != nil && !errors.Is(err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := error(TimeoutError{Operation: "mul", Limit: 30 * time.Second})
	if got, want := err.Error(), `operation "mul" timed out after 30s`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("TimeoutError should match context.DeadlineExceeded")
	}
	var timeoutErr TimeoutError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &timeoutErr) || timeoutErr.Operation != "mul" {
		t.Errorf("errors.As failed, got %+v", timeoutErr)
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "radix", Message: "must be between 2 and 36"}
	if got, want := err.Error(), `validation error for "radix": must be between 2 and 36`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "with position",
			err:      NewFormatError("12z4", 10, 2, "invalid digit"),
			contains: []string{`"12z4"`, "radix 10", "invalid digit", "offset 2"},
		},
		{
			name:     "without position",
			err:      NewFormatError("", 10, -1, "empty string"),
			contains: []string{`""`, "empty string"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, want := range tt.contains {
				if !strings.Contains(tt.err.Error(), want) {
					t.Errorf("error %q should contain %q", tt.err, want)
				}
			}
			if !errors.Is(tt.err, ErrFormat) {
				t.Error("FormatError should match ErrFormat")
			}
			var fe *FormatError
			if !errors.As(tt.err, &fe) {
				t.Error("expected *FormatError")
			}
		})
	}
}

func TestDivideByZeroError(t *testing.T) {
	t.Parallel()
	var err error = &DivideByZeroError{Op: "quo"}
	if err.Error() != "quo: division by zero" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrDivideByZero) {
		t.Error("DivideByZeroError should match ErrDivideByZero")
	}
}

func TestPrecisionError(t *testing.T) {
	t.Parallel()
	rejected := &PrecisionError{Strategy: "FFT", Length: 1 << 30}
	if !strings.Contains(rejected.Error(), "exceeds safe bound") {
		t.Errorf("unexpected message %q", rejected.Error())
	}
	observed := &PrecisionError{Strategy: "FFT", Length: 1024, MaxError: 0.4}
	if !strings.Contains(observed.Error(), "rounding error 0.4") {
		t.Errorf("unexpected message %q", observed.Error())
	}
	if !errors.Is(observed, ErrPrecision) {
		t.Error("PrecisionError should match ErrPrecision")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	base := &DivideByZeroError{Op: "rem"}
	wrapped := WrapError(base, "evaluating %s", "a % b")
	if !strings.HasPrefix(wrapped.Error(), "evaluating a % b: ") {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, ErrDivideByZero) {
		t.Error("wrapped error should still match ErrDivideByZero")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("wrapped: %w", context.Canceled), true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		duration time.Duration
		want     int
		contains string
	}{
		{"nil", nil, 0, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, time.Second, ExitErrorTimeout, "Timeout"},
		{"canceled", context.Canceled, 0, ExitErrorCanceled, "Canceled"},
		{"divide by zero", &DivideByZeroError{Op: "quo"}, 0, ExitErrorConfig, "Invalid operation"},
		{"format", NewFormatError("x", 10, 0, "invalid digit"), 0, ExitErrorConfig, "Invalid operation"},
		{"generic", errors.New("boom"), 0, ExitErrorGeneric, "unexpected error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if got := HandleCalculationError(tt.err, tt.duration, &buf, nil); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output %q should contain %q", buf.String(), tt.contains)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"success":  ExitSuccess,
		"generic":  ExitErrorGeneric,
		"timeout":  ExitErrorTimeout,
		"mismatch": ExitErrorMismatch,
		"config":   ExitErrorConfig,
		"canceled": ExitErrorCanceled,
	}
	seen := make(map[int]string)
	for name, code := range codes {
		if other, dup := seen[code]; dup {
			t.Errorf("exit code %d shared by %s and %s", code, name, other)
		}
		seen[code] = name
	}
}
