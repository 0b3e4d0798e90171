package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("precision exceeded")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("strategy", "fft"), "strategy", "fft"},
		{"Int", Int("limbs", 42), "limbs", 42},
		{"Uint64", Uint64("bits", 12345678901234567890), "bits", uint64(12345678901234567890)},
		{"Float64", Float64("max_error", 0.125), "max_error", 0.125},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(sentinel), "error", sentinel},
		{"Err nil", Err(nil), "error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

func TestNewZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))
	adapter.Info("product ready")
	if !strings.Contains(buf.String(), "product ready") {
		t.Errorf("NewZerologAdapter logger not working, output: %s", buf.String())
	}
}

func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "selector")
	logger.Info("hello")
	output := buf.String()
	if !strings.Contains(output, "selector") {
		t.Errorf("NewLogger should include component field, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("NewLogger should include message, got: %s", output)
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "info with fields",
			log:      func(l Logger) { l.Info("multiply", String("strategy", "karatsuba"), Int("limbs", 64)) },
			contains: []string{"multiply", "karatsuba", "64", "info"},
		},
		{
			name:     "warn",
			log:      func(l Logger) { l.Warn("fft fallback", String("to", "karatsuba")) },
			contains: []string{"fft fallback", "warn", "karatsuba"},
		},
		{
			name:     "error with cause",
			log:      func(l Logger) { l.Error("divide failed", errors.New("division by zero"), String("op", "quo")) },
			contains: []string{"divide failed", "division by zero", "quo", "error"},
		},
		{
			name:     "error with nil cause",
			log:      func(l Logger) { l.Error("warning", nil) },
			contains: []string{"warning", "error"},
		},
		{
			name:     "printf",
			log:      func(l Logger) { l.Printf("formatted %s %d", "message", 42) },
			contains: []string{"formatted message 42"},
		},
		{
			name:     "println",
			log:      func(l Logger) { l.Println("hello", "world") },
			contains: []string{"hello world"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewLogger(&buf, "test"))
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))
	logger.Debug("split", Int("half", 16))
	if !strings.Contains(buf.String(), "split") || !strings.Contains(buf.String(), "debug") {
		t.Errorf("Debug output missing message or level, got: %s", buf.String())
	}

	buf.Reset()
	quiet := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))
	quiet.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug entry should be filtered at info level, got: %s", buf.String())
	}
}

func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("test", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{"info", func(l Logger) { l.Info("user action", String("user", "bob")) }, []string{"[INFO]", "user action", "user=bob"}},
		{"warn", func(l Logger) { l.Warn("fallback") }, []string{"[WARN]", "fallback"}},
		{"error", func(l Logger) { l.Error("failed", errors.New("boom"), String("op", "rem")) }, []string{"[ERROR]", "failed", "boom", "op=rem"}},
		{"debug", func(l Logger) { l.Debug("trace", Int("line", 42)) }, []string{"[DEBUG]", "trace", "line=42"}},
		{"printf", func(l Logger) { l.Printf("value is %d", 123) }, []string{"value is 123"}},
		{"println", func(l Logger) { l.Println("a", "b", "c") }, []string{"a b c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestZerologAccessor(t *testing.T) {
	var buf bytes.Buffer
	zl := Zerolog(NewLogger(&buf, "calibration"))
	zl.Info().Msg("through accessor")
	if !strings.Contains(buf.String(), "through accessor") {
		t.Errorf("accessor should share the writer, got: %s", buf.String())
	}

	buf.Reset()
	nop := Zerolog(NewStdLoggerAdapter(log.New(&buf, "", 0)))
	nop.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("non-zerolog logger should map to a disabled logger, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
}
