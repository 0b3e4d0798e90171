package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/multiplier"
	"github.com/agbru/bigcalc/internal/orchestration"
)

func newTestModel(t *testing.T, algo string) Model {
	t.Helper()
	reg := multiplier.NewRegistry(multiplier.DefaultThresholds(), zerolog.Nop())
	m := NewModel(context.Background(), reg, config.AppConfig{Algo: algo, Radix: 10, Timeout: time.Minute}, "v1.0.0")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(Model)
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(k)
	return updated.(Model), cmd
}

func TestNewModel_Defaults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		algo string
		want string
	}{
		{"karatsuba", "karatsuba"},
		{"all", "auto"},
		{"nope", "auto"},
	}
	for _, tt := range tests {
		t.Run(tt.algo, func(t *testing.T) {
			t.Parallel()
			m := newTestModel(t, tt.algo)
			if got := m.multiplierName(); got != tt.want {
				t.Errorf("multiplierName() = %q, want %q", got, tt.want)
			}
			if m.radix != 10 || m.timeout != time.Minute {
				t.Errorf("radix/timeout = %d/%s", m.radix, m.timeout)
			}
		})
	}
}

func TestModel_ViewBeforeResize(t *testing.T) {
	t.Parallel()
	reg := multiplier.NewRegistry(multiplier.DefaultThresholds(), zerolog.Nop())
	m := NewModel(context.Background(), reg, config.AppConfig{}, "dev")
	if m.View() != "Initializing..." {
		t.Errorf("View() = %q", m.View())
	}
	if m.radix != config.DefaultRadix || m.timeout != config.DefaultTimeout {
		t.Errorf("zero config should fall back to defaults, got %d/%s", m.radix, m.timeout)
	}
}

func TestModel_CycleMultiplier(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "auto")
	names := m.names

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.multiplierName() != names[1] {
		t.Errorf("after ctrl+n: %q, want %q", m.multiplierName(), names[1])
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.multiplierName() != names[len(names)-1] {
		t.Errorf("after wrap: %q, want %q", m.multiplierName(), names[len(names)-1])
	}
	if !strings.Contains(m.View(), "Multiplier: ") {
		t.Error("header should show the multiplier")
	}
}

func TestModel_SubmitStartsEvaluation(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "karatsuba")
	m.input.SetValue("12 * 34")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.running || cmd == nil {
		t.Fatal("enter should start an evaluation")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "Evaluating") {
		t.Error("status line should show the running evaluation")
	}

	// A second enter while running is ignored.
	m.input.SetValue("1 + 1")
	gen := m.generation
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.generation != gen {
		t.Error("a running evaluation must not be replaced")
	}

	// Esc cancels and makes the pending result stale.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.running {
		t.Error("esc should cancel the evaluation")
	}
	updated, _ := m.Update(EvaluationMsg{Generation: gen, Expr: "12 * 34"})
	um := updated.(Model)
	if um.history.Len() != 0 {
		t.Error("stale result should be ignored")
	}
}

func TestModel_EvaluationResult(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "karatsuba")
	m.generation = 3
	m.running = true

	msg := evaluateCmd(context.Background(), m.ref, 3, "123456789 * 987654321", 10,
		[]multiplier.Multiplier{multiplier.Karatsuba{}}, nil)()
	updated, _ := m.Update(msg)
	m = updated.(Model)

	if m.running {
		t.Error("evaluation should be finished")
	}
	last, ok := m.history.Last()
	if !ok || last.Err != nil {
		t.Fatalf("last entry = %+v", last)
	}
	if got := last.Result.Values[0].String(); got != "121932631112635269" {
		t.Errorf("product = %s", got)
	}
	view := m.View()
	for _, want := range []string{"121932631112635269", "mul computed by Karatsuba", "Digits:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// The expression can be recalled.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "123456789 * 987654321" {
		t.Errorf("recalled %q", m.input.Value())
	}
}

func TestModel_EvaluationFailures(t *testing.T) {
	t.Parallel()
	op, err := orchestration.ParseOperation("mul", "2", "3", 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name     string
		msg      EvaluationMsg
		wantErr  string
		exitCode int
	}{
		{"parse error", EvaluationMsg{Expr: "x", Err: apperrors.NewConfigError("bad")}, "bad", apperrors.ExitSuccess},
		{"all failed", EvaluationMsg{Expr: "2 * 3", Op: op, Results: []orchestration.CalculationResult{
			{Name: "FFT", Err: context.DeadlineExceeded},
		}}, "deadline", apperrors.ExitSuccess},
		{"mismatch", EvaluationMsg{Expr: "2 * 3", Op: op, Results: []orchestration.CalculationResult{
			{Name: "A", Values: []bigint.Int{bigint.FromInt64(6)}},
			{Name: "B", Values: []bigint.Int{bigint.FromInt64(7)}},
		}}, "different results", apperrors.ExitErrorMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTestModel(t, "auto")
			updated, _ := m.Update(tt.msg)
			m = updated.(Model)
			last, _ := m.history.Last()
			if last.Err == nil || !strings.Contains(last.Err.Error(), tt.wantErr) {
				t.Errorf("Err = %v, want %q", last.Err, tt.wantErr)
			}
			if !m.failed {
				t.Error("status should report the failure")
			}
			if m.exitCode != tt.exitCode {
				t.Errorf("exitCode = %d, want %d", m.exitCode, tt.exitCode)
			}
		})
	}
}

func TestModel_SessionCommands(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "auto")

	m.input.SetValue("radix 16")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.running {
		t.Error("radix command should not evaluate")
	}
	if m.radix != 16 {
		t.Errorf("radix = %d, want 16", m.radix)
	}

	m.input.SetValue("radix 99")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.radix != 16 || !m.failed {
		t.Errorf("invalid radix accepted: %d", m.radix)
	}

	m.input.SetValue("algo fft")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.multiplierName() != "fft" {
		t.Errorf("multiplier = %q, want fft", m.multiplierName())
	}
}

func TestModel_QuitAndCancel(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "auto")
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}

	updated, cmd := m.Update(ContextCancelledMsg{Err: context.Canceled})
	if updated.(Model).exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exitCode = %d", updated.(Model).exitCode)
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("context cancellation should quit")
	}
}

func TestModel_HelpToggle(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "auto")
	before := m.bodyHeight()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.help.ShowAll {
		t.Fatal("f1 should expand the help")
	}
	if m.bodyHeight() >= before {
		t.Errorf("body height %d should shrink below %d", m.bodyHeight(), before)
	}
}
