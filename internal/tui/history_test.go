package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/orchestration"
)

func entry(expr string) HistoryEntry {
	return HistoryEntry{
		Expr:   expr,
		Labels: []string{"product"},
		Radix:  10,
		Runs:   1,
		Result: orchestration.CalculationResult{
			Name:     "Karatsuba",
			Values:   []bigint.Int{bigint.FromInt64(408)},
			Duration: time.Millisecond,
		},
	}
}

func TestHistoryModel_Recall(t *testing.T) {
	t.Parallel()
	h := NewHistoryModel(0)
	if _, ok := h.Prev(); ok {
		t.Error("Prev on empty history should fail")
	}

	h.Add(entry("1 + 1"))
	h.Add(entry("2 * 3"))

	steps := []struct {
		name string
		move func() (string, bool)
		want string
		ok   bool
	}{
		{"newest", h.Prev, "2 * 3", true},
		{"oldest", h.Prev, "1 + 1", true},
		{"stays at oldest", h.Prev, "", false},
		{"forward", h.Next, "2 * 3", true},
		{"past newest clears", h.Next, "", true},
		{"nothing newer", h.Next, "", false},
	}
	for _, s := range steps {
		got, ok := s.move()
		if got != s.want || ok != s.ok {
			t.Errorf("%s: got %q, %v; want %q, %v", s.name, got, ok, s.want, s.ok)
		}
	}
}

func TestHistoryModel_Limit(t *testing.T) {
	t.Parallel()
	h := NewHistoryModel(2)
	h.Add(entry("a"))
	h.Add(entry("b"))
	h.Add(entry("c"))
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	if last, _ := h.Last(); last.Expr != "c" {
		t.Errorf("Last().Expr = %q, want c", last.Expr)
	}
	if got, _ := h.Prev(); got != "c" {
		t.Errorf("Prev() = %q, want c", got)
	}
	if got, _ := h.Prev(); got != "b" {
		t.Errorf("Prev() = %q, want b", got)
	}
}

func TestHistoryModel_View(t *testing.T) {
	t.Parallel()
	h := NewHistoryModel(0)
	h.SetSize(60, 20)
	if !strings.Contains(h.View(), "Type an expression") {
		t.Error("empty history should show a hint")
	}

	h.Add(entry("12 * 34"))
	failed := entry("1 / 0")
	failed.Err = errors.New("division by zero")
	h.Add(failed)

	view := h.View()
	for _, want := range []string{"12 * 34", "product = 408", "Karatsuba", "error: division by zero"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestFitValue(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("9", 100)
	if got := fitValue("123", 10); got != "123" {
		t.Errorf("fitValue short = %q", got)
	}
	got := fitValue(long, 23)
	if len(got) > 23 || !strings.Contains(got, "...") {
		t.Errorf("fitValue long = %q (%d)", got, len(got))
	}
}
