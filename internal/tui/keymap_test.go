package tui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Evaluate", km.Evaluate},
		{"Compare", km.Compare},
		{"NextMultiplier", km.NextMultiplier},
		{"PrevMultiplier", km.PrevMultiplier},
		{"HistoryPrev", km.HistoryPrev},
		{"HistoryNext", km.HistoryNext},
		{"Clear", km.Clear},
		{"Help", km.Help},
		{"Quit", km.Quit},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			if len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
			if b.binding.Help().Desc == "" {
				t.Errorf("expected %s binding to have a help text", b.name)
			}
		})
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	t.Parallel()
	keys := DefaultKeyMap().Quit.Keys()
	if !slices.Contains(keys, "ctrl+c") {
		t.Error("expected Quit binding to include 'ctrl+c'")
	}
	// Printable keys must reach the expression input.
	for _, k := range keys {
		if len(k) == 1 {
			t.Errorf("Quit binding uses printable key %q", k)
		}
	}
}

func TestKeyMap_Help(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
	total := 0
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	if total != 9 {
		t.Errorf("FullHelp lists %d bindings, want 9", total)
	}
}
