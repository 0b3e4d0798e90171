package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// Theme tests mutate package state and run sequentially.

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"neon", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) selected %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Error("--no-color should disable colors")
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestInitThemeDefault(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	t.Setenv("NO_COLOR", "")
	// An empty but present NO_COLOR still disables colors.
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("present NO_COLOR should disable colors")
	}
}

func TestColorFunctions(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	if ColorRed() != DarkTheme.Error || ColorReset() != "\033[0m" || ColorUnderline() != "\033[4m" {
		t.Error("dark theme codes not returned")
	}
	SetCurrentTheme(NoColorTheme)
	for _, f := range []func() string{ColorReset, ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorMagenta, ColorGrey, ColorBold, ColorUnderline} {
		if f() != "" {
			t.Error("no-color theme should return empty codes")
		}
	}
}

func TestGetCurrentTUITheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(NoColorTheme)
	if _, ok := GetCurrentTUITheme().Text.(lipgloss.NoColor); !ok {
		t.Error("no-color theme should map to NoColor TUI colors")
	}
	SetCurrentTheme(LightTheme)
	if _, ok := GetCurrentTUITheme().Text.(lipgloss.AdaptiveColor); !ok {
		t.Error("colored themes should map to adaptive TUI colors")
	}
}
