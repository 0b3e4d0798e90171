package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/format"
)

// HeaderModel renders the top bar: title, version, multiplier, radix and
// the duration of the last evaluation.
type HeaderModel struct {
	version    string
	multiplier string
	radix      int
	last       time.Duration
	width      int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version, radix: 10}
}

// SetMultiplier updates the displayed multiplier name.
func (h *HeaderModel) SetMultiplier(name string) { h.multiplier = name }

// SetRadix updates the displayed radix.
func (h *HeaderModel) SetRadix(radix int) { h.radix = radix }

// SetLast records the duration of the last evaluation.
func (h *HeaderModel) SetLast(d time.Duration) { h.last = d }

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "bigcalc"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")

	row := titleStyle.Render(titleText) +
		pipe + metricLabelStyle.Render("Multiplier: ") + metricValueStyle.Render(h.multiplier) +
		pipe + metricLabelStyle.Render("Radix: ") + metricValueStyle.Render(fmt.Sprintf("%d", h.radix))
	if h.last > 0 {
		row += pipe + metricLabelStyle.Render("Last: ") + metricValueStyle.Render(format.FormatExecutionDuration(h.last))
	}

	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += spaces(gap)
	}
	return headerStyle.Render(row)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
