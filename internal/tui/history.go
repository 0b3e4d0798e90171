package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// defaultHistoryLimit bounds the number of kept entries.
const defaultHistoryLimit = 200

// HistoryEntry is one evaluated expression.
type HistoryEntry struct {
	Expr   string
	Labels []string
	Result orchestration.CalculationResult
	Radix  int
	// Runs is the number of multipliers that evaluated Expr.
	Runs int
	Err  error
}

// HistoryModel keeps past evaluations and lets the user recall their
// expressions.
type HistoryModel struct {
	entries []HistoryEntry
	limit   int
	// cursor indexes entries during recall; len(entries) means "not recalling".
	cursor int
	width  int
	height int
}

// NewHistoryModel creates an empty history holding at most limit entries.
func NewHistoryModel(limit int) HistoryModel {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return HistoryModel{limit: limit}
}

// Add appends e, dropping the oldest entry beyond the limit, and ends any
// recall in progress.
func (h *HistoryModel) Add(e HistoryEntry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.cursor = len(h.entries)
}

// Len returns the number of entries.
func (h *HistoryModel) Len() int { return len(h.entries) }

// Last returns the newest entry.
func (h *HistoryModel) Last() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Prev moves the recall cursor to an older expression.
func (h *HistoryModel) Prev() (string, bool) {
	if h.cursor == 0 || len(h.entries) == 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor].Expr, true
}

// Next moves the recall cursor to a newer expression. Past the newest one
// it returns "" so the input is cleared.
func (h *HistoryModel) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return "", true
	}
	return h.entries[h.cursor].Expr, true
}

// SetSize updates dimensions.
func (h *HistoryModel) SetSize(w, hgt int) {
	h.width = w
	h.height = hgt
}

// View renders the newest entries that fit, oldest at the top.
func (h HistoryModel) View() string {
	inner := max(h.width-4, 10)
	var lines []string
	for _, e := range h.entries {
		lines = append(lines, h.renderEntry(e, inner)...)
	}
	if len(lines) == 0 {
		lines = []string{dimStyle.Render("Type an expression such as 12345 * 6789 or neg 5, then press enter.")}
	}
	if rows := h.height - 2; rows > 0 && len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	style := panelStyle.Width(max(h.width-2, 0))
	if h.height > 2 {
		style = style.Height(h.height - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (h HistoryModel) renderEntry(e HistoryEntry, width int) []string {
	lines := []string{promptStyle.Render("› ") + exprStyle.Render(e.Expr)}
	if e.Err != nil {
		return append(lines, "  "+errorStyle.Render(fmt.Sprintf("error: %v", e.Err)))
	}

	labelWidth := 0
	for _, l := range e.Labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}
	for i, v := range e.Result.Values {
		label := "result"
		if i < len(e.Labels) {
			label = e.Labels[i]
		}
		prefix := "  " + label + spaces(labelWidth-runewidth.StringWidth(label)) + " = "
		text := fitValue(v.Text(e.Radix), width-runewidth.StringWidth(prefix))
		lines = append(lines, labelStyle.Render(prefix)+resultStyle.Render(text))
	}
	by := e.Result.Name
	if e.Runs > 1 {
		by = fmt.Sprintf("%s, fastest of %d", by, e.Runs)
	}
	lines = append(lines, "  "+dimStyle.Render(fmt.Sprintf("%s (%s)", format.FormatExecutionDuration(e.Result.Duration), by)))
	return lines
}

// fitValue truncates s around an ellipsis so that it fits in width columns.
func fitValue(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return format.TruncateDigits(s, max((width-3)/2, 1))
}
