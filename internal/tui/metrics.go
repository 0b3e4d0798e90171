package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// durationSamples is the number of evaluations kept in the sparkline.
const durationSamples = 32

// MetricsModel displays runtime memory statistics, the size of the last
// result and a sparkline of recent evaluation times.
type MetricsModel struct {
	mem       metrics.MemorySnapshot
	sys       sysmon.Stats
	hasSys    bool
	durations *RingBuffer
	digits    int
	bits      int
	limbs     int
	hasResult bool
	width     int
	height    int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{durations: NewRingBuffer(durationSamples)}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats stores a fresh memory snapshot.
func (m *MetricsModel) UpdateMemStats(snap metrics.MemorySnapshot) {
	m.mem = snap
}

// UpdateSystem stores a fresh host load sample.
func (m *MetricsModel) UpdateSystem(s sysmon.Stats) {
	m.sys = s
	m.hasSys = true
}

// RecordResult records the size of v, printed in radix, and the time it took.
func (m *MetricsModel) RecordResult(v bigint.Int, radix int, d time.Duration) {
	m.digits = len(strings.TrimPrefix(v.Text(radix), "-"))
	m.bits = v.BitLen()
	m.limbs = v.Len()
	m.hasResult = true
	m.durations.Push(float64(d))
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	pipe := metricLabelStyle.Render(" | ")
	fmt.Fprintf(&rows, "  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"),
		metricValueStyle.Render(format.FormatBytes(m.mem.HeapAlloc)+" / "+format.FormatBytes(m.mem.HeapSys)),
		pipe,
		metricLabelStyle.Render("GC:"),
		metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6)))

	if m.hasSys {
		fmt.Fprintf(&rows, "\n  %s %s%s%s %s",
			metricLabelStyle.Render("CPU:"),
			metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.sys.CPUPercent)),
			pipe,
			metricLabelStyle.Render("RAM:"),
			metricValueStyle.Render(fmt.Sprintf("%5.1f%% of %s", m.sys.MemPercent, format.FormatBytes(m.sys.MemTotal))))
	}
	if m.hasResult {
		rows.WriteString("\n")
		rows.WriteString(formatMetricCol("Digits:", format.FormatCount(m.digits)))
		rows.WriteString(formatMetricCol("Bits:", format.FormatCount(m.bits)))
		rows.WriteString(formatMetricCol("Limbs:", format.FormatCount(m.limbs)))
	}
	if m.durations.Len() > 0 {
		rows.WriteString("\n  ")
		rows.WriteString(metricLabelStyle.Render("Times: "))
		rows.WriteString(sparklineStyle.Render(RenderSparkline(m.durations.Slice())))
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string) string {
	cell := fmt.Sprintf(" %s %s", metricLabelStyle.Render(fmt.Sprintf("%-7s", label)), metricValueStyle.Render(value))
	const colWidth = 20
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
