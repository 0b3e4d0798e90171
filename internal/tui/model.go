// Package tui implements the interactive terminal calculator: an
// expression prompt, a scrolling history of results, live memory metrics
// and a sparkline of evaluation times, built on bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/multiplier"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// errMismatch is recorded when compared multipliers disagree.
var errMismatch = errors.New("multipliers returned different results")

// Layout constants for the calculator.
const (
	headerHeight             = 1
	statusHeight             = 1
	inputHeight              = 1
	minBodyHeight            = 4
	HistoryPanelWidthPercent = 65
)

// ExecutionState holds the evaluation-related fields of a TUI session.
type ExecutionState struct {
	cancel     context.CancelFunc
	generation uint64
	running    bool
	progress   ProgressMsg
	status     string
	failed     bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width      int
	height     int
	helpHeight int
}

// bodyHeight returns the available height for the history and metrics panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-statusHeight-inputHeight-l.helpHeight, minBodyHeight)
}

// historyWidth returns the width allocated to the history panel.
func (l LayoutManager) historyWidth() int {
	return l.width * HistoryPanelWidthPercent / 100
}

// metricsWidth returns the width allocated to the metrics panel.
func (l LayoutManager) metricsWidth() int {
	return l.width - l.historyWidth()
}

// Model is the root bubbletea model of the calculator.
type Model struct {
	header  HeaderModel
	history HistoryModel
	metrics MetricsModel
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keymap  KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	registry  *multiplier.Registry
	names     []string
	current   int
	radix     int
	timeout   time.Duration
	execOpts  []orchestration.ExecuteOption
	ref       *programRef
}

// NewModel creates a new calculator model. cfg supplies the initial
// multiplier, radix and per-evaluation timeout.
func NewModel(parentCtx context.Context, registry *multiplier.Registry, cfg config.AppConfig, version string, opts ...orchestration.ExecuteOption) Model {
	names := registry.List()
	current := slices.Index(names, cfg.Algo)
	if current < 0 {
		current = max(slices.Index(names, "auto"), 0)
	}
	radix := cfg.Radix
	if radix < 2 || radix > 36 {
		radix = config.DefaultRadix
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	input := textinput.New()
	input.Prompt = "big> "
	input.PromptStyle = promptStyle
	input.Placeholder = "12345 * 6789"
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusRunningStyle

	m := Model{
		header:         NewHeaderModel(version),
		history:        NewHistoryModel(defaultHistoryLimit),
		metrics:        NewMetricsModel(),
		input:          input,
		spinner:        sp,
		help:           help.New(),
		keymap:         DefaultKeyMap(),
		ExecutionState: ExecutionState{exitCode: apperrors.ExitSuccess},
		LayoutManager:  LayoutManager{helpHeight: 1},
		parentCtx:      parentCtx,
		registry:       registry,
		names:          names,
		current:        current,
		radix:          radix,
		timeout:        timeout,
		execOpts:       opts,
		ref:            &programRef{},
	}
	m.header.SetMultiplier(m.multiplierName())
	m.header.SetRadix(radix)
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		sampleMemStatsCmd(),
		tickCmd(),
		watchContextCmd(m.parentCtx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.Generation == m.generation {
			m.progress = msg
		}
		return m, nil

	case EvaluationMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a canceled evaluation
		}
		m.finishEvaluation(msg)
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleMemStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg.Snapshot)
		if msg.HasSystem {
			m.metrics.UpdateSystem(msg.System)
		}
		return m, nil

	case ContextCancelledMsg:
		m.stopEvaluation()
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.stopEvaluation()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Clear):
		if m.running {
			m.stopEvaluation()
			m.generation++
			m.status, m.failed = "Evaluation canceled", true
			return m, nil
		}
		m.input.Reset()
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.helpHeight = lipgloss.Height(m.help.View(m.keymap))
		m.layoutPanels()
		return m, nil

	case key.Matches(msg, m.keymap.NextMultiplier):
		m.selectMultiplier(m.current + 1)
		return m, nil

	case key.Matches(msg, m.keymap.PrevMultiplier):
		m.selectMultiplier(m.current - 1)
		return m, nil

	case key.Matches(msg, m.keymap.HistoryPrev):
		if expr, ok := m.history.Prev(); ok {
			m.input.SetValue(expr)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.HistoryNext):
		if expr, ok := m.history.Next(); ok {
			m.input.SetValue(expr)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Evaluate):
		return m.submit(false)

	case key.Matches(msg, m.keymap.Compare):
		return m.submit(true)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles the current input line: the session commands "radix <r>"
// and "algo <name>" are applied directly, anything else is evaluated.
func (m Model) submit(compare bool) (tea.Model, tea.Cmd) {
	expr := strings.TrimSpace(m.input.Value())
	if expr == "" || m.running {
		return m, nil
	}
	m.input.Reset()

	if fields := strings.Fields(expr); len(fields) == 2 {
		switch strings.ToLower(fields[0]) {
		case "radix":
			m.setRadix(fields[1])
			return m, nil
		case "algo":
			if i := slices.Index(m.names, strings.ToLower(fields[1])); i >= 0 {
				m.selectMultiplier(i)
			} else {
				m.status, m.failed = fmt.Sprintf("Unknown multiplier: %s", fields[1]), true
			}
			return m, nil
		}
	}

	var multipliers []multiplier.Multiplier
	if compare {
		multipliers = orchestration.GetMultipliersToRun(config.DefaultAlgo, m.registry)
	} else if mul, err := m.registry.Get(m.multiplierName()); err == nil {
		multipliers = []multiplier.Multiplier{mul}
	}
	if len(multipliers) == 0 {
		m.status, m.failed = "No multiplier available", true
		return m, nil
	}

	m.generation++
	ctx, cancel := context.WithTimeout(m.parentCtx, m.timeout)
	m.cancel = cancel
	m.running = true
	m.progress = ProgressMsg{Total: len(multipliers)}
	m.status, m.failed = "", false
	return m, tea.Batch(
		evaluateCmd(ctx, m.ref, m.generation, expr, m.radix, multipliers, m.execOpts),
		m.spinner.Tick,
	)
}

// finishEvaluation records msg in the history and updates the status line.
func (m *Model) finishEvaluation(msg EvaluationMsg) {
	m.stopEvaluation()

	entry := HistoryEntry{Expr: msg.Expr, Radix: msg.Radix, Runs: len(msg.Results), Err: msg.Err}
	if msg.Err == nil {
		entry.Labels = msg.Op.Labels()
		best, ok := cli.BestResult(msg.Results)
		switch {
		case !ok:
			entry.Err = firstError(msg.Results)
		case orchestration.HasMismatch(msg.Results):
			entry.Err = errMismatch
			m.exitCode = apperrors.ExitErrorMismatch
		default:
			entry.Result = best
		}
	}
	m.history.Add(entry)

	if entry.Err != nil {
		m.status, m.failed = "Failed: "+entry.Err.Error(), true
		return
	}
	m.header.SetLast(entry.Result.Duration)
	if len(entry.Result.Values) > 0 {
		m.metrics.RecordResult(entry.Result.Values[0], entry.Radix, entry.Result.Duration)
	}
	m.status, m.failed = fmt.Sprintf("%s computed by %s", msg.Op.Op, entry.Result.Name), false
}

func firstError(results []orchestration.CalculationResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return errors.New("no result")
}

func (m *Model) stopEvaluation() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.running = false
}

func (m *Model) selectMultiplier(i int) {
	if len(m.names) == 0 {
		return
	}
	m.current = (i%len(m.names) + len(m.names)) % len(m.names)
	m.header.SetMultiplier(m.multiplierName())
	m.status, m.failed = "Multiplier: "+m.multiplierName(), false
}

func (m *Model) setRadix(arg string) {
	radix, err := strconv.Atoi(arg)
	if err != nil || radix < 2 || radix > 36 {
		m.status, m.failed = fmt.Sprintf("Invalid radix: %s", arg), true
		return
	}
	m.radix = radix
	m.header.SetRadix(radix)
	m.status, m.failed = fmt.Sprintf("Radix: %d", radix), false
}

func (m Model) multiplierName() string {
	if len(m.names) == 0 {
		return ""
	}
	return m.names[m.current]
}

// View renders the calculator.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.history.View(), m.metrics.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.statusView(),
		m.input.View(),
		m.help.View(m.keymap),
	)
}

func (m Model) statusView() string {
	switch {
	case m.running:
		p := m.progress
		text := fmt.Sprintf(" Evaluating... %d/%d run(s) finished", p.Finished, p.Total)
		if p.Failed > 0 {
			text += fmt.Sprintf(", %d failed", p.Failed)
		}
		return m.spinner.View() + statusRunningStyle.Render(text)
	case m.status == "":
		return ""
	case m.failed:
		return statusErrorStyle.Render(m.status)
	}
	return statusDoneStyle.Render(m.status)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.history.SetSize(m.historyWidth(), m.bodyHeight())
	m.metrics.SetSize(m.metricsWidth(), m.bodyHeight())
	m.input.Width = max(m.width-lipgloss.Width(m.input.Prompt)-1, 1)
	m.help.Width = m.width
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, registry *multiplier.Registry, cfg config.AppConfig, version string, opts ...orchestration.ExecuteOption) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, registry, cfg, version, opts...)

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.stopEvaluation()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and the host load.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		msg := MemStatsMsg{Snapshot: metrics.NewMemoryCollector().Snapshot()}
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		if sys, err := sysmon.Sample(ctx); err == nil {
			msg.System, msg.HasSystem = sys, true
		}
		return msg
	}
}

// watchContextCmd waits for cancellation of the session context.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
