package tui

import (
	"time"

	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// ProgressMsg reports how many runs of an evaluation have finished.
type ProgressMsg struct {
	Generation uint64
	Average    float64
	Finished   int
	Failed     int
	Total      int
}

// EvaluationMsg carries the outcome of one evaluation. Err is set when the
// expression could not be parsed.
type EvaluationMsg struct {
	Generation uint64
	Expr       string
	Radix      int
	Op         orchestration.Operation
	Results    []orchestration.CalculationResult
	Err        error
}

// TickMsg drives the periodic memory sampling.
type TickMsg time.Time

// MemStatsMsg carries a memory snapshot of the process and, when HasSystem
// is set, a host load sample.
type MemStatsMsg struct {
	Snapshot  metrics.MemorySnapshot
	System    sysmon.Stats
	HasSystem bool
}

// ContextCancelledMsg is sent when the session context is done.
type ContextCancelledMsg struct {
	Err error
}
