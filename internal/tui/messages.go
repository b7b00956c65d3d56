package tui

import (
	"time"

	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	SolverIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the sorted results of every method.
type ComparisonResultsMsg struct {
	Results []orchestration.RunResult
}

// FinalResultMsg is sent once the converged methods agree.
type FinalResultMsg struct {
	Problem rootfind.Problem
	Results []orchestration.RunResult
	Options orchestration.PresentationOptions
}

// ErrorMsg reports a run that ended without any converged method.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic sampling.
type TickMsg time.Time

// MemStatsMsg is a runtime memory snapshot.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg is a system-wide CPU and memory snapshot.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// SolveCompleteMsg is sent when the orchestration returns.
type SolveCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context is done.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
