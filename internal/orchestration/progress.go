package orchestration

import (
	"time"

	"github.com/agbru/rootcalc/internal/format"
)

// ProgressAggregator turns per-solver updates into an overall progress and
// ETA. Both the CLI spinner and the dashboard use it.
type ProgressAggregator struct {
	state      *format.ProgressWithETA
	numSolvers int
}

// NewProgressAggregator returns nil if numSolvers <= 0.
func NewProgressAggregator(numSolvers int) *ProgressAggregator {
	if numSolvers <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:      format.NewProgressWithETA(numSolvers),
		numSolvers: numSolvers,
	}
}

// AggregatedProgress is the result of processing one update.
type AggregatedProgress struct {
	SolverIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update records one update.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.SolverIndex, update.Value)
	return AggregatedProgress{
		SolverIndex:     update.SolverIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumSolvers returns the number of tracked solvers.
func (a *ProgressAggregator) NumSolvers() int {
	return a.numSolvers
}

// IsMultiSolver reports whether more than one solver is tracked.
func (a *ProgressAggregator) IsMultiSolver() bool {
	return a.numSolvers > 1
}

// DrainChannel discards every update until the channel is closed.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
