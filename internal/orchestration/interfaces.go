package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/rootcalc/internal/rootfind"
)

// RunResult is the outcome of one solver within a comparison run. It is the
// shared type between orchestration and the presentation layers.
type RunResult struct {
	// Name is the display name of the method (e.g., "Newton-Raphson").
	Name string
	// Result is the engine output. It is the zero value when the run never
	// started because the context was done.
	Result rootfind.SolveResult
	// Duration is the wall time spent in the solver.
	Duration time.Duration
	// Err is nil for converged runs and for runs that hit the iteration cap.
	// Otherwise it wraps the engine sentinel or the context error in an
	// apperrors.SolveError.
	Err error
}

// ProgressUpdate reports that a solver started (Value 0) or finished (Value 1).
type ProgressUpdate struct {
	SolverIndex int
	Method      rootfind.Method
	Value       float64
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	// Verbose prints the iteration history of each method.
	Verbose bool
	// Details prints the convergence analysis and accuracy report.
	Details bool
	// Quiet prints only the roots.
	Quiet bool
}

// ProgressReporter displays progress while solvers run. DisplayProgress is
// started in its own goroutine and must call wg.Done once progressChan is
// closed and drained.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numSolvers int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numSolvers int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numSolvers int, out io.Writer) {
	f(wg, progressChan, numSolvers, out)
}

// NullProgressReporter drains the progress channel without output.
// Used in quiet mode, by the HTTP server and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders comparison results.
type ResultPresenter interface {
	// PresentComparisonTable displays one summary row per method.
	PresentComparisonTable(results []RunResult, out io.Writer)

	// PresentResult displays the consolidated answer once the methods agree.
	PresentResult(problem rootfind.Problem, results []RunResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler prints an error and returns the matching exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
