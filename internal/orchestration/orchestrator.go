package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/logging"
	"github.com/agbru/rootcalc/internal/rootfind"
)

const tracerName = "github.com/agbru/rootcalc/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel per solver. Each solver
// sends two updates, so the channel never blocks a solver goroutine.
const ProgressBufferMultiplier = 2

// SolveObserver is notified after every solver run. metrics.Recorder
// implements it.
type SolveObserver interface {
	ObserveSolve(result rootfind.SolveResult, duration time.Duration)
}

// ExecuteOptions carries the optional collaborators of ExecuteSolvers.
type ExecuteOptions struct {
	// Logger receives one debug entry per run. Nil disables logging.
	Logger logging.Logger
	// Observer receives every result. Nil disables it.
	Observer SolveObserver
	// MaxConcurrency limits the number of solvers running at once.
	// Zero or negative means no limit.
	MaxConcurrency int
}

// ExecuteSolvers runs every solver on problem concurrently and returns one
// result per solver, in input order.
//
// Solvers are synchronous and bounded by cfg.MaxIterations, so a running
// solver is never interrupted. A done context only prevents runs that have
// not started yet; those are reported with the context error.
func ExecuteSolvers(ctx context.Context, solvers []rootfind.Solver, problem rootfind.Problem, cfg rootfind.SolveConfig, opts ExecuteOptions, progressReporter ProgressReporter, out io.Writer) []RunResult {
	if progressReporter == nil {
		progressReporter = NullProgressReporter{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}

	g, ctx := errgroup.WithContext(ctx)
	if opts.MaxConcurrency > 0 {
		g.SetLimit(opts.MaxConcurrency)
	}
	results := make([]RunResult, len(solvers))
	progressChan := make(chan ProgressUpdate, len(solvers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(solvers), out)

	tracer := otel.Tracer(tracerName)
	for i, s := range solvers {
		idx, solver := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[idx] = RunResult{
					Name:   solver.Name(),
					Result: rootfind.SolveResult{Method: solver.Method()},
					Err:    apperrors.SolveError{Method: string(solver.Method()), Cause: err},
				}
				progressChan <- ProgressUpdate{SolverIndex: idx, Method: solver.Method(), Value: 1}
				return nil
			}

			_, span := tracer.Start(ctx, "rootfind.solve")
			span.SetAttributes(
				attribute.String("rootfind.method", string(solver.Method())),
				attribute.Float64("rootfind.cards", problem.CardsValue),
				attribute.Float64("rootfind.target", problem.Target),
			)
			progressChan <- ProgressUpdate{SolverIndex: idx, Method: solver.Method(), Value: 0}

			start := time.Now()
			res := solver.Solve(problem, cfg)
			elapsed := time.Since(start)

			span.SetAttributes(
				attribute.Int("rootfind.iterations", res.IterationCount),
				attribute.Bool("rootfind.converged", res.Converged),
				attribute.String("rootfind.outcome", string(res.Outcome)),
			)
			var runErr error
			if res.Err != nil {
				runErr = apperrors.SolveError{Method: string(res.Method), Cause: res.Err}
				span.RecordError(res.Err)
				span.SetStatus(codes.Error, res.Message)
			} else {
				span.SetStatus(codes.Ok, res.Message)
			}
			span.End()

			if opts.Observer != nil {
				opts.Observer.ObserveSolve(res, elapsed)
			}
			logger.Debug("solver finished",
				logging.String("method", string(res.Method)),
				logging.Bool("converged", res.Converged),
				logging.Int("iterations", res.IterationCount),
				logging.String("outcome", string(res.Outcome)),
				logging.Duration("duration", elapsed),
			)

			results[idx] = RunResult{Name: solver.Name(), Result: res, Duration: elapsed, Err: runErr}
			progressChan <- ProgressUpdate{SolverIndex: idx, Method: solver.Method(), Value: 1}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults orders the results, presents the comparison
// table and decides the exit code:
//   - no method converged: the first failure is handed to errHandler, or
//     ExitErrorNoConvergence when every run simply hit the iteration cap;
//   - converged roots differ by more than twice the tolerance: ExitErrorMismatch;
//   - otherwise the consolidated result is presented and ExitSuccess returned.
//
// Results are sorted in place: converged runs first, then by iteration count.
func AnalyzeComparisonResults(results []RunResult, problem rootfind.Problem, tolerance float64, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	SortResults(results)

	var firstError error
	converged := make([]rootfind.SolveResult, 0, len(results))
	for _, r := range results {
		if r.Result.Converged {
			converged = append(converged, r.Result)
		} else if r.Err != nil && firstError == nil {
			firstError = r.Err
		}
	}

	presenter.PresentComparisonTable(results, out)

	if len(converged) == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No method converged.\n")
		if firstError != nil {
			return errHandler.HandleError(firstError, 0, out)
		}
		return apperrors.ExitErrorNoConvergence
	}

	if !rootfind.Agree(converged, 2*tolerance) {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Converged methods disagree on the root.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All converged roots agree.\n")
	presenter.PresentResult(problem, results, opts, out)
	return apperrors.ExitSuccess
}

// SortResults orders results with converged runs first, then by ascending
// iteration count, then by method name.
func SortResults(results []RunResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Result, results[j].Result
		if a.Converged != b.Converged {
			return a.Converged
		}
		if a.IterationCount != b.IterationCount {
			return a.IterationCount < b.IterationCount
		}
		return a.Method < b.Method
	})
}

// SolveResults extracts the engine results, preserving order.
func SolveResults(results []RunResult) []rootfind.SolveResult {
	out := make([]rootfind.SolveResult, len(results))
	for i, r := range results {
		out[i] = r.Result
	}
	return out
}
