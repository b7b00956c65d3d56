package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/rootfind"
)

// MockResultPresenter records which presentation calls were made.
type MockResultPresenter struct {
	mu           sync.Mutex
	tableCalls   int
	resultCalls  int
	lastResults  []RunResult
	lastOptions  PresentationOptions
	handledError error
}

func (m *MockResultPresenter) PresentComparisonTable(results []RunResult, _ io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tableCalls++
	m.lastResults = results
}

func (m *MockResultPresenter) PresentResult(_ rootfind.Problem, _ []RunResult, opts PresentationOptions, _ io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultCalls++
	m.lastOptions = opts
}

func (m *MockResultPresenter) FormatDuration(d time.Duration) string { return d.String() }

func (m *MockResultPresenter) HandleError(err error, _ time.Duration, _ io.Writer) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handledError = err
	return apperrors.ExitCodeFor(err)
}

// MockSolver returns a canned result.
type MockSolver struct {
	MethodValue rootfind.Method
	SolveFunc   func(p rootfind.Problem, cfg rootfind.SolveConfig) rootfind.SolveResult
}

func (m *MockSolver) Name() string            { return m.MethodValue.DisplayName() }
func (m *MockSolver) Method() rootfind.Method { return m.MethodValue }
func (m *MockSolver) Solve(p rootfind.Problem, cfg rootfind.SolveConfig) rootfind.SolveResult {
	if m.SolveFunc != nil {
		return m.SolveFunc(p, cfg)
	}
	return rootfind.SolveResult{Method: m.MethodValue}
}

func convergedAt(method rootfind.Method, root float64, iterations int) *MockSolver {
	return &MockSolver{
		MethodValue: method,
		SolveFunc: func(rootfind.Problem, rootfind.SolveConfig) rootfind.SolveResult {
			return rootfind.SolveResult{
				Method:         method,
				Root:           root,
				HasRoot:        true,
				Converged:      true,
				IterationCount: iterations,
				Outcome:        rootfind.OutcomeConvergedByStep,
			}
		},
	}
}

type countingObserver struct {
	mu    sync.Mutex
	count int
}

func (o *countingObserver) ObserveSolve(rootfind.SolveResult, time.Duration) {
	o.mu.Lock()
	o.count++
	o.mu.Unlock()
}

func handProblem(t *testing.T) rootfind.Problem {
	t.Helper()
	return rootfind.NewProblem(10, 21)
}

func TestExecuteSolvers(t *testing.T) {
	t.Parallel()
	p := handProblem(t)
	cfg := rootfind.DefaultSolveConfig().WithBracket(0, 20).WithInitialGuess(0)

	tests := []struct {
		name       string
		solvers    []rootfind.Solver
		wantErrors int
	}{
		{
			name:    "real solvers",
			solvers: GetSolversToRun(MethodAll, rootfind.NewDefaultFactory()),
		},
		{
			name: "single failure",
			solvers: []rootfind.Solver{&MockSolver{
				MethodValue: rootfind.MethodNewton,
				SolveFunc: func(rootfind.Problem, rootfind.SolveConfig) rootfind.SolveResult {
					return rootfind.SolveResult{Method: rootfind.MethodNewton, Err: rootfind.ErrDerivativeNearZero}
				},
			}},
			wantErrors: 1,
		},
		{
			name:    "empty",
			solvers: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			obs := &countingObserver{}
			results := ExecuteSolvers(context.Background(), tt.solvers, p, cfg, ExecuteOptions{Observer: obs}, NullProgressReporter{}, io.Discard)
			if len(results) != len(tt.solvers) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.solvers))
			}
			errCount := 0
			for i, r := range results {
				if r.Name != tt.solvers[i].Name() {
					t.Errorf("result %d: name %q, want %q", i, r.Name, tt.solvers[i].Name())
				}
				if r.Err != nil {
					errCount++
					var se apperrors.SolveError
					if !errors.As(r.Err, &se) {
						t.Errorf("result %d: error %T is not a SolveError", i, r.Err)
					}
				}
			}
			if errCount != tt.wantErrors {
				t.Errorf("got %d errors, want %d", errCount, tt.wantErrors)
			}
			if obs.count != len(tt.solvers) {
				t.Errorf("observer saw %d runs, want %d", obs.count, len(tt.solvers))
			}
		})
	}
}

func TestExecuteSolvers_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	solvers := GetSolversToRun(MethodAll, rootfind.NewDefaultFactory())
	results := ExecuteSolvers(ctx, solvers, handProblem(t), rootfind.DefaultSolveConfig(), ExecuteOptions{}, nil, io.Discard)
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: err = %v, want context.Canceled", r.Name, r.Err)
		}
		if r.Result.Converged {
			t.Errorf("%s: canceled run reported convergence", r.Name)
		}
	}
}

// TestExecuteSolvers_ProgressReporter checks that the reporter sees every
// update and that ExecuteSolvers waits for it to finish.
func TestExecuteSolvers_ProgressReporter(t *testing.T) {
	t.Parallel()
	var updates []ProgressUpdate
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan ProgressUpdate, n int, _ io.Writer) {
		defer wg.Done()
		for u := range ch {
			updates = append(updates, u)
		}
	})

	solvers := GetSolversToRun(MethodAll, rootfind.NewDefaultFactory())
	cfg := rootfind.DefaultSolveConfig().WithBracket(0, 20)
	done := make(chan struct{})
	go func() {
		ExecuteSolvers(context.Background(), solvers, handProblem(t), cfg, ExecuteOptions{MaxConcurrency: 1}, reporter, io.Discard)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ExecuteSolvers did not return; possible deadlock")
	}

	if want := len(solvers) * ProgressBufferMultiplier; len(updates) != want {
		t.Fatalf("got %d updates, want %d", len(updates), want)
	}
	finished := 0
	for _, u := range updates {
		if u.Value == 1 {
			finished++
		}
	}
	if finished != len(solvers) {
		t.Errorf("got %d completion updates, want %d", finished, len(solvers))
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	p := handProblem(t)
	tol := 1e-6

	t.Run("agreement", func(t *testing.T) {
		t.Parallel()
		results := []RunResult{
			{Name: "Bisection", Result: convergedAt(rootfind.MethodBisection, 11, 25).Solve(p, rootfind.SolveConfig{})},
			{Name: "Newton-Raphson", Result: convergedAt(rootfind.MethodNewton, 11+tol/2, 1).Solve(p, rootfind.SolveConfig{})},
		}
		presenter := &MockResultPresenter{}
		var buf bytes.Buffer
		opts := PresentationOptions{Details: true}
		code := AnalyzeComparisonResults(results, p, tol, opts, presenter, presenter, &buf)
		if code != apperrors.ExitSuccess {
			t.Fatalf("exit code %d, want %d", code, apperrors.ExitSuccess)
		}
		if presenter.resultCalls != 1 || presenter.tableCalls != 1 {
			t.Errorf("presenter calls: table=%d result=%d", presenter.tableCalls, presenter.resultCalls)
		}
		if !presenter.lastOptions.Details {
			t.Error("options were not forwarded")
		}
		if results[0].Name != "Newton-Raphson" {
			t.Errorf("fewest iterations should sort first, got %s", results[0].Name)
		}
		if !strings.Contains(buf.String(), "Success") {
			t.Errorf("missing success status in %q", buf.String())
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		t.Parallel()
		results := []RunResult{
			{Result: convergedAt(rootfind.MethodBisection, 11, 25).Solve(p, rootfind.SolveConfig{})},
			{Result: convergedAt(rootfind.MethodNewton, 12, 1).Solve(p, rootfind.SolveConfig{})},
		}
		presenter := &MockResultPresenter{}
		code := AnalyzeComparisonResults(results, p, tol, PresentationOptions{}, presenter, presenter, io.Discard)
		if code != apperrors.ExitErrorMismatch {
			t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorMismatch)
		}
		if presenter.resultCalls != 0 {
			t.Error("result must not be presented on mismatch")
		}
	})

	t.Run("no convergence with error", func(t *testing.T) {
		t.Parallel()
		failure := apperrors.SolveError{Method: "bisection", Cause: rootfind.ErrInvalidBracket}
		results := []RunResult{
			{Result: rootfind.SolveResult{Method: rootfind.MethodBisection, Err: rootfind.ErrInvalidBracket}, Err: failure},
		}
		presenter := &MockResultPresenter{}
		code := AnalyzeComparisonResults(results, p, tol, PresentationOptions{}, presenter, presenter, io.Discard)
		if code != apperrors.ExitErrorNoConvergence {
			t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorNoConvergence)
		}
		if !errors.Is(presenter.handledError, rootfind.ErrInvalidBracket) {
			t.Errorf("handled error = %v", presenter.handledError)
		}
	})

	t.Run("iteration cap only", func(t *testing.T) {
		t.Parallel()
		results := []RunResult{
			{Result: rootfind.SolveResult{Method: rootfind.MethodFixedPoint, Outcome: rootfind.OutcomeMaxIterations}},
		}
		presenter := &MockResultPresenter{}
		code := AnalyzeComparisonResults(results, p, tol, PresentationOptions{}, presenter, presenter, io.Discard)
		if code != apperrors.ExitErrorNoConvergence {
			t.Errorf("exit code %d, want %d", code, apperrors.ExitErrorNoConvergence)
		}
		if presenter.handledError != nil {
			t.Error("no error should be handed to the handler")
		}
	})
}

func TestSortResults(t *testing.T) {
	t.Parallel()
	results := []RunResult{
		{Result: rootfind.SolveResult{Method: rootfind.MethodFixedPoint, IterationCount: 100}},
		{Result: rootfind.SolveResult{Method: rootfind.MethodBisection, Converged: true, IterationCount: 25}},
		{Result: rootfind.SolveResult{Method: rootfind.MethodNewton, Converged: true, IterationCount: 1}},
	}
	SortResults(results)
	want := []rootfind.Method{rootfind.MethodNewton, rootfind.MethodBisection, rootfind.MethodFixedPoint}
	for i, m := range want {
		if results[i].Result.Method != m {
			t.Errorf("position %d: got %s, want %s", i, results[i].Result.Method, m)
		}
	}
}

func TestGetSolversToRun(t *testing.T) {
	t.Parallel()
	factory := rootfind.NewDefaultFactory()

	tests := []struct {
		method string
		want   int
	}{
		{MethodAll, 3},
		{"newton", 1},
		{"bisection", 1},
		{"fixedpoint", 1},
		{"secant", 0},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()
			got := GetSolversToRun(tt.method, factory)
			if len(got) != tt.want {
				t.Errorf("GetSolversToRun(%q) returned %d solvers, want %d", tt.method, len(got), tt.want)
			}
		})
	}

	all := GetSolversToRun(MethodAll, factory)
	for i := 1; i < len(all); i++ {
		if all[i-1].Method() > all[i].Method() {
			t.Errorf("solvers not in sorted order: %s before %s", all[i-1].Method(), all[i].Method())
		}
	}
}
