package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
)

func runReporter(t *testing.T, updates []orchestration.ProgressUpdate, numSolvers int) {
	t.Helper()
	reporter := &TUIProgressReporter{ref: &programRef{}}
	ch := make(chan orchestration.ProgressUpdate, len(updates))
	for _, u := range updates {
		ch <- u
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	done := make(chan struct{})
	go func() {
		reporter.DisplayProgress(&wg, ch, numSolvers, nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DisplayProgress did not return")
	}
	wg.Wait()
}

func TestTUIProgressReporter_DrainsChannel(t *testing.T) {
	tests := []struct {
		name       string
		updates    []orchestration.ProgressUpdate
		numSolvers int
	}{
		{"single solver", []orchestration.ProgressUpdate{{SolverIndex: 0, Value: 0}, {SolverIndex: 0, Value: 1}}, 1},
		{"three solvers", []orchestration.ProgressUpdate{
			{SolverIndex: 0, Method: rootfind.MethodBisection, Value: 0},
			{SolverIndex: 2, Method: rootfind.MethodFixedPoint, Value: 1},
			{SolverIndex: 1, Method: rootfind.MethodNewton, Value: 1},
		}, 3},
		{"zero solvers", []orchestration.ProgressUpdate{{SolverIndex: 0, Value: 0.5}}, 0},
		{"empty channel", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runReporter(t, tt.updates, tt.numSolvers)
		})
	}
}

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{}
	ref.Send(ProgressMsg{Value: 0.5})
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	ref := &programRef{}
	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref.Send(ProgressMsg{Value: float64(i) / 100})
		}()
	}
	wg.Wait()
}

func TestTUIResultPresenter_Present(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &programRef{}}
	p := rootfind.NewProblem(6, 21)
	cfg := rootfind.DefaultSolveConfig().WithBracket(0, 20)
	results := []orchestration.RunResult{
		{Name: "Newton-Raphson", Result: rootfind.NewtonSolver{}.Solve(p, cfg), Duration: time.Millisecond},
	}
	presenter.PresentComparisonTable(results, nil)
	presenter.PresentResult(p, results, orchestration.PresentationOptions{Verbose: true}, nil)

	if presenter.FormatDuration(42*time.Millisecond) == "" {
		t.Error("expected a formatted duration")
	}
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &programRef{}}
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, apperrors.ExitSuccess},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"no convergence", apperrors.SolveError{Method: "newton", Cause: rootfind.ErrDiverged}, apperrors.ExitErrorNoConvergence},
		{"generic", errors.New("something failed"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := presenter.HandleError(tt.err, time.Second, nil); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
