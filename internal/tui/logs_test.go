package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/rootcalc/internal/config"
	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/rootfind"
)

var methodNames = []string{"Bisection", "Newton-Raphson", "Fixed Point"}

func TestLogsModel_ExecutionConfig(t *testing.T) {
	l := NewLogsModel(methodNames)
	l.SetSize(80, 20)
	cfg := config.Default()
	cfg.CardsValue = 6
	l.AddExecutionConfig(cfg)

	view := l.View()
	for _, want := range []string{"Log", "f(x) = 6 + x - 21 = 0", "Tolerance:", "Interval:", "Bisection, Newton-Raphson, Fixed Point"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestLogsModel_Entries(t *testing.T) {
	l := NewLogsModel(methodNames)
	l.SetSize(100, 30)

	l.AddProgressEntry(ProgressMsg{SolverIndex: 1, Value: 0})
	l.AddProgressEntry(ProgressMsg{SolverIndex: 1, Value: 1, AverageProgress: 0.5})
	l.AddProgressEntry(ProgressMsg{SolverIndex: 7, Value: 1})

	results := comparisonResults(t, 6, 21)
	results[2].Err = apperrors.SolveError{Method: "fixedpoint", Cause: rootfind.ErrDiverged}
	results[2].Result.Converged = false
	l.AddResults(results)
	l.AddFinalResult(FinalResultMsg{Problem: rootfind.NewProblem(6, 21), Results: results})
	l.AddError(ErrorMsg{Err: context.DeadlineExceeded, Duration: time.Second})

	view := l.View()
	for _, want := range []string{
		"Newton-Raphson started",
		"Newton-Raphson finished",
		"50% overall",
		"solver #8 finished",
		"OK",
		"root=15.0000000000",
		"ERR",
		"diverged",
		"Root 15.0000000000",
		"Fewest iterations: Newton-Raphson (1)",
		"Advice: Perfect: stand (risk: none)",
		"Error after",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestLogsModel_FinalResultWithoutConvergence(t *testing.T) {
	l := NewLogsModel(methodNames)
	results := comparisonResults(t, 6, 21)
	for i := range results {
		results[i].Result.Converged = false
	}
	l.AddFinalResult(FinalResultMsg{Problem: rootfind.NewProblem(6, 21), Results: results})
	if len(l.entries) != 0 {
		t.Errorf("expected no entries, got %d", len(l.entries))
	}
}

func TestLogsModel_ResetKeepsPreamble(t *testing.T) {
	l := NewLogsModel(methodNames)
	l.SetSize(80, 20)
	l.AddExecutionConfig(config.Default())
	l.AddError(ErrorMsg{Err: context.Canceled})

	l.Reset()

	if len(l.entries) != 0 {
		t.Error("expected entries to be cleared")
	}
	if !strings.Contains(l.View(), "Tolerance:") {
		t.Error("expected the configuration to survive a reset")
	}
}

func TestLogsModel_Scroll(t *testing.T) {
	l := NewLogsModel(methodNames)
	l.SetSize(80, 8) // five visible lines
	for i := range 20 {
		l.AddProgressEntry(ProgressMsg{SolverIndex: i % 3, Value: 1})
	}
	page := l.visibleLines(8)
	last := len(l.lines()) - page

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}
	pgUp := tea.KeyMsg{Type: tea.KeyPgUp}

	l.Update(up)
	if l.offset != last-1 || l.follow {
		t.Errorf("after up: offset %d follow %v, want %d false", l.offset, l.follow, last-1)
	}
	l.Update(pgUp)
	l.Update(pgUp)
	l.Update(pgUp)
	l.Update(pgUp)
	if l.offset != 0 {
		t.Errorf("offset should stop at 0, got %d", l.offset)
	}
	for range 30 {
		l.Update(down)
	}
	if l.offset != last || !l.follow {
		t.Errorf("offset should stop at the end and follow, got %d %v", l.offset, l.follow)
	}
}
