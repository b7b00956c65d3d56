package cli

import (
	"testing"
	"time"

	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
)

// solveAll runs the three built-in methods synchronously.
func solveAll(t *testing.T, p rootfind.Problem, cfg rootfind.SolveConfig) []orchestration.RunResult {
	t.Helper()
	solvers := []rootfind.Solver{rootfind.BisectionSolver{}, rootfind.NewtonSolver{}, rootfind.FixedPointSolver{}}
	results := make([]orchestration.RunResult, len(solvers))
	for i, s := range solvers {
		results[i] = orchestration.RunResult{Name: s.Name(), Result: s.Solve(p, cfg), Duration: time.Millisecond}
	}
	return results
}
