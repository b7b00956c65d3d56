package orchestration

import (
	"github.com/agbru/rootcalc/internal/rootfind"
)

// MethodAll selects every registered solver.
const MethodAll = "all"

// GetSolversToRun resolves the method selection against the factory. "all"
// returns every solver in the factory's sorted key order; an unknown key
// returns nil.
func GetSolversToRun(method string, factory rootfind.SolverFactory) []rootfind.Solver {
	if method == MethodAll {
		keys := factory.List()
		solvers := make([]rootfind.Solver, 0, len(keys))
		for _, k := range keys {
			if s, err := factory.Get(k); err == nil {
				solvers = append(solvers, s)
			}
		}
		return solvers
	}
	if s, err := factory.Get(method); err == nil {
		return []rootfind.Solver{s}
	}
	return nil
}
