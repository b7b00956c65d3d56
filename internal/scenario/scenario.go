// Package scenario holds the predefined hands used to exercise the solvers
// and the blackjack reading of a computed root.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agbru/rootcalc/internal/rootfind"
)

// ErrUnknownScenario is returned by Get for names that are not registered.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is a reproducible solver input with its expected outcome.
type Scenario struct {
	Name        string
	Description string
	Problem     rootfind.Problem
	Config      rootfind.SolveConfig
	// Methods restricts the run; empty means every registered solver.
	Methods []rootfind.Method
	// ExpectedRoot is meaningful when ExpectedOutcome is empty.
	ExpectedRoot float64
	// ExpectedOutcome is set for scenarios that must fail.
	ExpectedOutcome rootfind.Outcome
}

// ExpectsFailure reports whether the scenario is expected to end without a root.
func (s Scenario) ExpectsFailure() bool {
	return s.ExpectedOutcome != ""
}

func hand(name, desc string, cards, target, lower, upper, x0 float64) Scenario {
	p := rootfind.NewProblem(cards, target)
	return Scenario{
		Name:         name,
		Description:  desc,
		Problem:      p,
		Config:       rootfind.DefaultSolveConfig().WithBracket(lower, upper).WithInitialGuess(x0),
		ExpectedRoot: p.AnalyticRoot(),
	}
}

func builtin() []Scenario {
	degenerate := hand("F", "Bisection on a degenerate [0, 0] interval", 6, 21, 0, 0, 0)
	degenerate.Methods = []rootfind.Method{rootfind.MethodBisection}
	degenerate.ExpectedOutcome = rootfind.OutcomeInvalidBracket

	return []Scenario{
		hand("A", "Low hand: 6 against 21", 6, 21, 0, 20, 0),
		hand("B", "Mid hand: 17 against 21", 17, 21, 0, 20, 0),
		hand("C", "High hand: 19 against 21", 19, 21, 0, 20, 0),
		hand("D", "Exact target: 21 against 21", 21, 21, -10, 10.5, 0),
		hand("E", "Bust: 25 against 21, negative root", 25, 21, -10, 10, 0),
		degenerate,
		hand("basic", "Basic case: 10 against 21", 10, 21, 0, 20, 11),
		hand("low-hand", "Low hand preset: 6 against 21", 6, 21, 0, 20, 15),
		hand("high-hand", "High hand preset: 19 against 21", 19, 21, 0, 5, 2),
	}
}

// List returns every predefined scenario, ordered by name.
func List() []Scenario {
	all := builtin()
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// Names returns the scenario names in List order.
func Names() []string {
	all := List()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

// Get returns the scenario with the given name, ignoring case.
func Get(name string) (Scenario, error) {
	for _, s := range builtin() {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}
