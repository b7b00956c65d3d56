package scenario

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/agbru/rootcalc/internal/rootfind"
)

// TestScenarios runs each predefined scenario against its solvers and checks
// the expected outcome.
func TestScenarios(t *testing.T) {
	t.Parallel()
	factory := rootfind.NewDefaultFactory()

	for _, sc := range List() {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			t.Parallel()
			methods := sc.Methods
			if len(methods) == 0 {
				for _, key := range factory.List() {
					methods = append(methods, rootfind.Method(key))
				}
			}
			for _, m := range methods {
				solver, err := factory.Get(string(m))
				if err != nil {
					t.Fatalf("Get(%q): %v", m, err)
				}
				res := solver.Solve(sc.Problem, sc.Config)
				if sc.ExpectsFailure() {
					if res.Converged || res.Outcome != sc.ExpectedOutcome {
						t.Errorf("%s: outcome %q, want %q", m, res.Outcome, sc.ExpectedOutcome)
					}
					continue
				}
				if !res.Converged {
					t.Errorf("%s: did not converge: %s", m, res.Message)
					continue
				}
				if math.Abs(res.Root-sc.ExpectedRoot) > sc.Config.Tolerance {
					t.Errorf("%s: root %v, want %v", m, res.Root, sc.ExpectedRoot)
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	sc, err := Get("e")
	if err != nil {
		t.Fatalf("Get(e): %v", err)
	}
	if sc.Name != "E" || sc.ExpectedRoot != -4 {
		t.Errorf("Get(e) = %+v", sc)
	}

	if _, err := Get("Z"); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("Get(Z) err = %v, want ErrUnknownScenario", err)
	}
}

func TestNamesAreSortedAndUnique(t *testing.T) {
	t.Parallel()
	names := Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate scenario %q", n)
		}
		seen[n] = true
	}
	if len(names) != 9 {
		t.Errorf("expected 9 scenarios, got %d", len(names))
	}
}

func TestListReturnsFreshCopies(t *testing.T) {
	t.Parallel()
	first := List()
	first[0].Config.Tolerance = 42
	if List()[0].Config.Tolerance == 42 {
		t.Error("List must not expose shared state")
	}
}

func TestInterpret(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    float64
		root     float64
		advice   Advice
		risk     Risk
		distance float64
	}{
		{"exact root stands", 17, 4, AdviceStand, RiskNone, 0},
		{"numeric noise still stands", 6, 15.0000001, AdviceStand, RiskNone, 1e-7},
		{"short by a few", 17, 0, AdviceHit, RiskLow, 4},
		{"short by exactly ten", 11, 0, AdviceHit, RiskLow, 10},
		{"short by a lot", 6, 0, AdviceHitAlways, RiskVeryLow, 15},
		{"over the target", 25, 0, AdviceBust, RiskMaximum, 4},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := Interpret(rootfind.NewProblem(tt.cards, 21), tt.root)
			if in.Advice != tt.advice || in.Risk != tt.risk {
				t.Errorf("Interpret = %q/%q, want %q/%q", in.Advice, in.Risk, tt.advice, tt.risk)
			}
			if math.Abs(in.Distance-tt.distance) > 1e-9 {
				t.Errorf("Distance = %v, want %v", in.Distance, tt.distance)
			}
			if in.Total != tt.cards+tt.root {
				t.Errorf("Total = %v, want %v", in.Total, tt.cards+tt.root)
			}
		})
	}
}

func TestReadHand(t *testing.T) {
	t.Parallel()
	if got := ReadHand(rootfind.NewProblem(19, 21)); got.Advice != AdviceHit || got.Distance != 2 {
		t.Errorf("ReadHand(19) = %+v", got)
	}
}
