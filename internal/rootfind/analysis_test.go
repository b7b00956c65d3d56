package rootfind

import (
	"math"
	"testing"
)

func historyOf(errs ...float64) []IterationRecord {
	out := make([]IterationRecord, len(errs))
	for i, e := range errs {
		out[i] = IterationRecord{Index: i, AbsoluteError: e}
	}
	return out
}

func TestAnalyzeConvergence(t *testing.T) {
	t.Parallel()

	t.Run("bisection is linear with factor one half", func(t *testing.T) {
		t.Parallel()
		res := Bisection(NewProblem(25, 21).F, DefaultSolveConfig().WithBracket(-10, 10.3))
		a := AnalyzeConvergence(res)
		if a.Kind != KindLinear {
			t.Fatalf("Kind = %q, want %q", a.Kind, KindLinear)
		}
		if !a.HasOrder || math.Abs(a.Order-1) > 1e-6 {
			t.Errorf("Order = %v, want 1", a.Order)
		}
		if !a.HasFactor || math.Abs(a.Factor-0.5) > 1e-6 {
			t.Errorf("Factor = %v, want 0.5", a.Factor)
		}
	})

	t.Run("newton on a square root is quadratic", func(t *testing.T) {
		t.Parallel()
		f := func(x float64) float64 { return x*x - 2 }
		df := func(x float64) float64 { return 2 * x }
		cfg := DefaultSolveConfig().WithInitialGuess(2)
		cfg.Tolerance = 1e-12
		res := Newton(f, df, cfg)
		if !res.Converged {
			t.Fatalf("expected convergence: %s", res.Message)
		}
		a := AnalyzeConvergence(res)
		if a.Kind != KindQuadratic {
			t.Errorf("Kind = %q (order %v), want %q", a.Kind, a.Order, KindQuadratic)
		}
	})

	tests := []struct {
		name string
		res  SolveResult
		want ConvergenceKind
	}{
		{"not converged", SolveResult{History: historyOf(1, 0.5, 0.25)}, KindNotConvergent},
		{"empty history", SolveResult{Converged: true}, KindNotConvergent},
		{"single step", SolveResult{Converged: true, History: historyOf(4)}, KindOneStep},
		{"two records fast", SolveResult{Converged: true, History: historyOf(1, 0.01)}, KindFast},
		{"two records moderate", SolveResult{Converged: true, History: historyOf(1, 0.3)}, KindModerate},
		{"two records slow", SolveResult{Converged: true, History: historyOf(1, 0.9)}, KindSlow},
		{"exact final step", SolveResult{Converged: true, History: historyOf(1, 0.5, 0)}, KindFast},
		{"quadratic sequence", SolveResult{Converged: true, History: historyOf(1e-1, 1e-2, 1e-4, 1e-8)}, KindQuadratic},
		{"cubic sequence", SolveResult{Converged: true, History: historyOf(1e-1, 1e-3, 1e-9)}, KindSuperlinear},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := AnalyzeConvergence(tt.res).Kind; got != tt.want {
				t.Errorf("Kind = %q, want %q", got, tt.want)
			}
		})
	}
}
