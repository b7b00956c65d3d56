package rootfind

import (
	"errors"
	"math"
	"testing"
)

func TestFixedPoint_ConstantTransformConvergesInOneStep(t *testing.T) {
	t.Parallel()
	for _, x0 := range []float64{-1000, -4, 0, 2.5, 21, 9999} {
		p := NewProblem(17, 21)
		res := FixedPointSolver{}.Solve(p, DefaultSolveConfig().WithInitialGuess(x0))
		if !res.Converged || res.IterationCount != 1 {
			t.Errorf("x0=%v: converged=%v after %d iterations", x0, res.Converged, res.IterationCount)
			continue
		}
		if res.Root != 4 {
			t.Errorf("x0=%v: Root = %v, want 4", x0, res.Root)
		}
		if res.History[0].FunctionValue != p.F(res.Root) {
			t.Errorf("x0=%v: FunctionValue should be recomputed from f", x0)
		}
	}
}

func TestFixedPoint_NonConstantTransform(t *testing.T) {
	t.Parallel()
	f := func(x float64) float64 { return x - math.Cos(x) }
	res := FixedPoint(f, math.Cos, DefaultSolveConfig().WithInitialGuess(1))
	if !res.Converged {
		t.Fatalf("expected convergence: %s", res.Message)
	}
	if math.Abs(res.Root-0.7390851332151607) > 1e-5 {
		t.Errorf("Root = %v, want the Dottie number", res.Root)
	}
	if res.IterationCount < 10 {
		t.Errorf("IterationCount = %d, cosine iteration converges linearly", res.IterationCount)
	}
}

func TestFixedPoint_Diverged(t *testing.T) {
	t.Parallel()
	g := func(x float64) float64 { return 2*x + 1 }
	f := func(x float64) float64 { return x - g(x) }
	res := FixedPoint(f, g, DefaultSolveConfig().WithInitialGuess(1))

	if res.Outcome != OutcomeDiverged || !errors.Is(res.Err, ErrDiverged) {
		t.Fatalf("Outcome = %s, Err = %v", res.Outcome, res.Err)
	}
	if res.HasRoot || res.Converged {
		t.Error("diverged run must not report a root")
	}
	if len(res.History) < 30 {
		t.Errorf("partial history too short: %d", len(res.History))
	}
}

func TestFixedPoint_MaxIterations(t *testing.T) {
	t.Parallel()
	f := func(x float64) float64 { return x - math.Cos(x) }
	cfg := DefaultSolveConfig().WithInitialGuess(1)
	cfg.MaxIterations = 3
	res := FixedPoint(f, math.Cos, cfg)
	if res.Converged || res.Outcome != OutcomeMaxIterations || !res.HasRoot {
		t.Errorf("Outcome = %s, Converged = %v, HasRoot = %v", res.Outcome, res.Converged, res.HasRoot)
	}
	if res.IterationCount != 3 {
		t.Errorf("IterationCount = %d, want 3", res.IterationCount)
	}
}
