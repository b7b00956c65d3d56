package rootfind

import (
	"math"
	"testing"
)

func TestShouldStop(t *testing.T) {
	t.Parallel()
	cfg := SolveConfig{Tolerance: 1e-6, MaxIterations: 10, DivergenceBound: 1e10}

	tests := []struct {
		name string
		step Step
		want Decision
	}{
		{"divergence wins over everything", Step{X: 2e10, Size: 1e-9, HasSize: true, FunctionValue: 0, Iteration: 10}, Diverged},
		{"negative divergence", Step{X: -2e10, Size: 1, HasSize: true, FunctionValue: 1, Iteration: 1}, Diverged},
		{"NaN iterate diverges", Step{X: math.NaN(), Iteration: 1}, Diverged},
		{"small step converges", Step{X: 1, Size: 1e-7, HasSize: true, FunctionValue: 5, Iteration: 2}, ConvergedByStep},
		{"step ignored without size", Step{X: 1, Size: 0, HasSize: false, FunctionValue: 5, Iteration: 2}, Continue},
		{"small residual converges", Step{X: 1, Size: 1, HasSize: true, FunctionValue: -1e-7, Iteration: 2}, ConvergedByFunctionValue},
		{"step checked before residual", Step{X: 1, Size: 1e-8, HasSize: true, FunctionValue: 1e-8, Iteration: 2}, ConvergedByStep},
		{"iteration cap", Step{X: 1, Size: 1, HasSize: true, FunctionValue: 1, Iteration: 10}, MaxIterationsReached},
		{"convergence beats iteration cap", Step{X: 1, Size: 1e-9, HasSize: true, FunctionValue: 1, Iteration: 10}, ConvergedByStep},
		{"continue", Step{X: 1, Size: 1, HasSize: true, FunctionValue: 1, Iteration: 3}, Continue},
		{"exactly at bound is not divergent", Step{X: 1e10, Size: 1, HasSize: true, FunctionValue: 1, Iteration: 1}, Continue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ShouldStop(tt.step, cfg); got != tt.want {
				t.Errorf("ShouldStop() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIterateStep(t *testing.T) {
	t.Parallel()
	s := IterateStep(3, 5, 0.5, 2)
	if s.Size != 2 || !s.HasSize || s.X != 3 || s.FunctionValue != 0.5 || s.Iteration != 2 {
		t.Errorf("IterateStep() = %+v", s)
	}
}

func TestDecisionString(t *testing.T) {
	t.Parallel()
	if Diverged.String() != "diverged" {
		t.Errorf("Diverged.String() = %q", Diverged.String())
	}
	if Decision(42).String() != "unknown" {
		t.Errorf("Decision(42).String() = %q", Decision(42).String())
	}
	if !ConvergedByStep.Converged() || !ConvergedByFunctionValue.Converged() || MaxIterationsReached.Converged() {
		t.Error("Converged() classification is wrong")
	}
}
