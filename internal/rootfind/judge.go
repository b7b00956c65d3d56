package rootfind

import "math"

// Decision is the verdict of the convergence judge for one iteration.
type Decision int

const (
	// Continue means no stopping criterion was met.
	Continue Decision = iota
	// ConvergedByStep means the step (or bracket half-width) fell below tolerance.
	ConvergedByStep
	// ConvergedByFunctionValue means |f(x)| fell below tolerance.
	ConvergedByFunctionValue
	// MaxIterationsReached means the iteration cap was hit without convergence.
	MaxIterationsReached
	// Diverged means the iterate left the divergence bound.
	Diverged
)

var decisionNames = [...]string{
	Continue:                 "continue",
	ConvergedByStep:          "converged by step",
	ConvergedByFunctionValue: "converged by function value",
	MaxIterationsReached:     "max iterations reached",
	Diverged:                 "diverged",
}

// String returns a lower-case label for d.
func (d Decision) String() string {
	if d < 0 || int(d) >= len(decisionNames) {
		return "unknown"
	}
	return decisionNames[d]
}

// Converged reports whether d is one of the converged decisions.
func (d Decision) Converged() bool {
	return d == ConvergedByStep || d == ConvergedByFunctionValue
}

// Step is the judge's view of one iteration.
type Step struct {
	// X is the current iterate.
	X float64
	// Size is |x_n+1 - x_n| for iterative methods and the bracket
	// half-width for bisection. Ignored when HasSize is false.
	Size    float64
	HasSize bool
	// FunctionValue is f(X).
	FunctionValue float64
	// Iteration is the number of completed iterations, starting at 1.
	Iteration int
}

// IterateStep builds the Step of an iterative method from two successive
// iterates.
func IterateStep(x, previous, fx float64, iteration int) Step {
	return Step{X: x, Size: math.Abs(x - previous), HasSize: true, FunctionValue: fx, Iteration: iteration}
}

// BracketStep builds the Step of a bisection iteration, using the bracket
// half-width as the step measure.
func BracketStep(midpoint, halfWidth, fc float64, iteration int) Step {
	return Step{X: midpoint, Size: halfWidth, HasSize: true, FunctionValue: fc, Iteration: iteration}
}

// ShouldStop applies the shared stopping policy. The checks run in priority
// order: divergence, step size, residual, iteration cap.
func ShouldStop(s Step, cfg SolveConfig) Decision {
	if math.IsNaN(s.X) || math.Abs(s.X) > cfg.DivergenceBound {
		return Diverged
	}
	if s.HasSize && s.Size < cfg.Tolerance {
		return ConvergedByStep
	}
	if math.Abs(s.FunctionValue) < cfg.Tolerance {
		return ConvergedByFunctionValue
	}
	if s.Iteration >= cfg.MaxIterations {
		return MaxIterationsReached
	}
	return Continue
}
