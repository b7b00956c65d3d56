package rootfind

import "math"

// FixedPoint iterates x_{n+1} = g(x_n) from cfg.InitialGuess. Each record
// stores f(x_{n+1}) recomputed from the original equation, so a transform g
// that does not actually solve f = 0 is visible in the history.
func FixedPoint(f, g Func, cfg SolveConfig) SolveResult {
	rec := newRecorder(MethodFixedPoint, cfg.MaxIterations)
	if err := cfg.Validate(); err != nil {
		return rec.fail(OutcomeInvalidConfig, err, "Invalid configuration: "+err.Error())
	}

	x := cfg.InitialGuess
	for {
		next := g(x)
		fNext := f(next)
		iteration := rec.record(next, fNext, math.Abs(next-x))
		if d := ShouldStop(IterateStep(next, x, fNext, iteration), cfg); d != Continue {
			return rec.finish(d)
		}
		x = next
	}
}

// FixedPointSolver solves a Problem by iterating its transform G.
type FixedPointSolver struct{}

// Name returns the display name of the method.
func (FixedPointSolver) Name() string { return MethodFixedPoint.DisplayName() }

// Method returns MethodFixedPoint.
func (FixedPointSolver) Method() Method { return MethodFixedPoint }

// Solve runs fixed-point iteration on p.G, measuring residuals with p.F.
func (FixedPointSolver) Solve(p Problem, cfg SolveConfig) SolveResult {
	return FixedPoint(p.F, p.G, cfg)
}
