package rootfind

import "math"

// Newton runs the Newton-Raphson iteration x_{n+1} = x_n - f(x_n)/df(x_n)
// from cfg.InitialGuess. The derivative is supplied by the caller; a slope
// whose magnitude falls below the tolerance stops the run with
// ErrDerivativeNearZero and no root. The iterate where the slope vanished is
// recorded with a NaN step error.
func Newton(f, df Func, cfg SolveConfig) SolveResult {
	rec := newRecorder(MethodNewton, cfg.MaxIterations)
	if err := cfg.Validate(); err != nil {
		return rec.fail(OutcomeInvalidConfig, err, "Invalid configuration: "+err.Error())
	}

	x := cfg.InitialGuess
	for {
		fx := f(x)
		slope := df(x)
		if math.Abs(slope) < cfg.Tolerance {
			rec.record(x, fx, math.NaN())
			return rec.fail(OutcomeDerivativeNearZero, ErrDerivativeNearZero,
				"Derivative too small: possible critical point")
		}

		next := x - fx/slope
		fNext := f(next)
		iteration := rec.record(next, fNext, math.Abs(next-x))
		if d := ShouldStop(IterateStep(next, x, fNext, iteration), cfg); d != Continue {
			return rec.finish(d)
		}
		x = next
	}
}

// NewtonSolver solves a Problem with Newton-Raphson using its exact
// derivative.
type NewtonSolver struct{}

// Name returns the display name of the method.
func (NewtonSolver) Name() string { return MethodNewton.DisplayName() }

// Method returns MethodNewton.
func (NewtonSolver) Method() Method { return MethodNewton }

// Solve runs Newton-Raphson on p.F with p.Derivative.
func (NewtonSolver) Solve(p Problem, cfg SolveConfig) SolveResult {
	return Newton(p.F, p.Derivative, cfg)
}
