package rootfind

// Bisection searches a root of f inside [cfg.LowerBound, cfg.UpperBound] by
// repeated halving. The bounds may be given in either order. The bracket must
// straddle a sign change; otherwise the result reports ErrInvalidBracket with
// an empty history.
//
// The judge receives the bracket half-width as the step measure, so the
// absolute error recorded at iteration n is (upper-lower)/2^(n+1).
func Bisection(f Func, cfg SolveConfig) SolveResult {
	rec := newRecorder(MethodBisection, cfg.MaxIterations)
	if err := cfg.Validate(); err != nil {
		return rec.fail(OutcomeInvalidConfig, err, "Invalid configuration: "+err.Error())
	}

	a, b := cfg.LowerBound, cfg.UpperBound
	if a > b {
		a, b = b, a
	}
	fa, fb := f(a), f(b)
	// Written as a negated comparison so NaN products fail too.
	if !(fa*fb < 0) {
		return rec.fail(OutcomeInvalidBracket, ErrInvalidBracket,
			"No root is guaranteed in the interval: f(a)·f(b) is not negative")
	}

	for {
		c := (a + b) / 2
		fc := f(c)
		halfWidth := (b - a) / 2
		iteration := rec.record(c, fc, halfWidth)

		if fc == 0 {
			return rec.finish(ConvergedByFunctionValue)
		}
		if d := ShouldStop(BracketStep(c, halfWidth, fc, iteration), cfg); d != Continue {
			return rec.finish(d)
		}

		if fa*fc < 0 {
			b = c
		} else {
			a, fa = c, fc
		}
	}
}

// BisectionSolver solves a Problem with Bisection.
type BisectionSolver struct{}

// Name returns the display name of the method.
func (BisectionSolver) Name() string { return MethodBisection.DisplayName() }

// Method returns MethodBisection.
func (BisectionSolver) Method() Method { return MethodBisection }

// Solve runs bisection on p.F over the configured bracket.
func (BisectionSolver) Solve(p Problem, cfg SolveConfig) SolveResult {
	return Bisection(p.F, cfg)
}
