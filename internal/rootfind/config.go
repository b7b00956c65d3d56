package rootfind

import (
	"fmt"
	"math"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default Solve Parameters
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultTolerance is the stopping threshold for both the step size and
	// the residual |f(x)|.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations caps every solver loop. Bisection on a bracket of
	// width 100 needs about 27 halvings to reach DefaultTolerance.
	DefaultMaxIterations = 100

	// DefaultDivergenceBound is the iterate magnitude beyond which a run is
	// declared divergent.
	DefaultDivergenceBound = 1e10
)

// SolveConfig holds the numerical parameters of a single solver call.
// LowerBound and UpperBound are read by bisection only, InitialGuess by
// Newton-Raphson and fixed-point iteration only.
type SolveConfig struct {
	Tolerance       float64
	MaxIterations   int
	DivergenceBound float64
	LowerBound      float64
	UpperBound      float64
	InitialGuess    float64
}

// DefaultSolveConfig returns a fresh configuration with the default
// tolerance, iteration cap and divergence bound, and a zero bracket and
// initial guess.
func DefaultSolveConfig() SolveConfig {
	return SolveConfig{
		Tolerance:       DefaultTolerance,
		MaxIterations:   DefaultMaxIterations,
		DivergenceBound: DefaultDivergenceBound,
	}
}

// WithBracket returns a copy of c with the bisection interval set.
func (c SolveConfig) WithBracket(lower, upper float64) SolveConfig {
	c.LowerBound = lower
	c.UpperBound = upper
	return c
}

// WithInitialGuess returns a copy of c with the starting iterate set.
func (c SolveConfig) WithInitialGuess(x0 float64) SolveConfig {
	c.InitialGuess = x0
	return c
}

// Validate checks the parameters shared by all solvers. Bracket validity is
// a bisection precondition and is reported as ErrInvalidBracket instead.
func (c SolveConfig) Validate() error {
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be a positive finite number, got %g", ErrInvalidConfig, c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if !(c.DivergenceBound > 0) {
		return fmt.Errorf("%w: divergence bound must be positive, got %g", ErrInvalidConfig, c.DivergenceBound)
	}
	return nil
}
