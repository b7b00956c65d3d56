package config

import (
	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/rootfind"
)

// Bracket resolution chain (highest priority first):
//   1. CLI flags (-a, -b)
//   2. Environment variables (ROOTCALC_A, ROOTCALC_B)
//   3. Automatic search around x0 when -auto-bracket is set (this file)
//   4. Static defaults in Default()

// AutoBracketRadius is the largest radius scanned by ResolveBracket.
const AutoBracketRadius = 50

// ResolveBracket replaces the bisection interval with one found by scanning
// around the initial guess when AutoBracket is enabled. The configuration
// is returned unchanged otherwise.
func ResolveBracket(cfg AppConfig) (AppConfig, error) {
	if !cfg.AutoBracket {
		return cfg, nil
	}
	p := cfg.Problem()
	lower, upper, err := rootfind.FindBracket(p.F, cfg.InitialGuess, AutoBracketRadius)
	if err != nil {
		return cfg, apperrors.WrapError(err, "no sign change within %g of x0=%g", float64(AutoBracketRadius), cfg.InitialGuess)
	}
	cfg.LowerBound, cfg.UpperBound = lower, upper
	return cfg, nil
}
