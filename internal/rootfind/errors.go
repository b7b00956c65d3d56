package rootfind

import "errors"

// Engine failures. They are carried by SolveResult.Err and never returned
// as a separate error value: every solver call yields a result.
var (
	// ErrInvalidBracket reports that f(lower)·f(upper) is not negative.
	ErrInvalidBracket = errors.New("invalid bracket: f(a)·f(b) must be negative")
	// ErrDerivativeNearZero reports a Newton step with |f'(x)| below tolerance.
	ErrDerivativeNearZero = errors.New("derivative near zero")
	// ErrDiverged reports an iterate whose magnitude exceeded the divergence bound.
	ErrDiverged = errors.New("iteration diverged")
	// ErrInvalidConfig reports unusable solve parameters.
	ErrInvalidConfig = errors.New("invalid solve configuration")
	// ErrUnknownMethod is returned by the factory for unregistered keys.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrNoBracket is returned by FindBracket when no sign change is found.
	ErrNoBracket = errors.New("no sign change found")
)
