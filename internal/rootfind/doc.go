// Package rootfind implements the root-finding engine: bisection,
// Newton-Raphson and fixed-point iteration applied to the affine equation
// f(x) = cards + x - target = 0.
//
// All three solvers share one stopping policy (ShouldStop) and one result
// shape (SolveResult). Solvers hold no state between calls, so a comparison
// can run them concurrently without synchronization.
package rootfind
