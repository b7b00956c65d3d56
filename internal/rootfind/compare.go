package rootfind

import "math"

// Comparison summarizes several runs on the same problem.
type Comparison struct {
	AnalyticRoot float64
	// Converged lists the methods that converged, in input order.
	Converged []Method
	// FewestIterations and BestPrecision point into the compared slice and
	// are nil when no method converged.
	FewestIterations *SolveResult
	BestPrecision    *SolveResult
}

// Compare ranks the converged results by iteration count and final error.
// Ties keep the earlier result.
func Compare(p Problem, results []SolveResult) Comparison {
	c := Comparison{AnalyticRoot: p.AnalyticRoot()}
	for i := range results {
		r := &results[i]
		if !r.Converged {
			continue
		}
		c.Converged = append(c.Converged, r.Method)
		if c.FewestIterations == nil || r.IterationCount < c.FewestIterations.IterationCount {
			c.FewestIterations = r
		}
		if c.BestPrecision == nil || r.FinalError < c.BestPrecision.FinalError {
			c.BestPrecision = r
		}
	}
	return c
}

// Agree reports whether all converged roots lie within tol of each other.
func Agree(results []SolveResult, tol float64) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range results {
		if !r.Converged {
			continue
		}
		lo = math.Min(lo, r.Root)
		hi = math.Max(hi, r.Root)
	}
	return hi-lo <= tol || math.IsInf(lo, 1)
}
