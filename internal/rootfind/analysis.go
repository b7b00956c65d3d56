package rootfind

import "math"

// ConvergenceKind classifies the observed convergence of a run.
type ConvergenceKind string

const (
	KindNotConvergent ConvergenceKind = "not convergent"
	KindOneStep       ConvergenceKind = "exact in one step"
	KindLinear        ConvergenceKind = "linear"
	KindQuadratic     ConvergenceKind = "quadratic"
	KindSuperlinear   ConvergenceKind = "superlinear"
	KindFast          ConvergenceKind = "fast"
	KindModerate      ConvergenceKind = "moderate"
	KindSlow          ConvergenceKind = "slow"
)

// Order estimation thresholds.
const (
	linearOrderLimit    = 1.5
	quadraticOrderLimit = 2.5
	fastFactorLimit     = 0.1
	moderateFactorLimit = 0.5
)

// ConvergenceAnalysis summarizes the error sequence of a converged run.
type ConvergenceAnalysis struct {
	Kind ConvergenceKind `json:"kind"`
	// Order is the estimated order p in e_{n+1} ≈ C·e_n^p.
	Order    float64 `json:"order"`
	HasOrder bool    `json:"has_order"`
	// Factor is the ratio of the last two recorded errors.
	Factor    float64 `json:"factor"`
	HasFactor bool    `json:"has_factor"`
}

// AnalyzeConvergence estimates the order and rate of convergence from the
// absolute errors in r.History.
func AnalyzeConvergence(r SolveResult) ConvergenceAnalysis {
	if !r.Converged || len(r.History) == 0 {
		return ConvergenceAnalysis{Kind: KindNotConvergent}
	}
	if len(r.History) == 1 {
		return ConvergenceAnalysis{Kind: KindOneStep}
	}

	errs := make([]float64, len(r.History))
	for i, rec := range r.History {
		errs[i] = rec.AbsoluteError
	}

	var a ConvergenceAnalysis
	if n := len(errs); errs[n-2] > 0 {
		a.Factor, a.HasFactor = errs[n-1]/errs[n-2], true
	}

	if order, ok := estimateOrder(errs); ok {
		a.Order, a.HasOrder = order, true
		switch {
		case order < linearOrderLimit:
			a.Kind = KindLinear
		case order < quadraticOrderLimit:
			a.Kind = KindQuadratic
		default:
			a.Kind = KindSuperlinear
		}
		return a
	}

	switch {
	case a.HasFactor && a.Factor < fastFactorLimit:
		a.Kind = KindFast
	case a.HasFactor && a.Factor < moderateFactorLimit:
		a.Kind = KindModerate
	default:
		a.Kind = KindSlow
	}
	return a
}

// estimateOrder averages log(e[i+1]/e[i]) / log(e[i]/e[i-1]) over every
// window of three positive errors.
func estimateOrder(errs []float64) (float64, bool) {
	if len(errs) < 3 {
		return 0, false
	}
	var sum float64
	var count int
	for i := 1; i < len(errs)-1; i++ {
		prev, cur, next := errs[i-1], errs[i], errs[i+1]
		if prev <= 0 || cur <= 0 || next <= 0 {
			continue
		}
		den := math.Log(cur / prev)
		if den == 0 {
			continue
		}
		ratio := math.Log(next/cur) / den
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			continue
		}
		sum += ratio
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
