package rootfind

import "math"

// Func is a real function of one real variable.
type Func func(x float64) float64

// Problem is the immutable input of a solve: the current hand value and the
// target to reach.
type Problem struct {
	CardsValue float64
	Target     float64
}

// NewProblem returns the problem f(x) = cards + x - target.
func NewProblem(cardsValue, target float64) Problem {
	return Problem{CardsValue: cardsValue, Target: target}
}

// F evaluates f(x) = CardsValue + x - Target.
func (p Problem) F(x float64) float64 {
	return p.CardsValue + x - p.Target
}

// Derivative evaluates f'(x). f is affine, so the slope is constant.
func (p Problem) Derivative(float64) float64 {
	return 1
}

// G is the fixed-point transform x = g(x) derived from f(x) = 0.
func (p Problem) G(float64) float64 {
	return p.Target - p.CardsValue
}

// AnalyticRoot returns the exact solution Target - CardsValue.
func (p Problem) AnalyticRoot() float64 {
	return p.Target - p.CardsValue
}

// Accuracy compares a numerical root with the analytic one.
type Accuracy struct {
	Exact    float64
	Numeric  float64
	Absolute float64
	// Relative is +Inf when the exact root is zero.
	Relative float64
	Percent  float64
	Residual float64
}

// Accuracy measures how far root is from the analytic solution.
func (p Problem) Accuracy(root float64) Accuracy {
	exact := p.AnalyticRoot()
	abs := math.Abs(root - exact)
	rel := math.Inf(1)
	if exact != 0 {
		rel = abs / math.Abs(exact)
	}
	return Accuracy{
		Exact:    exact,
		Numeric:  root,
		Absolute: abs,
		Relative: rel,
		Percent:  rel * 100,
		Residual: p.F(root),
	}
}
