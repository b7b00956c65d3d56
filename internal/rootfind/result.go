package rootfind

import "math"

// Method identifies one of the root-finding algorithms.
type Method string

const (
	MethodBisection  Method = "bisection"
	MethodNewton     Method = "newton"
	MethodFixedPoint Method = "fixedpoint"
)

// DisplayName returns the human-readable method name.
func (m Method) DisplayName() string {
	switch m {
	case MethodBisection:
		return "Bisection"
	case MethodNewton:
		return "Newton-Raphson"
	case MethodFixedPoint:
		return "Fixed Point"
	}
	return string(m)
}

// Outcome is how a solve ended. The first values mirror Decision; the
// remaining ones are structural failures detected outside the judge.
type Outcome string

const (
	OutcomeConvergedByStep          Outcome = "converged_by_step"
	OutcomeConvergedByFunctionValue Outcome = "converged_by_function_value"
	OutcomeMaxIterations            Outcome = "max_iterations_reached"
	OutcomeDiverged                 Outcome = "diverged"
	OutcomeInvalidBracket           Outcome = "invalid_bracket"
	OutcomeDerivativeNearZero       Outcome = "derivative_near_zero"
	OutcomeInvalidConfig            Outcome = "invalid_config"
)

// IterationRecord is one row of a solver's history.
type IterationRecord struct {
	Index         int     `json:"index"`
	X             float64 `json:"x"`
	FunctionValue float64 `json:"function_value"`
	AbsoluteError float64 `json:"absolute_error"`
}

// SolveResult is the uniform output of every solver.
type SolveResult struct {
	Method Method `json:"method"`
	// Root is meaningful only when HasRoot is true.
	Root           float64           `json:"root"`
	HasRoot        bool              `json:"has_root"`
	IterationCount int               `json:"iterations"`
	Converged      bool              `json:"converged"`
	FinalError     float64           `json:"final_error"`
	History        []IterationRecord `json:"history"`
	Message        string            `json:"message"`
	Outcome        Outcome           `json:"outcome"`
	// Err is one of the engine sentinel errors for failed runs, nil for
	// converged runs and for runs that hit the iteration cap.
	Err error `json:"-"`
}

// Failed reports whether the run ended on a structural failure or divergence.
func (r SolveResult) Failed() bool {
	return r.Err != nil
}

// recorder accumulates the history of one solver call.
type recorder struct {
	method  Method
	history []IterationRecord
}

func newRecorder(method Method, maxIterations int) *recorder {
	capHint := maxIterations
	if capHint > 64 {
		capHint = 64
	}
	if capHint < 0 {
		capHint = 0
	}
	return &recorder{method: method, history: make([]IterationRecord, 0, capHint)}
}

// record appends a row and returns the 1-based iteration count.
func (r *recorder) record(x, fx, absErr float64) int {
	r.history = append(r.history, IterationRecord{
		Index:         len(r.history),
		X:             x,
		FunctionValue: fx,
		AbsoluteError: absErr,
	})
	return len(r.history)
}

// finish builds the result for a judge decision other than Continue.
func (r *recorder) finish(d Decision) SolveResult {
	res := r.base()
	last := r.history[len(r.history)-1]
	switch d {
	case ConvergedByStep, ConvergedByFunctionValue:
		res.Root, res.HasRoot = last.X, true
		res.Converged = true
		if d == ConvergedByStep {
			res.FinalError = last.AbsoluteError
			res.Outcome = OutcomeConvergedByStep
			res.Message = "Converged: step below tolerance"
		} else {
			// The residual, not the last step, bounds the error here.
			res.FinalError = math.Abs(last.FunctionValue)
			res.Outcome = OutcomeConvergedByFunctionValue
			res.Message = "Converged: |f(x)| below tolerance"
		}
	case MaxIterationsReached:
		res.Root, res.HasRoot = last.X, true
		res.FinalError = last.AbsoluteError
		res.Outcome = OutcomeMaxIterations
		res.Message = "Maximum number of iterations reached without convergence"
	case Diverged:
		res.Outcome = OutcomeDiverged
		res.Err = ErrDiverged
		res.Message = "Method diverged: iterate exceeded the divergence bound"
	}
	return res
}

// fail builds the result for a structural failure.
func (r *recorder) fail(outcome Outcome, err error, msg string) SolveResult {
	res := r.base()
	res.Outcome = outcome
	res.Err = err
	res.Message = msg
	return res
}

func (r *recorder) base() SolveResult {
	return SolveResult{
		Method:         r.method,
		IterationCount: len(r.history),
		FinalError:     math.Inf(1),
		History:        r.history,
	}
}
