package rootfind

import (
	"encoding/json"
	"math"
)

// jsonFloat encodes non-finite values as null, which encoding/json would
// otherwise reject.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// decodeFloat turns a null back into def.
func decodeFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

type iterationRecordJSON struct {
	Index         int       `json:"index"`
	X             jsonFloat `json:"x"`
	FunctionValue jsonFloat `json:"function_value"`
	AbsoluteError jsonFloat `json:"absolute_error"`
}

type iterationRecordDecode struct {
	Index         int      `json:"index"`
	X             *float64 `json:"x"`
	FunctionValue *float64 `json:"function_value"`
	AbsoluteError *float64 `json:"absolute_error"`
}

// MarshalJSON implements json.Marshaler.
func (r IterationRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(iterationRecordJSON{
		Index:         r.Index,
		X:             jsonFloat(r.X),
		FunctionValue: jsonFloat(r.FunctionValue),
		AbsoluteError: jsonFloat(r.AbsoluteError),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Nulls decode as NaN.
func (r *IterationRecord) UnmarshalJSON(data []byte) error {
	var d iterationRecordDecode
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*r = IterationRecord{
		Index:         d.Index,
		X:             decodeFloat(d.X, math.NaN()),
		FunctionValue: decodeFloat(d.FunctionValue, math.NaN()),
		AbsoluteError: decodeFloat(d.AbsoluteError, math.NaN()),
	}
	return nil
}

type solveResultJSON struct {
	Method         Method            `json:"method"`
	Root           jsonFloat         `json:"root"`
	HasRoot        bool              `json:"has_root"`
	IterationCount int               `json:"iterations"`
	Converged      bool              `json:"converged"`
	FinalError     jsonFloat         `json:"final_error"`
	History        []IterationRecord `json:"history"`
	Message        string            `json:"message"`
	Outcome        Outcome           `json:"outcome"`
}

type solveResultDecode struct {
	Method         Method            `json:"method"`
	Root           *float64          `json:"root"`
	HasRoot        bool              `json:"has_root"`
	IterationCount int               `json:"iterations"`
	Converged      bool              `json:"converged"`
	FinalError     *float64          `json:"final_error"`
	History        []IterationRecord `json:"history"`
	Message        string            `json:"message"`
	Outcome        Outcome           `json:"outcome"`
}

// MarshalJSON implements json.Marshaler. An infinite FinalError is written
// as null; Err is not serialized since Outcome determines it.
func (r SolveResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(solveResultJSON{
		Method:         r.Method,
		Root:           jsonFloat(r.Root),
		HasRoot:        r.HasRoot,
		IterationCount: r.IterationCount,
		Converged:      r.Converged,
		FinalError:     jsonFloat(r.FinalError),
		History:        r.History,
		Message:        r.Message,
		Outcome:        r.Outcome,
	})
}

// UnmarshalJSON implements json.Unmarshaler. A null FinalError decodes as
// +Inf and Err is restored from Outcome.
func (r *SolveResult) UnmarshalJSON(data []byte) error {
	var d solveResultDecode
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*r = SolveResult{
		Method:         d.Method,
		Root:           decodeFloat(d.Root, 0),
		HasRoot:        d.HasRoot,
		IterationCount: d.IterationCount,
		Converged:      d.Converged,
		FinalError:     decodeFloat(d.FinalError, math.Inf(1)),
		History:        d.History,
		Message:        d.Message,
		Outcome:        d.Outcome,
		Err:            ErrForOutcome(d.Outcome),
	}
	return nil
}

// ErrForOutcome returns the sentinel error carried by results with the
// given outcome, or nil for converged and iteration-capped outcomes.
func ErrForOutcome(o Outcome) error {
	switch o {
	case OutcomeDiverged:
		return ErrDiverged
	case OutcomeInvalidBracket:
		return ErrInvalidBracket
	case OutcomeDerivativeNearZero:
		return ErrDerivativeNearZero
	case OutcomeInvalidConfig:
		return ErrInvalidConfig
	}
	return nil
}
