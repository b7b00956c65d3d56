package rootfind

import (
	"errors"
	"testing"
)

func TestFindBracket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		f       Func
		center  float64
		radius  float64
		wantErr error
	}{
		{"root at center", NewProblem(10, 21).F, 11, 10, nil},
		{"root off center", NewProblem(19, 21).F, 0, 10, nil},
		{"root out of reach", NewProblem(6, 21).F, 0, 10, ErrNoBracket},
		{"no sign change", func(x float64) float64 { return x*x + 1 }, 0, 50, ErrNoBracket},
		{"radius below minimum", NewProblem(21, 21).F, 0, 0, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lower, upper, err := FindBracket(tt.f, tt.center, tt.radius)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lower >= upper {
				t.Errorf("bracket [%v, %v] is empty", lower, upper)
			}
			if !(tt.f(lower)*tt.f(upper) < 0) {
				t.Errorf("bracket [%v, %v] has no sign change", lower, upper)
			}
		})
	}
}

func TestFindBracket_FeedsBisection(t *testing.T) {
	t.Parallel()

	p := NewProblem(19, 21)
	lower, upper, err := FindBracket(p.F, 0, 10)
	if err != nil {
		t.Fatalf("FindBracket: %v", err)
	}
	res := Bisection(p.F, DefaultSolveConfig().WithBracket(lower, upper))
	if !res.Converged {
		t.Fatalf("bisection on found bracket did not converge: %s", res.Message)
	}
}
