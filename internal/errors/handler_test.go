package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/rootcalc/internal/rootfind"
)

type testColors struct{}

func (testColors) Red() string    { return "<red>" }
func (testColors) Yellow() string { return "<yellow>" }
func (testColors) Reset() string  { return "</>" }

func TestHandleSolveError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedOut  string
	}{
		{"nil error", nil, ExitSuccess, ""},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout, "Timeout"},
		{"timeout error", TimeoutError{Operation: "compare", Limit: time.Second}, ExitErrorTimeout, "Timeout"},
		{"canceled", WrapError(context.Canceled, "solve"), ExitErrorCanceled, "canceled"},
		{"config error", NewConfigError("bad flag"), ExitErrorConfig, "Configuration error: bad flag"},
		{"validation error", ValidationError{Field: "tol", Message: "too small"}, ExitErrorConfig, "Configuration error"},
		{"invalid solve config", rootfind.ErrInvalidConfig, ExitErrorConfig, "Configuration error"},
		{"unknown method", SolveError{Cause: rootfind.ErrUnknownMethod}, ExitErrorConfig, "Configuration error"},
		{"invalid bracket", SolveError{Method: "bisection", Cause: rootfind.ErrInvalidBracket}, ExitErrorNoConvergence, "No convergence: bisection"},
		{"diverged", rootfind.ErrDiverged, ExitErrorNoConvergence, "No convergence"},
		{"generic", errors.New("boom"), ExitErrorGeneric, "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleSolveError(tt.err, 250*time.Millisecond, &buf, nil)
			if code != tt.expectedCode {
				t.Errorf("expected exit code %d, got %d", tt.expectedCode, code)
			}
			if !strings.Contains(buf.String(), tt.expectedOut) {
				t.Errorf("expected output to contain %q, got %q", tt.expectedOut, buf.String())
			}
			if code == ExitSuccess && buf.Len() != 0 {
				t.Errorf("expected no output for nil error, got %q", buf.String())
			}
		})
	}
}

func TestHandleSolveError_Colors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	HandleSolveError(errors.New("boom"), 0, &buf, testColors{})
	if got := buf.String(); got != "<red>Error: boom</>\n" {
		t.Errorf("unexpected colored output %q", got)
	}

	buf.Reset()
	HandleSolveError(context.DeadlineExceeded, 2*time.Second, &buf, testColors{})
	if !strings.HasPrefix(buf.String(), "<yellow>") || !strings.Contains(buf.String(), "2s") {
		t.Errorf("unexpected timeout output %q", buf.String())
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	if got := ExitCodeFor(nil); got != ExitSuccess {
		t.Errorf("ExitCodeFor(nil) = %d, want %d", got, ExitSuccess)
	}
	if got := ExitCodeFor(rootfind.ErrDerivativeNearZero); got != ExitErrorNoConvergence {
		t.Errorf("ExitCodeFor(ErrDerivativeNearZero) = %d, want %d", got, ExitErrorNoConvergence)
	}
}
