package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/rootcalc/internal/rootfind"
)

// ColorProvider supplies the ANSI sequences used when printing errors.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code without printing it.
func ExitCodeFor(err error) int {
	var (
		timeoutErr    TimeoutError
		configErr     ConfigError
		validationErr ValidationError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr),
		errors.Is(err, rootfind.ErrInvalidConfig), errors.Is(err, rootfind.ErrUnknownMethod):
		return ExitErrorConfig
	case errors.Is(err, rootfind.ErrInvalidBracket),
		errors.Is(err, rootfind.ErrDerivativeNearZero),
		errors.Is(err, rootfind.ErrDiverged),
		errors.Is(err, rootfind.ErrNoBracket):
		return ExitErrorNoConvergence
	default:
		return ExitErrorGeneric
	}
}

// HandleSolveError prints a user-facing message for err and returns the
// matching exit code. duration is the elapsed time of the failed operation.
func HandleSolveError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColor{}
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sTimeout: the operation exceeded its time limit after %s.%s\n",
			colors.Yellow(), duration, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sOperation canceled by user.%s\n", colors.Yellow(), colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
	case ExitErrorNoConvergence:
		fmt.Fprintf(out, "%sNo convergence: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
