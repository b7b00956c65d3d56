package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/rootcalc/internal/config"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/ui"
)

// PrintExecutionConfig displays the problem, solver parameters and
// environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Solving %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), DescribeProblem(cfg.Problem()), ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Tolerance %s%g%s, at most %s%d%s iterations, divergence bound %s%g%s.\n",
		ui.ColorCyan(), cfg.Tolerance, ui.ColorReset(),
		ui.ColorCyan(), cfg.MaxIterations, ui.ColorReset(),
		ui.ColorCyan(), cfg.DivergenceBound, ui.ColorReset())
	fmt.Fprintf(out, "Bisection interval [%s%g%s, %s%g%s], initial guess x0=%s%g%s.\n",
		ui.ColorCyan(), cfg.LowerBound, ui.ColorReset(),
		ui.ColorCyan(), cfg.UpperBound, ui.ColorReset(),
		ui.ColorCyan(), cfg.InitialGuess, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays whether one method runs or all are compared.
func PrintExecutionMode(solvers []rootfind.Solver, out io.Writer) {
	var modeDesc string
	switch len(solvers) {
	case 0:
		modeDesc = "no method selected"
	case 1:
		modeDesc = fmt.Sprintf("Single run with the %s%s%s method",
			ui.ColorGreen(), solvers[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d methods", len(solvers))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
