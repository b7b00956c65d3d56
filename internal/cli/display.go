package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/rootcalc/internal/format"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/scenario"
	"github.com/agbru/rootcalc/internal/ui"
)

// HistoryDisplayLimit is the number of leading and trailing rows shown
// when a history is longer than twice its value.
const HistoryDisplayLimit = 10

// DisplayResult prints the consolidated root, its accuracy against the
// analytic solution and the hand interpretation. Verbose adds each method's
// iteration history; Details adds the convergence analysis.
func DisplayResult(problem rootfind.Problem, results []orchestration.RunResult, opts orchestration.PresentationOptions, out io.Writer) {
	solved := orchestration.SolveResults(results)
	cmp := rootfind.Compare(problem, solved)
	if cmp.FewestIterations == nil {
		return
	}
	best := *cmp.FewestIterations

	fmt.Fprintf(out, "\n%s--- Result ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Equation:       %s\n", DescribeProblem(problem))
	fmt.Fprintf(out, "Root:           %s%s%s (%s)\n", ui.ColorGreen(), format.FormatRoot(best.Root, best.HasRoot), ui.ColorReset(), best.Method.DisplayName())
	fmt.Fprintf(out, "Analytic root:  %s%s%s\n", ui.ColorCyan(), format.FormatRoot(cmp.AnalyticRoot, true), ui.ColorReset())
	if len(cmp.Converged) > 1 {
		fmt.Fprintf(out, "Fewest iterations: %s%s%s (%d)\n", ui.ColorYellow(), best.Method.DisplayName(), ui.ColorReset(), best.IterationCount)
		fmt.Fprintf(out, "Best precision:    %s%s%s (%s)\n", ui.ColorYellow(), cmp.BestPrecision.Method.DisplayName(), ui.ColorReset(), format.FormatError(cmp.BestPrecision.FinalError))
	}

	if opts.Verbose {
		for _, r := range results {
			DisplayHistory(r.Result, out)
		}
	}
	if opts.Details {
		DisplayAnalysis(problem, results, out)
	}
	DisplayInterpretation(scenario.Interpret(problem, best.Root), out)
}

// DescribeProblem renders f(x) = cards + x - target.
func DescribeProblem(p rootfind.Problem) string {
	return fmt.Sprintf("f(x) = %g + x - %g = 0", p.CardsValue, p.Target)
}

// DisplayHistory prints the iteration table of one run, eliding the middle
// of long histories.
func DisplayHistory(res rootfind.SolveResult, out io.Writer) {
	fmt.Fprintf(out, "\n%sIteration history: %s%s\n", ui.ColorBold(), res.Method.DisplayName(), ui.ColorReset())
	if len(res.History) == 0 {
		fmt.Fprintf(out, "  (no iterations) %s\n", res.Message)
		return
	}
	fmt.Fprintf(out, "  %4s  %22s  %12s  %12s\n", "n", "x", "f(x)", "error")
	for i, rec := range res.History {
		if len(res.History) > 2*HistoryDisplayLimit && i == HistoryDisplayLimit {
			fmt.Fprintf(out, "  %s... %d rows omitted ...%s\n", ui.ColorGrey(), len(res.History)-2*HistoryDisplayLimit, ui.ColorReset())
		}
		if len(res.History) > 2*HistoryDisplayLimit && i >= HistoryDisplayLimit && i < len(res.History)-HistoryDisplayLimit {
			continue
		}
		fmt.Fprintf(out, "  %4d  %22.15g  %12s  %12s\n", rec.Index, rec.X, format.FormatError(rec.FunctionValue), format.FormatError(rec.AbsoluteError))
	}
}

// DisplayAnalysis prints the convergence classification and the accuracy
// of each converged run.
func DisplayAnalysis(problem rootfind.Problem, results []orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n%s--- Convergence analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
	for _, r := range results {
		a := rootfind.AnalyzeConvergence(r.Result)
		var parts []string
		parts = append(parts, string(a.Kind))
		if a.HasOrder {
			parts = append(parts, fmt.Sprintf("order ≈ %.2f", a.Order))
		}
		if a.HasFactor {
			parts = append(parts, fmt.Sprintf("factor ≈ %.3g", a.Factor))
		}
		fmt.Fprintf(out, "  %s%-15s%s %s\n", ui.ColorBlue(), r.Name, ui.ColorReset(), strings.Join(parts, ", "))
		if r.Result.Converged {
			acc := problem.Accuracy(r.Result.Root)
			fmt.Fprintf(out, "  %15s absolute error %s, relative %s, residual %s\n", "",
				format.FormatError(acc.Absolute), format.FormatPercent(acc.Relative), format.FormatError(acc.Residual))
		}
	}
}

// DisplayInterpretation prints the hand advice.
func DisplayInterpretation(in scenario.Interpretation, out io.Writer) {
	color := ui.ColorGreen()
	switch in.Advice {
	case scenario.AdviceBust:
		color = ui.ColorRed()
	case scenario.AdviceHit, scenario.AdviceHitAlways:
		color = ui.ColorYellow()
	}
	fmt.Fprintf(out, "\n%s--- Hand ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Cards %g, needed %.4f, total %.4f (distance %.4f)\n", in.CardsValue, in.Needed, in.Total, in.Distance)
	fmt.Fprintf(out, "Advice: %s%s%s (risk: %s)\n", color, in.Advice, ui.ColorReset(), in.Risk)
}

// FormatQuietResult returns the roots on one line, one per method, in the
// order given. Methods without a root print "undefined".
func FormatQuietResult(results []orchestration.RunResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = string(r.Result.Method) + "=" + format.FormatRoot(r.Result.Root, r.Result.HasRoot)
	}
	return strings.Join(parts, " ")
}

// DisplayQuietResult prints FormatQuietResult.
func DisplayQuietResult(out io.Writer, results []orchestration.RunResult) {
	fmt.Fprintln(out, FormatQuietResult(results))
}
