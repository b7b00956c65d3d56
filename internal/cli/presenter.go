package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/format"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while solvers run.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numSolvers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numSolvers, out)
}

// CLIResultPresenter renders comparison results for the terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// tableColumn is one column of the comparison table.
type tableColumn struct {
	header string
	cell   func(r orchestration.RunResult) string
}

var comparisonColumns = []tableColumn{
	{"Method", func(r orchestration.RunResult) string { return r.Name }},
	{"Root", func(r orchestration.RunResult) string { return format.FormatRoot(r.Result.Root, r.Result.HasRoot) }},
	{"Iterations", func(r orchestration.RunResult) string { return strconv.Itoa(r.Result.IterationCount) }},
	{"Final error", func(r orchestration.RunResult) string { return format.FormatError(r.Result.FinalError) }},
	{"Duration", func(r orchestration.RunResult) string { return displayDuration(r.Duration) }},
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// PresentComparisonTable prints one row per method. Padding is computed on
// the plain text so ANSI color codes do not break the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	widths := make([]int, len(comparisonColumns))
	for i, col := range comparisonColumns {
		widths[i] = utf8.RuneCountInString(col.header)
		for _, r := range results {
			if n := utf8.RuneCountInString(col.cell(r)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for i, col := range comparisonColumns {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorUnderline(), col.header, ui.ColorReset(),
			padRight("", widths[i]-utf8.RuneCountInString(col.header)))
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	colors := []func() string{ui.ColorBlue, ui.ColorCyan, ui.ColorReset, ui.ColorYellow, ui.ColorYellow}
	for _, r := range results {
		for i, col := range comparisonColumns {
			cell := col.cell(r)
			fmt.Fprintf(out, "%s%s%s%s   ", colors[i](), cell, ui.ColorReset(),
				padRight("", widths[i]-utf8.RuneCountInString(cell)))
		}
		fmt.Fprintln(out, statusCell(r))
	}
}

func statusCell(r orchestration.RunResult) string {
	switch {
	case r.Result.Converged:
		return fmt.Sprintf("%s✅ Converged%s", ui.ColorGreen(), ui.ColorReset())
	case r.Err != nil:
		return fmt.Sprintf("%s❌ %v%s", ui.ColorRed(), r.Err, ui.ColorReset())
	default:
		return fmt.Sprintf("%s⚠️  %s%s", ui.ColorYellow(), r.Result.Message, ui.ColorReset())
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the consolidated answer.
func (CLIResultPresenter) PresentResult(problem rootfind.Problem, results []orchestration.RunResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(problem, results, opts, out)
}

// FormatDuration formats a duration for display.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleSolveError(err, duration, out, ui.ColorProvider{})
}
