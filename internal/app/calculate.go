package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/agbru/rootcalc/internal/cli"
	"github.com/agbru/rootcalc/internal/config"
	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/logging"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/scenario"
	"github.com/agbru/rootcalc/internal/session"
	"github.com/agbru/rootcalc/internal/ui"
)

// AutoSessionName asks -save-session for a timestamped name.
const AutoSessionName = "auto"

// runCalculate orchestrates the execution of the CLI solve command. sc is
// the scenario being replayed, or nil.
func (a *Application) runCalculate(ctx context.Context, out io.Writer, sc *scenario.Scenario) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	cfg, err := config.ResolveBracket(a.Config)
	if err != nil {
		return apperrors.HandleSolveError(err, 0, a.ErrWriter, ui.ColorProvider{})
	}

	solvers := orchestration.GetSolversToRun(cfg.Method, a.Factory)
	if len(solvers) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no solver registered for method %q\n", cfg.Method)
		return apperrors.ExitErrorConfig
	}

	if !cfg.Quiet {
		if sc != nil {
			fmt.Fprintf(out, "%sScenario %s:%s %s\n", ui.ColorBold(), sc.Name, ui.ColorReset(), sc.Description)
		}
		cli.PrintExecutionConfig(cfg, out)
		cli.PrintExecutionMode(solvers, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if cfg.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	problem := cfg.Problem()
	execOpts := orchestration.ExecuteOptions{Logger: a.Logger}
	results := orchestration.ExecuteSolvers(ctx, solvers, problem, cfg.ToSolveConfig(), execOpts, progressReporter, progressOut)

	outputCfg := cli.OutputConfig{
		OutputFile:     cfg.OutputFile,
		Quiet:          cfg.Quiet,
		IncludeHistory: cfg.Verbose,
		Presentation: orchestration.PresentationOptions{
			Verbose: cfg.Verbose,
			Details: cfg.Details,
			Quiet:   cfg.Quiet,
		},
	}
	exitCode := a.analyzeResultsWithOutput(problem, results, cfg.Tolerance, outputCfg, out)

	if sc != nil && sc.ExpectsFailure() {
		exitCode = checkExpectedFailure(*sc, results, exitCode, out)
	}
	if code := a.saveSessionIfNeeded(cfg, results, out); code != apperrors.ExitSuccess && exitCode == apperrors.ExitSuccess {
		exitCode = code
	}

	a.Logger.Debug("run finished",
		logging.String("method", cfg.Method),
		logging.Int("solvers", len(solvers)),
		logging.Int("exit_code", exitCode))
	return exitCode
}

// analyzeResultsWithOutput judges the results, prints them in the configured
// mode and exports them. The export also covers failed runs.
func (a *Application) analyzeResultsWithOutput(problem rootfind.Problem, results []orchestration.RunResult, tolerance float64, outputCfg cli.OutputConfig, out io.Writer) int {
	presenter := cli.CLIResultPresenter{}

	var exitCode int
	if outputCfg.Quiet {
		exitCode = orchestration.AnalyzeComparisonResults(results, problem, tolerance, outputCfg.Presentation, presenter, presenter, io.Discard)
		cli.DisplayQuietResult(out, results)
	} else {
		exitCode = orchestration.AnalyzeComparisonResults(results, problem, tolerance, outputCfg.Presentation, presenter, presenter, out)
	}

	if outputCfg.OutputFile == "" {
		return exitCode
	}
	if err := cli.WriteResultsToFile(problem, results, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
		if exitCode == apperrors.ExitSuccess {
			exitCode = apperrors.ExitErrorGeneric
		}
		return exitCode
	}
	if !outputCfg.Quiet {
		fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	return exitCode
}

// checkExpectedFailure turns a scenario's failure into success when every
// run ended with the outcome the scenario predicts.
func checkExpectedFailure(sc scenario.Scenario, results []orchestration.RunResult, exitCode int, out io.Writer) int {
	for _, r := range results {
		if r.Result.Outcome != sc.ExpectedOutcome {
			fmt.Fprintf(out, "%sUnexpected outcome for %s: %s (expected %s)%s\n",
				ui.ColorRed(), r.Name, r.Result.Outcome, sc.ExpectedOutcome, ui.ColorReset())
			return exitCode
		}
	}
	fmt.Fprintf(out, "%sExpected outcome reproduced: %s%s\n", ui.ColorGreen(), sc.ExpectedOutcome, ui.ColorReset())
	return apperrors.ExitSuccess
}

// saveSessionIfNeeded stores the run under cfg.SaveSession.
func (a *Application) saveSessionIfNeeded(cfg config.AppConfig, results []orchestration.RunResult, out io.Writer) int {
	if cfg.SaveSession == "" {
		return apperrors.ExitSuccess
	}
	name := cfg.SaveSession
	if strings.EqualFold(name, AutoSessionName) {
		name = ""
	}

	params := session.Parameters{
		CardsValue:      cfg.CardsValue,
		Target:          cfg.Target,
		Method:          cfg.Method,
		Tolerance:       cfg.Tolerance,
		MaxIterations:   cfg.MaxIterations,
		DivergenceBound: cfg.DivergenceBound,
		LowerBound:      cfg.LowerBound,
		UpperBound:      cfg.UpperBound,
		InitialGuess:    cfg.InitialGuess,
	}
	store := session.NewStore(cfg.SessionDir)
	saved, err := store.Save(name, session.New(params, results))
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving session: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "%s✓ Session saved as: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), saved, ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// runSessionStats prints an aggregate of every stored session.
func (a *Application) runSessionStats(out io.Writer) int {
	store := session.NewStore(a.Config.SessionDir)
	st, err := store.Statistics()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error reading sessions: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if st.TotalSessions == 0 {
		fmt.Fprintf(out, "No sessions in %s\n", store.Dir())
		return apperrors.ExitSuccess
	}

	fmt.Fprintf(out, "%sSessions in %s:%s %d", ui.ColorBold(), store.Dir(), ui.ColorReset(), st.TotalSessions)
	if st.Skipped > 0 {
		fmt.Fprintf(out, " (%d unreadable)", st.Skipped)
	}
	fmt.Fprintf(out, "\nFrom %s to %s\n\n", st.First.Format("2006-01-02 15:04:05"), st.Last.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(out, "%-14s %6s %10s %10s %6s %6s\n", "Method", "Runs", "Converged", "Avg iter", "Min", "Max")
	for _, m := range st.SortedMethods() {
		ms := st.Methods[m]
		fmt.Fprintf(out, "%-14s %6d %10d %10.2f %6d %6d\n",
			m.DisplayName(), ms.Runs, ms.Convergences, ms.AverageIterations, ms.MinIterations, ms.MaxIterations)
	}
	return apperrors.ExitSuccess
}
