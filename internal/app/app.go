package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/rootcalc/internal/cli"
	"github.com/agbru/rootcalc/internal/config"
	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/logging"
	"github.com/agbru/rootcalc/internal/metrics"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/scenario"
	"github.com/agbru/rootcalc/internal/server"
	"github.com/agbru/rootcalc/internal/tui"
	"github.com/agbru/rootcalc/internal/ui"
)

// Application represents the rootcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   rootfind.SolverFactory
	ErrWriter io.Writer
	// Logger receives diagnostics. When nil, Run builds one from
	// Config.LogLevel.
	Logger logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom SolverFactory for the application.
func WithFactory(f rootfind.SolverFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = rootfind.NewDefaultFactory()
	}

	programName := "rootcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	if code := a.initLogger(); code != apperrors.ExitSuccess {
		return code
	}

	switch {
	case a.Config.ListScenarios:
		return a.runListScenarios(out)
	case a.Config.SessionStats:
		return a.runSessionStats(out)
	case a.Config.ServeAddr != "":
		return a.runServer(ctx)
	case a.Config.Interactive:
		return a.runREPL(out)
	}

	var sc *scenario.Scenario
	if a.Config.Scenario != "" {
		s, err := scenario.Get(a.Config.Scenario)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			fmt.Fprintf(a.ErrWriter, "Available scenarios: %v\n", scenario.Names())
			return apperrors.ExitErrorConfig
		}
		a.Config = applyScenario(a.Config, s)
		sc = &s
	}

	if a.Config.TUI {
		return a.runTUI(ctx)
	}
	return a.runCalculate(ctx, out, sc)
}

// initLogger builds the default logger when none was injected. The server
// logs to a colored console; the other modes log JSON lines.
func (a *Application) initLogger() int {
	if a.Logger != nil {
		return apperrors.ExitSuccess
	}
	var (
		l   logging.Logger
		err error
	)
	switch {
	case a.Config.TUI:
		l = logging.NopLogger{}
	case a.Config.ServeAddr != "":
		l, err = logging.NewConsoleLogger(a.ErrWriter, a.Config.LogLevel, a.Config.NoColor)
	default:
		l, err = logging.NewLeveledLogger(a.ErrWriter, "rootcalc", a.Config.LogLevel)
	}
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	a.Logger = l
	return apperrors.ExitSuccess
}

// applyScenario replaces the problem and solver parameters of cfg with those
// of the scenario. Presentation and output settings are kept.
func applyScenario(cfg config.AppConfig, sc scenario.Scenario) config.AppConfig {
	cfg.CardsValue = sc.Problem.CardsValue
	cfg.Target = sc.Problem.Target
	cfg.Tolerance = sc.Config.Tolerance
	cfg.MaxIterations = sc.Config.MaxIterations
	cfg.DivergenceBound = sc.Config.DivergenceBound
	cfg.LowerBound = sc.Config.LowerBound
	cfg.UpperBound = sc.Config.UpperBound
	cfg.InitialGuess = sc.Config.InitialGuess
	cfg.AutoBracket = false
	cfg.Method = orchestration.MethodAll
	if len(sc.Methods) == 1 {
		cfg.Method = string(sc.Methods[0])
	}
	return cfg
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List(), scenario.Names()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runListScenarios prints the predefined scenarios.
func (a *Application) runListScenarios(out io.Writer) int {
	fmt.Fprintf(out, "%sPredefined scenarios:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, sc := range scenario.List() {
		expect := fmt.Sprintf("root %.4f", sc.ExpectedRoot)
		if sc.ExpectsFailure() {
			expect = "expects " + string(sc.ExpectedOutcome)
		}
		fmt.Fprintf(out, "  %s%-10s%s %s (%s)\n", ui.ColorYellow(), sc.Name, ui.ColorReset(), sc.Description, expect)
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultMethod: a.Config.Method,
		Target:        a.Config.Target,
		Solve:         a.Config.ToSolveConfig(),
		Timeout:       a.Config.Timeout,
		Logger:        a.Logger,
	})
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	cfg, err := config.ResolveBracket(a.Config)
	if err != nil {
		return apperrors.HandleSolveError(err, 0, a.ErrWriter, ui.ColorProvider{})
	}
	solvers := orchestration.GetSolversToRun(cfg.Method, a.Factory)
	return tui.Run(ctx, solvers, cfg, tui.Options{
		Version: Version,
		Execute: orchestration.ExecuteOptions{Logger: a.Logger},
	})
}

// runServer serves the HTTP API until ctx is canceled or a signal arrives.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.New(a.Config.ServeAddr, a.Factory,
		server.WithLogger(a.Logger),
		server.WithMetrics(metrics.NewRecorder()),
		server.WithDefaults(a.Config),
	)
	if err := srv.Start(ctx); err != nil {
		a.Logger.Error("server failed", err, logging.String("addr", a.Config.ServeAddr))
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
