// Package config defines the application configuration, parses it from
// command-line flags and ROOTCALC_* environment variables, and validates it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/rootfind"
)

const (
	// EnvPrefix prefixes every environment variable read by the application.
	EnvPrefix = "ROOTCALC_"

	// MethodAll selects every registered solver.
	MethodAll = "all"

	// DefaultTimeout bounds a whole comparison run.
	DefaultTimeout = 30 * time.Second

	// DefaultSessionDir is where sessions are stored when -session-dir is not set.
	DefaultSessionDir = "sessions"

	// Accepted tolerance and iteration ranges for user input.
	MinTolerance     = 1e-15
	MaxTolerance     = 1e-1
	MinMaxIterations = 1
	MaxMaxIterations = 10000
)

// AppConfig aggregates every parameter of a rootcalc invocation.
type AppConfig struct {
	// Problem
	CardsValue float64
	Target     float64

	// Solver selection and parameters
	Method          string
	Tolerance       float64
	MaxIterations   int
	DivergenceBound float64
	LowerBound      float64
	UpperBound      float64
	InitialGuess    float64
	AutoBracket     bool

	// Scenarios
	Scenario      string
	ListScenarios bool

	// Execution
	Timeout time.Duration

	// Presentation
	Verbose bool
	Details bool
	Quiet   bool
	NoColor bool

	// Output and persistence
	OutputFile   string
	SaveSession  string
	SessionDir   string
	SessionStats bool

	// Run modes
	Interactive bool
	TUI         bool
	ServeAddr   string
	Completion  string
	ShowVersion bool

	LogLevel string
}

// Default returns the configuration used when nothing is specified: the
// basic hand of 10 against 21 on the [0, 20] interval.
func Default() AppConfig {
	return AppConfig{
		CardsValue:      10,
		Target:          21,
		Method:          MethodAll,
		Tolerance:       rootfind.DefaultTolerance,
		MaxIterations:   rootfind.DefaultMaxIterations,
		DivergenceBound: rootfind.DefaultDivergenceBound,
		LowerBound:      0,
		UpperBound:      20,
		InitialGuess:    0,
		Timeout:         DefaultTimeout,
		SessionDir:      DefaultSessionDir,
		LogLevel:        "info",
	}
}

// Problem returns the equation described by the configuration.
func (c AppConfig) Problem() rootfind.Problem {
	return rootfind.NewProblem(c.CardsValue, c.Target)
}

// ToSolveConfig converts the configuration into engine parameters.
func (c AppConfig) ToSolveConfig() rootfind.SolveConfig {
	return rootfind.SolveConfig{
		Tolerance:       c.Tolerance,
		MaxIterations:   c.MaxIterations,
		DivergenceBound: c.DivergenceBound,
		LowerBound:      c.LowerBound,
		UpperBound:      c.UpperBound,
		InitialGuess:    c.InitialGuess,
	}
}

// Validate checks user input ranges. Bracket consistency is not checked
// here: an invalid bracket is a bisection outcome, not a configuration error.
func (c AppConfig) Validate(availableMethods []string) error {
	finite := []struct {
		field string
		value float64
	}{
		{"cards", c.CardsValue},
		{"target", c.Target},
		{"a", c.LowerBound},
		{"b", c.UpperBound},
		{"x0", c.InitialGuess},
	}
	var errs []error
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errs = append(errs, apperrors.ValidationError{Field: f.field, Message: "must be a finite number"})
		}
	}
	if !(c.Tolerance >= MinTolerance && c.Tolerance <= MaxTolerance) {
		errs = append(errs, apperrors.ValidationError{
			Field:   "tol",
			Message: fmt.Sprintf("must be between %g and %g, got %g", MinTolerance, MaxTolerance, c.Tolerance),
		})
	}
	if c.MaxIterations < MinMaxIterations || c.MaxIterations > MaxMaxIterations {
		errs = append(errs, apperrors.ValidationError{
			Field:   "max-iter",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinMaxIterations, MaxMaxIterations, c.MaxIterations),
		})
	}
	if !(c.DivergenceBound > 0) {
		errs = append(errs, apperrors.ValidationError{Field: "divergence", Message: "must be positive"})
	}
	if c.Timeout <= 0 {
		errs = append(errs, apperrors.ValidationError{Field: "timeout", Message: "must be positive"})
	}
	if !isKnownMethod(c.Method, availableMethods) {
		errs = append(errs, apperrors.ValidationError{
			Field:   "method",
			Message: fmt.Sprintf("unknown method %q (available: %s, %s)", c.Method, MethodAll, strings.Join(availableMethods, ", ")),
		})
	}
	if c.OutputFile != "" && !isSupportedExport(c.OutputFile) {
		errs = append(errs, apperrors.ValidationError{Field: "o", Message: "output file must end in .csv or .json"})
	}
	return errors.Join(errs...)
}

func isKnownMethod(method string, available []string) bool {
	if method == MethodAll {
		return true
	}
	for _, m := range available {
		if m == method {
			return true
		}
	}
	return false
}

func isSupportedExport(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".csv") || strings.HasSuffix(lower, ".json")
}

// ParseConfig parses args into an AppConfig, applies ROOTCALC_* environment
// overrides for flags not given on the command line, and validates the
// result. Usage and parse errors are written to errorWriter.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableMethods []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := Default()
	fs.Float64Var(&config.CardsValue, "cards", config.CardsValue, "Current value of the hand.")
	fs.Float64Var(&config.Target, "target", config.Target, "Target value to reach.")
	fs.StringVar(&config.Method, "method", config.Method,
		fmt.Sprintf("Method to run: %s or one of %s.", MethodAll, strings.Join(availableMethods, ", ")))
	fs.Float64Var(&config.Tolerance, "tol", config.Tolerance, "Convergence tolerance on the step and on |f(x)|.")
	fs.IntVar(&config.MaxIterations, "max-iter", config.MaxIterations, "Maximum number of iterations per method.")
	fs.Float64Var(&config.DivergenceBound, "divergence", config.DivergenceBound, "Iterate magnitude treated as divergence.")
	fs.Float64Var(&config.LowerBound, "a", config.LowerBound, "Lower bound of the bisection interval.")
	fs.Float64Var(&config.UpperBound, "b", config.UpperBound, "Upper bound of the bisection interval.")
	fs.Float64Var(&config.InitialGuess, "x0", config.InitialGuess, "Initial guess for Newton-Raphson and fixed-point iteration.")
	fs.BoolVar(&config.AutoBracket, "auto-bracket", false, "Search a sign-changing interval around x0 for bisection.")
	fs.StringVar(&config.Scenario, "scenario", "", "Run a predefined scenario (see -list-scenarios).")
	fs.BoolVar(&config.ListScenarios, "list-scenarios", false, "List predefined scenarios and exit.")
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "Maximum duration of the whole run.")
	fs.BoolVar(&config.Verbose, "v", false, "Show the iteration history of each method.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.Details, "d", false, "Show convergence analysis and accuracy details.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode: print only the roots.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Alias for -q.")
	fs.StringVar(&config.OutputFile, "o", "", "Export results to a .csv or .json file.")
	fs.StringVar(&config.OutputFile, "output", "", "Alias for -o.")
	fs.StringVar(&config.SaveSession, "save-session", "", "Save the run as a named session.")
	fs.StringVar(&config.SessionDir, "session-dir", config.SessionDir, "Directory holding saved sessions.")
	fs.BoolVar(&config.SessionStats, "session-stats", false, "Summarize the saved sessions and exit.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the interactive dashboard.")
	fs.StringVar(&config.ServeAddr, "serve", "", "Serve the HTTP API on the given address (e.g. :8080).")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level: debug, info, warn, error.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)
	config.Method = strings.ToLower(strings.TrimSpace(config.Method))

	if config.ShowVersion || config.Completion != "" || config.ListScenarios || config.SessionStats {
		return config, nil
	}
	if err := config.Validate(availableMethods); err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}
	return config, nil
}
