package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/rootcalc/internal/config"
	"github.com/agbru/rootcalc/internal/logging"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/scenario"
	"github.com/agbru/rootcalc/internal/ui"
)

// REPLConfig holds the initial settings of an interactive session.
type REPLConfig struct {
	// DefaultMethod is a method key or "all".
	DefaultMethod string
	// Target is used when a command gives only the cards value.
	Target float64
	// Solve holds the initial solver parameters.
	Solve rootfind.SolveConfig
	// Timeout bounds each command.
	Timeout time.Duration
	// Logger and Observer are forwarded to the orchestrator.
	Logger   logging.Logger
	Observer orchestration.SolveObserver
}

// REPL is an interactive root-finding session.
type REPL struct {
	config        REPLConfig
	factory       rootfind.SolverFactory
	currentMethod string
	presenter     CLIResultPresenter
	in            io.Reader
	out           io.Writer
}

// NewREPL creates a REPL reading stdin and writing stdout.
func NewREPL(factory rootfind.SolverFactory, cfg REPLConfig) *REPL {
	method := cfg.DefaultMethod
	if method == "" {
		method = orchestration.MethodAll
	}
	if cfg.Target == 0 {
		cfg.Target = 21
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	return &REPL{
		config:        cfg,
		factory:       factory,
		currentMethod: method,
		in:            os.Stdin,
		out:           os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and executes commands until exit or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"root> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🃏 Root Finder - Interactive Mode%s                     %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	y, rs := ui.ColorYellow(), ui.ColorReset()
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), rs)
	fmt.Fprintf(r.out, "  %ssolve <cards> [target]%s   - Solve with the current method\n", y, rs)
	fmt.Fprintf(r.out, "  %scompare <cards> [target]%s - Compare every method\n", y, rs)
	fmt.Fprintf(r.out, "  %smethod <name>%s            - Change method (%s, all)\n", y, rs, strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %stol <value>%s              - Set the tolerance\n", y, rs)
	fmt.Fprintf(r.out, "  %smaxiter <n>%s              - Set the iteration cap\n", y, rs)
	fmt.Fprintf(r.out, "  %sbracket <a> <b>%s          - Set the bisection interval\n", y, rs)
	fmt.Fprintf(r.out, "  %sx0 <value>%s               - Set the initial guess\n", y, rs)
	fmt.Fprintf(r.out, "  %sscenario <name>%s          - Run a predefined scenario\n", y, rs)
	fmt.Fprintf(r.out, "  %sscenarios%s                - List the predefined scenarios\n", y, rs)
	fmt.Fprintf(r.out, "  %slist%s                     - List available methods\n", y, rs)
	fmt.Fprintf(r.out, "  %sstatus%s                   - Display current configuration\n", y, rs)
	fmt.Fprintf(r.out, "  %shelp%s                     - Display this help\n", y, rs)
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s              - Exit interactive mode\n", y, rs, y, rs)
}

// processCommand executes one command line. It returns false on exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "solve", "s":
		r.cmdSolve(args, r.currentMethod)
	case "compare", "cmp":
		r.cmdSolve(args, orchestration.MethodAll)
	case "method", "m":
		r.cmdMethod(args)
	case "tol":
		r.cmdTolerance(args)
	case "maxiter":
		r.cmdMaxIter(args)
	case "bracket":
		r.cmdBracket(args)
	case "x0":
		r.cmdInitialGuess(args)
	case "scenario", "sc":
		r.cmdScenario(args)
	case "scenarios":
		r.cmdScenarios()
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if _, err := strconv.ParseFloat(cmd, 64); err == nil {
			r.cmdSolve(parts, r.currentMethod)
		} else {
			r.errorf("Unknown command: %s", cmd)
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	return true
}

func (r *REPL) errorf(format string, args ...any) {
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorRed(), fmt.Sprintf(format, args...), ui.ColorReset())
}

// parseFloats parses every argument or reports the first invalid one.
func (r *REPL) parseFloats(args []string) ([]float64, bool) {
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			r.errorf("Invalid value: %s", a)
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

func (r *REPL) cmdSolve(args []string, method string) {
	if len(args) == 0 || len(args) > 2 {
		r.errorf("Usage: solve <cards> [target]")
		return
	}
	values, ok := r.parseFloats(args)
	if !ok {
		return
	}
	target := r.config.Target
	if len(values) == 2 {
		target = values[1]
	}
	r.run(rootfind.NewProblem(values[0], target), r.config.Solve, method)
}

// run executes the selected methods and prints the comparison.
func (r *REPL) run(problem rootfind.Problem, cfg rootfind.SolveConfig, method string) int {
	solvers := orchestration.GetSolversToRun(method, r.factory)
	if len(solvers) == 0 {
		r.errorf("Method not found: %s", method)
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Solving %s%s%s with %s%s%s...\n",
		ui.ColorMagenta(), DescribeProblem(problem), ui.ColorReset(),
		ui.ColorCyan(), methodLabel(method), ui.ColorReset())

	results := orchestration.ExecuteSolvers(ctx, solvers, problem, cfg,
		orchestration.ExecuteOptions{Logger: r.config.Logger, Observer: r.config.Observer},
		orchestration.NullProgressReporter{}, r.out)
	code := orchestration.AnalyzeComparisonResults(results, problem, cfg.Tolerance,
		orchestration.PresentationOptions{}, r.presenter, r.presenter, r.out)
	fmt.Fprintln(r.out)
	return code
}

func methodLabel(method string) string {
	if method == orchestration.MethodAll {
		return "all methods"
	}
	return rootfind.Method(method).DisplayName()
}

func (r *REPL) cmdMethod(args []string) {
	if len(args) == 0 {
		r.errorf("Usage: method <name>")
		fmt.Fprintf(r.out, "Available methods: %s, all\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	if name != orchestration.MethodAll {
		if _, err := r.factory.Get(name); err != nil {
			r.errorf("Unknown method: %s", name)
			fmt.Fprintf(r.out, "Available methods: %s, all\n", strings.Join(r.factory.List(), ", "))
			return
		}
	}
	r.currentMethod = name
	fmt.Fprintf(r.out, "Method changed to: %s%s%s\n", ui.ColorGreen(), methodLabel(name), ui.ColorReset())
}

func (r *REPL) cmdTolerance(args []string) {
	if len(args) != 1 {
		r.errorf("Usage: tol <value>")
		return
	}
	values, ok := r.parseFloats(args)
	if !ok {
		return
	}
	if v := values[0]; !(v >= config.MinTolerance && v <= config.MaxTolerance) {
		r.errorf("Tolerance must be between %g and %g", config.MinTolerance, config.MaxTolerance)
		return
	}
	r.config.Solve.Tolerance = values[0]
	fmt.Fprintf(r.out, "Tolerance set to %s%g%s\n", ui.ColorGreen(), values[0], ui.ColorReset())
}

func (r *REPL) cmdMaxIter(args []string) {
	if len(args) != 1 {
		r.errorf("Usage: maxiter <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < config.MinMaxIterations || n > config.MaxMaxIterations {
		r.errorf("Iteration cap must be an integer between %d and %d", config.MinMaxIterations, config.MaxMaxIterations)
		return
	}
	r.config.Solve.MaxIterations = n
	fmt.Fprintf(r.out, "Iteration cap set to %s%d%s\n", ui.ColorGreen(), n, ui.ColorReset())
}

func (r *REPL) cmdBracket(args []string) {
	if len(args) != 2 {
		r.errorf("Usage: bracket <a> <b>")
		return
	}
	values, ok := r.parseFloats(args)
	if !ok {
		return
	}
	r.config.Solve = r.config.Solve.WithBracket(values[0], values[1])
	fmt.Fprintf(r.out, "Bisection interval set to [%s%g%s, %s%g%s]\n",
		ui.ColorGreen(), values[0], ui.ColorReset(), ui.ColorGreen(), values[1], ui.ColorReset())
}

func (r *REPL) cmdInitialGuess(args []string) {
	if len(args) != 1 {
		r.errorf("Usage: x0 <value>")
		return
	}
	values, ok := r.parseFloats(args)
	if !ok {
		return
	}
	r.config.Solve = r.config.Solve.WithInitialGuess(values[0])
	fmt.Fprintf(r.out, "Initial guess set to %s%g%s\n", ui.ColorGreen(), values[0], ui.ColorReset())
}

func (r *REPL) cmdScenario(args []string) {
	if len(args) != 1 {
		r.errorf("Usage: scenario <name>")
		return
	}
	sc, err := scenario.Get(args[0])
	if err != nil {
		r.errorf("%v", err)
		fmt.Fprintf(r.out, "Available scenarios: %s\n", strings.Join(scenario.Names(), ", "))
		return
	}
	fmt.Fprintf(r.out, "%sScenario %s:%s %s\n", ui.ColorBold(), sc.Name, ui.ColorReset(), sc.Description)

	method := orchestration.MethodAll
	if len(sc.Methods) == 1 {
		method = string(sc.Methods[0])
	}
	r.run(sc.Problem, sc.Config, method)
	if sc.ExpectsFailure() {
		fmt.Fprintf(r.out, "Expected outcome: %s%s%s\n\n", ui.ColorYellow(), sc.ExpectedOutcome, ui.ColorReset())
	}
}

func (r *REPL) cmdScenarios() {
	fmt.Fprintf(r.out, "\n%sPredefined scenarios:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, sc := range scenario.List() {
		fmt.Fprintf(r.out, "  %s%-10s%s %s\n", ui.ColorYellow(), sc.Name, ui.ColorReset(), sc.Description)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable methods:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range append(r.factory.List(), orchestration.MethodAll) {
		marker := "  "
		if name == r.currentMethod {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), methodLabel(name))
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	c, s := ui.ColorCyan(), ui.ColorReset()
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), s)
	fmt.Fprintf(r.out, "  Method:         %s%s%s\n", c, r.currentMethod, s)
	fmt.Fprintf(r.out, "  Target:         %s%g%s\n", c, r.config.Target, s)
	fmt.Fprintf(r.out, "  Tolerance:      %s%g%s\n", c, r.config.Solve.Tolerance, s)
	fmt.Fprintf(r.out, "  Max iterations: %s%d%s\n", c, r.config.Solve.MaxIterations, s)
	fmt.Fprintf(r.out, "  Interval:       %s[%g, %g]%s\n", c, r.config.Solve.LowerBound, r.config.Solve.UpperBound, s)
	fmt.Fprintf(r.out, "  Initial guess:  %s%g%s\n", c, r.config.Solve.InitialGuess, s)
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", c, r.config.Timeout, s)
	fmt.Fprintln(r.out)
}
