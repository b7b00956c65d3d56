package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs a new entry.
type FlagCompletion struct {
	Long       string   // long flag name without dashes (e.g., "method")
	Short      string   // short flag without dash (e.g., "v")
	Help       string   // description text
	Values     []string // static suggestions (nil = boolean or free value)
	ValueName  string   // value label in zsh (e.g., "number"); empty for booleans
	IsFile     bool     // value is a file path
	IsMethod   bool     // values come from the method list
	IsScenario bool     // values come from the scenario list
	Section    string   // fish section heading
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Help: "Show version information", Section: "Help and version"},
	{Long: "cards", Help: "Current value of the cards", ValueName: "number", Section: "Problem"},
	{Long: "target", Help: "Target value", Values: []string{"21"}, ValueName: "number", Section: "Problem"},
	{Long: "method", Help: "Root-finding method", IsMethod: true, ValueName: "method", Section: "Solver"},
	{Long: "tol", Help: "Convergence tolerance", Values: []string{"1e-4", "1e-6", "1e-8", "1e-10", "1e-12"}, ValueName: "tolerance", Section: "Solver"},
	{Long: "max-iter", Help: "Maximum number of iterations", Values: []string{"50", "100", "500", "1000"}, ValueName: "count", Section: "Solver"},
	{Long: "divergence", Help: "Divergence bound on |x|", ValueName: "bound", Section: "Solver"},
	{Long: "a", Help: "Lower bound of the bisection interval", ValueName: "number", Section: "Solver"},
	{Long: "b", Help: "Upper bound of the bisection interval", ValueName: "number", Section: "Solver"},
	{Long: "x0", Help: "Initial guess for Newton and fixed point", ValueName: "number", Section: "Solver"},
	{Long: "auto-bracket", Help: "Search a sign-changing interval around x0", Section: "Solver"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"5s", "30s", "1m", "5m"}, ValueName: "duration", Section: "Solver"},
	{Long: "scenario", Help: "Run a predefined scenario", IsScenario: true, ValueName: "scenario", Section: "Scenarios"},
	{Long: "list-scenarios", Help: "List the predefined scenarios", Section: "Scenarios"},
	{Long: "verbose", Short: "v", Help: "Show the iteration history", Section: "Output"},
	{Long: "details", Short: "d", Help: "Show the convergence analysis", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts", Section: "Output"},
	{Long: "output", Short: "o", Help: "Export results (.csv or .json)", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "save-session", Help: "Save the run as a named session", ValueName: "name", Section: "Output"},
	{Long: "session-dir", Help: "Session directory", IsFile: true, ValueName: "dir", Section: "Output"},
	{Long: "session-stats", Help: "Summarize saved sessions", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Output"},
	{Long: "interactive", Help: "Start the interactive mode", Section: "Run modes"},
	{Long: "tui", Help: "Start the dashboard", Section: "Run modes"},
	{Long: "serve", Help: "Serve the HTTP API on the given address", Values: []string{":8080"}, ValueName: "addr", Section: "Run modes"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Run modes"},
}

// GenerateCompletion writes a completion script for shell.
func GenerateCompletion(out io.Writer, shell string, methods, scenarios []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, methods, scenarios)
	case "zsh":
		return generateZshCompletion(out, methods, scenarios)
	case "fish":
		return generateFishCompletion(out, methods, scenarios)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, methods, scenarios)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// flagNames returns the dashed spellings of f.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	return names
}

// dynamicValues returns the shell variable holding f's values, if any.
func dynamicValues(f FlagCompletion) (string, bool) {
	switch {
	case f.IsMethod:
		return "methods", true
	case f.IsScenario:
		return "scenarios", true
	}
	return "", false
}

func generateBashCompletion(out io.Writer, methods, scenarios []string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		names := flagNames(f)
		opts = append(opts, names...)

		var body string
		if v, ok := dynamicValues(f); ok {
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "${%s}" -- "${cur}") )`, v)
		} else if f.IsFile {
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		} else if len(f.Values) > 0 {
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		} else {
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(names, "|"), body)
	}

	script := fmt.Sprintf(`# Bash completion script for rootcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_rootcalc_completions() {
    local cur prev opts methods scenarios
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    methods="%s all"
    scenarios="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _rootcalc_completions rootcalc
`, strings.Join(opts, " "), strings.Join(methods, " "), strings.Join(scenarios, " "), cases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, methods, scenarios []string) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef rootcalc

# Zsh completion script for rootcalc
# Add this to your ~/.zshrc or place in $fpath

_rootcalc() {
    local -a methods scenarios
    methods=(%s all)
    scenarios=(%s)

    _arguments -s \
%s
}

_rootcalc "$@"
`, strings.Join(methods, " "), strings.Join(scenarios, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats f as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	if v, ok := dynamicValues(f); ok {
		valueSuffix = fmt.Sprintf(":%s:($%s)", f.ValueName, v)
	} else if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer, methods, scenarios []string) error {
	lines := []string{
		"# Fish completion script for rootcalc",
		"# Add this to ~/.config/fish/completions/rootcalc.fish",
		"",
		"# Disable file completion by default",
		"complete -c rootcalc -f",
	}

	lists := map[string]string{
		"methods":   strings.Join(append(append([]string{}, methods...), "all"), " "),
		"scenarios": strings.Join(scenarios, " "),
	}
	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, lists))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats f as a fish complete command.
func fishCompleteLine(f FlagCompletion, lists map[string]string) string {
	parts := []string{"complete -c rootcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		// Go's flag package accepts single-dash long flags as well.
		parts = append(parts, "-o "+f.Long, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	if v, ok := dynamicValues(f); ok {
		parts = append(parts, fmt.Sprintf("-xa '%s'", lists[v]))
	} else if f.IsFile {
		parts = append(parts, "-rF")
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func psQuote(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

func generatePowerShellCompletion(out io.Writer, methods, scenarios []string) error {
	var optionEntries, switchEntries []string
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}

		var source string
		if v, ok := dynamicValues(f); ok {
			source = "$rootcalc" + strings.ToUpper(v[:1]) + v[1:]
		} else if len(f.Values) > 0 && !f.IsFile {
			source = "@(" + psQuote(f.Values) + ")"
		} else {
			continue
		}
		for _, name := range flagNames(f) {
			switchEntries = append(switchEntries, fmt.Sprintf(`        '%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, name, source))
		}
	}

	script := fmt.Sprintf(`# PowerShell completion script for rootcalc
# Add this to your $PROFILE

$rootcalcMethods = @(%s, 'all')
$rootcalcScenarios = @(%s)

Register-ArgumentCompleter -CommandName 'rootcalc' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psQuote(methods), psQuote(scenarios), strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion powershell generation failed: %w", err)
	}
	return nil
}
