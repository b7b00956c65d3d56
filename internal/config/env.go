// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the ROOTCALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func floatEnv(dst func(*AppConfig) *float64) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolEnv(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

func stringEnv(dst func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		*dst(c) = v
	}
}

// envOverrides is the declarative table of all environment variable overrides,
// grouped as numeric, duration, string, bool.
var envOverrides = []envOverride{
	// Numeric overrides
	{"CARDS", []string{"cards"}, floatEnv(func(c *AppConfig) *float64 { return &c.CardsValue })},
	{"TARGET", []string{"target"}, floatEnv(func(c *AppConfig) *float64 { return &c.Target })},
	{"TOL", []string{"tol"}, floatEnv(func(c *AppConfig) *float64 { return &c.Tolerance })},
	{"MAX_ITER", []string{"max-iter"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.MaxIterations = parsed
		}
	}},
	{"DIVERGENCE", []string{"divergence"}, floatEnv(func(c *AppConfig) *float64 { return &c.DivergenceBound })},
	{"A", []string{"a"}, floatEnv(func(c *AppConfig) *float64 { return &c.LowerBound })},
	{"B", []string{"b"}, floatEnv(func(c *AppConfig) *float64 { return &c.UpperBound })},
	{"X0", []string{"x0"}, floatEnv(func(c *AppConfig) *float64 { return &c.InitialGuess })},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"METHOD", []string{"method"}, stringEnv(func(c *AppConfig) *string { return &c.Method })},
	{"SCENARIO", []string{"scenario"}, stringEnv(func(c *AppConfig) *string { return &c.Scenario })},
	{"OUTPUT", []string{"output", "o"}, stringEnv(func(c *AppConfig) *string { return &c.OutputFile })},
	{"SAVE_SESSION", []string{"save-session"}, stringEnv(func(c *AppConfig) *string { return &c.SaveSession })},
	{"SESSION_DIR", []string{"session-dir"}, stringEnv(func(c *AppConfig) *string { return &c.SessionDir })},
	{"SERVE", []string{"serve"}, stringEnv(func(c *AppConfig) *string { return &c.ServeAddr })},
	{"LOG_LEVEL", []string{"log-level"}, stringEnv(func(c *AppConfig) *string { return &c.LogLevel })},

	// Boolean overrides
	{"AUTO_BRACKET", []string{"auto-bracket"}, boolEnv(func(c *AppConfig) *bool { return &c.AutoBracket })},
	{"VERBOSE", []string{"v", "verbose"}, boolEnv(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolEnv(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"q", "quiet"}, boolEnv(func(c *AppConfig) *bool { return &c.Quiet })},
	{"INTERACTIVE", []string{"interactive"}, boolEnv(func(c *AppConfig) *bool { return &c.Interactive })},
	{"SESSION_STATS", []string{"session-stats"}, boolEnv(func(c *AppConfig) *bool { return &c.SessionStats })},
	{"TUI", []string{"tui"}, boolEnv(func(c *AppConfig) *bool { return &c.TUI })},
	{"NO_COLOR", []string{"no-color"}, boolEnv(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
