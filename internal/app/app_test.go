package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/rootcalc/internal/config"
	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/logging"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/scenario"
)

// run builds an application from args (program name excluded) and runs it.
func run(t *testing.T, ctx context.Context, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"rootcalc", "-no-color"}, args...)
	application, err := New(full, &errOut, WithLogger(logging.NopLogger{}))
	if err != nil {
		t.Fatalf("New(%v) failed: %v (stderr: %s)", args, err, errOut.String())
	}
	code := application.Run(ctx, &out)
	return code, out.String(), errOut.String()
}

func TestNew(t *testing.T) {
	t.Parallel()
	var errOut bytes.Buffer
	application, err := New([]string{"rootcalc", "-cards", "6", "-method", "newton"}, &errOut)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if application.Config.CardsValue != 6 || application.Config.Method != "newton" {
		t.Errorf("unexpected config: %+v", application.Config)
	}
	if application.Factory == nil {
		t.Error("default factory not set")
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()
	var errOut bytes.Buffer
	if _, err := New([]string{"rootcalc", "-tol", "5"}, &errOut); err == nil {
		t.Error("expected validation error for -tol 5")
	} else if code := apperrors.ExitCodeFor(err); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}

	_, err := New([]string{"rootcalc", "-h"}, &errOut)
	if !IsHelpError(err) {
		t.Errorf("expected help error, got %v", err)
	}
}

func TestRun_Comparison(t *testing.T) {
	t.Parallel()
	code, out, _ := run(t, context.Background(), "-cards", "6")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output:\n%s", code, out)
	}
	for _, want := range []string{
		"f(x) = 6 + x - 21 = 0",
		"Parallel comparison of 3 methods",
		"Global Status: Success",
		"15.0000000000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_Quiet(t *testing.T) {
	t.Parallel()
	code, out, _ := run(t, context.Background(), "-cards", "6", "-q")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if strings.Contains(out, "Execution Configuration") {
		t.Error("quiet mode printed the configuration")
	}
	if !strings.Contains(out, "newton=15.0000000000") {
		t.Errorf("unexpected quiet output %q", out)
	}
}

func TestRun_NoConvergence(t *testing.T) {
	t.Parallel()
	code, out, _ := run(t, context.Background(), "-cards", "6", "-method", "bisection", "-a", "0", "-b", "0")
	if code != apperrors.ExitErrorNoConvergence {
		t.Errorf("exit code = %d, want %d:\n%s", code, apperrors.ExitErrorNoConvergence, out)
	}
}

func TestRun_AutoBracketFailure(t *testing.T) {
	t.Parallel()
	code, _, errOut := run(t, context.Background(), "-cards", "0", "-target", "1000", "-auto-bracket")
	if code != apperrors.ExitErrorNoConvergence {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorNoConvergence)
	}
	if errOut == "" {
		t.Error("expected an error message")
	}
}

func TestRun_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code, _, _ := run(t, ctx, "-cards", "6")
	if code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRun_Scenario(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		scenario string
		wantCode int
		wantOut  string
	}{
		{"converging hand", "B", apperrors.ExitSuccess, "4.0000000000"},
		{"expected failure", "F", apperrors.ExitSuccess, "Expected outcome reproduced: invalid_bracket"},
		{"case insensitive", "low-HAND", apperrors.ExitSuccess, "Scenario low-hand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, out, _ := run(t, context.Background(), "-scenario", tt.scenario)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d:\n%s", code, tt.wantCode, out)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out)
			}
		})
	}
}

func TestRun_UnknownScenario(t *testing.T) {
	t.Parallel()
	code, _, errOut := run(t, context.Background(), "-scenario", "Z")
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errOut, "Available scenarios") {
		t.Errorf("stderr missing the scenario list: %q", errOut)
	}
}

func TestRun_InfoModes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"version", []string{"-version"}, apperrors.ExitSuccess, "rootcalc " + Version},
		{"list scenarios", []string{"-list-scenarios"}, apperrors.ExitSuccess, "expects invalid_bracket"},
		{"bash completion", []string{"-completion", "bash"}, apperrors.ExitSuccess, "complete -F _rootcalc_completions rootcalc"},
		{"unsupported completion", []string{"-completion", "tcsh"}, apperrors.ExitErrorConfig, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, out, _ := run(t, context.Background(), tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.wantOut != "" && !strings.Contains(out, tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out)
			}
		})
	}
}

func TestRun_ExportAndSessions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	exportPath := filepath.Join(dir, "out", "results.json")
	sessionDir := filepath.Join(dir, "sessions")

	code, out, errOut := run(t, context.Background(),
		"-cards", "17", "-o", exportPath, "-save-session", "mid", "-session-dir", sessionDir)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "Results saved to") || !strings.Contains(out, "Session saved as: mid") {
		t.Errorf("missing save confirmations:\n%s", out)
	}
	if _, err := os.Stat(exportPath); err != nil {
		t.Errorf("export not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(sessionDir, "mid.json")); err != nil {
		t.Errorf("session not written: %v", err)
	}

	code, out, _ = run(t, context.Background(), "-session-stats", "-session-dir", sessionDir)
	if code != apperrors.ExitSuccess {
		t.Fatalf("session stats exit code = %d", code)
	}
	for _, want := range []string{"Sessions in", "Newton-Raphson", "Bisection", "Fixed Point"} {
		if !strings.Contains(out, want) {
			t.Errorf("statistics missing %q:\n%s", want, out)
		}
	}
}

func TestRun_AutoSessionName(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	code, _, errOut := run(t, context.Background(), "-q", "-save-session", "auto", "-session-dir", dir)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "session_*.json"))
	if err != nil || len(matches) != 1 {
		t.Errorf("expected one timestamped session, got %v (%v)", matches, err)
	}
}

func TestRun_SessionStatsEmpty(t *testing.T) {
	t.Parallel()
	code, out, _ := run(t, context.Background(), "-session-stats", "-session-dir", t.TempDir())
	if code != apperrors.ExitSuccess || !strings.Contains(out, "No sessions in") {
		t.Errorf("code=%d output=%q", code, out)
	}
}

func TestApplyScenario(t *testing.T) {
	t.Parallel()
	sc, err := scenario.Get("F")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Verbose = true
	cfg.AutoBracket = true

	got := applyScenario(cfg, sc)
	if got.CardsValue != 6 || got.Target != 21 {
		t.Errorf("problem not applied: %g, %g", got.CardsValue, got.Target)
	}
	if got.LowerBound != 0 || got.UpperBound != 0 {
		t.Errorf("bracket = [%g, %g], want [0, 0]", got.LowerBound, got.UpperBound)
	}
	if got.Method != string(rootfind.MethodBisection) {
		t.Errorf("method = %q, want bisection", got.Method)
	}
	if got.AutoBracket {
		t.Error("auto-bracket should be disabled for scenarios")
	}
	if !got.Verbose {
		t.Error("presentation settings should be kept")
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-version"}, true},
		{[]string{"-cards", "6", "--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-cards", "6"}, false},
		{[]string{"--", "-version"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)
	for _, want := range []string{"rootcalc", "commit:", "go:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("version output missing %q: %s", want, buf.String())
		}
	}
}
