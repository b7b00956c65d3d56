package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/rootcalc/internal/config"
	"github.com/agbru/rootcalc/internal/format"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/scenario"
)

// LogsModel is the scrollable event log of a run.
type LogsModel struct {
	methodNames []string
	preamble    []string
	entries     []string
	offset      int
	follow      bool
	keys        KeyMap
	width       int
	height      int
}

// NewLogsModel creates a log for the given method display names.
func NewLogsModel(methodNames []string) LogsModel {
	return LogsModel{methodNames: methodNames, follow: true, keys: DefaultKeyMap()}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// visibleLines is the number of entries fitting inside the panel.
func (l LogsModel) visibleLines(height int) int {
	return max(height-3, 1)
}

func (l *LogsModel) add(line string) {
	l.entries = append(l.entries, logTimeStyle.Render(time.Now().Format("15:04:05"))+" "+line)
}

// AddExecutionConfig records the run parameters. They survive Reset.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	l.preamble = []string{
		metricLabelStyle.Render("Equation:  ") + metricValueStyle.Render(fmt.Sprintf("f(x) = %g + x - %g = 0", cfg.CardsValue, cfg.Target)),
		metricLabelStyle.Render("Tolerance: ") + metricValueStyle.Render(fmt.Sprintf("%g", cfg.Tolerance)) +
			metricLabelStyle.Render("  max iter: ") + metricValueStyle.Render(fmt.Sprintf("%d", cfg.MaxIterations)),
		metricLabelStyle.Render("Interval:  ") + metricValueStyle.Render(fmt.Sprintf("[%g, %g]", cfg.LowerBound, cfg.UpperBound)) +
			metricLabelStyle.Render("  x0: ") + metricValueStyle.Render(fmt.Sprintf("%g", cfg.InitialGuess)),
		metricLabelStyle.Render("Methods:   ") + logMethodStyle.Render(strings.Join(l.methodNames, ", ")),
		"",
	}
}

// AddProgressEntry logs a method starting or finishing.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	name := fmt.Sprintf("solver #%d", msg.SolverIndex+1)
	if msg.SolverIndex >= 0 && msg.SolverIndex < len(l.methodNames) {
		name = l.methodNames[msg.SolverIndex]
	}
	verb := "started"
	if msg.Value >= 1 {
		verb = "finished"
	}
	l.add(logMethodStyle.Render(name) + " " + verb +
		dimStyle.Render(fmt.Sprintf("  (%.0f%% overall)", msg.AverageProgress*100)))
}

// AddResults logs one summary line per method.
func (l *LogsModel) AddResults(results []orchestration.RunResult) {
	for _, r := range results {
		l.add(resultLine(r))
	}
}

func resultLine(r orchestration.RunResult) string {
	res := r.Result
	name := logMethodStyle.Render(fmt.Sprintf("%-14s", r.Name))
	stats := fmt.Sprintf("root=%s iter=%d err=%s",
		format.FormatRoot(res.Root, res.HasRoot), res.IterationCount, format.FormatError(res.FinalError))
	switch {
	case res.Converged:
		return name + " " + logSuccessStyle.Render("OK  ") + stats
	case r.Err != nil:
		return name + " " + logErrorStyle.Render("ERR ") + r.Err.Error()
	default:
		return name + " " + logWarningStyle.Render("CAP ") + stats + dimStyle.Render("  "+res.Message)
	}
}

// AddFinalResult logs the agreed root and its blackjack reading.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	cmp := rootfind.Compare(msg.Problem, orchestration.SolveResults(msg.Results))
	if cmp.BestPrecision == nil {
		return
	}
	best := cmp.BestPrecision
	l.add(logSuccessStyle.Render("Root ") + metricValueStyle.Render(format.FormatRoot(best.Root, true)) +
		dimStyle.Render(fmt.Sprintf("  analytic %s, best precision %s", format.FormatRoot(cmp.AnalyticRoot, true), best.Method.DisplayName())))
	if cmp.FewestIterations != nil {
		l.add(dimStyle.Render(fmt.Sprintf("Fewest iterations: %s (%d)", cmp.FewestIterations.Method.DisplayName(), cmp.FewestIterations.IterationCount)))
	}
	in := scenario.Interpret(msg.Problem, best.Root)
	l.add(accentStyle.Render(fmt.Sprintf("Advice: %s (risk: %s)", in.Advice, in.Risk)))
}

// AddError logs a failed run.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(logErrorStyle.Render(fmt.Sprintf("Error after %s: %v", format.FormatExecutionDuration(msg.Duration), msg.Err)))
}

// Reset drops the run entries and keeps the configuration preamble.
func (l *LogsModel) Reset() {
	l.entries = nil
	l.offset = 0
	l.follow = true
}

// Update scrolls the log.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	lines := l.lines()
	page := l.visibleLines(l.height)
	maxOffset := max(len(lines)-page, 0)
	if l.follow {
		l.offset = maxOffset
	}

	switch {
	case key.Matches(msg, l.keys.Up):
		l.offset--
	case key.Matches(msg, l.keys.Down):
		l.offset++
	case key.Matches(msg, l.keys.PageUp):
		l.offset -= page
	case key.Matches(msg, l.keys.PageDown):
		l.offset += page
	}
	l.offset = min(max(l.offset, 0), maxOffset)
	l.follow = l.offset == maxOffset
}

func (l LogsModel) lines() []string {
	return append(append([]string(nil), l.preamble...), l.entries...)
}

// renderToHeight renders the panel at the given outer height.
func (l LogsModel) renderToHeight(height int) string {
	lines := l.lines()
	page := l.visibleLines(height)
	maxOffset := max(len(lines)-page, 0)
	offset := min(l.offset, maxOffset)
	if l.follow {
		offset = maxOffset
	}
	end := min(offset+page, len(lines))

	body := panelTitleStyle.Render("Log") + "\n" + strings.Join(lines[offset:end], "\n")
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(max(height-2, 0)).
		MaxHeight(height).
		Render(body)
}

// View renders the panel at its configured height.
func (l LogsModel) View() string {
	return l.renderToHeight(l.height)
}
