package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rootcalc/internal/config"
	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
	"github.com/agbru/rootcalc/internal/sysmon"
)

// Options carries the collaborators of a dashboard run.
type Options struct {
	Version string
	Execute orchestration.ExecuteOptions
}

// ExecutionState holds the run-related fields of a dashboard session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	solvers    []rootfind.Solver
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds the terminal size and derives the panel sizes.
type LayoutManager struct {
	width  int
	height int
}

// Layout constants for the dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	LogsPanelWidthPercent = 55
	MetricsPanelHeight    = 8
)

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.logsWidth()
}

func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/2)
}

func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	execOpts  orchestration.ExecuteOptions
	ref       *programRef
	paused    bool
}

// NewModel creates the dashboard model for cfg.
func NewModel(parentCtx context.Context, solvers []rootfind.Solver, cfg config.AppConfig, opts Options) Model {
	names := make([]string, len(solvers))
	for i, s := range solvers {
		names[i] = s.Name()
	}

	ctx, cancel := context.WithTimeout(parentCtx, cfg.Timeout)

	logs := NewLogsModel(names)
	logs.AddExecutionConfig(cfg)
	keymap := DefaultKeyMap()
	p := cfg.Problem()

	return Model{
		header:  NewHeaderModel(opts.Version, equation(p)),
		logs:    logs,
		metrics: NewMetricsModel(),
		chart:   NewChartModel(),
		footer:  NewFooterModel(keymap),
		keymap:  keymap,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			solvers:  solvers,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		execOpts:  opts.Execute,
		ref:       &programRef{},
	}
}

func equation(p rootfind.Problem) string {
	return fmt.Sprintf("f(x) = %g + x - %g = 0", p.CardsValue, p.Target)
}

// Init starts the run and the samplers.
func (m Model) Init() tea.Cmd {
	return m.startRun()
}

func (m Model) startRun() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startSolveCmd(m.ref, m.ctx, m.solvers, m.config, m.execOpts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles every incoming message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if !m.paused {
			m.logs.AddProgressEntry(msg)
			m.chart.AddDataPoint(msg.Value, msg.AverageProgress, msg.ETA)
			m.metrics.UpdateProgress(msg.AverageProgress)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		m.logs.AddResults(msg.Results)
		m.chart.SetResults(msg.Results)
		m.metrics.SetSummary(Summarize(m.config.Problem(), msg.Results, m.config.Tolerance))
		return m, nil

	case FinalResultMsg:
		m.logs.AddFinalResult(msg)
		return m, nil

	case ErrorMsg:
		m.logs.AddError(msg)
		m.footer.SetError(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(m.ctx), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case SolveCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.chart.SetDone(m.header.Elapsed())
		m.footer.SetDone(true)
		m.footer.SetError(msg.ExitCode != apperrors.ExitSuccess)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation || m.done {
			return m, nil
		}
		m.done = true
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		m.header.SetDone()
		m.footer.SetDone(true)
		m.footer.SetError(true)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithTimeout(m.parentCtx, m.config.Timeout)

		m.header.Reset()
		m.logs.Reset()
		m.chart.Reset()
		m.metrics = NewMetricsModel()
		m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess
		return m, m.startRun()

	case key.Matches(msg, m.keymap.NextMethod):
		m.chart.NextSeries()
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	logs := m.logs.renderToHeight(lipgloss.Height(rightCol))
	body := lipgloss.JoinHorizontal(lipgloss.Top, logs, rightCol)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.logs.SetSize(m.logsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run starts the dashboard and returns the exit code of the last run.
func Run(ctx context.Context, solvers []rootfind.Solver, cfg config.AppConfig, opts Options) int {
	initTUIStyles()

	model := NewModel(ctx, solvers, cfg, opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if apperrors.IsContextError(err) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startSolveCmd runs the comparison and reports completion.
func startSolveCmd(ref *programRef, ctx context.Context, solvers []rootfind.Solver, cfg config.AppConfig, opts orchestration.ExecuteOptions, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		problem := cfg.Problem()
		solveCfg := cfg.ToSolveConfig()
		results := orchestration.ExecuteSolvers(ctx, solvers, problem, solveCfg, opts, reporter, io.Discard)
		presOpts := orchestration.PresentationOptions{Verbose: cfg.Verbose, Details: cfg.Details}
		exitCode := orchestration.AnalyzeComparisonResults(results, problem, solveCfg.Tolerance, presOpts, presenter, presenter, io.Discard)
		return SolveCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd schedules the next TickMsg.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapInuse:    ms.HeapInuse,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample(ctx)
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd reports the end of the run context.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
