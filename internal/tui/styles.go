package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rootcalc/internal/ui"
)

// Dashboard styles, rebuilt from the active ui theme by initTUIStyles.
var (
	panelStyle         lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	accentStyle        lipgloss.Style
	logTimeStyle       lipgloss.Style
	logMethodStyle     lipgloss.Style
	logSuccessStyle    lipgloss.Style
	logWarningStyle    lipgloss.Style
	logErrorStyle      lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	chartBarStyle      lipgloss.Style
	chartEmptyStyle    lipgloss.Style
	errorChartStyle    lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds every style from ui.GetCurrentTUITheme. Run calls it
// again once the theme has been selected from the flags.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Bg).
		Foreground(t.Text)
	panelTitleStyle = fg(t.Accent).Bold(true)
	headerStyle = fg(t.Accent).Bold(true).Background(t.Bg).Padding(0, 1)
	titleStyle = fg(t.Accent).Bold(true)
	dimStyle = fg(t.Dim)
	accentStyle = fg(t.Accent)

	logTimeStyle = fg(t.Dim)
	logMethodStyle = fg(t.Info)
	logSuccessStyle = fg(t.Success)
	logWarningStyle = fg(t.Warning)
	logErrorStyle = fg(t.Error)

	metricLabelStyle = fg(t.Dim)
	metricValueStyle = fg(t.Accent).Bold(true)

	chartBarStyle = fg(t.Accent)
	chartEmptyStyle = fg(t.Dim)
	errorChartStyle = fg(t.Info)

	footerKeyStyle = fg(t.Accent).Bold(true)
	footerDescStyle = fg(t.Dim)

	statusRunningStyle = fg(t.Success).Bold(true)
	statusPausedStyle = fg(t.Warning).Bold(true)
	statusDoneStyle = fg(t.Accent).Bold(true)
	statusErrorStyle = fg(t.Error).Bold(true)

	cpuSparklineStyle = fg(t.Accent)
	memSparklineStyle = fg(t.Warning)
}
