package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/rootcalc/internal/format"
	"github.com/agbru/rootcalc/internal/orchestration"
)

const (
	// sparklineWidth is the space taken by the sparkline label and value.
	sparklineWidth = 17
	// sparklineMinHeight is the chart height from which the host
	// sparklines are drawn.
	sparklineMinHeight = 10
	// minBarWidth is the narrowest chart that still draws a progress bar.
	minBarWidth = 20
)

// errorSeries is the absolute error history of one method.
type errorSeries struct {
	name   string
	errors []float64
}

// ChartModel draws the overall progress, the error history of one method
// and host usage sparklines.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	done            bool
	elapsed         time.Duration
	series          []errorSeries
	selected        int
	cpuHistory      *History
	memHistory      *History
	width           int
	height          int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		cpuHistory: NewHistory(60),
		memHistory: NewHistory(60),
	}
}

// SetSize updates dimensions and resizes the sparkline histories.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if n := w - sparklineWidth; n > 0 {
		c.cpuHistory.Resize(n)
		c.memHistory.Resize(n)
	}
}

// AddDataPoint records the aggregated progress.
func (c *ChartModel) AddDataPoint(_, average float64, eta time.Duration) {
	c.averageProgress = average
	c.eta = eta
}

// SetResults replaces the plotted series with the histories of results.
// The first method with a history is selected.
func (c *ChartModel) SetResults(results []orchestration.RunResult) {
	c.series = c.series[:0]
	for _, r := range results {
		if len(r.Result.History) == 0 {
			continue
		}
		errs := make([]float64, len(r.Result.History))
		for i, rec := range r.Result.History {
			errs[i] = rec.AbsoluteError
		}
		c.series = append(c.series, errorSeries{name: r.Name, errors: errs})
	}
	c.selected = 0
}

// NextSeries selects the next plotted method.
func (c *ChartModel) NextSeries() {
	if len(c.series) > 0 {
		c.selected = (c.selected + 1) % len(c.series)
	}
}

// SelectedMethod returns the plotted method name, or "" when none.
func (c ChartModel) SelectedMethod() string {
	if len(c.series) == 0 {
		return ""
	}
	return c.series[c.selected].name
}

// UpdateSysStats records one host sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone freezes the chart at the final elapsed time.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
	c.averageProgress = 1
}

// Reset clears everything but the dimensions.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.elapsed = 0
	c.series = nil
	c.selected = 0
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// renderProgressBar renders the bar with its percentage and ETA, or ""
// when the chart is too narrow.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - minBarWidth
	if barWidth < 4 {
		return ""
	}
	progress := min(max(c.averageProgress, 0), 1)
	filled := int(progress * float64(barWidth))
	bar := chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))

	suffix := "ETA: " + format.FormatETA(c.eta)
	if c.done {
		suffix = "in " + format.FormatExecutionDuration(c.elapsed)
	}
	return fmt.Sprintf(" %s %5.1f%% %s", bar, progress*100, dimStyle.Render(suffix))
}

// renderSparkline renders one labeled host sparkline.
func renderSparkline(label string, h *History, width int) string {
	values := h.Values()
	if len(values) > width {
		values = values[len(values)-width:]
	}
	style := cpuSparklineStyle
	if label == "MEM" {
		style = memSparklineStyle
	}
	return fmt.Sprintf(" %s %s %s", metricLabelStyle.Render(label),
		style.Render(RenderSparkline(values)), metricValueStyle.Render(fmt.Sprintf("%5.1f%%", h.Last())))
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Convergence Chart"))
	if bar := c.renderProgressBar(); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}

	inner := max(c.width-4, 1)
	chartRows := c.height - 5
	showSparklines := c.height >= sparklineMinHeight
	if showSparklines {
		chartRows -= 2
	}

	if len(c.series) > 0 && chartRows > 0 {
		s := c.series[c.selected]
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf(" log|error| of %s (%d iterations, last %s)",
			s.name, len(s.errors), format.FormatError(s.errors[len(s.errors)-1]))))
		for _, line := range RenderBrailleChart(ErrorLevels(s.errors), inner-1, chartRows) {
			b.WriteString("\n ")
			b.WriteString(errorChartStyle.Render(line))
		}
	}

	if showSparklines {
		width := max(c.width-sparklineWidth, 1)
		b.WriteString("\n")
		b.WriteString(renderSparkline("CPU", c.cpuHistory, width))
		b.WriteString("\n")
		b.WriteString(renderSparkline("MEM", c.memHistory, width))
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
