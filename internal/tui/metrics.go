package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rootcalc/internal/format"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
)

// SolveSummary condenses a comparison for the metrics panel.
type SolveSummary struct {
	Total          int
	Converged      int
	Agree          bool
	FewestName     string
	FewestIter     int
	BestName       string
	BestError      float64
	BestKind       rootfind.ConvergenceKind
	BestOrder      float64
	BestHasOrder   bool
	TotalIteration int
}

// Summarize builds the panel summary of results. tolerance is the
// agreement tolerance of the run.
func Summarize(problem rootfind.Problem, results []orchestration.RunResult, tolerance float64) SolveSummary {
	solved := orchestration.SolveResults(results)
	cmp := rootfind.Compare(problem, solved)
	s := SolveSummary{
		Total:     len(results),
		Converged: len(cmp.Converged),
		Agree:     len(cmp.Converged) > 0 && rootfind.Agree(solved, 2*tolerance),
	}
	for _, r := range solved {
		s.TotalIteration += r.IterationCount
	}
	if cmp.FewestIterations != nil {
		s.FewestName = cmp.FewestIterations.Method.DisplayName()
		s.FewestIter = cmp.FewestIterations.IterationCount
	}
	if best := cmp.BestPrecision; best != nil {
		s.BestName = best.Method.DisplayName()
		s.BestError = best.FinalError
		a := rootfind.AnalyzeConvergence(*best)
		s.BestKind, s.BestOrder, s.BestHasOrder = a.Kind, a.Order, a.HasOrder
	}
	return s
}

// MetricsModel shows runtime statistics and the solve summary.
type MetricsModel struct {
	alloc        uint64
	heapInuse    uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	speed        float64 // progress per second
	lastProgress float64
	lastUpdate   time.Time
	summary      *SolveSummary
	width        int
	height       int
}

// NewMetricsModel creates an empty panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{lastUpdate: time.Now()}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats stores a runtime snapshot.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapInuse = msg.HeapInuse
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateProgress refreshes the smoothed progress speed. Updates closer than
// 50ms to the previous one are ignored.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= 0.05 {
		return
	}
	if dp := progress - m.lastProgress; dp > 0 {
		instant := dp / dt
		if m.speed > 0 {
			m.speed = 0.7*m.speed + 0.3*instant
		} else {
			m.speed = instant
		}
	}
	m.lastProgress = progress
	m.lastUpdate = now
}

// SetSummary stores the comparison summary.
func (m *MetricsModel) SetSummary(s SolveSummary) {
	m.summary = &s
}

// View renders the panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render("Metrics"))
	rows.WriteString(fmt.Sprintf("\n  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"), metricValueStyle.Render(formatBytes(m.alloc)+" / "+formatBytes(m.heapInuse)),
		metricLabelStyle.Render(" | "),
		metricLabelStyle.Render("GC:"), metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6))))

	colWidth := max((m.width-6)/2, 0)
	left := []string{formatMetricCol("Speed:", fmt.Sprintf("%.1f%%/s", m.speed*100), colWidth)}
	right := []string{formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth)}

	if s := m.summary; s != nil {
		agreement := "no"
		if s.Agree {
			agreement = "yes"
		}
		left = append(left,
			formatMetricCol("Converged:", fmt.Sprintf("%d/%d", s.Converged, s.Total), colWidth),
			formatMetricCol("Fewest:", orDash(s.FewestName, fmt.Sprintf("%s (%d)", s.FewestName, s.FewestIter)), colWidth),
		)
		right = append(right,
			formatMetricCol("Agreement:", agreement, colWidth),
			formatMetricCol("Best:", orDash(s.BestName, fmt.Sprintf("%s (%s)", s.BestName, format.FormatError(s.BestError))), colWidth),
		)
		if s.BestName != "" {
			order := string(s.BestKind)
			if s.BestHasOrder {
				order += fmt.Sprintf(", p≈%.2f", s.BestOrder)
			}
			left = append(left, formatMetricCol("Order:", order, colWidth))
			right = append(right, formatMetricCol("Iterations:", fmt.Sprintf("%d total", s.TotalIteration), colWidth))
		}
	}

	for i := range left {
		rows.WriteString("\n")
		rows.WriteString(left[i])
		rows.WriteString(right[i])
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func orDash(name, value string) string {
	if name == "" {
		return "-"
	}
	return value
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-11s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
