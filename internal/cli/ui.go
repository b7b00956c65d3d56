//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/rootcalc/internal/format"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/ui"
)

const (
	// ProgressRefreshRate is the spinner and ETA refresh period.
	ProgressRefreshRate = 100 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an aggregated progress bar until
// progressChan is closed. It calls wg.Done when it returns.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numSolvers int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numSolvers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(0, 0, agg.IsMultiSolver()))
	s.Start()
	defer func() {
		s.Stop()
		fmt.Fprintf(out, "\r%s%s%s\n", ui.ColorGreen(), format.FormatProgressBarWithETA(1, 0, ProgressBarWidth), ui.ColorReset())
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			p := agg.Update(update)
			s.UpdateSuffix(progressSuffix(p.AverageProgress, p.ETA, agg.IsMultiSolver()))
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg.CalculateAverage(), agg.GetETA(), agg.IsMultiSolver()))
		}
	}
}

func progressSuffix(progress float64, eta time.Duration, multi bool) string {
	label := "Solving"
	if multi {
		label = "Comparing methods"
	}
	return fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth))
}
