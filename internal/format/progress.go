package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps estimates produced from very slow progress rates.
const maxETA = 24 * time.Hour

// ProgressState tracks the completion fraction of several concurrent solvers.
type ProgressState struct {
	progresses []float64
	numSolvers int
}

// NewProgressState returns a state for numSolvers solvers, all at 0.
func NewProgressState(numSolvers int) *ProgressState {
	if numSolvers < 0 {
		numSolvers = 0
	}
	return &ProgressState{progresses: make([]float64, numSolvers), numSolvers: numSolvers}
}

// Update records the progress of solver index, clamped to [0, 1].
// Out-of-range indexes are ignored.
func (p *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= p.numSolvers {
		return
	}
	p.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress across all solvers.
func (p *ProgressState) CalculateAverage() float64 {
	if p.numSolvers == 0 {
		return 0
	}
	var sum float64
	for _, v := range p.progresses {
		sum += v
	}
	return sum / float64(p.numSolvers)
}

// ProgressWithETA extends ProgressState with a remaining-time estimate based
// on an exponentially smoothed progress rate. It is safe for concurrent use.
type ProgressWithETA struct {
	*ProgressState
	mu           sync.Mutex
	numSolvers   int
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA returns a tracker for numSolvers solvers starting now.
func NewProgressWithETA(numSolvers int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numSolvers),
		numSolvers:    numSolvers,
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records an update and returns the new average with an ETA.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if elapsed := now.Sub(p.lastUpdate).Seconds(); elapsed > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = 0.7*p.progressRate + 0.3*rate
		}
		p.lastProgress = avg
		p.lastUpdate = now
	}
	return avg, p.etaLocked(avg)
}

// GetETA returns the current estimate without recording an update.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.CalculateAverage())
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 || avg <= 0 || avg >= 1 {
		return 0
	}
	eta := time.Duration((1 - avg) / p.progressRate * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// FormatETA renders a remaining-time estimate compactly.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		if s := int(eta.Seconds()) % 60; s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	default:
		h := int(eta.Hours())
		if m := int(eta.Minutes()) % 60; m > 0 {
			return fmt.Sprintf("%dh%dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
}

// ProgressBar renders progress as a bar of length block characters.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar] pct% ETA: eta".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
