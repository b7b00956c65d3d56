package tui

import "math"

// sparkBlocks maps levels 0..7 to the Unicode lower block elements.
var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// History keeps the most recent samples up to a fixed capacity.
type History struct {
	samples  []float64
	capacity int
}

// NewHistory creates a history holding at most capacity samples.
func NewHistory(capacity int) *History {
	return &History{capacity: max(capacity, 1)}
}

// Push appends v, dropping the oldest sample when full.
func (h *History) Push(v float64) {
	if len(h.samples) == h.capacity {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.capacity-1]
	}
	h.samples = append(h.samples, v)
}

// Len returns the number of samples.
func (h *History) Len() int { return len(h.samples) }

// Cap returns the capacity.
func (h *History) Cap() int { return h.capacity }

// Last returns the newest sample, or 0 when empty.
func (h *History) Last() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Values returns a copy of the samples, oldest first.
func (h *History) Values() []float64 {
	if len(h.samples) == 0 {
		return nil
	}
	return append([]float64(nil), h.samples...)
}

// Resize changes the capacity and keeps the newest samples that fit.
func (h *History) Resize(capacity int) {
	capacity = max(capacity, 1)
	if extra := len(h.samples) - capacity; extra > 0 {
		h.samples = append([]float64(nil), h.samples[extra:]...)
	}
	h.capacity = capacity
}

// Reset drops every sample.
func (h *History) Reset() {
	h.samples = h.samples[:0]
}

// clampPercent bounds v to [0, 100]. NaN maps to 100.
func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v > 100:
		return 100
	case v < 0:
		return 0
	}
	return v
}

// RenderSparkline draws values in [0, 100] as one row of block elements.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = sparkBlocks[int(clampPercent(v)/100*7)]
	}
	return string(runes)
}

// errorFloorExponent is the decade mapped to level 0 by ErrorLevels.
const errorFloorExponent = -16

// ErrorLevels maps absolute errors to [0, 100] on a log scale between
// 1e-16 and the largest finite error. Zero maps to 0; non-finite errors
// map to 100.
func ErrorLevels(errs []float64) []float64 {
	if len(errs) == 0 {
		return nil
	}
	top := float64(errorFloorExponent + 1)
	for _, e := range errs {
		if e > 0 && !math.IsInf(e, 0) {
			top = math.Max(top, math.Log10(e))
		}
	}
	span := top - errorFloorExponent

	levels := make([]float64, len(errs))
	for i, e := range errs {
		switch {
		case math.IsNaN(e) || math.IsInf(e, 0):
			levels[i] = 100
		case e <= 0:
			levels[i] = 0
		default:
			levels[i] = clampPercent((math.Log10(e) - errorFloorExponent) / span * 100)
		}
	}
	return levels
}

// brailleBits gives the dot bit for (column 0..1, row 0..3) of a braille
// cell; the glyph is U+2800 plus the set bits.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderBrailleChart plots values in [0, 100] on a width×rows grid of braille
// cells, two samples per cell, newest on the right.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	dotRows, dotCols := rows*4, width*2
	if len(values) > dotCols {
		values = values[len(values)-dotCols:]
	}
	offset := dotCols - len(values)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = 0x2800
		}
	}

	for i, v := range values {
		col := offset + i
		row := dotRows - 1 - int(clampPercent(v)/100*float64(dotRows-1))
		grid[row/4][col/2] |= brailleBits[col%2][row%4]
	}

	lines := make([]string, rows)
	for r, cells := range grid {
		lines[r] = string(cells)
	}
	return lines
}
