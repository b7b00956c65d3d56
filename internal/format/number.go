package format

import (
	"math"
	"strconv"
)

// FormatRoot renders a root with fixed precision, or "undefined" when the
// solver produced none.
func FormatRoot(root float64, ok bool) string {
	if !ok {
		return "undefined"
	}
	return strconv.FormatFloat(root, 'f', 10, 64)
}

// FormatError renders an error magnitude in scientific notation.
func FormatError(e float64) string {
	switch {
	case math.IsInf(e, 1):
		return "inf"
	case math.IsNaN(e):
		return "nan"
	}
	return strconv.FormatFloat(e, 'e', 3, 64)
}

// FormatPercent renders a fraction of one as a percentage.
func FormatPercent(rel float64) string {
	if math.IsInf(rel, 0) || math.IsNaN(rel) {
		return "n/a"
	}
	return strconv.FormatFloat(rel*100, 'f', 6, 64) + "%"
}
