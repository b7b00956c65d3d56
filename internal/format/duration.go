package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders solver timings, which are usually well
// under a millisecond: nanoseconds below 1µs, two decimals up to a second,
// and time.Duration's own rendering above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < 0:
		return "0ns"
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}
	return d.Round(time.Millisecond).String()
}
