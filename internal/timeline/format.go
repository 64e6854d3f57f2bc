package timeline

import (
	"fmt"
	"math"
)

// FormatTime renders a duration in seconds as "S.SSSs" below one minute and
// "M:SS.SSSs" otherwise.
func FormatTime(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.3fs", seconds)
	}
	minutes := math.Floor(seconds / 60)
	rest := seconds - minutes*60
	// rounding can push 59.9996 up to 60.000
	if math.Round(rest*1000) >= 60000 {
		minutes++
		rest = 0
	}
	return fmt.Sprintf("%d:%06.3fs", int(minutes), rest)
}
