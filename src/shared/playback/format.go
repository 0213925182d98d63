package playback

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as m:ss. Unknown times render as 0:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00"
	}

	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func durationKnown(duration float64) bool {
	return !math.IsNaN(duration) && !math.IsInf(duration, 0) && duration > 0
}

func clamp(value float64, min float64, max float64) float64 {
	return math.Max(min, math.Min(value, max))
}
