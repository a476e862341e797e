package ui

import (
	"math"
	"strings"
)

// Brightness is the 10-level ramp used for policy art, darkest first.
const Brightness = " .:-=+*#%@"

// normalize maps v into [0,1] by min-max. A flat range maps to 0.5 and
// non-finite values to 0.
func normalize(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if hi > lo {
		return (v - lo) / (hi - lo)
	}
	return 0.5
}

func brightnessIndex(v, lo, hi float64) int {
	return int(math.Round(normalize(v, lo, hi) * float64(len(Brightness)-1)))
}

// scoreRange returns min and max over the finite scores.
func scoreRange(scores []float32) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range scores {
		v := float64(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// PolicyArt renders scores as rows of width cells, each cell drawn twice so
// the grid looks square in a terminal.
func PolicyArt(scores []float32, width int) string {
	lo, hi := scoreRange(scores)
	var sb strings.Builder
	for i, s := range scores {
		c := Brightness[brightnessIndex(float64(s), lo, hi)]
		sb.WriteByte(c)
		sb.WriteByte(c)
		if (i+1)%width == 0 || i == len(scores)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
