package simulator

import (
	"math"
	"math/rand"
	"time"
)

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// windowGrid enumerates the quantization grid from start to end inclusive.
func windowGrid(start, end time.Time, step time.Duration) []time.Time {
	var grid []time.Time
	for cur := start; !cur.After(end); cur = cur.Add(step) {
		grid = append(grid, cur)
	}
	return grid
}
