package render

import (
	"math"
	"strconv"
)

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// BuildNumericTicks generates up to n tick marks spanning [min,max] using the 1,2,2.5,5 pattern.
// Returns raw positions; label formatting is left to FormatNumericTick.
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for v := start; v <= end+bestStep*0.5; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// FormatNumericTick prints a kilogram tick with only the digits it needs.
func FormatNumericTick(v float64) string {
	return strconv.FormatFloat(round6(v), 'f', -1, 64)
}
