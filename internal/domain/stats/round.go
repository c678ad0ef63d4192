package stats

import "math"

// Round rounds half up to the nearest integer.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Round1 rounds half up to one decimal place.
func Round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
