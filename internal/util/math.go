package util

import (
	"golang.org/x/exp/constraints"
)

// Coerce returns a value that is at least min and at most max, otherwise value
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

// Ratio calculates the ration that target has in comparison to rangeMin and rangeMax
// Make sure that:
// rangeMin <= target <= rangeMax
// rangeMax - rangeMin != 0
func Ratio(target float64, rangeMin float64, rangeMax float64) float64 {
	return (target - rangeMin) / (rangeMax - rangeMin)
}

// Percent formats the position of target within [0, total] as a whole percentage,
// an empty range counts as fully scrolled
func Percent(target int, total int) int {
	if total <= 0 {
		return 100
	}
	ratio := Ratio(float64(Coerce(target, 0, total)), 0, float64(total))
	return int(ratio * 100)
}
