package util

import (
	"golang.org/x/exp/constraints"
	"math"
)

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

// Clamp constrains value to [minValue, maxValue]
func Clamp[T constraints.Ordered](value T, minValue T, maxValue T) T {
	if value > maxValue {
		return maxValue
	}
	if value < minValue {
		return minValue
	}
	return value
}

// RoundAndClamp rounds to the nearest integer, ties go to the even neighbour (42.5 -> 42, 43.5 -> 44),
// and constrains the result to [minValue, maxValue]. Infinities clamp to the nearest bound.
// NaN has no defined result and must be rejected by the caller.
func RoundAndClamp(value float64, minValue int, maxValue int) int {
	return int(Clamp(math.RoundToEven(value), float64(minValue), float64(maxValue)))
}

// UpdateSimpleMovingAvg calculates the new moving average, based on an existing average and buffer size
func UpdateSimpleMovingAvg(oldAvg float64, n int, newValue float64) float64 {
	return oldAvg + (1/float64(n))*(newValue-oldAvg)
}
