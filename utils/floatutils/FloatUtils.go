// Package floatutils provides utilities for working with floats
package floatutils

import "math"

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// Round rounds value to the given number of decimal places. Halves are
// rounded away from zero.
func Round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

// RoundInt rounds value to the nearest integer, rounding halves to
// even
func RoundInt(value float64) int {
	return int(math.RoundToEven(value))
}
