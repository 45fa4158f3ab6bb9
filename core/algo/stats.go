// Package algo has the small numeric reductions behind every aggregate.
package algo

import (
	"math"
	"slices"
	"strconv"
)

// SumInts returns the total of the values, 0 for an empty slice.
func SumInts(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// MeanInts returns the arithmetic mean of integer values, 0 for an empty slice.
func MeanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	return float64(SumInts(values)) / float64(len(values))
}

// RoundHalfEven rounds to the nearest integer, ties to even (14.5 -> 14, 15.5 -> 16).
func RoundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

// RoundTo rounds v to the given number of decimal places using the shortest
// correctly rounded decimal form, the same result as formatting with %.Nf.
func RoundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}

// Quantile returns the q-th quantile (0 <= q <= 1) of sorted values using
// linear interpolation between the closest ranks. It returns 0 for an empty slice.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	h := float64(n-1) * q
	lo := int(math.Floor(h))
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// FiveNumber returns min, Q1, median, Q3 and max of the values.
// The input is not modified. All results are 0 for an empty slice.
func FiveNumber(values []float64) (minV, q1, median, q3, maxV float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted[0], Quantile(sorted, 0.25), Quantile(sorted, 0.5), Quantile(sorted, 0.75), sorted[len(sorted)-1]
}
