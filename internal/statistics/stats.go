package statistics

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Stats holds descriptive measures of one series
type Stats struct {
	N      int
	Median float64
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	CV     float64 // Coefficient of Variation (%)
	Values []float64
}

// Calculate computes all statistical measures for a slice of values.
// An empty slice gives the zero Stats.
func Calculate(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}

	cv := 0.0
	if mean != 0 {
		cv = std / math.Abs(mean) * 100
	}

	return Stats{
		N:      len(sorted),
		Median: median(sorted),
		Mean:   mean,
		StdDev: std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		CV:     cv,
		Values: slices.Clone(values),
	}
}

// median of already sorted values, averaging the middle pair for even lengths
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// HasOverlap checks if two value ranges overlap
func HasOverlap(a, b Stats) bool {
	return !(a.Min > b.Max || b.Min > a.Max)
}
