package statistics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Comparison summarises how a candidate series differs from a baseline.
type Comparison struct {
	MedianDiffPct float64 // (candidate - baseline) / baseline, in percent
	PValue        float64 // Mann-Whitney U, two-tailed
	HasOverlap    bool
	Significant   bool // p < 0.05
}

// Compare contrasts candidate against baseline
func Compare(baseline, candidate Stats) Comparison {
	medianDiff := 0.0
	if baseline.Median != 0 {
		medianDiff = (candidate.Median - baseline.Median) / baseline.Median * 100
	}

	p := MannWhitneyU(baseline.Values, candidate.Values)
	return Comparison{
		MedianDiffPct: medianDiff,
		PValue:        p,
		HasOverlap:    HasOverlap(baseline, candidate),
		Significant:   p < 0.05,
	}
}

// MannWhitneyU returns the two-tailed p-value of a Mann-Whitney U test using
// the normal approximation. Empty groups give 1.
func MannWhitneyU(groupA, groupB []float64) float64 {
	n1, n2 := len(groupA), len(groupB)
	if n1 == 0 || n2 == 0 {
		return 1.0
	}

	type ranked struct {
		value float64
		fromA bool
	}
	combined := make([]ranked, 0, n1+n2)
	for _, v := range groupA {
		combined = append(combined, ranked{v, true})
	}
	for _, v := range groupB {
		combined = append(combined, ranked{v, false})
	}
	sort.Slice(combined, func(i, j int) bool {
		return combined[i].value < combined[j].value
	})

	// ties share the average of the ranks they span
	rankSumA := 0.0
	for i := 0; i < len(combined); {
		j := i
		for j < len(combined) && combined[j].value == combined[i].value {
			j++
		}
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if combined[k].fromA {
				rankSumA += avg
			}
		}
		i = j
	}

	u1 := rankSumA - float64(n1*(n1+1))/2
	u := math.Min(u1, float64(n1*n2)-u1)

	meanU := float64(n1*n2) / 2
	stdU := math.Sqrt(float64(n1*n2*(n1+n2+1)) / 12)
	if stdU == 0 {
		return 1.0
	}

	z := (u - meanU) / stdU
	return 2 * distuv.UnitNormal.CDF(-math.Abs(z))
}
