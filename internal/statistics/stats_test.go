package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	s := Calculate([]float64{4, 1, 3, 2})

	assert.Equal(t, 4, s.N)
	assert.InDelta(t, 2.5, s.Median, 1e-12)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 1.2909944487, s.StdDev, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.InDelta(t, 51.6397779, s.CV, 1e-6)
	assert.Equal(t, []float64{4, 1, 3, 2}, s.Values)
}

func TestCalculateEdgeCases(t *testing.T) {
	assert.Equal(t, Stats{}, Calculate(nil))

	single := Calculate([]float64{7})
	assert.Equal(t, 7.0, single.Median)
	assert.Equal(t, 0.0, single.StdDev)
	assert.Equal(t, 0.0, single.CV)
}

func TestCompare(t *testing.T) {
	before := Calculate([]float64{10, 11, 12, 13, 14, 15, 16, 17})
	after := Calculate([]float64{20, 21, 22, 23, 24, 25, 26, 27})

	c := Compare(before, after)
	assert.False(t, c.HasOverlap)
	assert.True(t, c.Significant)
	assert.Less(t, c.PValue, 0.01)
	assert.InDelta(t, (23.5-13.5)/13.5*100, c.MedianDiffPct, 1e-9)

	same := Compare(before, before)
	assert.True(t, same.HasOverlap)
	assert.False(t, same.Significant)
	assert.InDelta(t, 1.0, same.PValue, 1e-9)
}

func TestMannWhitneyUEmpty(t *testing.T) {
	assert.Equal(t, 1.0, MannWhitneyU(nil, []float64{1}))
	assert.Equal(t, 1.0, MannWhitneyU([]float64{1}, nil))
}
