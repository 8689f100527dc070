package series

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moguls753/lsm-bench/internal/benchmark"
)

func result(source string, independent, p50 float64) benchmark.Result {
	return benchmark.Result{
		Source:      source,
		Independent: independent,
		Latency:     benchmark.Percentiles{P50: p50, P90: p50 * 2, P99: p50 * 3},
		BlocksRead:  benchmark.Percentiles{P50: 1, P90: 2, P99: 4},
	}
}

func latencySpec(t *testing.T) Spec {
	t.Helper()
	us, err := benchmark.ParseUnit("us")
	require.NoError(t, err)
	mb, err := benchmark.ParseUnit("mb")
	require.NoError(t, err)

	return Spec{
		AxisUnit: mb,
		Metrics: []Metric{
			{Label: "p50", Group: Latency, Percentile: "p50", Unit: us},
			{Label: "p99", Group: Latency, Percentile: "p99", Unit: us},
			{Label: "blocks p90", Group: Blocks, Percentile: "p90"},
		},
	}
}

func TestAssembleSortsNumerically(t *testing.T) {
	results := []benchmark.Result{
		result("10", 10_000_000, 3000),
		result("2", 2_000_000, 1000),
		result("3", 3_000_000, 2000),
	}

	set, err := Assemble(results, latencySpec(t))
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 3, 10}, set.Axis)
	require.Len(t, set.Series, 3)
	assert.Equal(t, "p50", set.Series[0].Label)
	assert.Equal(t, []float64{1, 2, 3}, set.Series[0].Values)
	assert.Equal(t, []float64{3, 6, 9}, set.Series[1].Values)
	assert.Equal(t, []float64{2, 2, 2}, set.Series[2].Values)

	// input is untouched
	assert.Equal(t, "10", results[0].Source)
}

func TestAssembleStableForTies(t *testing.T) {
	results := []benchmark.Result{
		result("a", 5, 1),
		result("b", 1, 2),
		result("c", 5, 3),
		result("d", 5, 4),
	}

	set, err := Assemble(results, Spec{Metrics: []Metric{{Label: "p50", Group: Latency, Percentile: "p50"}}})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 5, 5, 5}, set.Axis)
	assert.Equal(t, []float64{2, 1, 3, 4}, set.Series[0].Values)
}

func TestAssembleDeterministic(t *testing.T) {
	var results []benchmark.Result
	for i := range 50 {
		results = append(results, result("r", float64(i%7), float64(i)))
	}
	rng := rand.New(rand.NewPCG(1, 2))
	rng.Shuffle(len(results), func(i, j int) { results[i], results[j] = results[j], results[i] })

	first, err := Assemble(results, latencySpec(t))
	require.NoError(t, err)
	second, err := Assemble(results, latencySpec(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, len(results), first.Len())
	for _, s := range first.Series {
		assert.Len(t, s.Values, first.Len())
	}
}

func TestAssembleEmpty(t *testing.T) {
	set, err := Assemble(nil, latencySpec(t))
	require.NoError(t, err)

	assert.Equal(t, 0, set.Len())
	require.Len(t, set.Series, 3)
	for _, s := range set.Series {
		assert.Empty(t, s.Values)
	}
}

func TestAssembleInvalidMetric(t *testing.T) {
	_, err := Assemble(nil, Spec{Metrics: []Metric{{Label: "x", Group: "cpu", Percentile: "p50"}}})
	assert.ErrorContains(t, err, `unknown group "cpu"`)

	_, err = Assemble(nil, Spec{Metrics: []Metric{{Label: "x", Group: Latency, Percentile: "p95"}}})
	assert.ErrorContains(t, err, `unknown percentile "p95"`)
}

func TestCumulative(t *testing.T) {
	assert.Equal(t, []float64{}, Cumulative([]float64{}))
	assert.Equal(t, []float64{}, Cumulative(nil))
	assert.Equal(t, []float64{4}, Cumulative([]float64{4}))

	values := []float64{1, 2, 3, 4.5, -1}
	out := Cumulative(values)
	for i := range values {
		sum := 0.0
		for _, v := range values[:i+1] {
			sum += v
		}
		assert.InDelta(t, sum, out[i], 1e-12)
	}
	assert.Equal(t, []float64{1, 2, 3, 4.5, -1}, values)
}

func TestSetCumulativeKeepsAxis(t *testing.T) {
	set := Set{
		Axis:   []float64{1, 2, 3},
		Series: []Series{{Label: "p50", Values: []float64{1, 1, 1}}},
	}

	cum := set.Cumulative()
	assert.Equal(t, []float64{1, 2, 3}, cum.Axis)
	assert.Equal(t, []float64{1, 2, 3}, cum.Series[0].Values)
	assert.Equal(t, []float64{1, 1, 1}, set.Series[0].Values)
}

func TestSelect(t *testing.T) {
	set := Set{
		Axis: []float64{1},
		Series: []Series{
			{Label: "p50", Values: []float64{1}},
			{Label: "p99", Values: []float64{9}},
		},
	}

	picked, err := set.Select("p99")
	require.NoError(t, err)
	require.Len(t, picked.Series, 1)
	assert.Equal(t, []float64{9}, picked.Series[0].Values)

	_, err = set.Select("p90")
	assert.Error(t, err)
}

func TestFromThroughputKeepsOrder(t *testing.T) {
	points := []benchmark.ThroughputPoint{
		{Clients: 4, RequestsPerSecond: 40},
		{Clients: 1, RequestsPerSecond: 10},
	}

	set := FromThroughput(points, "throughput")
	assert.Equal(t, []float64{4, 1}, set.Axis)
	assert.Equal(t, []float64{40, 10}, set.Series[0].Values)
}
