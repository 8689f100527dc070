package display

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/moguls753/lsm-bench/internal/benchmark"
	"github.com/moguls753/lsm-bench/internal/series"
)

func init() {
	color.NoColor = true
}

func TestSeries(t *testing.T) {
	var buf bytes.Buffer
	set := series.Set{
		Axis: []float64{2, 4.5},
		Series: []series.Series{
			{Label: "p50", Values: []float64{1.25, 3000}},
			{Label: "p99", Values: []float64{10, 20}},
		},
	}

	Series(&buf, "Load Latency", "Database size (MB)", set)

	out := buf.String()
	assert.Contains(t, out, "Load Latency")
	assert.Contains(t, out, "Database size (MB)")
	assert.Contains(t, out, "p50")
	assert.Contains(t, out, "4.50")
	assert.Contains(t, out, "1.25")
	assert.Contains(t, out, "3,000")
}

func TestSeriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	Series(&buf, "Empty", "x", series.Set{})
	assert.Contains(t, buf.String(), "(no results)")
}

func TestThroughput(t *testing.T) {
	var buf bytes.Buffer
	Throughput(&buf, "Throughput", []benchmark.ThroughputPoint{
		{Label: "1", Clients: 1, Files: 1, TotalRequests: 12000, Elapsed: 3 * time.Second, RequestsPerSecond: 4000},
		{Label: "2", Clients: 2, Files: 2, TotalRequests: 0, RequestsPerSecond: 0},
	})

	out := buf.String()
	assert.Contains(t, out, "12,000")
	assert.Contains(t, out, "3s")
	assert.Contains(t, out, "4000.0 req/s")
	assert.Contains(t, out, "0.0 req/s")
}

func TestComparisonStatistics(t *testing.T) {
	before := series.Set{Axis: []float64{1, 2, 3}, Series: []series.Series{{Label: "p50", Values: []float64{1, 2, 3}}}}
	after := series.Set{Axis: []float64{1, 2, 3}, Series: []series.Series{{Label: "p50", Values: []float64{10, 20, 30}}}}

	var buf bytes.Buffer
	ComparisonStatistics(&buf, "p50", []series.Dataset{
		{Name: "Pre-treatment", Set: before},
		{Name: "Smaller Block Size", Set: after},
	})

	out := buf.String()
	assert.Contains(t, out, "Pre-treatment")
	assert.Contains(t, out, "Smaller Block Size")
	assert.Contains(t, out, "vs Pre-treatment")
	assert.Contains(t, out, "+900.0%")
	assert.Contains(t, out, "No overlap")
}

func TestComparisonStatisticsSingleDataset(t *testing.T) {
	set := series.Set{Axis: []float64{1}, Series: []series.Series{{Label: "p50", Values: []float64{1}}}}

	var buf bytes.Buffer
	ComparisonStatistics(&buf, "p50", []series.Dataset{{Name: "only", Set: set}})
	assert.NotContains(t, buf.String(), "Statistical Comparisons")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
