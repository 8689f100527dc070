package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moguls753/lsm-bench/internal/config"
)

func init() {
	color.NoColor = true
}

func writeResult(t *testing.T, dir, name string, size int, p50, p90, p99 float64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	body := fmt.Sprintf(`{
		"database_size": %d,
		"latencies_ns": {"p50": %g, "p90": %g, "p99": %g},
		"blocks_read": {"p50": 1, "p90": 2, "p99": 3}
	}`, size, p50, p90, p99)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func writeSample(t *testing.T, dir, name string, requests int, start, end string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	body := fmt.Sprintf(`{"num_requests": %d, "start_time": %q, "end_time": %q}`, requests, start, end)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func testConfig(t *testing.T) (config.Config, string) {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.OutputDir = filepath.Join(root, "plots")
	cfg.CSV = true
	cfg.Latency.Datasets = []config.Dataset{
		{Name: "Pre-treatment", Dir: filepath.Join(root, "before")},
		{Name: "Smaller Block Size", Dir: filepath.Join(root, "after")},
	}
	cfg.Range.Datasets = []config.Dataset{{Name: "range", Dir: filepath.Join(root, "range")}}
	cfg.Throughput.BaseDir = filepath.Join(root, "get")
	cfg.Throughput.Clients = []string{"1", "2"}
	require.NoError(t, cfg.Validate())
	return cfg, root
}

func TestLatencyReport(t *testing.T) {
	cfg, root := testConfig(t)
	writeResult(t, filepath.Join(root, "before"), "b.json", 2_000_000, 2000, 4000, 8000)
	writeResult(t, filepath.Join(root, "before"), "a.json", 1_000_000, 1000, 3000, 7000)
	writeResult(t, filepath.Join(root, "after"), "a.json", 1_000_000, 500, 1500, 3500)
	writeResult(t, filepath.Join(root, "after"), "b.json", 2_000_000, 900, 2000, 4000)

	var out bytes.Buffer
	r, err := New(cfg, &out, nil)
	require.NoError(t, err)
	require.NoError(t, r.Latency(context.Background()))

	text := out.String()
	assert.Contains(t, text, "✓ Pre-treatment: 2 results")
	assert.Contains(t, text, "Statistical Comparisons (vs Pre-treatment)")

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "latency.html"))

	csv, err := os.ReadFile(filepath.Join(cfg.OutputDir, "latency_pre_treatment.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csv), "Database size (MB),latency_p50")
	// sorted by size, bytes to MB and ns to us
	assert.Contains(t, string(csv), "\n1,1,3,7,1,2,3\n2,2,4,8,1,2,3\n")
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "latency_smaller_block_size.csv"))
}

func TestLatencyReportFailsBeforeAnyOutput(t *testing.T) {
	cfg, root := testConfig(t)
	writeResult(t, filepath.Join(root, "before"), "a.json", 1_000_000, 1000, 3000, 7000)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "after"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "after", "broken.json"), []byte(`{"database_size": 1}`), 0o644))

	var out bytes.Buffer
	r, err := New(cfg, &out, nil)
	require.NoError(t, err)

	err = r.Latency(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset Smaller Block Size")
	assert.Contains(t, err.Error(), "broken.json")

	assert.NoDirExists(t, cfg.OutputDir)
	assert.NotContains(t, out.String(), "Statistical Summary")
}

func TestUnreachablePostgresLeavesNoFiles(t *testing.T) {
	cfg, root := testConfig(t)
	cfg.PostgresDSN = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"
	writeResult(t, filepath.Join(root, "before"), "a.json", 1_000_000, 1000, 3000, 7000)
	writeResult(t, filepath.Join(root, "after"), "a.json", 1_000_000, 500, 1500, 3500)
	writeSample(t, filepath.Join(cfg.Throughput.BaseDir, "1"), "c1.json", 100, "10__00__00.0", "10:00:03.0")
	writeSample(t, filepath.Join(cfg.Throughput.BaseDir, "2"), "c1.json", 50, "10__00__01.0", "10:00:01.0")

	var out bytes.Buffer
	r, err := New(cfg, &out, nil)
	require.NoError(t, err)

	require.Error(t, r.Latency(context.Background()))
	require.Error(t, r.Throughput(context.Background()))

	assert.NoDirExists(t, cfg.OutputDir)
	assert.NotContains(t, out.String(), "Exported")
}

func TestLatencyReportEmptyDatasets(t *testing.T) {
	cfg, root := testConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "before"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "after"), 0o755))

	var out bytes.Buffer
	r, err := New(cfg, &out, nil)
	require.NoError(t, err)
	require.NoError(t, r.Latency(context.Background()))

	assert.Contains(t, out.String(), "(no results)")
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "latency.html"))
}

func TestRangeReport(t *testing.T) {
	cfg, root := testConfig(t)
	cfg.Format = "svg"
	dir := filepath.Join(root, "range")
	writeResult(t, dir, "100000.json", 0, 2_000_000, 3_000_000, 4_000_000)
	writeResult(t, dir, "1000.json", 0, 1_000_000, 1_500_000, 2_000_000)

	var out bytes.Buffer
	r, err := New(cfg, &out, nil)
	require.NoError(t, err)
	require.NoError(t, r.Range(context.Background()))

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "range_latency.svg"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "range_blocks.svg"))

	csv, err := os.ReadFile(filepath.Join(cfg.OutputDir, "range_range.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csv), "\n1000,1,1.5,2,1\n100000,2,3,4,1\n")
}

func TestThroughputReport(t *testing.T) {
	cfg, _ := testConfig(t)
	base := cfg.Throughput.BaseDir
	writeSample(t, filepath.Join(base, "1"), "c1.json", 100, "10__00__00.0", "10:00:03.0")
	writeSample(t, filepath.Join(base, "1"), "c2.json", 200, "10__00__00.0", "10:00:03.0")
	writeSample(t, filepath.Join(base, "2"), "c1.json", 50, "10__00__01.0", "10:00:01.0")

	var out bytes.Buffer
	r, err := New(cfg, &out, nil)
	require.NoError(t, err)
	require.NoError(t, r.Throughput(context.Background()))

	assert.Contains(t, out.String(), "100.0 req/s")
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "throughput.html"))

	csv, err := os.ReadFile(filepath.Join(cfg.OutputDir, "throughput.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csv), "\n1,1,2,300,3,100\n2,2,1,50,0,0\n")
}

func TestThroughputReportMissingGroup(t *testing.T) {
	cfg, _ := testConfig(t)
	writeSample(t, filepath.Join(cfg.Throughput.BaseDir, "1"), "c1.json", 100, "10__00__00.0", "10:00:03.0")

	var out bytes.Buffer
	r, err := New(cfg, &out, nil)
	require.NoError(t, err)

	err = r.Throughput(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group 2")
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "throughput.html"))
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Format = "bmp"
	_, err := New(cfg, &bytes.Buffer{}, nil)
	assert.ErrorContains(t, err, "unknown output format")
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "smaller_block_size", slug("Smaller Block Size"))
	assert.Equal(t, "pre_treatment", slug("Pre-treatment"))
	assert.Equal(t, "a_b", slug("  A // b  "))
}
