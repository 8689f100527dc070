// Package config describes every report lsmbench can build: where the result
// files live, how their JSON maps onto series, and what charts to draw.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// LSMBENCH_* environment variables, then command-line flags.
package config

import (
	"bytes"
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/moguls753/lsm-bench/internal/render"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "LSMBENCH"

// Config is the complete run configuration.
type Config struct {
	LogLevel    string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	CSV         bool   `yaml:"csv" envconfig:"CSV"`
	PostgresDSN string `yaml:"postgres_dsn" envconfig:"POSTGRES_DSN"`

	Latency    SeriesReport     `yaml:"latency" ignored:"true"`
	Range      SeriesReport     `yaml:"range" ignored:"true"`
	Throughput ThroughputReport `yaml:"throughput" ignored:"true"`
}

// Default reproduces the settings of the recorded benchmark runs.
func Default() Config {
	return Config{
		LogLevel:  "info",
		OutputDir: "plots",
		Format:    "html",
		Latency: SeriesReport{
			Title:          "Load Latency",
			XLabel:         "Database size (MB)",
			AxisUnit:       "mb",
			Source:         "field",
			IndependentKey: "database_size",
			LatencyKey:     "latencies_ns",
			BlocksKey:      "blocks_read",
			Datasets: []Dataset{
				{Name: "Pre-treatment", Dir: "bench/smaller_block_size/before"},
				{Name: "Smaller Block Size", Dir: "bench/smaller_block_size/after"},
			},
			Metrics: []Metric{
				{Label: "latency_p50", Group: "latency", Percentile: "p50", Unit: "us"},
				{Label: "latency_p90", Group: "latency", Percentile: "p90", Unit: "us"},
				{Label: "latency_p99", Group: "latency", Percentile: "p99", Unit: "us"},
				{Label: "blocks_p50", Group: "blocks", Percentile: "p50", Unit: "count"},
				{Label: "blocks_p90", Group: "blocks", Percentile: "p90", Unit: "count"},
				{Label: "blocks_p99", Group: "blocks", Percentile: "p99", Unit: "count"},
			},
			Charts: []Chart{
				{Name: "latency", Title: "Load Latency", YLabel: "Latency (μs)", Metrics: []string{"latency_p50"}},
				{Name: "cumulative", Title: "Cumulative Loads Latency", YLabel: "Cumulative Latency (μs)", Metrics: []string{"latency_p50"}, Cumulative: true},
			},
		},
		Range: SeriesReport{
			Title:      "Latency vs Range Size",
			XLabel:     "Range Size",
			Source:     "filename",
			LatencyKey: "latencies_ns",
			BlocksKey:  "blocks_read",
			Datasets: []Dataset{
				{Name: "range", Dir: "bench/range"},
			},
			Metrics: []Metric{
				{Label: "p50", Group: "latency", Percentile: "p50", Unit: "ms"},
				{Label: "p90", Group: "latency", Percentile: "p90", Unit: "ms"},
				{Label: "p99", Group: "latency", Percentile: "p99", Unit: "ms"},
				{Label: "blocks_p50", Group: "blocks", Percentile: "p50", Unit: "count"},
			},
			Charts: []Chart{
				{Name: "latency", Title: "Latency vs Range Size", YLabel: "Latency (ms)", Metrics: []string{"p50", "p90", "p99"}},
				{Name: "blocks", Title: "Blocks Read vs Range Size", YLabel: "Blocks Read", Metrics: []string{"blocks_p50"}},
			},
		},
		Throughput: ThroughputReport{
			Title:       "Throughput vs Number of Clients",
			XLabel:      "Number of Clients",
			YLabel:      "Throughput (GETs per second)",
			BaseDir:     "bench/get",
			Clients:     []string{"1", "2", "4", "8", "16"},
			RequestsKey: "num_requests",
			StartKey:    "start_time",
			EndKey:      "end_time",
			StartLayout: "15__04__05.999999",
			EndLayout:   "15:04:05.999999",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty) and the environment. Unknown YAML keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "read environment")
	}
	return cfg, nil
}

// Validate checks global settings and every report
func (c Config) Validate() error {
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return errors.Newf("unknown log level %q", c.LogLevel)
	}
	if !slices.Contains(render.Formats, c.Format) {
		return errors.Newf("unknown output format %q (want one of %v)", c.Format, render.Formats)
	}
	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}

	if err := c.Latency.Validate(); err != nil {
		return errors.Wrap(err, "latency")
	}
	if err := c.Range.Validate(); err != nil {
		return errors.Wrap(err, "range")
	}
	if err := c.Throughput.Validate(); err != nil {
		return errors.Wrap(err, "throughput")
	}
	return nil
}
