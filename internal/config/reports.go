package config

import (
	"github.com/cockroachdb/errors"

	"github.com/moguls753/lsm-bench/internal/benchmark"
	"github.com/moguls753/lsm-bench/internal/loader"
	"github.com/moguls753/lsm-bench/internal/series"
	"github.com/moguls753/lsm-bench/internal/throughput"
)

// Dataset is a named directory of result files
type Dataset struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
}

// Metric selects one percentile of a result group
type Metric struct {
	Label      string `yaml:"label"`
	Group      string `yaml:"group"`
	Percentile string `yaml:"percentile"`
	Unit       string `yaml:"unit"`
}

// Chart names the metrics drawn together. With more than one dataset a chart
// compares a single metric across datasets.
type Chart struct {
	Name       string   `yaml:"name"`
	Title      string   `yaml:"title"`
	YLabel     string   `yaml:"y_label"`
	Metrics    []string `yaml:"metrics"`
	Cumulative bool     `yaml:"cumulative"`
}

// SeriesReport configures a latency-style report.
type SeriesReport struct {
	Title          string    `yaml:"title"`
	XLabel         string    `yaml:"x_label"`
	AxisUnit       string    `yaml:"axis_unit"`
	Source         string    `yaml:"source"`
	IndependentKey string    `yaml:"independent_key"`
	LatencyKey     string    `yaml:"latency_key"`
	BlocksKey      string    `yaml:"blocks_key"`
	Extensions     []string  `yaml:"extensions"`
	Datasets       []Dataset `yaml:"datasets"`
	Metrics        []Metric  `yaml:"metrics"`
	Charts         []Chart   `yaml:"charts"`
}

// Schema returns the loader schema for the report's files
func (r SeriesReport) Schema() loader.Schema {
	return loader.Schema{
		Extensions:     r.Extensions,
		Independent:    loader.IndependentSource(r.Source),
		IndependentKey: r.IndependentKey,
		LatencyKey:     r.LatencyKey,
		BlocksKey:      r.BlocksKey,
	}
}

// Spec resolves units and returns the assembly spec
func (r SeriesReport) Spec() (series.Spec, error) {
	axis, err := benchmark.ParseUnit(r.AxisUnit)
	if err != nil {
		return series.Spec{}, errors.Wrap(err, "axis")
	}

	spec := series.Spec{AxisUnit: axis}
	for _, m := range r.Metrics {
		unit, err := benchmark.ParseUnit(m.Unit)
		if err != nil {
			return series.Spec{}, errors.Wrapf(err, "metric %q", m.Label)
		}
		spec.Metrics = append(spec.Metrics, series.Metric{
			Label:      m.Label,
			Group:      series.Group(m.Group),
			Percentile: m.Percentile,
			Unit:       unit,
		})
	}
	return spec, nil
}

// Validate checks the report without touching the filesystem
func (r SeriesReport) Validate() error {
	if err := r.Schema().Validate(); err != nil {
		return err
	}
	if _, err := r.Spec(); err != nil {
		return err
	}

	if len(r.Datasets) == 0 {
		return errors.New("at least one dataset is required")
	}
	names := make(map[string]bool, len(r.Datasets))
	for _, d := range r.Datasets {
		if d.Name == "" || d.Dir == "" {
			return errors.New("datasets need a name and a directory")
		}
		if names[d.Name] {
			return errors.Newf("duplicate dataset %q", d.Name)
		}
		names[d.Name] = true
	}

	// Assemble checks group and percentile; labels are checked here
	if len(r.Metrics) == 0 {
		return errors.New("at least one metric is required")
	}
	labels := make(map[string]bool, len(r.Metrics))
	for _, m := range r.Metrics {
		if m.Label == "" {
			return errors.New("metrics need a label")
		}
		if labels[m.Label] {
			return errors.Newf("duplicate metric %q", m.Label)
		}
		if m.Group != string(series.Latency) && m.Group != string(series.Blocks) {
			return errors.Newf("metric %q: unknown group %q", m.Label, m.Group)
		}
		if !benchmark.ValidPercentile(m.Percentile) {
			return errors.Newf("metric %q: unknown percentile %q", m.Label, m.Percentile)
		}
		labels[m.Label] = true
	}

	for _, c := range r.Charts {
		if c.Name == "" {
			return errors.New("charts need a name")
		}
		if len(c.Metrics) == 0 {
			return errors.Newf("chart %q has no metrics", c.Name)
		}
		if len(r.Datasets) > 1 && len(c.Metrics) != 1 {
			return errors.Newf("chart %q compares %d datasets and must name exactly one metric", c.Name, len(r.Datasets))
		}
		for _, m := range c.Metrics {
			if !labels[m] {
				return errors.Newf("chart %q: unknown metric %q", c.Name, m)
			}
		}
	}
	return nil
}

// ThroughputReport configures the client-count throughput report.
type ThroughputReport struct {
	Title       string   `yaml:"title"`
	XLabel      string   `yaml:"x_label"`
	YLabel      string   `yaml:"y_label"`
	BaseDir     string   `yaml:"base_dir"`
	Clients     []string `yaml:"clients"`
	RequestsKey string   `yaml:"requests_key"`
	StartKey    string   `yaml:"start_key"`
	EndKey      string   `yaml:"end_key"`
	StartLayout string   `yaml:"start_layout"`
	EndLayout   string   `yaml:"end_layout"`
	Extensions  []string `yaml:"extensions"`
}

// Schema returns the loader schema for throughput files
func (r ThroughputReport) Schema() loader.ThroughputSchema {
	return loader.ThroughputSchema{
		Extensions:  r.Extensions,
		RequestsKey: r.RequestsKey,
		StartKey:    r.StartKey,
		EndKey:      r.EndKey,
		StartLayout: r.StartLayout,
		EndLayout:   r.EndLayout,
	}
}

// Groups returns the configured client groups, or discovers them under
// BaseDir when none are listed.
func (r ThroughputReport) Groups() ([]throughput.Group, error) {
	if len(r.Clients) == 0 {
		return throughput.DiscoverGroups(r.BaseDir)
	}
	return throughput.GroupsFromLabels(r.BaseDir, r.Clients), nil
}

// Validate checks the report without touching the filesystem
func (r ThroughputReport) Validate() error {
	if r.BaseDir == "" {
		return errors.New("base directory is required")
	}
	for _, label := range r.Clients {
		if _, err := throughput.ParseClients(label); err != nil {
			return err
		}
	}
	return r.Schema().Validate()
}
