// Package runner builds reports: load every dataset, assemble series, print
// tables, export, then render charts. Nothing is printed, exported or drawn
// until every input has loaded.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"

	"github.com/moguls753/lsm-bench/internal/config"
	"github.com/moguls753/lsm-bench/internal/display"
	"github.com/moguls753/lsm-bench/internal/export"
	"github.com/moguls753/lsm-bench/internal/loader"
	"github.com/moguls753/lsm-bench/internal/render"
	"github.com/moguls753/lsm-bench/internal/series"
	"github.com/moguls753/lsm-bench/internal/throughput"
)

// throughputColor matches the single-line throughput chart of the recorded runs
const throughputColor = "#1f77b4"

// Runner holds everything shared between reports.
type Runner struct {
	cfg      config.Config
	loader   *loader.Loader
	renderer render.Renderer
	out      io.Writer
	logger   hclog.Logger
}

// New prepares a runner. cfg is expected to be validated already.
func New(cfg config.Config, out io.Writer, logger hclog.Logger) (*Runner, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	renderer, err := render.New(cfg.Format)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:      cfg,
		loader:   loader.New(logger),
		renderer: renderer,
		out:      out,
		logger:   logger.Named("runner"),
	}, nil
}

// Latency builds the database-size latency report
func (r *Runner) Latency(ctx context.Context) error {
	return r.seriesReport(ctx, "latency", r.cfg.Latency)
}

// Range builds the range-size latency report
func (r *Runner) Range(ctx context.Context) error {
	return r.seriesReport(ctx, "range", r.cfg.Range)
}

func (r *Runner) banner(report, title string, inputs []string) {
	display.Banner(r.out, fmt.Sprintf("LSM Benchmark Report: %s", title), map[string]string{
		"Report": report,
		"Inputs": strings.Join(inputs, ", "),
		"Output": r.cfg.OutputDir,
		"Format": r.cfg.Format,
	}, []string{"Report", "Inputs", "Output", "Format"})
}

func (r *Runner) seriesReport(ctx context.Context, name string, rep config.SeriesReport) error {
	spec, err := rep.Spec()
	if err != nil {
		return err
	}
	schema := rep.Schema()

	dirs := make([]string, len(rep.Datasets))
	for i, d := range rep.Datasets {
		dirs[i] = d.Dir
	}
	r.banner(name, rep.Title, dirs)

	fmt.Fprintf(r.out, "\n→ Loading %d dataset(s)...\n", len(rep.Datasets))
	datasets := make([]series.Dataset, 0, len(rep.Datasets))
	for _, d := range rep.Datasets {
		results, err := r.loader.LoadResults(d.Dir, schema)
		if err != nil {
			return errors.Wrapf(err, "dataset %s", d.Name)
		}

		set, err := series.Assemble(results, spec)
		if err != nil {
			return errors.Wrapf(err, "dataset %s", d.Name)
		}
		if set.Len() == 0 {
			r.logger.Warn("dataset has no result files", "dataset", d.Name, "dir", d.Dir)
		}
		fmt.Fprintf(r.out, "  ✓ %s: %d results\n", d.Name, set.Len())
		datasets = append(datasets, series.Dataset{Name: d.Name, Set: set})
	}

	charts, err := buildCharts(rep, datasets)
	if err != nil {
		return err
	}
	r.logger.Info("assembled report", "report", name, "datasets", len(datasets), "charts", len(charts))

	for _, d := range datasets {
		display.Series(r.out, fmt.Sprintf("%s - %s", rep.Title, d.Name), rep.XLabel, d.Set)
	}
	if len(datasets) > 1 {
		for _, m := range spec.Metrics {
			display.ComparisonStatistics(r.out, m.Label, datasets)
		}
	}

	// database before files: a failed export leaves no output behind
	if r.cfg.PostgresDSN != "" {
		if err := r.exportSeries(ctx, name, datasets); err != nil {
			return err
		}
	}
	if r.cfg.CSV {
		for _, d := range datasets {
			path := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("%s_%s.csv", name, slug(d.Name)))
			if err := r.writeCSV(path, func() error {
				return export.SeriesToCSV(path, rep.XLabel, d.Set)
			}); err != nil {
				return err
			}
		}
	}

	return r.render(name, charts)
}

func buildCharts(rep config.SeriesReport, datasets []series.Dataset) ([]render.Chart, error) {
	charts := make([]render.Chart, 0, len(rep.Charts))
	if len(datasets) == 0 {
		return charts, nil
	}
	for _, c := range rep.Charts {
		if len(c.Metrics) == 0 {
			return nil, errors.Newf("chart %s has no metrics", c.Name)
		}
		if len(datasets) > 1 {
			chart, err := render.ComparisonChart(c.Name, c.Title, rep.XLabel, c.YLabel, datasets, c.Metrics[0], c.Cumulative)
			if err != nil {
				return nil, errors.Wrapf(err, "chart %s", c.Name)
			}
			charts = append(charts, chart)
			continue
		}

		set, err := datasets[0].Set.Select(c.Metrics...)
		if err != nil {
			return nil, errors.Wrapf(err, "chart %s", c.Name)
		}
		charts = append(charts, render.SeriesChart(c.Name, c.Title, rep.XLabel, c.YLabel, set, c.Cumulative))
	}
	return charts, nil
}

// Throughput builds the client-count throughput report
func (r *Runner) Throughput(ctx context.Context) error {
	rep := r.cfg.Throughput

	groups, err := rep.Groups()
	if err != nil {
		return err
	}
	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Label
	}
	r.banner("throughput", rep.Title, []string{rep.BaseDir})

	fmt.Fprintf(r.out, "\n→ Aggregating %d client group(s): %s\n", len(groups), strings.Join(labels, ", "))
	agg := throughput.NewAggregator(r.loader, rep.Schema(), r.logger)
	points, err := agg.Run(groups)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "  ✓ %d groups aggregated\n", len(points))

	set := series.FromThroughput(points, "requests_per_second")
	chart := render.SeriesChart("throughput", rep.Title, rep.XLabel, rep.YLabel, set, false)
	for i := range chart.Lines {
		chart.Lines[i].Color = throughputColor
	}

	display.Throughput(r.out, rep.Title, points)

	if r.cfg.PostgresDSN != "" {
		if err := r.exportThroughput(ctx, points); err != nil {
			return err
		}
	}
	if r.cfg.CSV {
		path := filepath.Join(r.cfg.OutputDir, "throughput.csv")
		if err := r.writeCSV(path, func() error {
			return export.ThroughputToCSV(path, points)
		}); err != nil {
			return err
		}
	}

	return r.render("throughput", []render.Chart{chart})
}

func (r *Runner) writeCSV(path string, write func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", filepath.Dir(path))
	}
	if err := write(); err != nil {
		return errors.Wrapf(err, "export %s", path)
	}
	fmt.Fprintf(r.out, "✓ Exported %s\n", path)
	return nil
}

func (r *Runner) render(report string, charts []render.Chart) error {
	paths, err := r.renderer.Render(r.cfg.OutputDir, report, charts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(r.out, "✓ Wrote %s\n", p)
	}
	return nil
}

// slug turns a dataset name into a file-name fragment
func slug(name string) string {
	var b strings.Builder
	underscore := false
	for _, c := range strings.ToLower(name) {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
