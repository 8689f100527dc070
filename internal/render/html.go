package render

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLRenderer writes all charts of a report into one interactive page.
type HTMLRenderer struct{}

// Render writes <outDir>/<report>.html
func (HTMLRenderer) Render(outDir, report string, list []Chart) ([]string, error) {
	if err := ensureDir(outDir); err != nil {
		return nil, err
	}

	page := components.NewPage()
	page.PageTitle = report
	for _, c := range list {
		page.AddCharts(drawLineChart(c))
	}

	path := filepath.Join(outDir, report+".html")
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return nil, errors.Wrapf(err, "render %s", path)
	}
	if err := f.Close(); err != nil {
		return nil, errors.Wrapf(err, "close %s", path)
	}
	return []string{path}, nil
}

func drawLineChart(c Chart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Title,
			Width:     "1000px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(c.Legend())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	// value axes take [x, y] pairs instead of a category list
	for _, l := range c.Lines {
		data := make([]opts.LineData, len(l.X))
		for i := range l.X {
			data[i] = opts.LineData{Value: []float64{l.X[i], l.Y[i]}}
		}
		line.AddSeries(l.Label, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: l.Color, Width: 2.5}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: l.Color}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Color: areaFill}),
		)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}))
	return line
}
