// Package render draws assembled series as line charts with a shaded area
// under every line.
package render

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/moguls753/lsm-bench/internal/series"
)

// Palette assigns colours to lines in order
var Palette = []string{"#99d8c9", "#fdbb84", "#fc9272", "#1f77b4", "#9e9ac8", "#74c476"}

// areaFill is the translucent grey drawn under every line
const areaFill = "rgba(51, 51, 51, 0.1)"

// Line is one drawn series
type Line struct {
	Label string
	X     []float64
	Y     []float64
	Color string
}

// Chart is everything a renderer needs for one figure.
type Chart struct {
	// Name is used in output file names
	Name   string
	Title  string
	XLabel string
	YLabel string
	Lines  []Line
}

// Legend reports whether the chart needs a legend
func (c Chart) Legend() bool {
	return len(c.Lines) > 1
}

func colorAt(i int) string {
	return Palette[i%len(Palette)]
}

// SeriesChart draws every series of one set, optionally as running sums.
func SeriesChart(name, title, xLabel, yLabel string, set series.Set, cumulative bool) Chart {
	if cumulative {
		set = set.Cumulative()
	}

	chart := Chart{Name: name, Title: title, XLabel: xLabel, YLabel: yLabel}
	for i, s := range set.Series {
		chart.Lines = append(chart.Lines, Line{
			Label: s.Label,
			X:     slices.Clone(set.Axis),
			Y:     slices.Clone(s.Values),
			Color: colorAt(i),
		})
	}
	return chart
}

// ComparisonChart overlays the same metric from several datasets on shared
// axes, one colour and legend entry per dataset.
func ComparisonChart(name, title, xLabel, yLabel string, datasets []series.Dataset, metric string, cumulative bool) (Chart, error) {
	chart := Chart{Name: name, Title: title, XLabel: xLabel, YLabel: yLabel}
	for i, d := range datasets {
		set := d.Set
		if cumulative {
			set = set.Cumulative()
		}

		s, ok := set.Lookup(metric)
		if !ok {
			return Chart{}, errors.Newf("dataset %q has no series %q", d.Name, metric)
		}
		chart.Lines = append(chart.Lines, Line{
			Label: d.Name,
			X:     slices.Clone(set.Axis),
			Y:     slices.Clone(s.Values),
			Color: colorAt(i),
		})
	}
	return chart, nil
}
