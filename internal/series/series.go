// Package series turns loaded benchmark results into index-aligned series
// ready for tables, exports and charts.
package series

import (
	"cmp"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/moguls753/lsm-bench/internal/benchmark"
)

// Group selects which percentile mapping of a result a metric reads.
type Group string

const (
	Latency Group = "latency"
	Blocks  Group = "blocks"
)

// Metric describes one dependent series: a percentile of a group, rescaled
// by a declared unit.
type Metric struct {
	Label      string
	Group      Group
	Percentile string
	Unit       benchmark.Unit
}

func (m Metric) validate() error {
	if m.Group != Latency && m.Group != Blocks {
		return errors.Newf("metric %q: unknown group %q", m.Label, m.Group)
	}
	if !benchmark.ValidPercentile(m.Percentile) {
		return errors.Newf("metric %q: unknown percentile %q", m.Label, m.Percentile)
	}
	return nil
}

func (m Metric) extract(r benchmark.Result) float64 {
	p := r.Latency
	if m.Group == Blocks {
		p = r.BlocksRead
	}
	// validate has already checked the label
	v, _ := p.Get(m.Percentile)
	return m.Unit.Apply(v)
}

// Spec is the projection Assemble performs.
type Spec struct {
	AxisUnit benchmark.Unit
	Metrics  []Metric
}

// Series is one named dependent sequence.
type Series struct {
	Label  string
	Values []float64
}

// Set is an independent axis with index-aligned dependent series. A Set is
// never modified after it is built; transforms return new sets.
type Set struct {
	Axis   []float64
	Series []Series
}

// Dataset is a named set, one side of a comparison.
type Dataset struct {
	Name string
	Set  Set
}

// Assemble sorts results by their independent value, ascending and stable
// for ties, and projects every metric of spec into a series. No results
// yields a set with empty axis and empty series.
func Assemble(results []benchmark.Result, spec Spec) (Set, error) {
	for _, m := range spec.Metrics {
		if err := m.validate(); err != nil {
			return Set{}, err
		}
	}

	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b benchmark.Result) int {
		return cmp.Compare(a.Independent, b.Independent)
	})

	set := Set{
		Axis:   make([]float64, len(sorted)),
		Series: make([]Series, len(spec.Metrics)),
	}
	for i, r := range sorted {
		set.Axis[i] = spec.AxisUnit.Apply(r.Independent)
	}
	for j, m := range spec.Metrics {
		values := make([]float64, len(sorted))
		for i, r := range sorted {
			values[i] = m.extract(r)
		}
		set.Series[j] = Series{Label: m.Label, Values: values}
	}
	return set, nil
}

// FromThroughput builds a set with client counts on the axis and a single
// requests-per-second series. Points keep the order they were given in.
func FromThroughput(points []benchmark.ThroughputPoint, label string) Set {
	set := Set{
		Axis:   make([]float64, len(points)),
		Series: []Series{{Label: label, Values: make([]float64, len(points))}},
	}
	for i, p := range points {
		set.Axis[i] = float64(p.Clients)
		set.Series[0].Values[i] = p.RequestsPerSecond
	}
	return set
}

// Len returns the number of points on the axis
func (s Set) Len() int {
	return len(s.Axis)
}

// Lookup finds a series by label
func (s Set) Lookup(label string) (Series, bool) {
	for _, series := range s.Series {
		if series.Label == label {
			return series, true
		}
	}
	return Series{}, false
}

// Select returns a set restricted to the named series, in the given order.
func (s Set) Select(labels ...string) (Set, error) {
	out := Set{Axis: slices.Clone(s.Axis)}
	for _, label := range labels {
		series, ok := s.Lookup(label)
		if !ok {
			return Set{}, errors.Newf("no series %q", label)
		}
		out.Series = append(out.Series, Series{Label: series.Label, Values: slices.Clone(series.Values)})
	}
	return out, nil
}

// Cumulative returns a set whose series are running sums of s's series.
// The axis is unchanged.
func (s Set) Cumulative() Set {
	out := Set{
		Axis:   slices.Clone(s.Axis),
		Series: make([]Series, len(s.Series)),
	}
	for i, series := range s.Series {
		out.Series[i] = Series{Label: series.Label, Values: Cumulative(series.Values)}
	}
	return out
}

// Cumulative returns the prefix sums of values: out[i] = values[0] + ... + values[i].
func Cumulative(values []float64) []float64 {
	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		out[i] = sum
	}
	return out
}
