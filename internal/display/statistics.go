package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/moguls753/lsm-bench/internal/series"
	"github.com/moguls753/lsm-bench/internal/statistics"
)

// ComparisonStatistics prints descriptive statistics of one metric for every
// dataset, followed by each dataset compared against the first.
func ComparisonStatistics(w io.Writer, metric string, datasets []series.Dataset) {
	if len(datasets) == 0 {
		return
	}

	header(w, fmt.Sprintf("%s - Statistical Summary (%d datasets)", metric, len(datasets)), 100)

	stats := make([]statistics.Stats, len(datasets))
	for i, d := range datasets {
		s, ok := d.Set.Lookup(metric)
		if ok {
			stats[i] = statistics.Calculate(s.Values)
		}
	}

	fmt.Fprintln(w, "┌──────────────────────┬───────┬────────────┬────────────┬────────────┬────────────┬────────────┬───────┐")
	fmt.Fprintln(w, "│ Dataset              │ N     │ Median     │ Mean       │ StdDev     │ Min        │ Max        │ CV %  │")
	fmt.Fprintln(w, "├──────────────────────┼───────┼────────────┼────────────┼────────────┼────────────┼────────────┼───────┤")
	for i, d := range datasets {
		s := stats[i]
		fmt.Fprintf(w, "│ %-20s │ %5d │ %10.2f │ %10.2f │ %10.2f │ %10.2f │ %10.2f │ %5.1f │\n",
			truncate(d.Name, 20), s.N, s.Median, s.Mean, s.StdDev, s.Min, s.Max, s.CV)
	}
	fmt.Fprintln(w, "└──────────────────────┴───────┴────────────┴────────────┴────────────┴────────────┴────────────┴───────┘")

	if len(datasets) < 2 {
		return
	}

	fmt.Fprintf(w, "\nStatistical Comparisons (vs %s):\n", datasets[0].Name)
	fmt.Fprintln(w, "┌──────────────────────┬─────────────┬──────────┬───────────┬──────────────┐")
	fmt.Fprintln(w, "│ Dataset              │ Median Diff │ p-value  │ Overlap?  │ Significant? │")
	fmt.Fprintln(w, "├──────────────────────┼─────────────┼──────────┼───────────┼──────────────┤")
	for i := 1; i < len(datasets); i++ {
		comp := statistics.Compare(stats[0], stats[i])

		overlap := "No"
		if comp.HasOverlap {
			overlap = "Yes"
		}

		fmt.Fprintf(w, "│ %-20s │ %+10.1f%% │ %8.4f │ %-9s │ %-12s │\n",
			truncate(datasets[i].Name, 20),
			comp.MedianDiffPct,
			comp.PValue,
			overlap,
			significance(comp),
		)
	}
	fmt.Fprintln(w, "└──────────────────────┴─────────────┴──────────┴───────────┴──────────────┘")
}

func significance(c statistics.Comparison) string {
	switch {
	case !c.HasOverlap:
		return "No overlap"
	case c.PValue < 0.001:
		return "*** (p<0.001)"
	case c.PValue < 0.01:
		return "** (p<0.01)"
	case c.PValue < 0.05:
		return "* (p<0.05)"
	default:
		return "n.s."
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Banner prints the run header used by every report
func Banner(w io.Writer, title string, lines map[string]string, order []string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 70))
	for _, key := range order {
		fmt.Fprintf(w, "%-14s%s\n", key+":", lines[key])
	}
	fmt.Fprintln(w, strings.Repeat("=", 70))
}
