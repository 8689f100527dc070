package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/moguls753/lsm-bench/internal/benchmark"
	"github.com/moguls753/lsm-bench/internal/series"
)

var heading = color.New(color.Bold, color.FgCyan)

func header(w io.Writer, title string, width int) {
	fmt.Fprintln(w)
	heading.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", width))
}

// Series prints one row per axis point and one column per series
func Series(w io.Writer, title, axisLabel string, set series.Set) {
	width := 20 + 16*len(set.Series)
	header(w, title, width)

	fmt.Fprintf(w, "%-20s", axisLabel)
	for _, s := range set.Series {
		fmt.Fprintf(w, "%16s", s.Label)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", width))

	if set.Len() == 0 {
		fmt.Fprintln(w, "(no results)")
		return
	}

	for i, x := range set.Axis {
		fmt.Fprintf(w, "%-20s", formatValue(x))
		for _, s := range set.Series {
			fmt.Fprintf(w, "%16s", formatValue(s.Values[i]))
		}
		fmt.Fprintln(w)
	}
}

// Throughput prints the aggregated requests per second of every group
func Throughput(w io.Writer, title string, points []benchmark.ThroughputPoint) {
	header(w, title, 70)

	fmt.Fprintf(w, "%-10s%-8s%-16s%-16s%-20s\n", "Clients", "Files", "Requests", "Elapsed", "Throughput")
	fmt.Fprintln(w, strings.Repeat("-", 70))

	for _, p := range points {
		fmt.Fprintf(w, "%-10s%-8d%-16s%-16s%-20s\n",
			p.Label,
			p.Files,
			benchmark.FormatCount(p.TotalRequests),
			p.Elapsed.String(),
			fmt.Sprintf("%.1f req/s", p.RequestsPerSecond),
		)
	}
}

func formatValue(v float64) string {
	if v == float64(int64(v)) && v < 1e15 && v > -1e15 {
		return benchmark.FormatCount(int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
