package benchmark

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// PercentileLabels lists the percentile keys every result file must carry,
// in display order.
var PercentileLabels = []string{"p50", "p90", "p99"}

// Percentiles holds the precomputed p50/p90/p99 values of one metric.
type Percentiles struct {
	P50 float64
	P90 float64
	P99 float64
}

// Get returns the value stored under a percentile label
func (p Percentiles) Get(label string) (float64, error) {
	switch label {
	case "p50":
		return p.P50, nil
	case "p90":
		return p.P90, nil
	case "p99":
		return p.P99, nil
	default:
		return 0, fmt.Errorf("unknown percentile %q", label)
	}
}

// ValidPercentile reports whether label is one of PercentileLabels.
func ValidPercentile(label string) bool {
	for _, l := range PercentileLabels {
		if l == label {
			return true
		}
	}
	return false
}

// Unit is a declared rescaling applied to raw values before charting.
// Raw values are divided by Divisor.
type Unit struct {
	Name    string
	Divisor float64
}

var units = map[string]Unit{
	"":      {Name: "", Divisor: 1},
	"ns":    {Name: "ns", Divisor: 1},
	"us":    {Name: "μs", Divisor: 1_000},
	"ms":    {Name: "ms", Divisor: 1_000_000},
	"s":     {Name: "s", Divisor: 1_000_000_000},
	"bytes": {Name: "B", Divisor: 1},
	"kb":    {Name: "KB", Divisor: 1_000},
	"mb":    {Name: "MB", Divisor: 1_000_000},
	"gb":    {Name: "GB", Divisor: 1_000_000_000},
	"count": {Name: "", Divisor: 1},
}

// ParseUnit resolves a configured unit name. The empty name means "no rescaling".
func ParseUnit(name string) (Unit, error) {
	u, ok := units[strings.ToLower(name)]
	if !ok {
		return Unit{}, fmt.Errorf("unknown unit %q", name)
	}
	return u, nil
}

// Apply rescales a raw value
func (u Unit) Apply(v float64) float64 {
	if u.Divisor == 0 {
		return v
	}
	return v / u.Divisor
}

// FormatBytes renders a byte count with SI prefixes (1 MB = 1,000,000 B),
// matching the megabyte rescaling used on chart axes.
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.Bytes(uint64(-bytes))
	}
	return humanize.Bytes(uint64(bytes))
}

// FormatCount renders an integer with thousands separators
func FormatCount(n int64) string {
	return humanize.Comma(n)
}
