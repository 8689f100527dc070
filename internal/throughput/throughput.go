// Package throughput merges per-client measurement files into one
// requests-per-second figure per client-count group.
package throughput

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cast"

	"github.com/moguls753/lsm-bench/internal/benchmark"
	"github.com/moguls753/lsm-bench/internal/loader"
)

// Group is one client-count label and the directory holding its files.
type Group struct {
	Label string
	Dir   string
}

// GroupsFromLabels maps each label to baseDir/label, keeping label order.
func GroupsFromLabels(baseDir string, labels []string) []Group {
	groups := make([]Group, len(labels))
	for i, label := range labels {
		groups[i] = Group{Label: label, Dir: filepath.Join(baseDir, label)}
	}
	return groups
}

// DiscoverGroups returns every subdirectory of baseDir whose name is a
// client count, ordered by ascending count.
func DiscoverGroups(baseDir string) ([]Group, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", baseDir)
	}

	type labelled struct {
		group   Group
		clients int
	}
	var found []labelled
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		clients, err := ParseClients(entry.Name())
		if err != nil {
			continue
		}
		found = append(found, labelled{
			group:   Group{Label: entry.Name(), Dir: filepath.Join(baseDir, entry.Name())},
			clients: clients,
		})
	}

	slices.SortStableFunc(found, func(a, b labelled) int {
		return a.clients - b.clients
	})

	groups := make([]Group, len(found))
	for i, f := range found {
		groups[i] = f.group
	}
	return groups, nil
}

// ParseClients converts a group label such as "16" into a client count.
func ParseClients(label string) (int, error) {
	// cast parses with base prefixes, so "08" would be read as octal
	trimmed := strings.TrimLeft(strings.TrimSpace(label), "0")
	if trimmed == "" {
		trimmed = "0"
	}
	clients, err := cast.ToIntE(trimmed)
	if err != nil {
		return 0, errors.Wrapf(err, "client label %q", label)
	}
	if clients < 1 {
		return 0, errors.Newf("client label %q: must be at least 1", label)
	}
	return clients, nil
}

// Aggregate sums the requests of samples and divides by the wall-clock span
// from the earliest start to the latest end. A span that is zero or negative
// (no samples, start == end, or a group crossing midnight) gives 0 requests
// per second.
func Aggregate(samples []benchmark.ThroughputSample) (total int64, elapsed time.Duration, rps float64) {
	if len(samples) == 0 {
		return 0, 0, 0
	}

	earliest := samples[0].Start
	latest := samples[0].End
	for _, s := range samples {
		total += s.NumRequests
		if s.Start.Before(earliest) {
			earliest = s.Start
		}
		if s.End.After(latest) {
			latest = s.End
		}
	}

	elapsed = latest.Sub(earliest)
	if elapsed <= 0 {
		return total, elapsed, 0
	}
	return total, elapsed, float64(total) / elapsed.Seconds()
}

// Aggregator loads and aggregates throughput groups
type Aggregator struct {
	loader *loader.Loader
	schema loader.ThroughputSchema
	logger hclog.Logger
}

// NewAggregator creates an aggregator reading files with schema.
func NewAggregator(l *loader.Loader, schema loader.ThroughputSchema, logger hclog.Logger) *Aggregator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Aggregator{
		loader: l,
		schema: schema,
		logger: logger.Named("throughput"),
	}
}

// Run produces one point per group, in the order groups were given. Any
// unreadable group fails the whole run.
func (a *Aggregator) Run(groups []Group) ([]benchmark.ThroughputPoint, error) {
	points := make([]benchmark.ThroughputPoint, 0, len(groups))
	for _, g := range groups {
		clients, err := ParseClients(g.Label)
		if err != nil {
			return nil, err
		}

		samples, err := a.loader.LoadThroughput(g.Dir, a.schema)
		if err != nil {
			return nil, errors.Wrapf(err, "group %s", g.Label)
		}

		total, elapsed, rps := Aggregate(samples)
		a.logger.Debug("aggregated group",
			"label", g.Label,
			"files", len(samples),
			"requests", total,
			"elapsed", elapsed,
			"rps", rps)
		if len(samples) > 0 && elapsed <= 0 {
			a.logger.Warn("group has no positive elapsed time, reporting zero throughput", "label", g.Label, "elapsed", elapsed)
		}

		points = append(points, benchmark.ThroughputPoint{
			Label:             g.Label,
			Clients:           clients,
			Files:             len(samples),
			TotalRequests:     total,
			Elapsed:           elapsed,
			RequestsPerSecond: rps,
		})
	}
	return points, nil
}
