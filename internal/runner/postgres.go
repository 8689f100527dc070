package runner

import (
	"context"
	"fmt"

	"github.com/moguls753/lsm-bench/internal/benchmark"
	"github.com/moguls753/lsm-bench/internal/export"
	"github.com/moguls753/lsm-bench/internal/series"
)

// exportSeries stores every dataset of a report under a fresh run id
func (r *Runner) exportSeries(ctx context.Context, report string, datasets []series.Dataset) error {
	sink, err := export.OpenPostgres(ctx, r.cfg.PostgresDSN, r.logger)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer sink.Close()

	if err := sink.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	runID := export.NewRunID()
	for _, d := range datasets {
		if err := sink.WriteSeries(ctx, runID, report, d.Name, d.Set); err != nil {
			return fmt.Errorf("store dataset %s: %w", d.Name, err)
		}
	}

	fmt.Fprintf(r.out, "✓ Stored %d dataset(s) in Postgres (run %s)\n", len(datasets), runID)
	return nil
}

// exportThroughput stores the aggregated client groups under a fresh run id
func (r *Runner) exportThroughput(ctx context.Context, points []benchmark.ThroughputPoint) error {
	sink, err := export.OpenPostgres(ctx, r.cfg.PostgresDSN, r.logger)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer sink.Close()

	if err := sink.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	runID := export.NewRunID()
	if err := sink.WriteThroughput(ctx, runID, "throughput", points); err != nil {
		return fmt.Errorf("store throughput: %w", err)
	}

	fmt.Fprintf(r.out, "✓ Stored %d throughput point(s) in Postgres (run %s)\n", len(points), runID)
	return nil
}
