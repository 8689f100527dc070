package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"

	"github.com/moguls753/lsm-bench/internal/benchmark"
	"github.com/moguls753/lsm-bench/internal/series"
)

const (
	seriesTable     = "lsmbench_series"
	throughputTable = "lsmbench_throughput"
)

var seriesColumns = []string{"id", "run_id", "report", "dataset", "metric", "position", "x", "y"}

var throughputColumns = []string{"id", "run_id", "report", "label", "clients", "files", "total_requests", "elapsed_ns", "requests_per_second"}

// PostgresSink stores assembled series and throughput points so runs can be
// compared across invocations.
type PostgresSink struct {
	db     *sql.DB
	logger hclog.Logger
}

// NewRunID returns a time-ordered identifier for one invocation
func NewRunID() string {
	return ulid.Make().String()
}

// OpenPostgres connects to dsn and checks that the server answers.
func OpenPostgres(ctx context.Context, dsn string, logger hclog.Logger) (*PostgresSink, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresSink{db: db, logger: logger.Named("export")}, nil
}

// EnsureSchema creates the result tables if they do not exist yet
func (p *PostgresSink) EnsureSchema(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				run_id TEXT NOT NULL,
				report TEXT NOT NULL,
				dataset TEXT NOT NULL,
				metric TEXT NOT NULL,
				position INTEGER NOT NULL,
				x DOUBLE PRECISION NOT NULL,
				y DOUBLE PRECISION NOT NULL,
				created_at TIMESTAMP DEFAULT NOW()
			)
		`, seriesTable),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				run_id TEXT NOT NULL,
				report TEXT NOT NULL,
				label TEXT NOT NULL,
				clients INTEGER NOT NULL,
				files INTEGER NOT NULL,
				total_requests BIGINT NOT NULL,
				elapsed_ns BIGINT NOT NULL,
				requests_per_second DOUBLE PRECISION NOT NULL,
				created_at TIMESTAMP DEFAULT NOW()
			)
		`, throughputTable),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_run_idx ON %s (run_id)", seriesTable, seriesTable),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s_run_idx ON %s (run_id)", throughputTable, throughputTable),
	}

	for _, stmt := range statements {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// WriteSeries copies every point of every series in set
func (p *PostgresSink) WriteSeries(ctx context.Context, runID, report, dataset string, set series.Set) error {
	rows := seriesRows(runID, report, dataset, set)
	if err := p.copyRows(ctx, seriesTable, seriesColumns, rows); err != nil {
		return fmt.Errorf("write series %s/%s: %w", report, dataset, err)
	}
	p.logger.Debug("exported series", "run", runID, "report", report, "dataset", dataset, "rows", len(rows))
	return nil
}

// WriteThroughput copies one row per point
func (p *PostgresSink) WriteThroughput(ctx context.Context, runID, report string, points []benchmark.ThroughputPoint) error {
	rows := throughputRows(runID, report, points)
	if err := p.copyRows(ctx, throughputTable, throughputColumns, rows); err != nil {
		return fmt.Errorf("write throughput %s: %w", report, err)
	}
	p.logger.Debug("exported throughput", "run", runID, "report", report, "rows", len(rows))
	return nil
}

// copyRows loads rows with COPY inside one transaction
func (p *PostgresSink) copyRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			stmt.Close()
			return fmt.Errorf("copy row: %w", err)
		}
	}

	// An argument-less Exec flushes the buffered COPY data
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}

	return tx.Commit()
}

// Close closes the database connection
func (p *PostgresSink) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func seriesRows(runID, report, dataset string, set series.Set) [][]any {
	rows := make([][]any, 0, len(set.Series)*set.Len())
	for _, s := range set.Series {
		for i, x := range set.Axis {
			rows = append(rows, []any{uuid.New(), runID, report, dataset, s.Label, i, x, s.Values[i]})
		}
	}
	return rows
}

func throughputRows(runID, report string, points []benchmark.ThroughputPoint) [][]any {
	rows := make([][]any, 0, len(points))
	for _, pt := range points {
		rows = append(rows, []any{
			uuid.New(), runID, report, pt.Label, pt.Clients, pt.Files,
			pt.TotalRequests, int64(pt.Elapsed), pt.RequestsPerSecond,
		})
	}
	return rows
}
