package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/moguls753/lsm-bench/internal/benchmark"
	"github.com/moguls753/lsm-bench/internal/series"
)

// SeriesToCSV writes a set in wide format: one row per axis point, the axis
// first and then one column per series.
func SeriesToCSV(outputPath, axisName string, set series.Set) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	// Header row
	header := []string{axisName}
	for _, s := range set.Series {
		header = append(header, s.Label)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	// Data rows
	for i, x := range set.Axis {
		row := []string{formatFloat(x)}
		for _, s := range set.Series {
			row = append(row, formatFloat(s.Values[i]))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}
	return file.Close()
}

// ThroughputToCSV writes one row per client-count group
func ThroughputToCSV(outputPath string, points []benchmark.ThroughputPoint) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"label", "clients", "files", "total_requests", "elapsed_seconds", "requests_per_second"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, p := range points {
		row := []string{
			p.Label,
			strconv.Itoa(p.Clients),
			strconv.Itoa(p.Files),
			strconv.FormatInt(p.TotalRequests, 10),
			formatFloat(p.Elapsed.Seconds()),
			formatFloat(p.RequestsPerSecond),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}
	return file.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

