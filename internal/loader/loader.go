// Package loader reads benchmark result files from disk.
//
// Every file in a directory whose name ends in a recognised extension is
// parsed; anything else is ignored. A recognised file that is malformed or
// misses a required field fails the whole load, the caller never receives a
// partial dataset.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
	"github.com/klauspost/compress/zstd"

	"github.com/moguls753/lsm-bench/internal/benchmark"
)

// ErrSchema marks a result file that does not conform to its schema.
var ErrSchema = errors.New("schema error")

// Loader reads result directories
type Loader struct {
	logger hclog.Logger
}

// New creates a loader. A nil logger discards output.
func New(logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Loader{logger: logger.Named("loader")}
}

// LoadResults parses every result file in dir. An empty directory yields an
// empty, non-nil slice. Order follows directory enumeration.
func (l *Loader) LoadResults(dir string, schema Schema) ([]benchmark.Result, error) {
	if err := schema.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid schema")
	}

	files, err := ListFiles(dir, extensionsOrDefault(schema.Extensions))
	if err != nil {
		return nil, err
	}

	results := make([]benchmark.Result, 0, len(files))
	for _, path := range files {
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}

		result, err := decodeResult(path, data, schema)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded result", "path", path, "independent", result.Independent)
		results = append(results, result)
	}

	l.logger.Debug("loaded directory", "dir", dir, "results", len(results))
	return results, nil
}

// LoadThroughput parses every measurement file of one client-count group.
func (l *Loader) LoadThroughput(dir string, schema ThroughputSchema) ([]benchmark.ThroughputSample, error) {
	if err := schema.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid throughput schema")
	}

	files, err := ListFiles(dir, extensionsOrDefault(schema.Extensions))
	if err != nil {
		return nil, err
	}

	samples := make([]benchmark.ThroughputSample, 0, len(files))
	for _, path := range files {
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}

		sample, err := decodeThroughput(path, data, schema)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded throughput sample", "path", path, "requests", sample.NumRequests)
		samples = append(samples, sample)
	}

	return samples, nil
}

// ListFiles returns the regular files in dir whose names end in one of exts.
// Subdirectories are not descended into.
func ListFiles(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchExtension(entry.Name(), exts) == "" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// matchExtension returns the longest extension name ends with, or "".
func matchExtension(name string, exts []string) string {
	best := ""
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) && len(ext) > len(best) {
			best = ext
		}
	}
	return best
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Wrap(err, "create zstd decoder")
		}
		defer dec.Close()

		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "decompress %s", path)
		}
	}
	return data, nil
}
