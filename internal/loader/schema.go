package loader

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// IndependentSource says where a result's independent variable comes from.
type IndependentSource string

const (
	// FromField reads the independent variable from a JSON key.
	FromField IndependentSource = "field"
	// FromFileName parses the file-name stem ("4096.json" -> 4096).
	FromFileName IndependentSource = "filename"
)

// DefaultExtensions are the result file suffixes recognised when a schema
// does not name its own.
var DefaultExtensions = []string{".json", ".json.zst"}

// Schema maps the JSON layout of a latency result file onto benchmark.Result.
// Keys are gjson paths, so nested fields use dots ("stats.database_size").
type Schema struct {
	Extensions     []string
	Independent    IndependentSource
	IndependentKey string
	LatencyKey     string
	BlocksKey      string
}

// DefaultSchema matches the files written by the storage server's client stats.
func DefaultSchema() Schema {
	return Schema{
		Extensions:     DefaultExtensions,
		Independent:    FromField,
		IndependentKey: "database_size",
		LatencyKey:     "latencies_ns",
		BlocksKey:      "blocks_read",
	}
}

// Validate checks that the schema is usable
func (s Schema) Validate() error {
	switch s.Independent {
	case FromField:
		if strings.TrimSpace(s.IndependentKey) == "" {
			return errors.New("independent key is required when reading from a field")
		}
	case FromFileName:
	default:
		return errors.Newf("unknown independent source %q", s.Independent)
	}
	if s.LatencyKey == "" {
		return errors.New("latency key is required")
	}
	if s.BlocksKey == "" {
		return errors.New("blocks key is required")
	}
	return validateExtensions(s.Extensions)
}

// ThroughputSchema maps a throughput measurement file onto
// benchmark.ThroughputSample. Start and end timestamps carry separate layouts
// because the upstream tools write them differently.
type ThroughputSchema struct {
	Extensions  []string
	RequestsKey string
	StartKey    string
	EndKey      string
	StartLayout string
	EndLayout   string
}

// DefaultThroughputSchema matches the recorded throughput runs: start times
// were written as HH__MM__SS.ffffff and end times as HH:MM:SS.ffffff.
func DefaultThroughputSchema() ThroughputSchema {
	return ThroughputSchema{
		Extensions:  DefaultExtensions,
		RequestsKey: "num_requests",
		StartKey:    "start_time",
		EndKey:      "end_time",
		StartLayout: "15__04__05.999999",
		EndLayout:   "15:04:05.999999",
	}
}

// Validate checks that the schema is usable
func (s ThroughputSchema) Validate() error {
	if s.RequestsKey == "" || s.StartKey == "" || s.EndKey == "" {
		return errors.New("requests, start and end keys are required")
	}
	if s.StartLayout == "" || s.EndLayout == "" {
		return errors.New("start and end layouts are required")
	}
	return validateExtensions(s.Extensions)
}

func validateExtensions(exts []string) error {
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			return errors.Newf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

func extensionsOrDefault(exts []string) []string {
	if len(exts) == 0 {
		return DefaultExtensions
	}
	return exts
}
