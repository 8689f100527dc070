package benchmark

import "time"

// Result is one parsed benchmark result file.
type Result struct {
	// Source is the path the result was read from
	Source string

	// Independent is the value the benchmark varied: database size in bytes,
	// range width in keys, or a client count.
	Independent float64

	Latency    Percentiles // nanoseconds
	BlocksRead Percentiles
}

// ThroughputSample is one client's measurement file in a throughput group.
type ThroughputSample struct {
	Source      string
	NumRequests int64
	Start       time.Time // time of day only
	End         time.Time // time of day only
}

// ThroughputPoint is the aggregated throughput of one client-count group.
type ThroughputPoint struct {
	Label             string
	Clients           int
	Files             int
	TotalRequests     int64
	Elapsed           time.Duration
	RequestsPerSecond float64
}
