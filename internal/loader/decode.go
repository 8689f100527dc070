package loader

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/moguls753/lsm-bench/internal/benchmark"
)

func decodeResult(path string, data []byte, schema Schema) (benchmark.Result, error) {
	doc, err := parseDocument(path, data)
	if err != nil {
		return benchmark.Result{}, err
	}

	result := benchmark.Result{Source: path}

	switch schema.Independent {
	case FromFileName:
		result.Independent, err = independentFromName(path)
	default:
		result.Independent, err = number(path, doc, schema.IndependentKey)
	}
	if err != nil {
		return benchmark.Result{}, err
	}

	if result.Latency, err = percentiles(path, doc, schema.LatencyKey, number); err != nil {
		return benchmark.Result{}, err
	}
	if result.BlocksRead, err = percentiles(path, doc, schema.BlocksKey, wholeNumber); err != nil {
		return benchmark.Result{}, err
	}
	return result, nil
}

func decodeThroughput(path string, data []byte, schema ThroughputSchema) (benchmark.ThroughputSample, error) {
	doc, err := parseDocument(path, data)
	if err != nil {
		return benchmark.ThroughputSample{}, err
	}

	requests, err := count(path, doc, schema.RequestsKey)
	if err != nil {
		return benchmark.ThroughputSample{}, err
	}

	start, err := timeOfDay(path, doc, schema.StartKey, schema.StartLayout)
	if err != nil {
		return benchmark.ThroughputSample{}, err
	}
	end, err := timeOfDay(path, doc, schema.EndKey, schema.EndLayout)
	if err != nil {
		return benchmark.ThroughputSample{}, err
	}

	return benchmark.ThroughputSample{
		Source:      path,
		NumRequests: requests,
		Start:       start,
		End:         end,
	}, nil
}

func parseDocument(path string, data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.Wrapf(ErrSchema, "%s: malformed JSON", path)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return gjson.Result{}, errors.Wrapf(ErrSchema, "%s: top level is not an object", path)
	}
	return doc, nil
}

func number(path string, doc gjson.Result, key string) (float64, error) {
	r := doc.Get(key)
	if !r.Exists() {
		return 0, errors.Wrapf(ErrSchema, "%s: missing field %q", path, key)
	}
	if r.Type != gjson.Number {
		return 0, errors.Wrapf(ErrSchema, "%s: field %q is %s, want number", path, key, r.Type)
	}
	return r.Float(), nil
}

// count reads a non-negative whole number that fits in an int64.
func count(path string, doc gjson.Result, key string) (int64, error) {
	v, err := number(path, doc, key)
	if err != nil {
		return 0, err
	}
	switch {
	case v < 0:
		return 0, errors.Wrapf(ErrSchema, "%s: field %q is negative", path, key)
	case v != math.Trunc(v):
		return 0, errors.Wrapf(ErrSchema, "%s: field %q value %v is not a whole number", path, key, v)
	case v >= math.MaxInt64:
		return 0, errors.Wrapf(ErrSchema, "%s: field %q value %v is out of range", path, key, v)
	}
	return int64(v), nil
}

// wholeNumber is count for callers that keep values as float64
func wholeNumber(path string, doc gjson.Result, key string) (float64, error) {
	v, err := count(path, doc, key)
	return float64(v), err
}

// percentiles reads an object holding exactly the keys p50, p90 and p99,
// each through read.
func percentiles(path string, doc gjson.Result, key string, read func(string, gjson.Result, string) (float64, error)) (benchmark.Percentiles, error) {
	obj := doc.Get(key)
	if !obj.Exists() {
		return benchmark.Percentiles{}, errors.Wrapf(ErrSchema, "%s: missing field %q", path, key)
	}
	if !obj.IsObject() {
		return benchmark.Percentiles{}, errors.Wrapf(ErrSchema, "%s: field %q is not an object", path, key)
	}

	var unexpected string
	obj.ForEach(func(k, _ gjson.Result) bool {
		if !benchmark.ValidPercentile(k.String()) {
			unexpected = k.String()
			return false
		}
		return true
	})
	if unexpected != "" {
		return benchmark.Percentiles{}, errors.Wrapf(ErrSchema, "%s: field %q has unexpected key %q", path, key, unexpected)
	}

	values := make([]float64, len(benchmark.PercentileLabels))
	for i, label := range benchmark.PercentileLabels {
		v, err := read(path, obj, label)
		if err != nil {
			return benchmark.Percentiles{}, errors.Wrapf(err, "in %q", key)
		}
		values[i] = v
	}
	return benchmark.Percentiles{P50: values[0], P90: values[1], P99: values[2]}, nil
}

// independentFromName parses the part of the file name before the first dot
// as a base-10 integer.
func independentFromName(path string) (float64, error) {
	stem, _, _ := strings.Cut(filepath.Base(path), ".")
	v, err := strconv.ParseInt(stem, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrSchema, "%s: file name stem %q is not a number", path, stem)
	}
	return float64(v), nil
}

func timeOfDay(path string, doc gjson.Result, key, layout string) (time.Time, error) {
	r := doc.Get(key)
	if !r.Exists() {
		return time.Time{}, errors.Wrapf(ErrSchema, "%s: missing field %q", path, key)
	}
	if r.Type != gjson.String {
		return time.Time{}, errors.Wrapf(ErrSchema, "%s: field %q is %s, want string", path, key, r.Type)
	}

	t, err := time.Parse(layout, r.String())
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrSchema, "%s: field %q value %q does not match layout %q", path, key, r.String(), layout)
	}
	return t, nil
}
