// Package rangegen produces range commands of a fixed width at uniformly
// random positions in the signed 32-bit key space.
package rangegen

import (
	"bufio"
	"io"
	"math"
	"math/rand/v2"

	"github.com/cockroachdb/errors"

	"github.com/moguls753/lsm-bench/internal/command"
)

// DefaultSpan is the range width used by the range benchmark
const DefaultSpan = 10_000_000

// MaxSpan is the widest range that still leaves end at or below MaxInt32-1
const MaxSpan = int64(math.MaxInt32) - 1 - int64(math.MinInt32)

// Generator emits range commands of one fixed width
type Generator struct {
	span int64
	rng  *rand.Rand
}

// New returns a generator of ranges exactly span wide. The same seed yields
// the same sequence.
func New(span int64, seed uint64) (*Generator, error) {
	if span < 1 || span > MaxSpan {
		return nil, errors.Newf("span %d out of range [1, %d]", span, MaxSpan)
	}
	return &Generator{
		span: span,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Next returns a range [start, start+span) with start >= MinInt32 and
// end <= MaxInt32-1.
func (g *Generator) Next() command.Command {
	lo := int64(math.MinInt32)
	hi := int64(math.MaxInt32) - 1 - g.span
	start := lo + g.rng.Int64N(hi-lo+1)

	return command.Command{
		Kind:  command.Range,
		Key:   int32(start),
		Value: int32(start + g.span),
	}
}

// Write emits n range commands, one per line in text form or back to back in
// wire form.
func (g *Generator) Write(w io.Writer, n int, wire bool) error {
	bw := bufio.NewWriter(w)
	for range n {
		if _, err := bw.Write(command.Format(g.Next(), wire)); err != nil {
			return errors.Wrap(err, "write range command")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flush range commands")
	}
	return nil
}
