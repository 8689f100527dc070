package rangegen

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moguls753/lsm-bench/internal/command"
)

func TestNextBounds(t *testing.T) {
	g, err := New(DefaultSpan, 1)
	require.NoError(t, err)

	for range 10_000 {
		c := g.Next()
		require.Equal(t, command.Range, c.Kind)
		require.Equal(t, int64(DefaultSpan), int64(c.Value)-int64(c.Key))
		require.GreaterOrEqual(t, int64(c.Key), int64(math.MinInt32))
		require.LessOrEqual(t, int64(c.Value), int64(math.MaxInt32)-1)
	}
}

func TestMaxSpanPinsBothEnds(t *testing.T) {
	g, err := New(MaxSpan, 7)
	require.NoError(t, err)

	c := g.Next()
	assert.Equal(t, int32(math.MinInt32), c.Key)
	assert.Equal(t, int32(math.MaxInt32-1), c.Value)
}

func TestInvalidSpan(t *testing.T) {
	for _, span := range []int64{0, -1, MaxSpan + 1} {
		_, err := New(span, 0)
		assert.ErrorContains(t, err, "out of range", "span %d", span)
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	var a, b bytes.Buffer

	g1, err := New(DefaultSpan, 42)
	require.NoError(t, err)
	g2, err := New(DefaultSpan, 42)
	require.NoError(t, err)

	require.NoError(t, g1.Write(&a, 50, false))
	require.NoError(t, g2.Write(&b, 50, false))
	assert.Equal(t, a.String(), b.String())

	g3, err := New(DefaultSpan, 43)
	require.NoError(t, err)
	var c bytes.Buffer
	require.NoError(t, g3.Write(&c, 50, false))
	assert.NotEqual(t, a.String(), c.String())
}

func TestWriteText(t *testing.T) {
	g, err := New(100, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf, 20, false))

	sc := bufio.NewScanner(&buf)
	lines := 0
	for sc.Scan() {
		require.True(t, strings.HasPrefix(sc.Text(), "r "))
		c, err := command.Parse(sc.Text())
		require.NoError(t, err)
		assert.Equal(t, int64(100), int64(c.Value)-int64(c.Key))
		lines++
	}
	assert.Equal(t, 20, lines)
}

func TestWriteWire(t *testing.T) {
	g, err := New(100, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.Write(&buf, 5, true))
	assert.Equal(t, 5*9, buf.Len())

	dec := command.NewDecoder(&buf)
	for range 5 {
		c, err := dec.Decode()
		require.NoError(t, err)
		assert.Equal(t, command.Range, c.Kind)
	}
	_, err = dec.Decode()
	assert.Equal(t, io.EOF, err)
}
