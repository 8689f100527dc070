// Package command encodes the commands understood by the storage server, in
// both the line-oriented text form typed by users and the binary wire form.
package command

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalid marks malformed command text or wire bytes
var ErrInvalid = errors.New("invalid command")

// Kind is the one-byte tag that starts every command
type Kind byte

const (
	Put    Kind = 'p'
	Get    Kind = 'g'
	Delete Kind = 'd'
	Range  Kind = 'r'
	Stats  Kind = 's'
	Load   Kind = 'l'
)

// operands returns how many int32 values follow the tag. Load carries a
// single uint64 instead.
func (k Kind) operands() (int, bool) {
	switch k {
	case Put, Range:
		return 2, true
	case Get, Delete:
		return 1, true
	case Stats, Load:
		return 0, true
	default:
		return 0, false
	}
}

// Command is a single storage request. Put uses Key and Value, Get and Delete
// use Key, Range covers [Key, Value). Load announces Pairs key/value pairs;
// the pairs themselves follow on the stream and are not part of the command.
type Command struct {
	Kind  Kind
	Key   int32
	Value int32
	Pairs uint64
}

// NewPut stores val under key
func NewPut(key, val int32) Command { return Command{Kind: Put, Key: key, Value: val} }

// NewGet looks up key
func NewGet(key int32) Command { return Command{Kind: Get, Key: key} }

// NewDelete removes key
func NewDelete(key int32) Command { return Command{Kind: Delete, Key: key} }

// NewStats asks the server for its statistics
func NewStats() Command { return Command{Kind: Stats} }

// NewLoad announces a bulk load of pairs key/value pairs
func NewLoad(pairs uint64) Command { return Command{Kind: Load, Pairs: pairs} }

// NewRange builds a range request; min must be below max
func NewRange(min, max int32) (Command, error) {
	if min >= max {
		return Command{}, errors.Wrapf(ErrInvalid, "range start %d not below end %d", min, max)
	}
	return Command{Kind: Range, Key: min, Value: max}, nil
}

func (c Command) args() []int32 {
	n, _ := c.Kind.operands()
	return []int32{c.Key, c.Value}[:n]
}

// String returns the text form, e.g. "r -10 10"
func (c Command) String() string {
	var b strings.Builder
	b.WriteByte(byte(c.Kind))
	for _, v := range c.args() {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(int64(v), 10))
	}
	if c.Kind == Load {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(c.Pairs, 10))
	}
	return b.String()
}

// Parse reads one command in text form. Fields are separated by whitespace.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errors.Wrap(ErrInvalid, "empty command")
	}
	if len(fields[0]) != 1 {
		return Command{}, errors.Wrapf(ErrInvalid, "unknown command %q", fields[0])
	}

	kind := Kind(fields[0][0])
	if kind == Load {
		return parseLoad(fields)
	}
	n, ok := kind.operands()
	if !ok {
		return Command{}, errors.Wrapf(ErrInvalid, "unknown command %q", fields[0])
	}
	if len(fields)-1 != n {
		return Command{}, errors.Wrapf(ErrInvalid, "%q takes %d arguments, got %d", fields[0], n, len(fields)-1)
	}

	vals := make([]int32, 2)
	for i, f := range fields[1:] {
		v, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return Command{}, errors.Wrapf(ErrInvalid, "argument %q is not a 32-bit integer", f)
		}
		vals[i] = int32(v)
	}

	if kind == Range {
		return NewRange(vals[0], vals[1])
	}
	return Command{Kind: kind, Key: vals[0], Value: vals[1]}, nil
}

func parseLoad(fields []string) (Command, error) {
	if len(fields) != 2 {
		return Command{}, errors.Wrapf(ErrInvalid, "\"l\" takes 1 argument, got %d", len(fields)-1)
	}
	pairs, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Command{}, errors.Wrapf(ErrInvalid, "argument %q is not an unsigned 64-bit integer", fields[1])
	}
	return NewLoad(pairs), nil
}

// AppendBinary appends the wire form: tag byte then big-endian operands.
func (c Command) AppendBinary(buf []byte) []byte {
	buf = append(buf, byte(c.Kind))
	for _, v := range c.args() {
		buf = binary.BigEndian.AppendUint32(buf, uint32(v))
	}
	if c.Kind == Load {
		buf = binary.BigEndian.AppendUint64(buf, c.Pairs)
	}
	return buf
}

// MarshalBinary implements encoding.BinaryMarshaler
func (c Command) MarshalBinary() ([]byte, error) {
	if _, ok := c.Kind.operands(); !ok {
		return nil, errors.Wrapf(ErrInvalid, "unknown command tag %q", byte(c.Kind))
	}
	return c.AppendBinary(nil), nil
}

// Decoder reads wire-form commands from a stream.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder buffers r and reads commands from it
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Decode returns the next command, or io.EOF once the stream ends cleanly
// between commands. The pairs announced by a Load are left on the stream.
func (d *Decoder) Decode() (Command, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return Command{}, err
	}

	kind := Kind(tag)
	n, ok := kind.operands()
	if !ok {
		return Command{}, errors.Wrapf(ErrInvalid, "unknown command tag %q", tag)
	}

	if kind == Load {
		var pairs uint64
		if err := binary.Read(d.r, binary.BigEndian, &pairs); err != nil {
			return Command{}, errors.Wrapf(err, "read %c operands", tag)
		}
		return NewLoad(pairs), nil
	}

	var operands [2]int32
	if n > 0 {
		if err := binary.Read(d.r, binary.BigEndian, operands[:n]); err != nil {
			return Command{}, errors.Wrapf(err, "read %c operands", tag)
		}
	}
	return Command{Kind: kind, Key: operands[0], Value: operands[1]}, nil
}

// Format renders a command as text or wire bytes
func Format(c Command, wire bool) []byte {
	if wire {
		return c.AppendBinary(nil)
	}
	return fmt.Appendf(nil, "%s\n", c)
}
