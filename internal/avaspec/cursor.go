package avaspec

import (
	"encoding/binary"
	"math"
	"strings"
)

// All AvaSoft fields are little-endian; every width and byte-order decision
// lives in this file so the higher-level decoders cannot disagree.

// cursor is a bounded sequential reader over a fixed byte buffer. Reads
// fail with ErrTruncatedData when fewer bytes remain than requested and
// never advance the offset on failure.
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

func (c *cursor) offset() int {
	return c.off
}

// take reserves n bytes for the named field, advancing the offset only when
// all n bytes are available.
func (c *cursor) take(n int, field string) ([]byte, error) {
	if n < 0 || n > c.remaining() {
		return nil, truncated(field, c.off)
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) skip(n int, field string) error {
	_, err := c.take(n, field)
	return err
}

// peek returns the next n bytes without advancing.
func (c *cursor) peek(n int) ([]byte, error) {
	if n > c.remaining() {
		return nil, truncated("peek", c.off)
	}
	return c.buf[c.off : c.off+n], nil
}

func (c *cursor) uint8(field string) (uint8, error) {
	b, err := c.take(1, field)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) uint16(field string) (uint16, error) {
	b, err := c.take(2, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) uint32(field string) (uint32, error) {
	b, err := c.take(4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) int32(field string) (int32, error) {
	v, err := c.uint32(field)
	return int32(v), err
}

func (c *cursor) uint64(field string) (uint64, error) {
	b, err := c.take(8, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) float32(field string) (float32, error) {
	v, err := c.uint32(field)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (c *cursor) float64(field string) (float64, error) {
	v, err := c.uint64(field)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// fixedString reads an n-byte character field and strips trailing NUL
// padding and whitespace, the way AvaSoft pads serials and user names.
func (c *cursor) fixedString(n int, field string) (string, error) {
	b, err := c.take(n, field)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\x00 "), nil
}

// float32Slice reads n consecutive IEEE float32 values widened to float64.
func (c *cursor) float32Slice(n int, field string) ([]float64, error) {
	b, err := c.take(4*n, field)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:])))
	}
	return out, nil
}

// float64Slice reads n consecutive IEEE float64 values.
func (c *cursor) float64Slice(n int, field string) ([]float64, error) {
	b, err := c.take(8*n, field)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}
	return out, nil
}
