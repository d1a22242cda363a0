package avaspec

import (
	"errors"
	"math"
	"testing"
)

func TestCursorReadsLittleEndian(t *testing.T) {
	buf := []byte{
		0x2A,                   // uint8 42
		0x39, 0x05,             // uint16 1337
		0x78, 0x56, 0x34, 0x12, // uint32 0x12345678
		0x00, 0x00, 0x80, 0x3F, // float32 1.0
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F, // float64 1.0
	}
	cur := newCursor(buf)

	if v, err := cur.uint8("a"); err != nil || v != 42 {
		t.Errorf("uint8 returned %d, %v", v, err)
	}
	if v, err := cur.uint16("b"); err != nil || v != 1337 {
		t.Errorf("uint16 returned %d, %v", v, err)
	}
	if v, err := cur.uint32("c"); err != nil || v != 0x12345678 {
		t.Errorf("uint32 returned %#x, %v", v, err)
	}
	if v, err := cur.float32("d"); err != nil || v != 1.0 {
		t.Errorf("float32 returned %f, %v", v, err)
	}
	if v, err := cur.float64("e"); err != nil || v != 1.0 {
		t.Errorf("float64 returned %f, %v", v, err)
	}
	if cur.remaining() != 0 {
		t.Errorf("expected empty cursor, %d bytes remain", cur.remaining())
	}
}

func TestCursorFixedStringStripsPadding(t *testing.T) {
	cur := newCursor([]byte{'2', '1', '0', '5', '0', '1', 'U', '1', 0, 0})
	s, err := cur.fixedString(10, "serial")
	if err != nil {
		t.Fatalf("fixedString failed: %v", err)
	}
	if s != "210501U1" {
		t.Errorf("fixedString returned %q", s)
	}
}

func TestCursorNoPartialConsumption(t *testing.T) {
	cur := newCursor([]byte{1, 2, 3})
	if _, err := cur.uint16("first"); err != nil {
		t.Fatalf("uint16 failed: %v", err)
	}
	// One byte left; a four-byte read must fail without moving the offset.
	if _, err := cur.uint32("second"); !errors.Is(err, ErrTruncatedData) {
		t.Fatalf("expected ErrTruncatedData, got %v", err)
	}
	if cur.offset() != 2 {
		t.Errorf("offset moved to %d after a failed read", cur.offset())
	}
	if v, err := cur.uint8("third"); err != nil || v != 3 {
		t.Errorf("uint8 after failed read returned %d, %v", v, err)
	}
}

func TestCursorPeekDoesNotAdvance(t *testing.T) {
	cur := newCursor([]byte{9, 8, 7})
	b, err := cur.peek(2)
	if err != nil || b[0] != 9 || b[1] != 8 {
		t.Fatalf("peek returned %v, %v", b, err)
	}
	if cur.offset() != 0 {
		t.Errorf("peek advanced offset to %d", cur.offset())
	}
}

func TestCursorFloatSlices(t *testing.T) {
	var b fileBuilder
	for _, v := range []float64{1.5, -2.25} {
		b.f32(v)
	}
	b.f64(math.Pi)

	cur := newCursor(b.bytes())
	narrow, err := cur.float32Slice(2, "narrow")
	if err != nil {
		t.Fatalf("float32Slice failed: %v", err)
	}
	if narrow[0] != 1.5 || narrow[1] != -2.25 {
		t.Errorf("float32Slice returned %v", narrow)
	}
	wide, err := cur.float64Slice(1, "wide")
	if err != nil {
		t.Fatalf("float64Slice failed: %v", err)
	}
	if wide[0] != math.Pi {
		t.Errorf("float64Slice returned %v", wide)
	}
}

func TestCursorSkip(t *testing.T) {
	cur := newCursor(make([]byte, 8))
	if err := cur.skip(5, "padding"); err != nil {
		t.Fatalf("skip failed: %v", err)
	}
	if cur.remaining() != 3 {
		t.Errorf("remaining is %d after skip", cur.remaining())
	}
	if err := cur.skip(4, "padding"); !errors.Is(err, ErrTruncatedData) {
		t.Errorf("oversized skip returned %v", err)
	}
}
