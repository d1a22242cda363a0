package avaspec

import (
	"testing"
	"time"
)

func TestUnpackTimestamp(t *testing.T) {
	cases := []struct {
		name string
		ts   uint32
		want time.Time
	}{
		{
			"regular date",
			packTimestamp(2023, 11, 5, 9, 30),
			time.Date(2023, time.November, 5, 9, 30, 0, 0, time.UTC),
		},
		{"zero field", 0, time.Time{}},
		{"missing day", packTimestamp(2023, 11, 0, 9, 30), time.Time{}},
	}
	for _, tc := range cases {
		if got := unpackTimestamp(tc.ts); !got.Equal(tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDescriptorLeavesCursorAtPayload(t *testing.T) {
	var b fileBuilder
	b.descriptor(testChannel{
		serial: "S1", pixels: 2, coeffs: []float64{1, 2},
		dark: []float64{5, 5},
	}, false)
	b.f32(42) // first payload sample

	cur := newCursor(b.bytes())
	d, err := decodeDescriptor(cur, samplesFloat32)
	if err != nil {
		t.Fatalf("decodeDescriptor failed: %v", err)
	}
	if d.pixels != 2 || len(d.calibration.Coefficients) != 2 {
		t.Errorf("descriptor %+v", d)
	}
	if d.dark == nil || d.reference != nil {
		t.Errorf("optional arrays dark=%v reference=%v", d.dark, d.reference)
	}
	// The cursor must sit exactly on the payload.
	v, err := cur.float32("payload")
	if err != nil || v != 42 {
		t.Errorf("payload read after descriptor returned %v, %v", v, err)
	}
}

func TestDescriptorSampleWidths(t *testing.T) {
	ch := testChannel{serial: "S1", pixels: 2, coeffs: []float64{1}, dark: []float64{1.5, 2.5}}

	var narrow fileBuilder
	narrow.descriptor(ch, false)
	d, err := decodeDescriptor(newCursor(narrow.bytes()), samplesFloat32)
	if err != nil {
		t.Fatalf("float32 descriptor failed: %v", err)
	}
	if d.dark[0] != 1.5 || d.dark[1] != 2.5 {
		t.Errorf("float32 dark %v", d.dark)
	}

	var wide fileBuilder
	wide.descriptor(ch, true)
	d, err = decodeDescriptor(newCursor(wide.bytes()), samplesFloat64)
	if err != nil {
		t.Fatalf("float64 descriptor failed: %v", err)
	}
	if d.dark[0] != 1.5 || d.dark[1] != 2.5 {
		t.Errorf("float64 dark %v", d.dark)
	}
}

func TestMeasurementModeString(t *testing.T) {
	if ModeAbsorbance.String() != "absorbance" {
		t.Errorf("ModeAbsorbance is %q", ModeAbsorbance)
	}
	if MeasurementMode(99).String() != "mode(99)" {
		t.Errorf("out-of-range mode is %q", MeasurementMode(99))
	}
}
