package avaspec

import (
	"errors"
	"reflect"
	"testing"
)

func kineticSeries() []byte {
	return strFile("80",
		testChannel{
			serial: "2109021U1", name: "pump-probe", mode: 0,
			pixels: 4, exposure: 0.52, averages: 1,
			coeffs: []float64{500, 0.5},
			dark:   []float64{2, 2, 2, 2},
		},
		[]uint32{0, 100, 250},
		[][]float64{
			{10, 11, 12, 13},
			{20, 21, 22, 23},
			{30, 31, 32, 33},
		},
	)
}

func TestDecodeMultiframe(t *testing.T) {
	file, err := DecodeMultiframe(kineticSeries())
	if err != nil {
		t.Fatalf("DecodeMultiframe failed: %v", err)
	}
	if file.Len() != 3 {
		t.Fatalf("decoded %d frames, want 3", file.Len())
	}
	if file.Identity.SerialNumber != "2109021U1" {
		t.Errorf("identity %+v", file.Identity)
	}
	if !reflect.DeepEqual(file.Wavelength, []float64{500, 500.5, 501, 501.5}) {
		t.Errorf("shared wavelength %v", file.Wavelength)
	}
	// Raw delays are 10 µs ticks, exposed as milliseconds.
	if !reflect.DeepEqual(file.Delays(), []float64{0, 1, 2.5}) {
		t.Errorf("delays %v", file.Delays())
	}
	if !reflect.DeepEqual(file.Frame(1), []float64{20, 21, 22, 23}) {
		t.Errorf("frame 1 %v", file.Frame(1))
	}
	if !reflect.DeepEqual(file.Signal(1), []float64{18, 19, 20, 21}) {
		t.Errorf("dark-corrected frame 1 %v", file.Signal(1))
	}
}

func TestDecodeMultiframePairingInvariant(t *testing.T) {
	file, err := DecodeMultiframe(kineticSeries())
	if err != nil {
		t.Fatalf("DecodeMultiframe failed: %v", err)
	}
	if len(file.Delays()) != len(file.Frames()) {
		t.Errorf("%d delays but %d frames", len(file.Delays()), len(file.Frames()))
	}
	for i, frame := range file.Frames() {
		if len(frame) != file.Pixels() {
			t.Errorf("frame %d has %d samples, pixel count is %d", i, len(frame), file.Pixels())
		}
	}
	if len(file.Wavelength) != file.Pixels() {
		t.Errorf("wavelength length %d, pixel count %d", len(file.Wavelength), file.Pixels())
	}
}

func TestDecodeMultiframeDeterministic(t *testing.T) {
	buf := kineticSeries()
	a, err := DecodeMultiframe(buf)
	if err != nil {
		t.Fatalf("first decode failed: %v", err)
	}
	b, err := DecodeMultiframe(buf)
	if err != nil {
		t.Fatalf("second decode failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("decoding the same buffer twice produced different containers")
	}
}

func TestDecodeMultiframeTruncated(t *testing.T) {
	buf := kineticSeries()
	// Declared three frames, physically holding two and a half: the decode
	// must fail rather than return a shorter series.
	_, err := DecodeMultiframe(buf[:len(buf)-20])
	if !errors.Is(err, ErrTruncatedData) {
		t.Fatalf("expected ErrTruncatedData, got %v", err)
	}
}

func TestDecodeMultiframeZeroFrames(t *testing.T) {
	var b fileBuilder
	b.strPreamble("80", 0)
	b.descriptor(testChannel{serial: "S1", pixels: 1, coeffs: []float64{1}}, true)
	if _, err := DecodeMultiframe(b.bytes()); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestDecodeMultiframeWrongFamily(t *testing.T) {
	buf := avsFile("80",
		[]testChannel{{serial: "S1", pixels: 1, coeffs: []float64{1}}},
		[][]float64{{1}},
	)
	if _, err := DecodeMultiframe(buf); !errors.Is(err, ErrUnsupportedVariant) {
		t.Errorf("expected ErrUnsupportedVariant for AVS buffer, got %v", err)
	}
}

func TestDecodeMultiframeInvalidCalibration(t *testing.T) {
	buf := strFile("80",
		testChannel{serial: "S1", pixels: 2, coeffs: nil},
		[]uint32{0}, [][]float64{{1, 2}},
	)
	err := func() error {
		_, err := DecodeMultiframe(buf)
		return err
	}()
	// An empty coefficient sequence is a header defect whose cause is the
	// calibration invariant; both must be visible in the chain.
	if !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("expected ErrMalformedHeader, got %v", err)
	}
	if !errors.Is(err, ErrInvalidCalibration) {
		t.Errorf("calibration cause not wrapped: %v", err)
	}
}
