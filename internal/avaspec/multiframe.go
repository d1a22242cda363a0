package avaspec

import (
	"bytes"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MultiframeFile is a decoded STR (Store-to-RAM) file: a kinetic series of
// frames captured by one channel during one acquisition session. All
// frames share a single wavelength axis, which is why the format stores
// the calibration once instead of per frame.
type MultiframeFile struct {
	// Version holds the two version digits from the preamble, e.g. "80".
	Version     string
	Identity    Identity
	Measurement Measurement
	Calibration Calibration

	// Wavelength is the shared axis, evaluated once for the whole file.
	Wavelength []float64
	// Dark and Reference are shared across frames when present.
	Dark      []float64
	Reference []float64

	delays []float64
	frames [][]float64
}

func (f *MultiframeFile) Format() Format { return FormatMultiframe }

// Len is the number of frames in the series.
func (f *MultiframeFile) Len() int {
	return len(f.frames)
}

// Pixels is the shared detector array length.
func (f *MultiframeFile) Pixels() int {
	return len(f.Wavelength)
}

// Delay returns the i-th frame's acquisition delay in milliseconds.
func (f *MultiframeFile) Delay(i int) float64 {
	return f.delays[i]
}

// Frame returns the i-th frame's raw signal. The slice must not be
// modified.
func (f *MultiframeFile) Frame(i int) []float64 {
	return f.frames[i]
}

// Delays returns the per-frame delay sequence, paired one-to-one with the
// frame sequence. Read-only.
func (f *MultiframeFile) Delays() []float64 {
	return f.delays
}

// Frames returns the full frame sequence in acquisition order. Read-only.
func (f *MultiframeFile) Frames() [][]float64 {
	return f.frames
}

// Signal returns the i-th frame dark-corrected when a shared dark array is
// present, otherwise the raw frame.
func (f *MultiframeFile) Signal(i int) []float64 {
	if f.Dark == nil {
		return f.frames[i]
	}
	out := make([]float64, len(f.frames[i]))
	floats.SubTo(out, f.frames[i], f.Dark)
	return out
}

// Raw delays are stored in 10 µs ticks.
const delayTicksPerMillisecond = 100

// DecodeMultiframe decodes an STR store-to-RAM buffer: preamble, one
// shared channel metadata block, then frame count (delay, signal) records.
// Any failure aborts the whole decode; no partial container is returned.
func DecodeMultiframe(buf []byte) (*MultiframeFile, error) {
	cur := newCursor(buf)

	magic, err := cur.take(3, "magic")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, magicSTR) {
		if bytes.Equal(magic, magicAVS) {
			return nil, unsupported("magic", 0, fmt.Errorf("multichannel file handed to the store-to-RAM decoder"))
		}
		return nil, ErrUnknownFormat
	}
	version, err := cur.take(2, "version")
	if err != nil {
		return nil, err
	}
	if _, err := parseVersion(version); err != nil {
		return nil, err
	}

	countOff := cur.offset()
	count, err := cur.uint16("frame count")
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, malformed("frame count", countOff, fmt.Errorf("file declares zero frames"))
	}

	blockOff := cur.offset()
	d, err := decodeDescriptor(cur, samplesFloat64)
	if err != nil {
		return nil, err
	}
	wavelength, err := d.wavelengths(blockOff)
	if err != nil {
		return nil, err
	}

	file := &MultiframeFile{
		Version:     string(version),
		Identity:    d.identity,
		Measurement: d.measurement,
		Calibration: d.calibration,
		Wavelength:  wavelength,
		Dark:        d.dark,
		Reference:   d.reference,
		delays:      make([]float64, 0, count),
		frames:      make([][]float64, 0, count),
	}
	for i := 0; i < int(count); i++ {
		ticks, err := cur.uint32("frame delay")
		if err != nil {
			return nil, err
		}
		frame, err := cur.float64Slice(d.pixels, "frame payload")
		if err != nil {
			return nil, err
		}
		file.delays = append(file.delays, float64(ticks)/delayTicksPerMillisecond)
		file.frames = append(file.frames, frame)
	}
	return file, nil
}
