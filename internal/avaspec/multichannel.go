package avaspec

import (
	"bytes"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Channel is one spectrometer channel decoded from a multichannel AVS
// file: identity and acquisition metadata plus the wavelength, scope and
// optional dark/reference arrays, all of the channel's pixel count.
// Channels are immutable once decoded.
type Channel struct {
	Identity    Identity
	Measurement Measurement
	Calibration Calibration

	// Wavelength is derived from Calibration over pixel indices.
	Wavelength []float64
	// Scope is the raw detector signal as stored in the file.
	Scope []float64
	// Dark and Reference are present only when the file carries them.
	Dark      []float64
	Reference []float64
}

// Pixels is the channel's detector array length.
func (c *Channel) Pixels() int {
	return len(c.Scope)
}

// Signal returns the dark-corrected signal: scope minus dark when a dark
// array is present, otherwise the scope itself.
func (c *Channel) Signal() []float64 {
	if c.Dark == nil {
		return c.Scope
	}
	out := make([]float64, len(c.Scope))
	floats.SubTo(out, c.Scope, c.Dark)
	return out
}

// MultichannelFile is a decoded AVS file: an ordered, read-only sequence
// of channels in on-disk order. Channels may differ in pixel count.
type MultichannelFile struct {
	// Version holds the two version digits from the preamble, e.g. "80".
	Version  string
	channels []*Channel
}

func (f *MultichannelFile) Format() Format { return FormatMultichannel }

// Len is the number of channels in the file.
func (f *MultichannelFile) Len() int {
	return len(f.channels)
}

// Channel returns the i-th channel in on-disk order.
func (f *MultichannelFile) Channel(i int) *Channel {
	return f.channels[i]
}

// Channels returns the full channel sequence. The slice and the channels
// it points to must not be modified.
func (f *MultichannelFile) Channels() []*Channel {
	return f.channels
}

// BySerial looks a channel up by instrument serial number.
func (f *MultichannelFile) BySerial(serial string) (*Channel, bool) {
	for _, ch := range f.channels {
		if ch.Identity.SerialNumber == serial {
			return ch, true
		}
	}
	return nil, false
}

// DecodeMultichannel decodes an AVS multichannel buffer. Channel blocks
// are strictly sequential: each channel's metadata block is followed
// immediately by its scope payload, and the next channel starts right
// after. Any failure aborts the whole decode; no partial container is
// returned.
func DecodeMultichannel(buf []byte) (*MultichannelFile, error) {
	cur := newCursor(buf)

	magic, err := cur.take(3, "magic")
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(magic, magicAVS) {
		if bytes.Equal(magic, magicSTR) {
			return nil, unsupported("magic", 0, fmt.Errorf("store-to-RAM file handed to the multichannel decoder"))
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
	count, err := cur.uint8("channel count")
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, malformed("channel count", countOff, fmt.Errorf("file declares zero channels"))
	}

	file := &MultichannelFile{Version: string(version)}
	serials := make(map[string]bool, count)
	for i := 0; i < int(count); i++ {
		blockOff := cur.offset()
		d, err := decodeDescriptor(cur, samplesFloat32)
		if err != nil {
			return nil, err
		}
		if serials[d.identity.SerialNumber] {
			return nil, malformed("serial number", blockOff,
				fmt.Errorf("duplicate serial %q", d.identity.SerialNumber))
		}
		serials[d.identity.SerialNumber] = true

		scope, err := cur.float32Slice(d.pixels, "scope payload")
		if err != nil {
			return nil, err
		}
		wavelength, err := d.wavelengths(blockOff)
		if err != nil {
			return nil, err
		}
		file.channels = append(file.channels, &Channel{
			Identity:    d.identity,
			Measurement: d.measurement,
			Calibration: d.calibration,
			Wavelength:  wavelength,
			Scope:       scope,
			Dark:        d.dark,
			Reference:   d.reference,
		})
	}
	return file, nil
}
