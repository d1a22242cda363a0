package avaspec

import (
	"fmt"
	"time"
)

// Field widths from the AvaSpec SDK identity block.
const (
	serialLen   = 10
	userNameLen = 64
)

// maxPixelCount bounds the declared detector size. The largest AvaSpec
// sensors are a few thousand pixels; anything past this is a corrupt or
// hostile header, not a real instrument.
const maxPixelCount = 65536

// MeasurementMode is AvaSoft's per-spectrum processing mode tag.
type MeasurementMode uint8

const (
	ModeScope MeasurementMode = iota
	ModeScopeDarkCorrected
	ModeAbsorbance
	ModeTransmission
	ModeReflectance
	ModeIrradiance
	ModeRelativeIrradiance
	ModeTemperature
)

func (m MeasurementMode) String() string {
	switch m {
	case ModeScope:
		return "scope"
	case ModeScopeDarkCorrected:
		return "scope-dark-corrected"
	case ModeAbsorbance:
		return "absorbance"
	case ModeTransmission:
		return "transmission"
	case ModeReflectance:
		return "reflectance"
	case ModeIrradiance:
		return "irradiance"
	case ModeRelativeIrradiance:
		return "relative-irradiance"
	case ModeTemperature:
		return "temperature"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Identity names the physical spectrometer a block of data came from.
type Identity struct {
	// SerialNumber is the instrument serial, unique within one file.
	SerialNumber string
	// FriendlyName is the user-assigned alias from AvaSoft.
	FriendlyName string
	// Index is the channel index for multi-channel instruments.
	Index int
}

// Measurement carries the acquisition settings stored alongside each
// spectrum.
type Measurement struct {
	Mode MeasurementMode
	// IntegrationTime is the sensor exposure in milliseconds.
	IntegrationTime float64
	// Averages is the number of acquisitions averaged per stored spectrum.
	Averages int
	// Timestamp is the acquisition time from the vendor's packed date
	// field; zero when the field held no valid date.
	Timestamp time.Time
}

// descriptor is one decoded channel metadata block.
type descriptor struct {
	identity    Identity
	measurement Measurement
	pixels      int
	calibration Calibration
	dark        []float64
	reference   []float64
}

// Optional-array presence flags.
const (
	flagCorrection = 1 << 0
	flagDark       = 1 << 1
	flagReference  = 1 << 2
)

// sampleWidth selects the payload encoding for a family: AVS files store
// float32 columns, STR files store doubles.
type sampleWidth int

const (
	samplesFloat32 sampleWidth = 4
	samplesFloat64 sampleWidth = 8
)

func readSamples(cur *cursor, n int, w sampleWidth, field string) ([]float64, error) {
	if w == samplesFloat64 {
		return cur.float64Slice(n, field)
	}
	return cur.float32Slice(n, field)
}

// decodeDescriptor reads one channel metadata block, leaving the cursor
// immediately after it. The signal payload that follows is read by the
// caller since its layout differs per family.
func decodeDescriptor(cur *cursor, w sampleWidth) (*descriptor, error) {
	d := &descriptor{}

	serial, err := cur.fixedString(serialLen, "serial number")
	if err != nil {
		return nil, err
	}
	name, err := cur.fixedString(userNameLen, "friendly name")
	if err != nil {
		return nil, err
	}
	index, err := cur.uint8("channel index")
	if err != nil {
		return nil, err
	}
	d.identity = Identity{SerialNumber: serial, FriendlyName: name, Index: int(index)}

	mode, err := cur.uint8("measurement mode")
	if err != nil {
		return nil, err
	}
	integration, err := cur.float32("integration time")
	if err != nil {
		return nil, err
	}

	pixelOff := cur.offset()
	pixels, err := cur.uint32("pixel count")
	if err != nil {
		return nil, err
	}
	if pixels == 0 || pixels > maxPixelCount {
		return nil, malformed("pixel count", pixelOff, fmt.Errorf("declared %d pixels", pixels))
	}
	d.pixels = int(pixels)

	averages, err := cur.uint32("averages")
	if err != nil {
		return nil, err
	}
	stamp, err := cur.uint32("timestamp")
	if err != nil {
		return nil, err
	}
	d.measurement = Measurement{
		Mode:            MeasurementMode(mode),
		IntegrationTime: float64(integration),
		Averages:        int(averages),
		Timestamp:       unpackTimestamp(stamp),
	}

	coeffOff := cur.offset()
	coeffCount, err := cur.uint8("coefficient count")
	if err != nil {
		return nil, err
	}
	if coeffCount == 0 {
		return nil, malformed("coefficient count", coeffOff,
			&DecodeError{Kind: ErrInvalidCalibration, Field: "coefficients"})
	}
	if int(coeffCount)*8 > cur.remaining() {
		// The count decoded fine but cannot possibly fit: a header problem,
		// not a short buffer.
		return nil, malformed("coefficient count", coeffOff,
			fmt.Errorf("%d coefficients exceed %d remaining bytes", coeffCount, cur.remaining()))
	}
	coeffs, err := cur.float64Slice(int(coeffCount), "calibration coefficients")
	if err != nil {
		return nil, err
	}
	d.calibration = Calibration{Coefficients: coeffs}

	flags, err := cur.uint8("array flags")
	if err != nil {
		return nil, err
	}
	if flags&flagCorrection != 0 {
		d.calibration.Correction, err = cur.float64Slice(d.pixels, "correction table")
		if err != nil {
			return nil, err
		}
	}
	if flags&flagDark != 0 {
		d.dark, err = readSamples(cur, d.pixels, w, "dark array")
		if err != nil {
			return nil, err
		}
	}
	if flags&flagReference != 0 {
		d.reference, err = readSamples(cur, d.pixels, w, "reference array")
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// wavelengths evaluates the block's calibration; calibration problems
// surface as malformed-header errors with the calibration cause wrapped.
func (d *descriptor) wavelengths(offset int) ([]float64, error) {
	wl, err := d.calibration.Wavelengths(d.pixels)
	if err != nil {
		return nil, malformed("calibration", offset, err)
	}
	return wl, nil
}

// unpackTimestamp decodes AvaSoft's packed acquisition date:
// year<<20 | month<<16 | day<<11 | hour<<6 | minute.
func unpackTimestamp(ts uint32) time.Time {
	year := int(ts >> 20)
	month := int(ts>>16) & 0xF
	day := int(ts>>11) & 0x1F
	hour := int(ts>>6) & 0x1F
	minute := int(ts) & 0x3F
	if month == 0 || day == 0 {
		return time.Time{}
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
}
