package avaspec

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies which of the supported AvaSoft binary layouts a buffer
// carries. The set is closed: adding a variant means extending the switches
// in this package, not probing at runtime.
type Format int

const (
	FormatUnknown Format = iota
	// FormatMultichannel is the regular AVS file family: one spectrum per
	// spectrometer channel.
	FormatMultichannel
	// FormatMultiframe is the Store-to-RAM STR family: many frames from a
	// single channel sharing one wavelength axis.
	FormatMultiframe
)

func (f Format) String() string {
	switch f {
	case FormatMultichannel:
		return "multichannel (AVS)"
	case FormatMultiframe:
		return "multiframe (STR)"
	default:
		return "unknown"
	}
}

var (
	magicAVS = []byte("AVS")
	magicSTR = []byte("STR")
)

// Preamble length shared by both families: 3 magic bytes plus 2 ASCII
// version digits. The count field that follows differs per family.
const preambleLen = 5

// minSupportedVersion is AvaSoft 8.0; AvaSoft 7 and earlier use layouts
// this decoder does not implement.
const minSupportedVersion = 80

// DetectFormat inspects the magic bytes and version digits of a buffer.
// Foreign magic yields ErrUnknownFormat; AvaSoft magic with a version
// before 8.0 yields ErrUnsupportedVariant.
func DetectFormat(buf []byte) (Format, error) {
	if len(buf) < preambleLen {
		return FormatUnknown, truncated("preamble", 0)
	}
	var format Format
	switch {
	case bytes.Equal(buf[:3], magicAVS):
		format = FormatMultichannel
	case bytes.Equal(buf[:3], magicSTR):
		format = FormatMultiframe
	default:
		return FormatUnknown, ErrUnknownFormat
	}
	if _, err := parseVersion(buf[3:5]); err != nil {
		return FormatUnknown, err
	}
	return format, nil
}

// parseVersion decodes the two ASCII version digits ("80" is 8.0).
func parseVersion(b []byte) (int, error) {
	if b[0] < '0' || b[0] > '9' || b[1] < '0' || b[1] > '9' {
		return 0, malformed("version", 3, nil)
	}
	v := int(b[0]-'0')*10 + int(b[1]-'0')
	if v < minSupportedVersion {
		return 0, unsupported("version", 3, nil)
	}
	return v, nil
}

// FormatFromExtension maps the vendor's file extensions to a format hint.
// AvaSoft 8 writes .raw8/.abs8/.trm8/.rfl8/.irr8 for regular files and
// .str for Store-to-RAM series. This is only a hint; the in-file tag is
// authoritative.
func FormatFromExtension(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".raw8", ".abs8", ".trm8", ".rfl8", ".irr8":
		return FormatMultichannel
	case ".str":
		return FormatMultiframe
	default:
		return FormatUnknown
	}
}

// File is implemented by both decoded container types.
type File interface {
	Format() Format
}

// Decode dispatches on the in-file tag and runs the matching decoder. The
// hint usually comes from FormatFromExtension; when it disagrees with the
// tag the tag wins and the returned mismatch flag is set so callers can
// surface a notice. The flag is never an error.
func Decode(buf []byte, hint Format) (File, bool, error) {
	format, err := DetectFormat(buf)
	if err != nil {
		return nil, false, err
	}
	mismatch := hint != FormatUnknown && hint != format
	var file File
	switch format {
	case FormatMultichannel:
		file, err = DecodeMultichannel(buf)
	case FormatMultiframe:
		file, err = DecodeMultiframe(buf)
	}
	if err != nil {
		return nil, mismatch, err
	}
	return file, mismatch, nil
}
