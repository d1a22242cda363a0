package avaspec

import (
	"errors"
	"fmt"
)

// Kind sentinels. Callers match decode failures against these with
// errors.Is; byte offsets and field names are diagnostic only and never
// part of error identity.
var (
	ErrTruncatedData      = errors.New("truncated data")
	ErrMalformedHeader    = errors.New("malformed header")
	ErrUnsupportedVariant = errors.New("unsupported format variant")
	ErrInvalidCalibration = errors.New("invalid calibration")

	// ErrUnknownFormat means the buffer does not start with any AvaSoft
	// magic at all. It is deliberately outside the DecodeError taxonomy so
	// callers can tell "not this format" from "this format but broken".
	ErrUnknownFormat = errors.New("not an AvaSoft file")
)

// DecodeError is the failure type returned by the decoders. Kind is one of
// the sentinels above; Field and Offset locate the problem in the buffer.
type DecodeError struct {
	Kind   error
	Field  string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("%v: %s at offset %d", e.Kind, e.Field, e.Offset)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

func (e *DecodeError) Is(target error) bool {
	return target == e.Kind
}

func truncated(field string, offset int) error {
	return &DecodeError{Kind: ErrTruncatedData, Field: field, Offset: offset}
}

func malformed(field string, offset int, err error) error {
	return &DecodeError{Kind: ErrMalformedHeader, Field: field, Offset: offset, Err: err}
}

func unsupported(field string, offset int, err error) error {
	return &DecodeError{Kind: ErrUnsupportedVariant, Field: field, Offset: offset, Err: err}
}
