package avaspec

// Calibration maps detector pixel indices to wavelengths through a
// low-degree polynomial, optionally adjusted by a per-pixel correction
// table. AvaSoft stores up to five polynomial coefficients per channel.
type Calibration struct {
	// Coefficients are ordered lowest degree first; the polynomial degree
	// is len(Coefficients)-1.
	Coefficients []float64
	// Correction, when non-nil, holds one additive entry per pixel.
	Correction []float64
}

// Wavelengths evaluates the calibration over pixel indices 0..pixels-1.
// The result always has length pixels. Fails with ErrInvalidCalibration
// when no coefficients are present or the correction table length does not
// match the pixel count.
func (c Calibration) Wavelengths(pixels int) ([]float64, error) {
	if len(c.Coefficients) == 0 {
		return nil, &DecodeError{Kind: ErrInvalidCalibration, Field: "coefficients"}
	}
	if c.Correction != nil && len(c.Correction) != pixels {
		return nil, &DecodeError{Kind: ErrInvalidCalibration, Field: "correction table"}
	}
	out := make([]float64, pixels)
	for p := 0; p < pixels; p++ {
		x := float64(p)
		// Horner evaluation, highest degree first.
		v := c.Coefficients[len(c.Coefficients)-1]
		for i := len(c.Coefficients) - 2; i >= 0; i-- {
			v = v*x + c.Coefficients[i]
		}
		if c.Correction != nil {
			v += c.Correction[p]
		}
		out[p] = v
	}
	return out, nil
}
