package render

import (
	"fmt"
	"math"
)

// ColorPoint is a palette control point; Position and the color components
// are percentages.
type ColorPoint struct {
	Position uint8
	Red      uint8
	Green    uint8
	Blue     uint8
}

// MakeColorPalette interpolates control points into a palette of numColors
// entries.
func MakeColorPalette(controlColors []ColorPoint, numColors int) []ColorPoint {
	colorsPerPosition := float64(numColors) / 100.0
	lastPoint := controlColors[0]

	lastIndexFilled := 0
	outColors := make([]ColorPoint, numColors)
	for i := 1; i < len(controlColors); i++ {
		redDiff := (float64(controlColors[i].Red) - float64(lastPoint.Red)) * 255.0 / 100
		greenDiff := (float64(controlColors[i].Green) - float64(lastPoint.Green)) * 255.0 / 100
		blueDiff := (float64(controlColors[i].Blue) - float64(lastPoint.Blue)) * 255.0 / 100
		startRange := lastIndexFilled + 1
		endRange := int(math.Round(float64(controlColors[i].Position) * colorsPerPosition))
		for j := startRange; j < endRange; j++ {
			percentRange := (float64(j) - float64(startRange)) / float64(endRange-startRange)
			outColors[j].Red = uint8(math.Round(percentRange*redDiff + float64(lastPoint.Red)*255.0/100))
			outColors[j].Green = uint8(math.Round(percentRange*greenDiff + float64(lastPoint.Green)*255.0/100))
			outColors[j].Blue = uint8(math.Round(percentRange*blueDiff + float64(lastPoint.Blue)*255.0/100))
			lastIndexFilled = j
		}
		lastPoint = controlColors[i]
	}
	return outColors
}

// GetColorControlPoints returns the control points for a named colormap.
func GetColorControlPoints(colorMap string) ([]ColorPoint, error) {
	switch colorMap {
	case "Greyscale":
		return []ColorPoint{
			{0, 0, 0, 0},
			{60, 50, 50, 50},
			{100, 100, 100, 100},
		}, nil
	case "RampColormap":
		return []ColorPoint{
			{0, 0, 0, 15},
			{10, 0, 0, 50},
			{31, 0, 65, 75},
			{50, 0, 80, 0},
			{70, 75, 80, 0},
			{83, 100, 60, 0},
			{100, 100, 0, 0},
		}, nil
	case "ColorWheel":
		return []ColorPoint{
			{0, 100, 100, 0},
			{20, 0, 80, 40},
			{30, 0, 100, 100},
			{50, 10, 10, 0},
			{65, 100, 0, 0},
			{88, 100, 40, 0},
			{100, 100, 100, 0},
		}, nil
	case "Spectrum":
		return []ColorPoint{
			{0, 0, 75, 0},
			{22, 0, 90, 90},
			{37, 0, 0, 85},
			{49, 90, 0, 85},
			{68, 90, 0, 0},
			{80, 90, 90, 0},
			{100, 95, 95, 95},
		}, nil
	default:
		return nil, fmt.Errorf("undefined colormap %q", colorMap)
	}
}
