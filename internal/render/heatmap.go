package render

import (
	"bytes"
	"math"

	"gonum.org/v1/gonum/floats"

	"avaspec-data-service/internal/numerical"
)

const paletteSize = 1000

// Heatmap renders a stack of equal-length frames (a store-to-RAM series)
// into outxsize x outysize RGBA bytes: frames along Y, pixels along X,
// intensity mapped through the named colormap.
func Heatmap(frames [][]float64, outxsize, outysize int, transform, colorMap string) ([]byte, error) {
	controlColors, err := GetColorControlPoints(colorMap)
	if err != nil {
		return nil, err
	}
	palette := MakeColorPalette(controlColors, paletteSize)

	thinned := downSampleFrames(frames, outxsize, outysize, transform)

	zmin := floats.Min(thinned)
	zmax := floats.Max(thinned)

	out := new(bytes.Buffer)
	out.Grow(len(thinned) * 4)
	if zmax == zmin {
		for range thinned {
			writeRGBA(out, palette[0])
		}
		return out.Bytes(), nil
	}
	colorsPerSpan := (zmax - zmin) / float64(paletteSize)
	for _, v := range thinned {
		colorIndex := math.Round((v-zmin)/colorsPerSpan) - 1
		colorIndex = math.Min(math.Max(colorIndex, 0), float64(paletteSize-1))
		writeRGBA(out, palette[int(colorIndex)])
	}
	return out.Bytes(), nil
}

func writeRGBA(out *bytes.Buffer, c ColorPoint) {
	out.WriteByte(c.Red)
	out.WriteByte(c.Green)
	out.WriteByte(c.Blue)
	out.WriteByte(255)
}

// downSampleFrames thins each frame to outxsize points, then reduces the
// frame axis to outysize lines.
func downSampleFrames(frames [][]float64, outxsize, outysize int, transform string) []float64 {
	framesPerLine := float64(len(frames)) / float64(outysize)
	framesPerLineCeil := int(math.Ceil(framesPerLine))

	out := make([]float64, outxsize*outysize)
	for line := 0; line < outysize; line++ {
		var start, end int
		if framesPerLine > 1 {
			if line != outysize-1 {
				start = int(math.Round(float64(line) * framesPerLine))
				end = int(math.Round(float64(line+1) * framesPerLine))
			} else { // Last line, work backwards from the final frame.
				end = len(frames)
				start = end - framesPerLineCeil
			}
		} else {
			start = int(math.Floor(float64(line) * framesPerLine))
			end = start + 1
		}

		block := make([]float64, (end-start)*outxsize)
		for i, frame := range frames[start:end] {
			numerical.DownSampleLineInX(frame, outxsize, transform, block, i)
		}
		copy(out[line*outxsize:], numerical.DownSampleLineInY(block, outxsize, transform))
	}
	return out
}
