package numerical

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func SuppressNaN(num float64) float64 {
	if math.IsNaN(num) {
		return 0
	}
	return num
}

// Transform reduces a slice of samples to one value. Used when thinning a
// spectrum or a frame stack down to a plottable size.
func Transform(dataIn []float64, transform string) float64 {
	switch transform {
	case "mean":
		return SuppressNaN(stat.Mean(dataIn, nil))
	case "max":
		return SuppressNaN(floats.Max(dataIn))
	case "min":
		return SuppressNaN(floats.Min(dataIn))
	case "maxabs":
		absnums := make([]float64, len(dataIn))
		for i := range dataIn {
			absnums[i] = math.Abs(dataIn[i])
		}
		return SuppressNaN(floats.Max(absnums))
	case "first":
		return SuppressNaN(dataIn[0])
	default: // Default to first if bad value.
		return SuppressNaN(dataIn[0])
	}
}

// DownSampleLineInX thins datain to outxsize points, writing into the
// outLineNum-th line of outData. When the output is wider than the input,
// input values are repeated instead.
func DownSampleLineInX(datain []float64, outxsize int, transform string, outData []float64, outLineNum int) {
	xelementsperoutput := float64(len(datain)) / float64(outxsize)
	if xelementsperoutput > 1 {
		xElementsPerOutputCeil := int(math.Ceil(xelementsperoutput))
		for x := 0; x < outxsize; x++ {
			var startelement int
			var endelement int
			if x != (outxsize - 1) {
				startelement = int(math.Round(float64(x) * xelementsperoutput))
				endelement = int(math.Round(float64(x+1) * xelementsperoutput))
			} else { // Last element, work backwards from the end.
				endelement = len(datain)
				startelement = endelement - xElementsPerOutputCeil
			}
			outData[outLineNum*outxsize+x] = Transform(datain[startelement:endelement], transform)
		}
	} else { // Expand data by repeating input values into the output.
		for x := 0; x < outxsize; x++ {
			index := int(math.Floor(float64(x) * xelementsperoutput))
			outData[outLineNum*outxsize+x] = datain[index]
		}
	}
}

// DownSampleLineInY reduces a stack of lines (datain is lines of width
// outxsize) column-wise to a single line.
func DownSampleLineInY(datain []float64, outxsize int, transform string) []float64 {
	numLines := len(datain) / outxsize
	processSlice := make([]float64, numLines)
	outData := make([]float64, outxsize)
	for x := 0; x < outxsize; x++ {
		for y := 0; y < numLines; y++ {
			processSlice[y] = datain[y*outxsize+x]
		}
		outData[x] = Transform(processSlice, transform)
	}
	return outData
}
