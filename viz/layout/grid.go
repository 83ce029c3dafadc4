package layout

import "math"

// GridLines is the number of grid lines aimed for across a visible span.
const GridLines = 8

// GridStep returns the power-of-ten spacing that gives roughly lines grid
// lines across [lo, hi].
func GridStep(lo, hi float64, lines int) float64 {
	span := hi - lo
	if !(span > 0) || lines <= 0 || math.IsInf(span, 0) {
		return 1
	}
	return math.Pow(10, math.Round(math.Log10(span/float64(lines))))
}

// GridValues returns the multiples of step from floor(lo/step)*step up to hi
// (exclusive, or inclusive when inclusive is set).
func GridValues(lo, hi, step float64, inclusive bool) []float64 {
	if !(step > 0) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	start := math.Floor(lo/step) * step
	var out []float64
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > hi || (!inclusive && v >= hi) {
			break
		}
		out = append(out, v)
	}
	return out
}

// SnapPixel puts a device coordinate on the center of its pixel so that a
// one pixel wide line covers exactly one pixel column or row.
func SnapPixel(v float64) float64 {
	return math.Floor(v) + 0.5
}
