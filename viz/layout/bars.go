package layout

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Sparse thresholds: padding between bars is dropped once the item count
// exceeds width/divisor.
const (
	ColorsDivisor = 4
	BarsDivisor   = 2
)

// BarLayout places count equal-width bars across a canvas.
type BarLayout struct {
	Width   int
	Padding int
}

// Bars lays out count bars across width pixels.
func Bars(count, width, divisor int) BarLayout {
	if count <= 0 {
		return BarLayout{}
	}
	padding := 1
	if divisor > 0 && float64(count) > float64(width)/float64(divisor) {
		padding = 0
	}
	return BarLayout{Width: width/count - padding, Padding: padding}
}

// X returns the device x-origin of bar i.
func (l BarLayout) X(i int) int {
	return i * (l.Width + l.Padding)
}

// Bar mode geometry, in pixels.
const (
	BarMargin      = 6
	BaselineHeight = 2

	minRange = 1e-3
)

// Bounds maps real values to canvas rows in bars mode.
type Bounds struct {
	Max, Min, Range float64

	// BaselineY is the row bars grow from.
	BaselineY float64

	// DeltaPerPixel converts a vertical drag in pixels into a value delta.
	DeltaPerPixel float64

	height float64
}

// RealBounds returns the bounds for values in [min, max] on a canvas of the
// given height. A range below 1e-3 is widened by raising max.
func RealBounds(max, min, height float64) Bounds {
	b := Bounds{Max: max, Min: min, height: height}
	if b.Max-b.Min < minRange {
		b.Max = b.Min + minRange
	}
	b.Range = b.Max - b.Min

	switch {
	case b.Min >= 0:
		b.BaselineY = height
	case b.Max <= 0:
		b.BaselineY = 0
	default:
		b.BaselineY = b.Y(0)
	}
	b.DeltaPerPixel = 1 / (b.Y(0) - b.Y(1))
	return b
}

// BoundsOf returns the bounds of values. An empty slice is treated as the
// single value 0.
func BoundsOf(values []float64, height float64) Bounds {
	if len(values) == 0 {
		return RealBounds(0, 0, height)
	}
	min, max := stats.Bounds(values)
	return RealBounds(max, min, height)
}

// Y returns the canvas row for value v.
func (b Bounds) Y(v float64) float64 {
	h := b.height
	switch {
	case b.Min >= 0:
		return h - BaselineHeight - v/b.Max*(h-BarMargin-BaselineHeight)
	case b.Max <= 0:
		return BaselineHeight + v/b.Min*(h-BarMargin-BaselineHeight)
	}
	zeroY := b.Max/b.Range*(h-2*BarMargin) + BarMargin
	return zeroY - v/b.Range*(h-2*BarMargin)
}

// Height returns the canvas height the bounds were computed for.
func (b Bounds) Height() float64 { return b.height }

// GridRange returns the value span the bars grid covers: the bounds
// extended to include zero.
func (b Bounds) GridRange() (lo, hi float64) {
	return math.Min(b.Min, 0), math.Max(b.Max, 0)
}
