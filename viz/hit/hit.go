// Package hit resolves device coordinates to the things under them.
package hit

import (
	"math"

	"nile/viz/extract"
	"nile/viz/geom"
	"nile/viz/layout"
	"nile/viz/stream"
)

// Radius is the hover and selection radius in device pixels.
const Radius = 20

// NearestPoint returns the index of the point closest to device point d,
// provided it lies within radiusPx device pixels. Ties keep the earliest
// point.
func NearestPoint(points []extract.Point, t layout.Transform, w, h float64, d geom.Vec, radiusPx float64) (int, bool) {
	if len(points) == 0 || !(t.Scale > 0) {
		return -1, false
	}
	p := t.ToModel(d, w, h)
	radius := radiusPx / t.Scale

	closest := -1
	closestDistance := math.Inf(1)
	for i, pt := range points {
		dist := pt.Vec.Dist(p)
		if dist < closestDistance {
			closestDistance = dist
			closest = i
		}
	}
	if closest < 0 || closestDistance > radius {
		return -1, false
	}
	return closest, true
}

// Bucket returns the item whose bar covers device x. Every x maps to some
// bar; the result is only empty when count is zero.
func Bucket(x float64, count, width int) (stream.Handle, bool) {
	if count <= 0 {
		return stream.None, false
	}
	barWidth := float64(width / count)
	if barWidth < 1 {
		barWidth = float64(width) / float64(count)
	}
	i := int(math.Floor(x / barWidth))
	if i < 0 {
		i = 0
	}
	if i > count-1 {
		i = count - 1
	}
	return stream.Handle(i), true
}
