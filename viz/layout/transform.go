// Package layout maps model space onto a fixed pixel canvas.
//
// Plot mode uses a Transform (translation then uniform scale, y flipped).
// Colors and bars modes lay items out as equal-width bars, and bars mode maps
// values to rows through Bounds.
package layout

import (
	"math"

	"nile/viz/geom"

	"github.com/aclements/go-moremath/stats"
)

const (
	// FitMargin is the fraction of the canvas a fitted plot occupies.
	FitMargin = 0.75

	minExtent = 0.01
)

// Transform is the plot view state.
type Transform struct {
	Translation geom.Vec
	Scale       float64
}

// ToDevice maps a model point onto a w x h canvas:
// center + scale*(p + translation), with y pointing up in model space.
func (t Transform) ToDevice(p geom.Vec, w, h float64) geom.Vec {
	return geom.Vec{
		X: w/2 + t.Scale*(p.X+t.Translation.X),
		Y: h/2 - t.Scale*(p.Y+t.Translation.Y),
	}
}

// ToModel is the inverse of ToDevice.
func (t Transform) ToModel(d geom.Vec, w, h float64) geom.Vec {
	return geom.Vec{
		X: (d.X-w/2)/t.Scale - t.Translation.X,
		Y: (d.Y-h/2)/-t.Scale - t.Translation.Y,
	}
}

// Pan moves the view by a device-pixel delta.
func (t Transform) Pan(dx, dy float64) Transform {
	t.Translation.X += dx / t.Scale
	t.Translation.Y += -dy / t.Scale
	return t
}

// Zoom scales the view by 1.01^(dx-dy).
func (t Transform) Zoom(dx, dy float64) Transform {
	t.Scale *= math.Pow(1.01, dx-dy)
	return t
}

// Visible returns the model-space rectangle covered by a w x h canvas.
func (t Transform) Visible(w, h float64) (min, max geom.Vec) {
	min = geom.Vec{X: -0.5*w/t.Scale - t.Translation.X, Y: -0.5*h/t.Scale - t.Translation.Y}
	max = geom.Vec{X: 0.5*w/t.Scale - t.Translation.X, Y: 0.5*h/t.Scale - t.Translation.Y}
	return min, max
}

// Metrics is the bounding box of a point set.
type Metrics struct {
	Min, Max geom.Vec
}

// Mid returns the center of the box.
func (m Metrics) Mid() geom.Vec {
	return geom.Vec{X: 0.5 * (m.Max.X + m.Min.X), Y: 0.5 * (m.Max.Y + m.Min.Y)}
}

// MetricsOf returns the bounding box of ps, or the box around the origin
// when ps is empty.
func MetricsOf(ps []geom.Vec) Metrics {
	if len(ps) == 0 {
		return Metrics{}
	}
	xs := make([]float64, len(ps))
	ys := make([]float64, len(ps))
	for i, p := range ps {
		xs[i] = p.X
		ys[i] = p.Y
	}
	var m Metrics
	m.Min.X, m.Max.X = stats.Bounds(xs)
	m.Min.Y, m.Max.Y = stats.Bounds(ys)
	return m
}

// Fit returns the transform that centers m on a w x h canvas with a 25%
// margin.
func Fit(m Metrics, w, h float64) Transform {
	widthScale := w / math.Max(minExtent, m.Max.X-m.Min.X)
	heightScale := h / math.Max(minExtent, m.Max.Y-m.Min.Y)
	mid := m.Mid()
	return Transform{
		Translation: geom.Vec{X: -mid.X, Y: -mid.Y},
		Scale:       FitMargin * math.Min(widthScale, heightScale),
	}
}
