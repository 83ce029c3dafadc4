// Package geom has the small 2D vector type shared by the viewer packages.
package geom

import "math"

// Vec is a 2D point or displacement.
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (a Vec) Add(b Vec) Vec         { return Vec{a.X + b.X, a.Y + b.Y} }
func (a Vec) Sub(b Vec) Vec         { return Vec{a.X - b.X, a.Y - b.Y} }
func (a Vec) Scale(s float64) Vec   { return Vec{a.X * s, a.Y * s} }
func (a Vec) Dist(b Vec) float64    { return math.Hypot(a.X-b.X, a.Y-b.Y) }
func (a Vec) Lerp(b Vec, t float64) Vec {
	return Vec{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}
