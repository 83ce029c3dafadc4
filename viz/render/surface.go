// Package render draws stream visualizations onto a 2D surface.
//
// Surface is the small immediate-mode drawing API the renderer needs. Canvas
// implements it on an RGBA image for the host window, Recorder captures the
// calls for tests.
package render

import (
	"image/color"

	"nile/viz/geom"
)

// Surface is an immediate-mode 2D drawing target in device pixels.
type Surface interface {
	Size() (w, h int)
	Clear(c color.RGBA)
	FillRect(x, y, w, h float64, c color.RGBA)
	FillPath(p *Path, c color.RGBA)
	StrokePath(p *Path, width float64, c color.RGBA)
	FillCircle(center geom.Vec, r float64, c color.RGBA)
	StrokeCircle(center geom.Vec, r, width float64, c color.RGBA)

	// Text draws s with its baseline starting at (x, y).
	Text(x, y float64, s string, c color.RGBA)
	TextWidth(s string) float64
}

// PathOpKind identifies a path segment.
type PathOpKind uint8

const (
	MoveTo PathOpKind = iota
	LineTo
	QuadTo
	Close
)

// PathOp is one path segment. QuadTo uses both points (control, end),
// MoveTo and LineTo only the first.
type PathOp struct {
	Kind PathOpKind
	P    [2]geom.Vec
}

// Path is a sequence of sub-paths in device coordinates.
type Path struct {
	ops []PathOp
}

func (p *Path) MoveTo(v geom.Vec) { p.ops = append(p.ops, PathOp{Kind: MoveTo, P: [2]geom.Vec{v}}) }
func (p *Path) LineTo(v geom.Vec) { p.ops = append(p.ops, PathOp{Kind: LineTo, P: [2]geom.Vec{v}}) }
func (p *Path) QuadTo(ctrl, end geom.Vec) {
	p.ops = append(p.ops, PathOp{Kind: QuadTo, P: [2]geom.Vec{ctrl, end}})
}
func (p *Path) Close() { p.ops = append(p.ops, PathOp{Kind: Close}) }

// Ops returns the recorded segments.
func (p *Path) Ops() []PathOp { return p.ops }

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool { return len(p.ops) == 0 }

// Subpaths returns the number of MoveTo segments.
func (p *Path) Subpaths() int {
	n := 0
	for _, op := range p.ops {
		if op.Kind == MoveTo {
			n++
		}
	}
	return n
}

// flatten converts the path to polylines, subdividing quadratic segments.
func (p *Path) flatten() [][]geom.Vec {
	var lines [][]geom.Vec
	var cur []geom.Vec
	var start geom.Vec
	flush := func() {
		if len(cur) > 1 {
			lines = append(lines, cur)
		}
		cur = nil
	}
	for _, op := range p.ops {
		switch op.Kind {
		case MoveTo:
			flush()
			start = op.P[0]
			cur = []geom.Vec{start}
		case LineTo:
			if cur == nil {
				cur = []geom.Vec{op.P[0]}
				start = op.P[0]
				continue
			}
			cur = append(cur, op.P[0])
		case QuadTo:
			if cur == nil {
				cur = []geom.Vec{op.P[0]}
				start = op.P[0]
			}
			a := cur[len(cur)-1]
			b, c := op.P[0], op.P[1]
			n := quadSegments(a, b, c)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				cur = append(cur, a.Lerp(b, t).Lerp(b.Lerp(c, t), t))
			}
		case Close:
			if cur != nil {
				cur = append(cur, start)
			}
			flush()
		}
	}
	flush()
	return lines
}

// quadSegments picks a subdivision count from the control polygon length.
func quadSegments(a, b, c geom.Vec) int {
	n := int((a.Dist(b) + b.Dist(c)) / 4)
	if n < 4 {
		return 4
	}
	if n > 64 {
		return 64
	}
	return n
}

// RGBA returns the alpha-premultiplied color for r, g, b at opacity a.
func RGBA(r, g, b uint8, a float64) color.RGBA {
	alpha := unitByte(a)
	pre := func(v uint8) uint8 { return uint8((uint32(v)*uint32(alpha) + 127) / 255) }
	return color.RGBA{R: pre(r), G: pre(g), B: pre(b), A: alpha}
}

func unitByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
