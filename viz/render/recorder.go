package render

import (
	"image/color"

	"nile/viz/geom"
)

// CallKind identifies a recorded Surface call.
type CallKind uint8

const (
	CallClear CallKind = iota
	CallFillRect
	CallFillPath
	CallStrokePath
	CallFillCircle
	CallStrokeCircle
	CallText
)

// Call is one recorded drawing call.
type Call struct {
	Kind  CallKind
	Color color.RGBA

	// Rect is x, y, w, h for FillRect.
	Rect [4]float64
	Path *Path

	// Center and R describe circles, Width strokes.
	Center geom.Vec
	R      float64
	Width  float64

	// At is the baseline origin of Text.
	At   geom.Vec
	Text string
}

// Recorder is a Surface that records calls instead of drawing them.
// Text is measured as CharWidth pixels per byte.
type Recorder struct {
	W, H      int
	CharWidth float64
	Calls     []Call
}

// NewRecorder returns a recorder for a w×h surface.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h, CharWidth: 6}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear(c color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: CallClear, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: CallFillRect, Color: c, Rect: [4]float64{x, y, w, h}})
}

func (r *Recorder) FillPath(p *Path, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: CallFillPath, Color: c, Path: p})
}

func (r *Recorder) StrokePath(p *Path, width float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: CallStrokePath, Color: c, Path: p, Width: width})
}

func (r *Recorder) FillCircle(center geom.Vec, radius float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: CallFillCircle, Color: c, Center: center, R: radius})
}

func (r *Recorder) StrokeCircle(center geom.Vec, radius, width float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: CallStrokeCircle, Color: c, Center: center, R: radius, Width: width})
}

func (r *Recorder) Text(x, y float64, s string, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Kind: CallText, Color: c, At: geom.V(x, y), Text: s})
}

func (r *Recorder) TextWidth(s string) float64 {
	return float64(len(s)) * r.CharWidth
}

// Reset drops recorded calls.
func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }

// Filter returns the calls of the given kind.
func (r *Recorder) Filter(kind CallKind) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// WithColor returns the calls of the given kind drawn in c.
func (r *Recorder) WithColor(kind CallKind, c color.RGBA) []Call {
	var out []Call
	for _, call := range r.Calls {
		if call.Kind == kind && call.Color == c {
			out = append(out, call)
		}
	}
	return out
}
