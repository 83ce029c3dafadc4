package render

import (
	"image/color"
	"math"

	"nile/viz/extract"
	"nile/viz/geom"
	"nile/viz/layout"
	"nile/viz/stream"
)

// Style holds the display preferences threaded into rendering.
type Style struct {
	HighContrast bool
}

// Frame is everything the renderer needs to draw one view.
type Frame struct {
	Mode  extract.Visualization
	Count int

	// All is the full-stream extraction. Selected and Hot are extractions of
	// the selected items and of the hot item alone.
	All      extract.Extractions
	Selected extract.Extractions
	Hot      extract.Extractions

	SelectedSet []stream.Handle
	HotItem     stream.Handle

	Transform layout.Transform
	Bounds    layout.Bounds

	Caption string

	Help        string
	HelpOpacity float64
}

var (
	colorBackground = color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}
	colorGrid       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorHot        = color.RGBA{R: 0xff, A: 0xff}
	colorSelected   = color.RGBA{A: 0xff}
	colorPoint      = color.RGBA{R: 0x53, G: 0xb4, B: 0xff, A: 0xff}
	colorWhite      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Stroke widths and text offsets in pixels.
const (
	curveStroke   = 0.6
	ringStroke    = 1
	labelOffset   = 6
	labelOffsetHC = 10
	captionPad    = 2
	captionLine   = 10
)

// pass selects which highlight partition a draw call renders.
type pass uint8

const (
	passBase pass = iota
	passSelected
	passHot
)

// Renderer draws frames onto a Surface.
type Renderer struct {
	Style Style
}

// Render draws f onto s.
func (r *Renderer) Render(s Surface, f *Frame) {
	s.Clear(colorBackground)
	if f.Count == 0 || f.Mode == extract.None {
		return
	}

	r.layer(s, f, &f.All, passBase)
	if len(f.SelectedSet) > 0 {
		r.layer(s, f, &f.Selected, passSelected)
	}
	if f.HotItem.Valid() {
		r.layer(s, f, &f.Hot, passHot)
	}

	r.caption(s, f)
	r.help(s, f)
}

func (r *Renderer) layer(s Surface, f *Frame, e *extract.Extractions, p pass) {
	switch f.Mode {
	case extract.Plot:
		if p == passBase {
			r.plotGrid(s, f)
			r.fillBeziers(s, f, e.Beziers)
		} else {
			r.strokeBeziers(s, f, e.Beziers, p)
		}
		if len(e.Colors) > 0 {
			r.fillPixels(s, f, e.Points, e.Colors, p)
		} else {
			r.fillPoints(s, f, e.Points, e.Properties, p)
		}
		if p == passHot {
			r.labelBeziers(s, f, e.Beziers)
		}
	case extract.Colors:
		r.fillColors(s, f, e.Colors, p)
	case extract.Bars:
		if p == passBase {
			r.barsGrid(s, f)
		}
		r.fillReals(s, f, e.Reals, p)
	}
}

// classify puts an item in exactly one highlight partition. The hot item
// wins over selection.
func classify(f *Frame, h stream.Handle) pass {
	if h == f.HotItem && h.Valid() {
		return passHot
	}
	for _, sel := range f.SelectedSet {
		if sel == h {
			return passSelected
		}
	}
	return passBase
}

func (r *Renderer) highlightColor(p pass, base color.RGBA) color.RGBA {
	switch p {
	case passHot:
		return colorHot
	case passSelected:
		return colorSelected
	}
	return base
}

func (r *Renderer) plotGrid(s Surface, f *Frame) {
	w, h := s.Size()
	fw, fh := float64(w), float64(h)
	min, max := f.Transform.Visible(fw, fh)
	step := layout.GridStep(min.X, max.X, layout.GridLines)

	for _, x := range layout.GridValues(min.X, max.X, step, false) {
		dx := layout.SnapPixel(f.Transform.ToDevice(geom.V(x, 0), fw, fh).X)
		s.FillRect(dx-0.5, 0, 1, fh, colorGrid)
	}
	for _, y := range layout.GridValues(min.Y, max.Y, step, false) {
		dy := layout.SnapPixel(f.Transform.ToDevice(geom.V(0, y), fw, fh).Y)
		s.FillRect(0, dy-0.5, fw, 1, colorGrid)
	}
}

func (r *Renderer) device(s Surface, f *Frame, v geom.Vec) geom.Vec {
	w, h := s.Size()
	return f.Transform.ToDevice(v, float64(w), float64(h))
}

// fanPath builds one path through every curve, closing each run of curves
// back to its start. A curve whose start equals the previous curve's end
// exactly continues the same sub-path.
func (r *Renderer) fanPath(s Surface, f *Frame, bs []extract.Bezier) *Path {
	p := &Path{}
	for i, b := range bs {
		if i == 0 || b.A != bs[i-1].C {
			if i > 0 {
				p.Close()
			}
			p.MoveTo(r.device(s, f, b.A))
		}
		p.QuadTo(r.device(s, f, b.B), r.device(s, f, b.C))
	}
	if len(bs) > 0 {
		p.Close()
	}
	return p
}

func (r *Renderer) fillBeziers(s Surface, f *Frame, bs []extract.Bezier) {
	if len(bs) == 0 {
		return
	}
	a := 0.05
	if r.Style.HighContrast {
		a = 0.1
	}
	s.FillPath(r.fanPath(s, f, bs), RGBA(0, 0, 0, a))
}

func (r *Renderer) strokeBeziers(s Surface, f *Frame, bs []extract.Bezier, p pass) {
	path := &Path{}
	for _, b := range bs {
		if classify(f, b.Item) != p {
			continue
		}
		path.MoveTo(r.device(s, f, b.A))
		path.QuadTo(r.device(s, f, b.B), r.device(s, f, b.C))
	}
	if path.Empty() {
		return
	}
	s.StrokePath(path, curveStroke, r.highlightColor(p, RGBA(0, 0, 0, 0.1)))
}

// markerRadius returns the pixel radius of a point marker and whether it
// is drawn as a ring.
func (r *Renderer) markerRadius(f *Frame, prop *extract.Property, p pass) (float64, bool) {
	scale := f.Transform.Scale
	if prop != nil {
		if size, ok := prop.Size(); ok {
			s := math.Max(0, math.Min(1, size))
			s *= s
			model := math.Min(0.11, 3/scale)*(1-s) + 0.4*s
			return model * scale, s == 0
		}
	}
	px := 2.0
	if p != passBase {
		px = 3
	}
	if r.Style.HighContrast {
		px *= 2
	}
	return px, false
}

func (r *Renderer) fillPoints(s Surface, f *Frame, pts []extract.Point, props []extract.Property, p pass) {
	col := r.highlightColor(p, colorPoint)
	byItem := make(map[stream.Handle]*extract.Property, len(props))
	for i := range props {
		if _, dup := byItem[props[i].Item]; !dup {
			byItem[props[i].Item] = &props[i]
		}
	}
	for _, pt := range pts {
		if classify(f, pt.Item) != p {
			continue
		}
		radius, ring := r.markerRadius(f, byItem[pt.Item], p)
		c := r.device(s, f, pt.Vec)
		if ring {
			s.StrokeCircle(c, math.Max(0, radius-ringStroke/2.0), ringStroke, col)
			continue
		}
		s.FillCircle(c, radius, col)
	}
}

// fillPixels draws each point as a unit model-space pixel in its color.
// Highlighted pixels get a centered inset square instead.
func (r *Renderer) fillPixels(s Surface, f *Frame, pts []extract.Point, cols []extract.Color, p pass) {
	if len(pts) != len(cols) {
		r.fillPoints(s, f, pts, nil, p)
		return
	}
	scale := f.Transform.Scale
	for i, pt := range pts {
		if p == passBase {
			x, y := math.Floor(pt.X), math.Floor(pt.Y)
			c := cols[i]
			r.fillModelRect(s, f, x, y, 1, 1, RGBA(unitByte(c.R), unitByte(c.G), unitByte(c.B), c.A))
			continue
		}
		if classify(f, pt.Item) != p {
			continue
		}
		cx, cy := math.Floor(pt.X)+0.5, math.Floor(pt.Y)+0.5

		outer, inner := math.Min(0.6, 4/scale), math.Min(0.5, 3/scale)
		outerCol, innerCol := RGBA(0, 0, 0, 0.1), RGBA(0xff, 0xff, 0xff, 0.4)
		if r.Style.HighContrast {
			outer, inner = math.Min(0.6, 7/scale), math.Min(0.5, 5/scale)
			outerCol, innerCol = RGBA(0xff, 0xff, 0xff, 0.5), colorSelected
		}
		if p == passHot {
			innerCol = colorHot
		}
		r.fillModelRect(s, f, cx-outer, cy-outer, 2*outer, 2*outer, outerCol)
		r.fillModelRect(s, f, cx-inner, cy-inner, 2*inner, 2*inner, innerCol)
	}
}

func (r *Renderer) fillModelRect(s Surface, f *Frame, x, y, w, h float64, c color.RGBA) {
	a := r.device(s, f, geom.V(x, y+h))
	b := r.device(s, f, geom.V(x+w, y))
	s.FillRect(a.X, a.Y, b.X-a.X, b.Y-a.Y, c)
}

func (r *Renderer) labelBeziers(s Surface, f *Frame, bs []extract.Bezier) {
	off := float64(labelOffset)
	if r.Style.HighContrast {
		off = labelOffsetHC
	}
	for _, b := range bs {
		if classify(f, b.Item) != passHot {
			continue
		}
		for i, v := range [3]geom.Vec{b.A, b.B, b.C} {
			d := r.device(s, f, v)
			s.Text(d.X+off, d.Y+off/2, string(rune('A'+i)), colorHot)
		}
	}
}

func (r *Renderer) fillColors(s Surface, f *Frame, cs []extract.Color, p pass) {
	w, h := s.Size()
	bars := layout.Bars(f.Count, w, layout.ColorsDivisor)
	fh := float64(h)
	for _, c := range cs {
		if classify(f, c.Item) != p {
			continue
		}
		x := float64(bars.X(int(c.Item)))
		bw := float64(bars.Width)
		s.FillRect(x, 0, bw, fh, RGBA(unitByte(c.R), unitByte(c.G), unitByte(c.B), c.A))
		if p == passBase {
			continue
		}
		s.FillRect(x, (fh-(bw+2))/2, bw, bw+2, colorWhite)
		s.FillRect(x, (fh-bw)/2, bw, bw, r.highlightColor(p, colorSelected))
	}
}

func (r *Renderer) barsGrid(s Surface, f *Frame) {
	w, _ := s.Size()
	lo, hi := f.Bounds.GridRange()
	step := layout.GridStep(lo, hi, layout.GridLines)
	for _, v := range layout.GridValues(lo, hi, step, true) {
		y := layout.SnapPixel(f.Bounds.Y(v))
		s.FillRect(0, y-0.5, float64(w), 1, colorGrid)
	}
}

func (r *Renderer) fillReals(s Surface, f *Frame, rs []extract.Real, p pass) {
	w, _ := s.Size()
	bars := layout.Bars(f.Count, w, layout.BarsDivisor)
	col := r.highlightColor(p, RGBA(0, 0, 0, 0.2))
	base := f.Bounds.BaselineY
	for _, v := range rs {
		if classify(f, v.Item) != p {
			continue
		}
		y := f.Bounds.Y(v.Value)
		s.FillRect(float64(bars.X(int(v.Item))), math.Min(y, base), float64(bars.Width), math.Abs(y-base), col)
	}
}

// caption draws the hot item's description at the top of the canvas. Bar
// modes center it over the hot bar.
func (r *Renderer) caption(s Surface, f *Frame) {
	if f.Caption == "" {
		return
	}
	w, _ := s.Size()
	fw := float64(w)
	text := truncateToWidth(s, f.Caption, fw-2*captionPad)
	tw := s.TextWidth(text)

	x := float64(captionPad)
	if (f.Mode == extract.Bars || f.Mode == extract.Colors) && f.HotItem.Valid() && f.Count > 0 {
		divisor := layout.BarsDivisor
		if f.Mode == extract.Colors {
			divisor = layout.ColorsDivisor
		}
		bars := layout.Bars(f.Count, w, divisor)
		center := (float64(f.HotItem) + 0.5) * float64(bars.Width+bars.Padding)
		x = math.Max(captionPad, math.Min(center-tw/2, fw-captionPad-tw))
	}
	s.FillRect(x-captionPad, 0, tw+2*captionPad, captionLine+captionPad, RGBA(0xff, 0xff, 0xff, 0.8))
	s.Text(x, captionLine-1, text, colorSelected)
}

// help draws the contextual help line with the current fade opacity. The
// text fades from mid gray to the background.
func (r *Renderer) help(s Surface, f *Frame) {
	if f.Help == "" || f.HelpOpacity <= 0 {
		return
	}
	_, h := s.Size()
	g := unitByte(0.75 + 0.25*(1-f.HelpOpacity))
	s.Text(captionPad, float64(h)-captionPad-1, f.Help, color.RGBA{R: g, G: g, B: g, A: 0xff})
}

func truncateToWidth(s Surface, text string, maxW float64) string {
	if maxW <= 0 {
		return ""
	}
	if s.TextWidth(text) <= maxW {
		return text
	}
	rs := []rune(text)
	for len(rs) > 0 {
		rs = rs[:len(rs)-1]
		if t := string(rs) + "..."; s.TextWidth(t) <= maxW {
			return t
		}
	}
	return ""
}
