package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"nile/hal"
	"nile/viz/geom"
)

// circleSegments is the number of quadratic arcs used to approximate a circle.
const circleSegments = 8

// Canvas is a Surface backed by an RGBA image. Fills are anti-aliased by
// the vector rasterizer; text uses a tinyfont bitmap font.
type Canvas struct {
	img  *image.RGBA
	ras  *vector.Rasterizer
	font tinyfont.Fonter
	disp *canvasDisplay
}

// NewCanvas returns a w×h canvas.
func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		ras:  vector.NewRasterizer(w, h),
		font: &proggy.TinySZ8pt7b,
	}
	c.disp = &canvasDisplay{img: c.img}
	return c
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear(col color.RGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 || col.A == 0 {
		return
	}
	// Pixel-aligned rects skip the rasterizer.
	if x == math.Trunc(x) && y == math.Trunc(y) && w == math.Trunc(w) && h == math.Trunc(h) {
		r := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(c.img.Bounds())
		draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
		return
	}
	c.begin()
	c.ras.MoveTo(float32(x), float32(y))
	c.ras.LineTo(float32(x+w), float32(y))
	c.ras.LineTo(float32(x+w), float32(y+h))
	c.ras.LineTo(float32(x), float32(y+h))
	c.ras.ClosePath()
	c.flush(col)
}

func (c *Canvas) FillPath(p *Path, col color.RGBA) {
	if p.Empty() || col.A == 0 {
		return
	}
	c.begin()
	open := false
	for _, op := range p.ops {
		switch op.Kind {
		case MoveTo:
			if open {
				c.ras.ClosePath()
			}
			c.ras.MoveTo(f32(op.P[0]))
			open = true
		case LineTo:
			c.ras.LineTo(f32(op.P[0]))
		case QuadTo:
			bx, by := f32(op.P[0])
			cx, cy := f32(op.P[1])
			c.ras.QuadTo(bx, by, cx, cy)
		case Close:
			c.ras.ClosePath()
			open = false
		}
	}
	if open {
		c.ras.ClosePath()
	}
	c.flush(col)
}

// StrokePath strokes every flattened segment as a quad. All quads share one
// winding so overlaps at joints do not cancel.
func (c *Canvas) StrokePath(p *Path, width float64, col color.RGBA) {
	if p.Empty() || width <= 0 || col.A == 0 {
		return
	}
	hw := width / 2
	c.begin()
	for _, line := range p.flatten() {
		for i := 1; i < len(line); i++ {
			a, b := line[i-1], line[i]
			d := b.Sub(a)
			l := math.Hypot(d.X, d.Y)
			if l == 0 {
				continue
			}
			n := geom.V(-d.Y/l*hw, d.X/l*hw)
			c.ras.MoveTo(f32(a.Add(n)))
			c.ras.LineTo(f32(b.Add(n)))
			c.ras.LineTo(f32(b.Sub(n)))
			c.ras.LineTo(f32(a.Sub(n)))
			c.ras.ClosePath()
		}
	}
	c.flush(col)
}

func (c *Canvas) FillCircle(center geom.Vec, r float64, col color.RGBA) {
	if r <= 0 || col.A == 0 {
		return
	}
	c.begin()
	c.circle(center, r, false)
	c.flush(col)
}

// StrokeCircle fills the annulus between r-width/2 and r+width/2.
func (c *Canvas) StrokeCircle(center geom.Vec, r, width float64, col color.RGBA) {
	if width <= 0 || col.A == 0 {
		return
	}
	outer := r + width/2
	inner := r - width/2
	c.begin()
	c.circle(center, outer, false)
	if inner > 0 {
		c.circle(center, inner, true)
	}
	c.flush(col)
}

func (c *Canvas) circle(center geom.Vec, r float64, reverse bool) {
	step := 2 * math.Pi / circleSegments
	if reverse {
		step = -step
	}
	ctrl := r / math.Cos(step/2)
	c.ras.MoveTo(float32(center.X+r), float32(center.Y))
	for i := 0; i < circleSegments; i++ {
		a0 := float64(i) * step
		am := a0 + step/2
		a1 := a0 + step
		c.ras.QuadTo(
			float32(center.X+ctrl*math.Cos(am)), float32(center.Y+ctrl*math.Sin(am)),
			float32(center.X+r*math.Cos(a1)), float32(center.Y+r*math.Sin(a1)),
		)
	}
	c.ras.ClosePath()
}

// textReach bounds how far glyphs extend above or below the baseline.
const textReach = 16

func (c *Canvas) Text(x, y float64, s string, col color.RGBA) {
	if s == "" || col.A == 0 {
		return
	}
	// Anchors off the canvas are dropped before they reach tinyfont's
	// int16 coordinates, where they would wrap back on screen.
	w, h := c.Size()
	if x >= float64(w) || x+c.TextWidth(s) < 0 || y-textReach >= float64(h) || y+textReach < 0 {
		return
	}
	tinyfont.WriteLine(c.disp, c.font, int16(math.Round(x)), int16(math.Round(y)), s, col)
}

func (c *Canvas) TextWidth(s string) float64 {
	_, outbox := tinyfont.LineWidth(c.font, s)
	return float64(outbox)
}

// Present converts the canvas to RGB565 and copies it into fb at (x, y),
// clipped to the framebuffer.
func (c *Canvas) Present(fb hal.Framebuffer, x, y int) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := fb.Buffer()
	stride := fb.StrideBytes()
	dst := image.Rect(0, 0, fb.Width(), fb.Height())
	r := c.img.Bounds().Add(image.Pt(x, y)).Intersect(dst)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		src := c.img.PixOffset(r.Min.X-x, py-y)
		off := py*stride + r.Min.X*2
		for px := r.Min.X; px < r.Max.X; px++ {
			p := hal.RGB565(c.img.Pix[src], c.img.Pix[src+1], c.img.Pix[src+2])
			buf[off] = byte(p)
			buf[off+1] = byte(p >> 8)
			src += 4
			off += 2
		}
	}
}

func (c *Canvas) begin() {
	w, h := c.Size()
	c.ras.Reset(w, h)
	c.ras.DrawOp = draw.Over
}

func (c *Canvas) flush(col color.RGBA) {
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func f32(v geom.Vec) (float32, float32) { return float32(v.X), float32(v.Y) }

// canvasDisplay lets tinyfont draw into the canvas image, compositing
// premultiplied glyph colors over what is already there.
type canvasDisplay struct {
	img *image.RGBA
}

var _ drivers.Displayer = (*canvasDisplay)(nil)

func (d *canvasDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *canvasDisplay) SetPixel(x, y int16, c color.RGBA) {
	px, py := int(x), int(y)
	if !image.Pt(px, py).In(d.img.Bounds()) {
		return
	}
	if c.A == 0xff {
		d.img.SetRGBA(px, py, c)
		return
	}
	bg := d.img.RGBAAt(px, py)
	inv := 255 - uint32(c.A)
	blend := func(f, b uint8) uint8 {
		return uint8(uint32(f) + (uint32(b)*inv+127)/255)
	}
	d.img.SetRGBA(px, py, color.RGBA{
		R: blend(c.R, bg.R),
		G: blend(c.G, bg.G),
		B: blend(c.B, bg.B),
		A: 0xff,
	})
}

func (d *canvasDisplay) Display() error { return nil }
