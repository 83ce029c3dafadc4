package render

import (
	"image/color"
	"testing"

	"nile/hal"
	"nile/viz/geom"
)

type testFB struct {
	w, h int
	buf  []byte
}

func newTestFB(w, h int) *testFB { return &testFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) ClearRGB(r, g, b uint8)  {}
func (f *testFB) Present() error          { return nil }

func (f *testFB) at(x, y int) uint16 {
	o := y*f.w*2 + x*2
	return uint16(f.buf[o]) | uint16(f.buf[o+1])<<8
}

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Rasterized coverage may land a unit short of full, so compare loosely.
func isRed(c color.RGBA) bool   { return c.R > 0xf0 && c.G < 0x10 && c.B < 0x10 }
func isWhite(c color.RGBA) bool { return c.R > 0xf0 && c.G > 0xf0 && c.B > 0xf0 }

func TestCanvasFillRectAligned(t *testing.T) {
	c := NewCanvas(8, 8)
	c.Clear(white)
	c.FillRect(2, 2, 3, 1, red)
	if got := c.Image().RGBAAt(3, 2); got != red {
		t.Fatalf("inside = %v", got)
	}
	if got := c.Image().RGBAAt(3, 3); got != white {
		t.Fatalf("outside = %v", got)
	}
}

func TestCanvasCircleAndRing(t *testing.T) {
	c := NewCanvas(40, 20)
	c.Clear(white)
	c.FillCircle(geom.V(10, 10), 5, red)
	c.StrokeCircle(geom.V(30, 10), 6, 1, red)

	if got := c.Image().RGBAAt(10, 10); !isRed(got) {
		t.Fatalf("disc center = %v", got)
	}
	if got := c.Image().RGBAAt(10, 2); !isWhite(got) {
		t.Fatalf("outside disc = %v", got)
	}
	if got := c.Image().RGBAAt(30, 10); !isWhite(got) {
		t.Fatalf("ring center = %v, want background", got)
	}
	if got := c.Image().RGBAAt(36, 10); isWhite(got) {
		t.Fatalf("ring edge not drawn: %v", got)
	}
}

func TestCanvasStrokePath(t *testing.T) {
	c := NewCanvas(20, 20)
	c.Clear(white)
	p := &Path{}
	p.MoveTo(geom.V(0, 10.5))
	p.LineTo(geom.V(20, 10.5))
	c.StrokePath(p, 1, red)
	if got := c.Image().RGBAAt(5, 10); !isRed(got) {
		t.Fatalf("stroke pixel = %v", got)
	}
	if got := c.Image().RGBAAt(5, 12); !isWhite(got) {
		t.Fatalf("off-stroke pixel = %v", got)
	}
}

func TestCanvasTextDraws(t *testing.T) {
	c := NewCanvas(40, 20)
	c.Clear(white)
	c.Text(2, 12, "A", red)
	changed := false
	for y := 0; y < 20 && !changed; y++ {
		for x := 0; x < 40; x++ {
			if c.Image().RGBAAt(x, y) != white {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Fatal("text left the canvas untouched")
	}
	if c.TextWidth("AB") <= c.TextWidth("A") {
		t.Fatal("text width does not grow")
	}
}

func TestCanvasTextOffCanvasIsDropped(t *testing.T) {
	c := NewCanvas(40, 20)
	c.Clear(white)
	// 65536+2 would wrap to x=2 as an int16.
	c.Text(65538, 12, "A", red)
	c.Text(2, -400, "A", red)
	c.Text(-200, 12, "A", red)
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if got := c.Image().RGBAAt(x, y); got != white {
				t.Fatalf("pixel (%d,%d) = %v, want untouched", x, y, got)
			}
		}
	}
}

func TestCanvasPresentRGB565(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Clear(red)
	fb := newTestFB(6, 6)
	c.Present(fb, 4, 4)

	if got := fb.at(4, 4); got != hal.RGB565(0xff, 0, 0) {
		t.Fatalf("presented pixel = %#04x", got)
	}
	if got := fb.at(3, 3); got != 0 {
		t.Fatalf("pixel outside canvas = %#04x", got)
	}
}

func TestCanvasDisplayBlendsTranslucent(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Clear(white)
	c.disp.SetPixel(0, 0, RGBA(0, 0, 0, 0.5))
	got := c.Image().RGBAAt(0, 0)
	if got.R < 0x7e || got.R > 0x81 || got.A != 0xff {
		t.Fatalf("blended = %v", got)
	}
}
