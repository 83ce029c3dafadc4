// Package app wires the HAL, the tick scheduler, a demo program and one view
// per program column into a single step function.
package app

import (
	"fmt"
	"image/color"

	"nile/hal"
	"nile/internal/buildinfo"
	"nile/viz/program"
	"nile/viz/render"
	"nile/viz/sched"
	"nile/viz/view"
)

// Config selects the demo program and the page layout.
type Config struct {
	Demo         string
	Editable     bool
	HighContrast bool

	// CanvasWidth and CanvasHeight size every view. Zero divides the
	// framebuffer evenly between the columns.
	CanvasWidth  int
	CanvasHeight int

	// Columns limits how many program columns are shown. Zero shows all.
	Columns int
}

const (
	gap         = 8
	titleHeight = 12
)

var (
	colorPage  = color.RGBA{R: 0xf4, G: 0xf4, B: 0xf4, A: 0xff}
	colorTitle = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
)

type system struct {
	h     hal.HAL
	cfg   Config
	log   hal.Logger
	sched *sched.Scheduler
	prog  *program.Program

	views    []*view.View
	canvases []*render.Canvas
	titles   *render.Canvas

	over    *view.View
	capture *view.View

	editable bool
	style    render.Style
	cursor   hal.Cursor
	chrome   bool
}

// New builds the viewer on h and returns its step function. The host runner
// calls step once per frame from a single goroutine.
func New(h hal.HAL, cfg Config) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return guard(h, s.step)
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	if cfg.Demo == "" {
		cfg.Demo = "plot"
	}
	prog, err := program.Demo(cfg.Demo)
	if err != nil {
		return nil, err
	}

	s := &system{
		h:        h,
		cfg:      cfg,
		log:      h.Logger(),
		sched:    sched.New(),
		prog:     prog,
		editable: cfg.Editable,
		style:    render.Style{HighContrast: cfg.HighContrast},
		chrome:   true,
	}
	prog.SetLogger(s.log)

	cols := prog.ColumnCount()
	if cfg.Columns > 0 && cfg.Columns < cols {
		cols = cfg.Columns
	}
	fbW, fbH := 0, 0
	if fb := s.framebuffer(); fb != nil {
		fbW, fbH = fb.Width(), fb.Height()
	}
	w, hgt := columnSize(fbW, fbH, cols, cfg.CanvasWidth, cfg.CanvasHeight)
	if w <= 0 || hgt <= 0 {
		return nil, fmt.Errorf("app: no room for %d columns in %dx%d", cols, fbW, fbH)
	}

	for c := 0; c < cols; c++ {
		v := view.New(view.Config{
			Column: c,
			X:      gap + c*(w+gap),
			Y:      gap + titleHeight,
			Width:  w,
			Height: hgt,
			Style:  s.style,
			Logger: s.log,
		}, shown{Program: prog, columns: cols}, s.sched)
		v.SetEditable(s.editable)
		prog.Register(v)
		s.views = append(s.views, v)
		s.canvases = append(s.canvases, render.NewCanvas(w, hgt))
	}
	if fbW > 0 {
		s.titles = render.NewCanvas(fbW, titleHeight)
	}
	s.logf("app: %s", buildinfo.Describe())
	s.logf("app: demo=%s columns=%d canvas=%dx%d editable=%v", cfg.Demo, cols, w, hgt, s.editable)
	return s, nil
}

// shown reports only the displayed columns, so "last column" rules follow
// the page rather than the program.
type shown struct {
	*program.Program
	columns int
}

func (p shown) ColumnCount() int { return p.columns }

// columnSize divides a fbW x fbH page into cols canvases separated by gap
// pixels, below a title row. Explicit sizes win.
func columnSize(fbW, fbH, cols, w, h int) (int, int) {
	if cols <= 0 {
		return 0, 0
	}
	if w <= 0 {
		w = (fbW - gap*(cols+1)) / cols
	}
	if h <= 0 {
		h = fbH - titleHeight - 2*gap
	}
	return w, h
}

func (s *system) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}

func (s *system) framebuffer() hal.Framebuffer {
	d := s.h.Display()
	if d == nil {
		return nil
	}
	return d.Framebuffer()
}

func (s *system) step() error {
	s.drainKeys()
	s.drainPointer()
	s.drainTicks()
	s.updateCursor()
	return s.draw()
}

func (s *system) drainTicks() {
	t := s.h.Time()
	if t == nil {
		return
	}
	ch := t.Ticks()
	for {
		select {
		case now := <-ch:
			s.sched.TickTo(now)
		default:
			return
		}
	}
}

func (s *system) draw() error {
	fb := s.framebuffer()
	if fb == nil {
		return nil
	}
	presented := false
	if s.chrome {
		fb.ClearRGB(colorPage.R, colorPage.G, colorPage.B)
		s.drawTitles(fb)
		s.chrome = false
		presented = true
	}
	for i, v := range s.views {
		if !v.Dirty() && !presented {
			continue
		}
		c := s.canvases[i]
		v.Render(c)
		x, y, _, _ := v.Rect()
		c.Present(fb, x, y)
		presented = true
	}
	if !presented {
		return nil
	}
	return fb.Present()
}

func (s *system) drawTitles(fb hal.Framebuffer) {
	if s.titles == nil {
		return
	}
	s.titles.Clear(colorPage)
	for _, v := range s.views {
		x, _, w, _ := v.Rect()
		name := s.prog.StageName(v.Column())
		tw := s.titles.TextWidth(name)
		s.titles.Text(float64(x)+(float64(w)-tw)/2, titleHeight-2, name, colorTitle)
	}
	s.titles.Present(fb, 0, gap)
}
