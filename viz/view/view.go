// Package view is the interactive canvas controller for one visualized
// stream: it owns the extraction cache, the view transform or bounds, the
// hover and selection state and the reset and help tweens.
package view

import (
	"errors"
	"fmt"

	"nile/hal"
	"nile/viz/anim"
	"nile/viz/extract"
	"nile/viz/geom"
	"nile/viz/layout"
	"nile/viz/render"
	"nile/viz/sched"
	"nile/viz/stream"
)

// ErrStaleIndex reports a rewrite or re-resolution that referenced an index
// outside the current stream snapshot. It is raised as a panic value.
var ErrStaleIndex = errors.New("stale stream index")

// Pipeline is the program the view belongs to.
type Pipeline interface {
	InitialInputStream() stream.Stream

	// SetInitialInputStream replaces the program input. Every view,
	// including the caller, receives a synchronous SetStream before it
	// returns.
	SetInitialInputStream(s stream.Stream)

	SetHighlighted(on bool, column int, h stream.Handle)
	ColumnCount() int
}

// State is the interaction state.
type State uint8

const (
	Idle State = iota
	Hovering
	Panning
	Zooming
	DraggingToEdit
	AnimatingReset
)

func (s State) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Panning:
		return "panning"
	case Zooming:
		return "zooming"
	case DraggingToEdit:
		return "dragging-to-edit"
	case AnimatingReset:
		return "animating-reset"
	default:
		return "idle"
	}
}

type drag uint8

const (
	dragNone drag = iota
	dragIdle
	dragPan
	dragZoom
	dragEdit
)

// Help fade durations in scheduler ticks.
const (
	fadeInPress  = 100
	fadeOutPress = 1000
	fadeInEnter  = 100
	fadeOutLeave = 400
)

// Config places a view on the page.
type Config struct {
	Column int

	// X and Y are the page position of the canvas origin.
	X, Y          int
	Width, Height int

	Style  render.Style
	Logger hal.Logger
}

// View is the controller for one column of a program.
type View struct {
	cfg      Config
	pipeline Pipeline
	sched    *sched.Scheduler
	renderer render.Renderer

	stream    stream.Stream
	extracted extract.Extractions
	mode      extract.Visualization
	transform layout.Transform
	bounds    layout.Bounds

	selected   []stream.Handle
	hover      stream.Handle
	hoverPoint int

	editable bool
	inside   bool
	drag     drag
	last     geom.Vec

	transformTween anim.Slot
	boundsTween    anim.Slot
	helpFade       anim.Slot
	helpOpacity    float64

	dirty bool
}

// New returns a view showing an empty stream.
func New(cfg Config, p Pipeline, sc *sched.Scheduler) *View {
	v := &View{
		cfg:        cfg,
		pipeline:   p,
		sched:      sc,
		renderer:   render.Renderer{Style: cfg.Style},
		hover:      stream.None,
		hoverPoint: -1,
		transform:  layout.Transform{Scale: 1},
	}
	v.bounds = layout.BoundsOf(nil, float64(cfg.Height))
	v.dirty = true
	return v
}

func (v *View) logf(format string, args ...any) {
	if v.cfg.Logger == nil {
		return
	}
	v.cfg.Logger.WriteLineString(fmt.Sprintf(format, args...))
}

func (v *View) size() (float64, float64) {
	return float64(v.cfg.Width), float64(v.cfg.Height)
}

// Column returns the pipeline column the view shows.
func (v *View) Column() int { return v.cfg.Column }

// Rect returns the page rectangle of the canvas.
func (v *View) Rect() (x, y, w, h int) {
	return v.cfg.X, v.cfg.Y, v.cfg.Width, v.cfg.Height
}

// Contains reports whether the page point lies on the canvas.
func (v *View) Contains(x, y int) bool {
	return x >= v.cfg.X && y >= v.cfg.Y && x < v.cfg.X+v.cfg.Width && y < v.cfg.Y+v.cfg.Height
}

// Stream returns the current snapshot.
func (v *View) Stream() stream.Stream { return v.stream }

// Mode returns the chosen visualization.
func (v *View) Mode() extract.Visualization { return v.mode }

// Transform returns the plot view state.
func (v *View) Transform() layout.Transform { return v.transform }

// NumericBounds returns the bars view state.
func (v *View) NumericBounds() layout.Bounds { return v.bounds }

// HoverItem returns the hot item, or stream.None.
func (v *View) HoverItem() stream.Handle { return v.hover }

// Selected returns the externally highlighted items.
func (v *View) Selected() []stream.Handle { return v.selected }

// HelpOpacity returns the current help caption opacity.
func (v *View) HelpOpacity() float64 { return v.helpOpacity }

// Editable reports whether edit gestures are enabled.
func (v *View) Editable() bool { return v.editable }

// Dirty reports whether the view changed since the last Render.
func (v *View) Dirty() bool { return v.dirty }

// SetStream replaces the visualized stream. Selection and hover are
// dropped and everything is re-extracted. Outside an edit drag the view is
// re-fitted to the new content.
func (v *View) SetStream(s stream.Stream) {
	v.setHover(stream.None)

	v.stream = s
	v.selected = nil
	v.extracted = extract.Stream(s)
	v.mode = extract.Choose(v.extracted)

	if v.drag != dragEdit {
		switch v.mode {
		case extract.Plot:
			w, h := v.size()
			v.transform = layout.Fit(v.metrics(), w, h)
		case extract.Bars:
			v.bounds = v.realBounds()
		}
		v.logf("view: stream col=%d mode=%s items=%d", v.cfg.Column, v.mode, len(s))
	}
	v.dirty = true
}

// SetEditable toggles the edit gestures.
func (v *View) SetEditable(on bool) {
	if v.editable == on {
		return
	}
	v.editable = on
	v.dirty = true
}

// SetStyle changes the display preferences.
func (v *View) SetStyle(s render.Style) {
	v.cfg.Style = s
	v.renderer.Style = s
	v.dirty = true
}

// SetSelectedItems replaces the externally driven highlight set.
func (v *View) SetSelectedItems(hs []stream.Handle) {
	v.selected = append(v.selected[:0:0], hs...)
	v.dirty = true
}

func (v *View) metrics() layout.Metrics {
	pts := make([]geom.Vec, len(v.extracted.Points))
	for i, p := range v.extracted.Points {
		pts[i] = p.Vec
	}
	return layout.MetricsOf(pts)
}

func (v *View) realBounds() layout.Bounds {
	vals := make([]float64, len(v.extracted.Reals))
	for i, r := range v.extracted.Reals {
		vals[i] = r.Value
	}
	return layout.BoundsOf(vals, float64(v.cfg.Height))
}

// State returns the current interaction state.
func (v *View) State() State {
	switch v.drag {
	case dragEdit:
		return DraggingToEdit
	case dragPan:
		return Panning
	case dragZoom:
		return Zooming
	}
	if v.transformTween.Running() || v.boundsTween.Running() {
		return AnimatingReset
	}
	if v.inside {
		return Hovering
	}
	return Idle
}

// Cursor returns the pointer shape for the canvas.
func (v *View) Cursor() hal.Cursor {
	switch v.mode {
	case extract.Plot:
		if v.editable && v.hover.Valid() {
			return hal.CursorCrosshair
		}
		return hal.CursorMove
	case extract.Bars:
		if v.editable && v.hover.Valid() {
			return hal.CursorRowResize
		}
	}
	return hal.CursorDefault
}

func (v *View) local(x, y int) geom.Vec {
	return geom.V(float64(x-v.cfg.X), float64(y-v.cfg.Y))
}
