package view

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"nile/hal"
	"nile/viz/extract"
	"nile/viz/geom"
	"nile/viz/layout"
	"nile/viz/object"
	"nile/viz/render"
	"nile/viz/sched"
	"nile/viz/stream"
)

type fakePipeline struct {
	initial    stream.Stream
	views      []*View
	columns    int
	rewrites   int
	highlights []string

	// rewrite, when set, derives the stream the views receive.
	rewrite func(stream.Stream) stream.Stream
}

func (p *fakePipeline) InitialInputStream() stream.Stream { return p.initial }

func (p *fakePipeline) SetInitialInputStream(s stream.Stream) {
	p.initial = s
	p.rewrites++
	out := s
	if p.rewrite != nil {
		out = p.rewrite(s)
	}
	for _, v := range p.views {
		v.SetStream(out)
	}
}

func (p *fakePipeline) SetHighlighted(on bool, column int, h stream.Handle) {
	p.highlights = append(p.highlights, fmt.Sprintf("%v:%d:%d", on, column, h))
}

func (p *fakePipeline) ColumnCount() int { return p.columns }

type lineLog struct{ lines []string }

func (l *lineLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *lineLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func newTestView(t *testing.T, w, h int, objs ...object.Object) (*View, *fakePipeline, *sched.Scheduler, *lineLog) {
	t.Helper()
	log := &lineLog{}
	p := &fakePipeline{columns: 1}
	sc := sched.New()
	v := New(Config{Width: w, Height: h, Logger: log}, p, sc)
	p.views = append(p.views, v)
	p.initial = stream.New(objs...)
	v.SetStream(p.initial)
	return v, p, sc, log
}

// runTicks advances the scheduler one tween period at a time.
func runTicks(sc *sched.Scheduler, ms uint64) {
	end := sc.Now() + ms
	for now := sc.Now() + 1; now <= end; now++ {
		sc.TickTo(now)
	}
}

func devicePoint(v *View, x, y float64) (int, int) {
	d := v.Transform().ToDevice(geom.V(x, y), float64(v.cfg.Width), float64(v.cfg.Height))
	return int(math.Round(d.X)), int(math.Round(d.Y))
}

func TestSetStreamFitsPlot(t *testing.T) {
	v, _, _, log := newTestView(t, 200, 200, object.Point(0, 0), object.Point(10, 10))
	if v.Mode() != extract.Plot {
		t.Fatalf("mode = %v", v.Mode())
	}
	tr := v.Transform()
	if tr.Scale != 15 || tr.Translation.X != -5 || tr.Translation.Y != -5 {
		t.Fatalf("transform = %+v", tr)
	}
	if len(log.lines) == 0 || !strings.Contains(log.lines[0], "mode=plot") {
		t.Fatalf("log = %q", log.lines)
	}
	if v.State() != Idle {
		t.Fatalf("state = %v", v.State())
	}
}

func TestHoverNotifiesExitBeforeEnter(t *testing.T) {
	v, p, _, _ := newTestView(t, 200, 200, object.Point(0, 0), object.Point(10, 10))
	x, y := devicePoint(v, 0, 0)
	v.PointerEnter(x, y)
	if v.HoverItem() != 0 || v.State() != Hovering {
		t.Fatalf("hover = %d state = %v", v.HoverItem(), v.State())
	}
	x, y = devicePoint(v, 10, 10)
	v.PointerMove(x, y, false)
	if v.HoverItem() != 1 {
		t.Fatalf("hover = %d, want 1", v.HoverItem())
	}
	want := []string{"true:0:0", "false:0:0", "true:0:1"}
	if strings.Join(p.highlights, " ") != strings.Join(want, " ") {
		t.Fatalf("highlights = %v, want %v", p.highlights, want)
	}

	// Far from every point: nothing hot.
	v.PointerMove(100, 100, false)
	if v.HoverItem() != stream.None {
		t.Fatalf("hover = %d, want none", v.HoverItem())
	}
	v.PointerLeave()
	if v.State() != Idle {
		t.Fatalf("state after leave = %v", v.State())
	}
}

func TestPanAndZoom(t *testing.T) {
	v, _, _, _ := newTestView(t, 200, 200, object.Point(0, 0), object.Point(10, 10))
	v.PointerEnter(100, 100)
	v.PointerDown(100, 100, false)
	v.PointerMove(130, 115, false)
	if v.State() != Panning {
		t.Fatalf("state = %v", v.State())
	}
	tr := v.Transform()
	if tr.Translation.X != -5+30.0/15 || tr.Translation.Y != -5-15.0/15 {
		t.Fatalf("translation = %+v", tr.Translation)
	}
	v.PointerUp(130, 115, false)

	v.PointerDown(100, 100, true)
	if v.State() != Zooming {
		t.Fatalf("state = %v", v.State())
	}
	v.PointerMove(110, 100, true)
	if got, want := v.Transform().Scale, 15*math.Pow(1.01, 10); got != want {
		t.Fatalf("scale = %v, want %v", got, want)
	}
	v.PointerUp(110, 100, true)
	if v.State() != Hovering {
		t.Fatalf("state after release = %v", v.State())
	}
}

func TestHelpFadesDuringDrag(t *testing.T) {
	v, _, sc, _ := newTestView(t, 200, 200, object.Point(0, 0), object.Point(10, 10))
	v.PointerEnter(100, 100)
	v.PointerDown(100, 100, false)
	runTicks(sc, 200)
	if v.HelpOpacity() != 1 {
		t.Fatalf("opacity after press = %v", v.HelpOpacity())
	}
	if f := v.Frame(); f.Help == "" || f.HelpOpacity != 1 {
		t.Fatalf("frame help = %q @ %v", f.Help, f.HelpOpacity)
	}
	v.PointerUp(100, 100, false)
	runTicks(sc, 500)
	if o := v.HelpOpacity(); o <= 0 || o >= 1 {
		t.Fatalf("opacity mid fade-out = %v", o)
	}
	runTicks(sc, 1000)
	if v.HelpOpacity() != 0 {
		t.Fatalf("opacity after fade-out = %v", v.HelpOpacity())
	}
}

func TestHelpOnlyInLastPlotColumn(t *testing.T) {
	v, p, _, _ := newTestView(t, 200, 200, object.Point(0, 0))
	p.columns = 2
	v.helpOpacity = 1
	if f := v.Frame(); f.Help != "" {
		t.Fatalf("help shown in column 0 of 2: %q", f.Help)
	}
	p.columns = 1
	if f := v.Frame(); f.Help != "Drag points to change initial input." {
		t.Fatalf("help = %q", f.Help)
	}
}

func TestDragToEditMovesPoint(t *testing.T) {
	v, p, sc, _ := newTestView(t, 200, 200, object.Point(0, 0), object.Point(10, 10))
	v.SetEditable(true)
	fitted := v.Transform()

	x, y := devicePoint(v, 0, 0)
	v.PointerEnter(x, y)
	if v.Cursor() != hal.CursorCrosshair {
		t.Fatalf("cursor = %v", v.Cursor())
	}
	v.PointerDown(x, y, false)
	if v.State() != DraggingToEdit {
		t.Fatalf("state = %v", v.State())
	}
	// 15 px at scale 15 is one model unit.
	v.PointerMove(x+15, y, false)

	px, py, _ := object.XY(p.initial[0].Object)
	if px != 1 || py != 0 {
		t.Fatalf("edited point = (%v,%v), want (1,0)", px, py)
	}
	if v.HoverItem() != 0 || v.hoverPoint != 0 {
		t.Fatalf("hover not re-resolved: item=%d point=%d", v.HoverItem(), v.hoverPoint)
	}
	if v.Transform() != fitted {
		t.Fatal("view re-fitted during edit")
	}

	v.PointerUp(x+15, y, false)
	if v.State() != AnimatingReset {
		t.Fatalf("state after edit = %v", v.State())
	}
	runTicks(sc, 2000)
	want := layout.Fit(v.metrics(), 200, 200)
	if v.Transform() != want {
		t.Fatalf("transform = %+v, want fitted %+v", v.Transform(), want)
	}
	if v.State() != Hovering {
		t.Fatalf("state = %v", v.State())
	}
}

func TestNullEditKeepsPayload(t *testing.T) {
	v, p, _, _ := newTestView(t, 200, 200, object.Point(0, 0), object.Point(10, 10))
	v.SetEditable(true)
	before := p.initial[1].Object.Describe()
	x, y := devicePoint(v, 0, 0)
	v.PointerEnter(x, y)
	v.PointerDown(x, y, false)
	v.PointerMove(x, y, false)
	if p.rewrites != 1 {
		t.Fatalf("rewrites = %d", p.rewrites)
	}
	if got := p.initial[1].Object.Describe(); got != before {
		t.Fatalf("payload changed: %q -> %q", before, got)
	}
	if px, py, _ := object.XY(p.initial[0].Object); px != 0 || py != 0 {
		t.Fatalf("null edit moved the point to (%v,%v)", px, py)
	}
}

func TestBarEditAdjustsValue(t *testing.T) {
	v, p, _, _ := newTestView(t, 300, 100, object.Real(1), object.Real(2), object.Real(3))
	v.SetEditable(true)
	if v.Mode() != extract.Bars {
		t.Fatalf("mode = %v", v.Mode())
	}
	v.PointerEnter(150, 50)
	if v.HoverItem() != 1 || v.Cursor() != hal.CursorRowResize {
		t.Fatalf("hover = %d cursor = %v", v.HoverItem(), v.Cursor())
	}
	v.PointerDown(150, 50, false)
	v.PointerMove(150, 40, false)

	got, err := object.Unbox(p.initial[1].Object)
	if err != nil {
		t.Fatal(err)
	}
	want := 2 + 10*3.0/92
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("value = %v, want %v", got, want)
	}
	if v.HoverItem() != 1 {
		t.Fatalf("hover lost after edit: %d", v.HoverItem())
	}
	if v.NumericBounds().Max != 3 {
		t.Fatalf("bounds re-fitted during edit: %+v", v.NumericBounds())
	}
}

func TestBarEditOnStaleIndexPanics(t *testing.T) {
	v, p, _, _ := newTestView(t, 300, 100, object.Real(1), object.Real(2), object.Real(3))
	p.rewrite = func(s stream.Stream) stream.Stream { return s[:1] }
	v.SetEditable(true)
	v.PointerEnter(250, 50)
	v.PointerDown(250, 50, false)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrStaleIndex) {
			t.Fatalf("recovered %v, want ErrStaleIndex", r)
		}
	}()
	v.PointerMove(250, 40, false)
	t.Fatal("edit against a shrunken stream did not panic")
}

func TestDoubleClickSubdividesCurve(t *testing.T) {
	v, p, _, log := newTestView(t, 200, 200,
		object.Bezier(object.Point(0, 0), object.Point(1, 2), object.Point(2, 0)),
		object.Bezier(object.Point(2, 0), object.Point(3, 2), object.Point(4, 0)),
	)
	v.SetEditable(true)
	x, y := devicePoint(v, 0, 0)
	v.PointerEnter(x, y)
	if v.HoverItem() != 0 {
		t.Fatalf("hover = %d", v.HoverItem())
	}
	v.DoubleClick(x, y, false)
	if len(p.initial) != 3 {
		t.Fatalf("items after subdivide = %d, want 3", len(p.initial))
	}
	if len(v.Stream()) != 3 {
		t.Fatalf("view not updated: %d items", len(v.Stream()))
	}
	if !strings.Contains(strings.Join(log.lines, "\n"), "subdivide col=0 item=0 parts=2") {
		t.Fatalf("log = %q", log.lines)
	}
}

func TestDoubleClickResetsWhenNotEditable(t *testing.T) {
	v, p, sc, _ := newTestView(t, 200, 200, object.Point(0, 0), object.Point(10, 10))
	v.PointerEnter(100, 100)
	v.PointerDown(100, 100, false)
	v.PointerMove(150, 100, false)
	v.PointerUp(150, 100, false)
	v.DoubleClick(150, 100, false)
	if p.rewrites != 0 {
		t.Fatalf("rewrites = %d", p.rewrites)
	}
	if v.State() != AnimatingReset {
		t.Fatalf("state = %v", v.State())
	}
	runTicks(sc, 2000)
	if v.Transform() != layout.Fit(v.metrics(), 200, 200) {
		t.Fatalf("transform not reset: %+v", v.Transform())
	}
}

func TestPointerDownCancelsReset(t *testing.T) {
	v, _, sc, _ := newTestView(t, 200, 200, object.Point(0, 0), object.Point(10, 10))
	v.PointerEnter(100, 100)
	v.PointerDown(100, 100, false)
	v.PointerMove(150, 100, false)
	v.PointerUp(150, 100, false)
	v.ResetView()
	runTicks(sc, 100)
	v.PointerDown(150, 100, false)
	if v.State() != Panning {
		t.Fatalf("state = %v", v.State())
	}
	mid := v.Transform()
	runTicks(sc, 1000)
	if v.Transform() != mid {
		t.Fatal("cancelled reset kept animating")
	}
}

func TestLeaveDuringEditFreezesHover(t *testing.T) {
	v, _, _, _ := newTestView(t, 300, 100, object.Real(1), object.Real(2), object.Real(3))
	v.SetEditable(true)
	v.PointerEnter(150, 50)
	v.PointerDown(150, 50, false)
	v.PointerLeave()
	if v.HoverItem() != 1 {
		t.Fatalf("hover cleared during edit: %d", v.HoverItem())
	}
	v.PointerUp(150, 120, false)
	if v.HoverItem() != stream.None {
		t.Fatalf("hover kept after release outside: %d", v.HoverItem())
	}
}

func TestEmptyStreamGesturesAreNoOps(t *testing.T) {
	v, p, _, _ := newTestView(t, 100, 100)
	v.SetEditable(true)
	v.PointerEnter(10, 10)
	v.PointerDown(10, 10, false)
	v.PointerMove(20, 20, false)
	v.PointerUp(20, 20, false)
	v.DoubleClick(20, 20, false)
	if p.rewrites != 0 || v.HoverItem() != stream.None {
		t.Fatalf("rewrites=%d hover=%d", p.rewrites, v.HoverItem())
	}
	rec := render.NewRecorder(100, 100)
	v.Render(rec)
	if len(rec.Calls) != 1 {
		t.Fatalf("empty view drew %d calls", len(rec.Calls))
	}
}

func TestSetStreamClearsSelection(t *testing.T) {
	v, _, _, _ := newTestView(t, 200, 200, object.Point(0, 0), object.Point(10, 10))
	v.SetSelectedItems([]stream.Handle{0, 1})
	if f := v.Frame(); len(f.Selected.Points) != 2 {
		t.Fatalf("selected points = %d", len(f.Selected.Points))
	}
	v.SetStream(stream.New(object.Point(1, 1)))
	if len(v.Selected()) != 0 {
		t.Fatalf("selection survived SetStream: %v", v.Selected())
	}
}

func TestCursorByMode(t *testing.T) {
	v, _, _, _ := newTestView(t, 200, 200, object.Point(0, 0))
	if v.Cursor() != hal.CursorMove {
		t.Fatalf("plot cursor = %v", v.Cursor())
	}
	v.SetStream(stream.New(object.Color(1, 0, 0, 1)))
	if v.Cursor() != hal.CursorDefault {
		t.Fatalf("colors cursor = %v", v.Cursor())
	}
}

func TestRenderClearsDirty(t *testing.T) {
	v, _, _, _ := newTestView(t, 200, 200, object.Point(0, 0))
	if !v.Dirty() {
		t.Fatal("new stream not dirty")
	}
	v.Render(render.NewRecorder(200, 200))
	if v.Dirty() {
		t.Fatal("dirty after render")
	}
}
