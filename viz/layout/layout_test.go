package layout

import (
	"math"
	"testing"

	"nile/viz/geom"
)

func TestGridStep(t *testing.T) {
	if got := GridStep(-50, 50, GridLines); got != 10 {
		t.Fatalf("GridStep(-50,50) = %v, want 10", got)
	}
	if got := GridStep(0, 1, GridLines); math.Abs(got-0.1) > 1e-15 {
		t.Fatalf("GridStep(0,1) = %v, want 0.1", got)
	}
	if got := GridStep(3, 3, GridLines); got != 1 {
		t.Fatalf("GridStep on empty span = %v, want 1", got)
	}
}

func TestGridValues(t *testing.T) {
	got := GridValues(-15, 20, 10, false)
	want := []float64{-20, -10, 0, 10}
	if len(got) != len(want) {
		t.Fatalf("GridValues = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GridValues = %v, want %v", got, want)
		}
	}
	if got := GridValues(0, 20, 10, true); len(got) != 3 {
		t.Fatalf("inclusive GridValues = %v, want 3 values", got)
	}
}

func TestSnapPixel(t *testing.T) {
	if got := SnapPixel(12.93); got != 12.5 {
		t.Fatalf("SnapPixel(12.93) = %v", got)
	}
	if got := SnapPixel(-0.2); got != -0.5 {
		t.Fatalf("SnapPixel(-0.2) = %v", got)
	}
}

func TestBarsDropsPaddingWhenDense(t *testing.T) {
	l := Bars(400, 800, ColorsDivisor)
	if l.Padding != 0 || l.Width != 2 {
		t.Fatalf("Bars(400,800) = %+v, want width 2 padding 0", l)
	}
	l = Bars(10, 800, BarsDivisor)
	if l.Padding != 1 || l.Width != 79 {
		t.Fatalf("Bars(10,800) = %+v, want width 79 padding 1", l)
	}
	if got := l.X(3); got != 240 {
		t.Fatalf("X(3) = %d, want 240", got)
	}
	if l := Bars(0, 800, BarsDivisor); l.Width != 0 {
		t.Fatalf("Bars(0) = %+v", l)
	}
}

func TestRealBoundsRegimes(t *testing.T) {
	const h = 200
	tests := []struct {
		name         string
		max, min     float64
		wantBaseline float64
	}{
		{"nonnegative", 10, 2, h},
		{"nonpositive", -2, -10, 0},
		{"mixed", 10, -10, 100},
		{"degenerate", 5, 5, h},
	}
	for _, tt := range tests {
		b := RealBounds(tt.max, tt.min, h)
		if b.Max-b.Min < 1e-3 {
			t.Fatalf("%s: range %v below guard", tt.name, b.Max-b.Min)
		}
		if b.BaselineY != tt.wantBaseline {
			t.Fatalf("%s: baseline = %v, want %v", tt.name, b.BaselineY, tt.wantBaseline)
		}
		if y0 := b.Y(0); y0 < 0 || y0 > h {
			t.Fatalf("%s: Y(0) = %v outside canvas", tt.name, y0)
		}
		if !(b.DeltaPerPixel > 0) || math.IsInf(b.DeltaPerPixel, 0) {
			t.Fatalf("%s: DeltaPerPixel = %v", tt.name, b.DeltaPerPixel)
		}
	}
}

func TestRealBoundsMapping(t *testing.T) {
	b := RealBounds(10, 2, 200)
	if got := b.Y(10); got != 6 {
		t.Fatalf("Y(max) = %v, want margin 6", got)
	}
	if got := b.Y(0); got != 198 {
		t.Fatalf("Y(0) = %v, want 198", got)
	}
	// One value unit is (200-6-2)/10 pixels.
	if got, want := b.DeltaPerPixel, 10.0/192; math.Abs(got-want) > 1e-12 {
		t.Fatalf("DeltaPerPixel = %v, want %v", got, want)
	}
}

func TestBoundsOf(t *testing.T) {
	b := BoundsOf([]float64{3, -1, 7}, 100)
	if b.Max != 7 || b.Min != -1 {
		t.Fatalf("BoundsOf = %+v", b)
	}
	if b := BoundsOf(nil, 100); b.Range < 1e-3 {
		t.Fatalf("empty BoundsOf range = %v", b.Range)
	}
}

func TestFitAndRoundTrip(t *testing.T) {
	m := MetricsOf([]geom.Vec{{X: -10, Y: 0}, {X: 10, Y: 5}})
	tr := Fit(m, 400, 200)
	if tr.Translation != (geom.Vec{X: 0, Y: -2.5}) {
		t.Fatalf("translation = %+v", tr.Translation)
	}
	if want := 0.75 * 20.0; tr.Scale != want {
		t.Fatalf("scale = %v, want %v", tr.Scale, want)
	}

	d := tr.ToDevice(geom.V(10, 5), 400, 200)
	if d.X != 200+15*10 || d.Y != 100-15*2.5 {
		t.Fatalf("ToDevice = %+v", d)
	}
	p := tr.ToModel(d, 400, 200)
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y-5) > 1e-9 {
		t.Fatalf("ToModel(ToDevice) = %+v", p)
	}
}

func TestFitEmptyDefaultsToOrigin(t *testing.T) {
	tr := Fit(MetricsOf(nil), 100, 100)
	if tr.Translation != (geom.Vec{}) {
		t.Fatalf("translation = %+v", tr.Translation)
	}
	if tr.Scale != 0.75*(100/0.01) {
		t.Fatalf("scale = %v", tr.Scale)
	}
}

func TestPanZoom(t *testing.T) {
	tr := Transform{Scale: 10}
	tr = tr.Pan(20, 10)
	if tr.Translation != (geom.Vec{X: 2, Y: -1}) {
		t.Fatalf("Pan = %+v", tr.Translation)
	}
	z := tr.Zoom(10, 10)
	if z.Scale != 10 {
		t.Fatalf("Zoom with dx==dy changed scale to %v", z.Scale)
	}
	z = tr.Zoom(100, 0)
	if want := 10 * math.Pow(1.01, 100); z.Scale != want {
		t.Fatalf("Zoom = %v, want %v", z.Scale, want)
	}
}
