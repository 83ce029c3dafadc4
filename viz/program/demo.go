package program

import (
	"errors"
	"fmt"
	"math"

	"nile/viz/object"
	"nile/viz/stream"
)

// ErrUnknownDemo is returned by Demo for an unregistered name.
var ErrUnknownDemo = errors.New("unknown demo")

var demos = map[string]func() *Program{
	"plot":   plotDemo,
	"colors": colorsDemo,
	"bars":   barsDemo,
}

// DemoNames lists the built-in programs.
func DemoNames() []string { return []string{"plot", "colors", "bars"} }

// Demo returns a fresh copy of the named built-in program.
func Demo(name string) (*Program, error) {
	mk, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("program %q: %w", name, ErrUnknownDemo)
	}
	return mk(), nil
}

func curve(ax, ay, bx, by, cx, cy float64) object.Object {
	return object.Bezier(object.Point(ax, ay), object.Point(bx, by), object.Point(cx, cy))
}

// plotDemo: quadratic curves, the curves rotated and scaled, then the curve
// endpoints.
func plotDemo() *Program {
	in := stream.New(
		curve(0, 0, 2, 4, 4, 0),
		curve(4, 0, 6, -4, 8, 0),
		curve(8, 0, 9, 2, 10, 1),
	)
	const angle = math.Pi / 8
	sin, cos := math.Sincos(angle)
	rotate := Map("rotate", func(o object.Object) object.Object {
		return MapPoints(o, func(x, y float64) (float64, float64) {
			return 0.8 * (x*cos - y*sin), 0.8 * (x*sin + y*cos)
		})
	})
	endpoints := Expand("endpoints", func(o object.Object) []object.Object {
		r, ok := o.(object.Record)
		if !ok {
			return nil
		}
		var out []object.Object
		for _, name := range []string{"A", "C"} {
			if p, ok := r.Field(name); ok {
				out = append(out, p)
			}
		}
		return out
	})
	return New("plot", in, rotate, endpoints)
}

// colorsDemo: swatches, then their complements.
func colorsDemo() *Program {
	in := stream.New(
		object.Color(0.9, 0.2, 0.2, 1),
		object.Color(0.2, 0.7, 0.3, 1),
		object.Color(0.2, 0.4, 0.9, 1),
		object.Color(0.95, 0.8, 0.1, 1),
		object.Color(0.5, 0.5, 0.5, 0.5),
	)
	invert := Map("invert", func(o object.Object) object.Object {
		r, ok := o.(object.Record)
		if !ok {
			return o
		}
		for _, c := range []string{"r", "g", "b"} {
			if v, ok := object.RealField(r, c); ok {
				r = r.With(c, object.Real(1-v))
			}
		}
		return r
	})
	return New("colors", in, invert)
}

// barsDemo: reals, doubled, then their running sum.
func barsDemo() *Program {
	in := stream.New(object.Real(1), object.Real(3), object.Real(-2), object.Real(5), object.Real(4))
	double := Map("double", func(o object.Object) object.Object {
		v, err := object.Unbox(o)
		if err != nil {
			return o
		}
		return object.Real(2 * v)
	})
	sum := Scan("running sum", func(acc, o object.Object) object.Object {
		a, errA := object.Unbox(acc)
		b, errB := object.Unbox(o)
		if errA != nil || errB != nil {
			return acc
		}
		return object.Real(a + b)
	})
	return New("bars", in, double, sum)
}
