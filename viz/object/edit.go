package object

// MovePoint returns o with every {x, y} member exactly equal to (x0, y0)
// moved to (x1, y1). Members are found at any depth of nested records, so
// curves sharing an endpoint move together. Payloads that are not records are
// returned unchanged.
func MovePoint(o Object, x0, y0, x1, y1 float64) Object {
	moved, _ := movePoint(o, x0, y0, x1, y1)
	return moved
}

func movePoint(o Object, x0, y0, x1, y1 float64) (Object, bool) {
	r, ok := o.(Record)
	if !ok {
		return o, false
	}
	if x, y, ok := XY(r); ok {
		if x == x0 && y == y0 {
			return r.With("x", Real(x1)).With("y", Real(y1)), true
		}
		return r, false
	}
	out := r
	changed := false
	for _, f := range r.fields {
		if moved, ok := movePoint(f.Value, x0, y0, x1, y1); ok {
			out = out.With(f.Name, moved)
			changed = true
		}
	}
	return out, changed
}

// Subdivide splits a quadratic curve at its midpoint (de Casteljau) and
// returns the two halves. Any other payload is returned as its own single
// element.
func Subdivide(o Object) []Object {
	r, ok := o.(Record)
	if !ok {
		return []Object{o}
	}
	a, okA := controlPoint(r, "A")
	b, okB := controlPoint(r, "B")
	c, okC := controlPoint(r, "C")
	if !okA || !okB || !okC {
		return []Object{o}
	}

	ab := mid(a, b)
	bc := mid(b, c)
	m := mid(ab, bc)

	first := r.With("B", Point(ab[0], ab[1])).With("C", Point(m[0], m[1]))
	second := r.With("A", Point(m[0], m[1])).With("B", Point(bc[0], bc[1]))
	return []Object{first, second}
}

// AddReal returns the real boxed by o incremented by delta.
func AddReal(o Object, delta float64) (Object, error) {
	v, err := Unbox(o)
	if err != nil {
		return o, err
	}
	return Real(v + delta), nil
}

func controlPoint(r Record, name string) ([2]float64, bool) {
	v, ok := r.Field(name)
	if !ok {
		return [2]float64{}, false
	}
	x, y, ok := XY(v)
	return [2]float64{x, y}, ok
}

func mid(a, b [2]float64) [2]float64 {
	return [2]float64{0.5 * (a[0] + b[0]), 0.5 * (a[1] + b[1])}
}
