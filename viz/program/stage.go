package program

import (
	"nile/viz/object"
	"nile/viz/stream"
)

// Map returns a stage deriving one output item from each input item.
func Map(name string, fn func(object.Object) object.Object) Stage {
	return Stage{Name: name, Apply: func(in stream.Stream) stream.Stream {
		out := make(stream.Stream, 0, len(in))
		for i, it := range in {
			out = append(out, stream.Item{Object: fn(it.Object), Parents: []int{i}})
		}
		return out
	}}
}

// Expand returns a stage deriving any number of output items from each
// input item.
func Expand(name string, fn func(object.Object) []object.Object) Stage {
	return Stage{Name: name, Apply: func(in stream.Stream) stream.Stream {
		var out stream.Stream
		for i, it := range in {
			for _, o := range fn(it.Object) {
				out = append(out, stream.Item{Object: o, Parents: []int{i}})
			}
		}
		return out
	}}
}

// Scan returns a stage that folds the input left to right, emitting the
// accumulator after every item. Output i is derived from inputs 0..i.
func Scan(name string, fn func(acc, o object.Object) object.Object) Stage {
	return Stage{Name: name, Apply: func(in stream.Stream) stream.Stream {
		out := make(stream.Stream, 0, len(in))
		var acc object.Object
		for i, it := range in {
			if acc == nil {
				acc = it.Object
			} else {
				acc = fn(acc, it.Object)
			}
			parents := make([]int, i+1)
			for j := range parents {
				parents[j] = j
			}
			out = append(out, stream.Item{Object: acc, Parents: parents})
		}
		return out
	}}
}

// MapPoints applies fn to o when it is a point, and to every point field of
// o otherwise. Other payloads are returned unchanged.
func MapPoints(o object.Object, fn func(x, y float64) (float64, float64)) object.Object {
	out, _ := mapPoints(o, fn)
	return out
}

func mapPoints(o object.Object, fn func(x, y float64) (float64, float64)) (object.Object, bool) {
	r, ok := o.(object.Record)
	if !ok {
		return o, false
	}
	if x, y, ok := object.XY(r); ok {
		nx, ny := fn(x, y)
		return r.With("x", object.Real(nx)).With("y", object.Real(ny)), true
	}
	changed := false
	for _, name := range r.FieldNames() {
		v, ok := r.Field(name)
		if !ok {
			continue
		}
		if next, ok := mapPoints(v, fn); ok {
			r = r.With(name, next)
			changed = true
		}
	}
	return r, changed
}
