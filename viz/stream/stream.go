// Package stream holds the ordered item sequences that views visualize.
package stream

import "nile/viz/object"

// Handle identifies an item within one Stream snapshot. It is the item's
// index and is meaningless against any other snapshot.
type Handle int

// None is the handle of no item.
const None Handle = -1

// Valid reports whether h refers to an item (it may still be out of range
// for a particular snapshot).
func (h Handle) Valid() bool { return h >= 0 }

// Item is one element of a stream.
type Item struct {
	Object object.Object

	// Parents lists the indices of the items in the previous stage's stream
	// this item was derived from. Empty for initial input.
	Parents []int
}

// Stream is an immutable snapshot of items. Order is meaningful: it is the
// bar/color index axis.
type Stream []Item

// New returns a stream with one parentless item per object.
func New(objs ...object.Object) Stream {
	s := make(Stream, len(objs))
	for i, o := range objs {
		s[i] = Item{Object: o}
	}
	return s
}

// Contains reports whether h is in range for s.
func (s Stream) Contains(h Handle) bool {
	return h >= 0 && int(h) < len(s)
}

// At returns the item at h. It panics when h is out of range, the same as
// indexing the slice directly.
func (s Stream) At(h Handle) Item {
	return s[h]
}

// Objects returns the payloads of s in order.
func (s Stream) Objects() []object.Object {
	out := make([]object.Object, len(s))
	for i, it := range s {
		out[i] = it.Object
	}
	return out
}

// Subset returns the items referenced by hs, in the order given. Handles
// keep pointing into s, so things extracted from the subset still carry
// their original identity.
func (s Stream) Subset(hs []Handle) []Ref {
	out := make([]Ref, 0, len(hs))
	for _, h := range hs {
		if !s.Contains(h) {
			continue
		}
		out = append(out, Ref{Handle: h, Object: s[h].Object})
	}
	return out
}

// Refs returns a Ref for every item of s.
func (s Stream) Refs() []Ref {
	out := make([]Ref, len(s))
	for i, it := range s {
		out[i] = Ref{Handle: Handle(i), Object: it.Object}
	}
	return out
}

// Ref pairs a payload with the handle of the item that carries it.
type Ref struct {
	Handle Handle
	Object object.Object
}
