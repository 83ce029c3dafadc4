// Package extract pulls typed visual primitives out of schema-free payloads.
//
// A Template describes a shape by field names. Extraction walks each payload
// through the object.Fielder and object.Scalar capabilities and reports at
// most one match per payload and template. A payload that does not have the
// shape simply yields nothing.
package extract

import (
	"nile/viz/object"
	"nile/viz/stream"
)

// Mode selects how the top-level fields of a template must match.
type Mode uint8

const (
	// All requires every top-level field to be present and matching.
	All Mode = iota
	// Any requires at least one; only the present fields are reported.
	Any
)

// Template is a shape descriptor: either the scalar marker or a list of
// named fields, each optionally constrained by a nested template.
type Template struct {
	scalar bool
	fields []TemplateField
}

// TemplateField is one named member of a Template.
type TemplateField struct {
	Name string
	Sub  *Template
}

// Scalar returns the template matching bare real payloads.
func Scalar() Template { return Template{scalar: true} }

// Fields returns a template made of the given fields.
func Fields(fs ...TemplateField) Template {
	return Template{fields: append([]TemplateField(nil), fs...)}
}

// Leaf is a field that must hold a real number.
func Leaf(name string) TemplateField { return TemplateField{Name: name} }

// Nested is a field whose value must itself match t (with All semantics).
func Nested(name string, t Template) TemplateField {
	return TemplateField{Name: name, Sub: &t}
}

// IsScalar reports whether t is the scalar marker.
func (t Template) IsScalar() bool { return t.scalar }

// Match is one payload's match against a template.
type Match struct {
	Item stream.Handle

	// Node is the matched payload node: the item's payload itself or the
	// first nested member that has the shape.
	Node object.Object

	// Present lists the top-level template fields found in Node, in
	// template order.
	Present []string

	// Value is the boxed number when the template is the scalar marker.
	Value float64
}

// Extract matches every ref against t and returns the matches in ref order.
func Extract(refs []stream.Ref, mode Mode, t Template) []Match {
	var out []Match
	for _, ref := range refs {
		m, ok := matchFirst(ref.Object, mode, t)
		if !ok {
			continue
		}
		m.Item = ref.Handle
		out = append(out, m)
	}
	return out
}

// matchFirst tries the payload root, then its members depth-first in field
// declaration order. The first node with the shape wins, which keeps the
// result stable for an unchanged payload.
func matchFirst(o object.Object, mode Mode, t Template) (Match, bool) {
	if o == nil {
		return Match{}, false
	}
	if m, ok := matchNode(o, mode, t); ok {
		return m, true
	}
	if t.scalar {
		return Match{}, false
	}
	f, ok := o.(object.Fielder)
	if !ok {
		return Match{}, false
	}
	for _, name := range f.FieldNames() {
		v, ok := f.Field(name)
		if !ok {
			continue
		}
		if m, ok := matchFirst(v, mode, t); ok {
			return m, true
		}
	}
	return Match{}, false
}

func matchNode(o object.Object, mode Mode, t Template) (Match, bool) {
	if t.scalar {
		s, ok := o.(object.Scalar)
		if !ok {
			return Match{}, false
		}
		return Match{Node: o, Value: s.Real()}, true
	}

	f, ok := o.(object.Fielder)
	if !ok || len(t.fields) == 0 {
		return Match{}, false
	}

	var present []string
	for _, tf := range t.fields {
		if fieldMatches(f, tf) {
			present = append(present, tf.Name)
			continue
		}
		if mode == All {
			return Match{}, false
		}
	}
	if len(present) == 0 {
		return Match{}, false
	}
	return Match{Node: o, Present: present}, true
}

func fieldMatches(f object.Fielder, tf TemplateField) bool {
	v, ok := f.Field(tf.Name)
	if !ok {
		return false
	}
	if tf.Sub == nil {
		_, ok := v.(object.Scalar)
		return ok
	}
	_, ok = matchNode(v, All, *tf.Sub)
	return ok
}
