// Package object defines the payloads carried by stream items.
//
// Payloads are schema-free. Consumers never inspect concrete types; they ask
// for capabilities instead: a Fielder exposes named fields, a Scalar exposes a
// single real number. Real and Record are the two payload types the program
// constructs itself, but any type implementing the capabilities may flow
// through a stream.
package object

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotReal is returned when a real-number operation is applied to a payload
// that is not a Scalar.
var ErrNotReal = errors.New("object is not a real")

// Object is a stream payload.
type Object interface {
	Describe() string
}

// Fielder is implemented by payloads with named fields.
type Fielder interface {
	Object
	Field(name string) (Object, bool)
	FieldNames() []string
}

// Scalar is implemented by payloads that box one real number.
type Scalar interface {
	Object
	Real() float64
}

// Real is a boxed real number.
type Real float64

func (r Real) Real() float64     { return float64(r) }
func (r Real) Describe() string { return formatReal(float64(r)) }

// Field is one named member of a Record.
type Field struct {
	Name  string
	Value Object
}

// F is shorthand for Field{Name: name, Value: v}.
func F(name string, v Object) Field { return Field{Name: name, Value: v} }

// Record is an immutable, ordered set of named fields with a type label.
type Record struct {
	Type   string
	fields []Field
}

// NewRecord returns a record of the given type. Later fields with a
// duplicate name shadow nothing: lookups return the first one.
func NewRecord(typ string, fields ...Field) Record {
	return Record{Type: typ, fields: append([]Field(nil), fields...)}
}

func (r Record) Field(name string) (Object, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, f.Value != nil
		}
	}
	return nil, false
}

func (r Record) FieldNames() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// With returns a copy of r with the named field replaced, or appended when r
// has no such field.
func (r Record) With(name string, v Object) Record {
	out := Record{Type: r.Type, fields: make([]Field, 0, len(r.fields)+1)}
	replaced := false
	for _, f := range r.fields {
		if f.Name == name && !replaced {
			f.Value = v
			replaced = true
		}
		out.fields = append(out.fields, f)
	}
	if !replaced {
		out.fields = append(out.fields, F(name, v))
	}
	return out
}

func (r Record) Describe() string {
	var b strings.Builder
	b.WriteString(r.Type)
	b.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Name)
		b.WriteByte(':')
		if f.Value == nil {
			b.WriteString("nil")
			continue
		}
		b.WriteString(f.Value.Describe())
	}
	b.WriteByte('}')
	return b.String()
}

// Point returns a {x, y} record.
func Point(x, y float64) Record {
	return NewRecord("Point", F("x", Real(x)), F("y", Real(y)))
}

// Bezier returns a quadratic curve record with control points A, B and C.
func Bezier(a, b, c Record) Record {
	return NewRecord("Bezier", F("A", a), F("B", b), F("C", c))
}

// Color returns an {r, g, b, a} record with unit-interval components.
func Color(r, g, b, a float64) Record {
	return NewRecord("Color", F("r", Real(r)), F("g", Real(g)), F("b", Real(b)), F("a", Real(a)))
}

// Unbox returns the real number boxed by o.
func Unbox(o Object) (float64, error) {
	s, ok := o.(Scalar)
	if !ok {
		return 0, ErrNotReal
	}
	return s.Real(), nil
}

// RealField returns the named field of o as a real number.
func RealField(o Object, name string) (float64, bool) {
	f, ok := o.(Fielder)
	if !ok {
		return 0, false
	}
	v, ok := f.Field(name)
	if !ok {
		return 0, false
	}
	s, ok := v.(Scalar)
	if !ok {
		return 0, false
	}
	return s.Real(), true
}

// XY returns the x and y fields of o.
func XY(o Object) (x, y float64, ok bool) {
	x, okx := RealField(o, "x")
	y, oky := RealField(o, "y")
	return x, y, okx && oky
}

func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
