package extract

import (
	"nile/viz/geom"
	"nile/viz/object"
	"nile/viz/stream"
)

var (
	pointTemplate  = Fields(Leaf("x"), Leaf("y"))
	bezierTemplate = Fields(
		Nested("A", pointTemplate),
		Nested("B", pointTemplate),
		Nested("C", pointTemplate),
	)
	colorTemplate    = Fields(Leaf("r"), Leaf("g"), Leaf("b"), Leaf("a"))
	propertyTemplate = Fields(Leaf("area"), Leaf("height"), Leaf("coverage"), Leaf("length"))
	realTemplate     = Scalar()
)

// Point is an extracted {x, y}.
type Point struct {
	geom.Vec
	Item stream.Handle
}

// Bezier is an extracted quadratic control triple.
type Bezier struct {
	A, B, C geom.Vec
	Item    stream.Handle
}

// Color is an extracted {r, g, b, a} with unit-interval components.
type Color struct {
	R, G, B, A float64
	Item       stream.Handle
}

// Property is an extracted bundle of optional scalar properties. At least
// one of them is present.
type Property struct {
	Item stream.Handle

	values  [4]float64
	present uint8
}

const (
	propArea = iota
	propHeight
	propCoverage
	propLength
)

var propertyNames = [4]string{"area", "height", "coverage", "length"}

func (p Property) get(i int) (float64, bool) {
	return p.values[i], p.present&(1<<i) != 0
}

func (p Property) Area() (float64, bool)     { return p.get(propArea) }
func (p Property) Height() (float64, bool)   { return p.get(propHeight) }
func (p Property) Coverage() (float64, bool) { return p.get(propCoverage) }
func (p Property) Length() (float64, bool)   { return p.get(propLength) }

// Size returns area, or coverage when area is absent. The two are
// interchangeable for marker sizing.
func (p Property) Size() (float64, bool) {
	if v, ok := p.Area(); ok {
		return v, true
	}
	return p.Coverage()
}

// Real is an extracted bare number.
type Real struct {
	Value float64
	Item  stream.Handle
}

// Extractions holds every kind of thing extracted from one item list.
type Extractions struct {
	Points     []Point
	Beziers    []Bezier
	Colors     []Color
	Properties []Property
	Reals      []Real
}

// FromItems extracts points, beziers, colors, properties and reals, in that
// order. Reals are a fallback: they are only extracted when there are
// neither points nor colors.
func FromItems(refs []stream.Ref) Extractions {
	var e Extractions
	for _, m := range Extract(refs, All, pointTemplate) {
		e.Points = append(e.Points, Point{Vec: vecOf(m.Node), Item: m.Item})
	}
	for _, m := range Extract(refs, All, bezierTemplate) {
		e.Beziers = append(e.Beziers, Bezier{
			A:    vecOf(field(m.Node, "A")),
			B:    vecOf(field(m.Node, "B")),
			C:    vecOf(field(m.Node, "C")),
			Item: m.Item,
		})
	}
	for _, m := range Extract(refs, All, colorTemplate) {
		c := Color{Item: m.Item}
		c.R, _ = object.RealField(m.Node, "r")
		c.G, _ = object.RealField(m.Node, "g")
		c.B, _ = object.RealField(m.Node, "b")
		c.A, _ = object.RealField(m.Node, "a")
		e.Colors = append(e.Colors, c)
	}
	for _, m := range Extract(refs, Any, propertyTemplate) {
		p := Property{Item: m.Item}
		for i, name := range propertyNames {
			if v, ok := object.RealField(m.Node, name); ok {
				p.values[i] = v
				p.present |= 1 << i
			}
		}
		e.Properties = append(e.Properties, p)
	}
	if len(e.Points) == 0 && len(e.Colors) == 0 {
		for _, m := range Extract(refs, All, realTemplate) {
			e.Reals = append(e.Reals, Real{Value: m.Value, Item: m.Item})
		}
	}
	return e
}

// Stream extracts from every item of s.
func Stream(s stream.Stream) Extractions {
	return FromItems(s.Refs())
}

// Empty reports whether nothing was extracted.
func (e Extractions) Empty() bool {
	return len(e.Points) == 0 && len(e.Beziers) == 0 && len(e.Colors) == 0 &&
		len(e.Properties) == 0 && len(e.Reals) == 0
}

func field(o object.Object, name string) object.Object {
	f, ok := o.(object.Fielder)
	if !ok {
		return nil
	}
	v, _ := f.Field(name)
	return v
}

func vecOf(o object.Object) geom.Vec {
	x, y, _ := object.XY(o)
	return geom.V(x, y)
}
