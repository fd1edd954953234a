package mapdata

import "math"

// Vertex is a 2D point in map units.
type Vertex struct {
	X, Y float32
}

// Add returns v+other.
func (v Vertex) Add(other Vertex) Vertex {
	return Vertex{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v-other.
func (v Vertex) Sub(other Vertex) Vertex {
	return Vertex{X: v.X - other.X, Y: v.Y - other.Y}
}

// Rotate returns v rotated counter-clockwise by angle radians about the
// origin.
func (v Vertex) Rotate(angle float32) Vertex {
	s, c := math.Sincos(float64(angle))
	return Vertex{
		X: float32(float64(v.X)*c - float64(v.Y)*s),
		Y: float32(float64(v.X)*s + float64(v.Y)*c),
	}
}

// Cross returns the 2D cross product (z component) of v and other.
func (v Vertex) Cross(other Vertex) float32 {
	return v.X*other.Y - v.Y*other.X
}

// Distance returns the Euclidean distance between v and other.
func (v Vertex) Distance(other Vertex) float32 {
	d := v.Sub(other)
	return float32(math.Hypot(float64(d.X), float64(d.Y)))
}

// IsLeftOfLine reports whether v lies on the left side of the directed
// line a->b: the sign of the cross product of (v-a) with (b-a).
// Non-positive is left.
func (v Vertex) IsLeftOfLine(a, b Vertex) bool {
	return (v.Sub(a)).Cross(b.Sub(a)) <= 0
}

// BoundingBox is an axis-aligned 2D bound in map units.
type BoundingBox struct {
	Top, Bottom, Left, Right float32
}

// NewExtendableBoundingBox returns a degenerate box suitable for repeated
// Extend calls.
func NewExtendableBoundingBox() BoundingBox {
	return BoundingBox{
		Top:    float32(math.Inf(1)),
		Bottom: float32(math.Inf(-1)),
		Left:   float32(math.Inf(1)),
		Right:  float32(math.Inf(-1)),
	}
}

// Extend grows bb to include v.
func (bb *BoundingBox) Extend(v Vertex) {
	if v.X < bb.Left {
		bb.Left = v.X
	}
	if v.X > bb.Right {
		bb.Right = v.X
	}
	if v.Y < bb.Top {
		bb.Top = v.Y
	}
	if v.Y > bb.Bottom {
		bb.Bottom = v.Y
	}
}

// Contains reports whether v lies within bb.
func (bb BoundingBox) Contains(v Vertex) bool {
	return v.X >= bb.Left && v.X <= bb.Right && v.Y >= bb.Top && v.Y <= bb.Bottom
}

// degToRad converts a DOOM angle lump field (degrees) to radians.
func degToRad(deg float32) float32 {
	return float32(float64(deg) * math.Pi / 180)
}

// Line is an oriented pair of vertices.
type Line struct {
	Start, End Vertex
}

// Length returns the Euclidean length of the line.
func (l Line) Length() float32 {
	return l.Start.Distance(l.End)
}

// IsLeftOfLine reports whether either endpoint of l is left of other.
func (l Line) IsLeftOfLine(other Line) bool {
	return l.Start.IsLeftOfLine(other.Start, other.End) || l.End.IsLeftOfLine(other.Start, other.End)
}

// Intersect returns the intersection point of l and other. ok is false when
// the lines are (near-)parallel, using a |det| < 1e-3 threshold.
func (l Line) Intersect(other Line) (pt Vertex, ok bool) {
	x1, y1 := l.Start.X, l.Start.Y
	x2, y2 := l.End.X, l.End.Y
	x3, y3 := other.Start.X, other.Start.Y
	x4, y4 := other.End.X, other.End.Y

	det := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if det < 0 {
		det = -det
	}
	if det < 1e-3 {
		return Vertex{}, false
	}

	invDet := 1.0 / ((x1-x2)*(y3-y4) - (y1-y2)*(x3-x4))
	px := invDet * ((x1*y2-y1*x2)*(x3-x4) - (x1-x2)*(x3*y4-y3*x4))
	py := invDet * ((x1*y2-y1*x2)*(y3-y4) - (y1-y2)*(x3*y4-y3*x4))

	return Vertex{X: px, Y: py}, true
}
