package game

import (
	"errors"
	"fmt"

	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/render"
)

// ErrShapeMismatch is returned when a body's shape kind differs between two
// ticks. Bodies cannot be interpolated across a shape change.
var ErrShapeMismatch = errors.New("game: body changed shape between ticks")

type ShapeKind uint8

const (
	ShapeTriangle ShapeKind = iota + 1
	ShapeRectangle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeTriangle:
		return "triangle"
	case ShapeRectangle:
		return "rectangle"
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

func ParseShapeKind(s string) (ShapeKind, error) {
	switch s {
	case "triangle":
		return ShapeTriangle, nil
	case "rectangle":
		return ShapeRectangle, nil
	}
	return 0, fmt.Errorf("unknown shape %q", s)
}

// Shape is the outline of a body relative to its centroid. Triangles use
// Top, Left and Right; rectangles use Width and Height.
type Shape struct {
	Kind ShapeKind

	Top, Left, Right fixed.Vec2
	Width, Height    fixed.Flint
}

func TriangleShape(top, left, right fixed.Vec2) Shape {
	return Shape{Kind: ShapeTriangle, Top: top, Left: left, Right: right}
}

func RectangleShape(width, height fixed.Flint) Shape {
	return Shape{Kind: ShapeRectangle, Width: width, Height: height}
}

// corners returns the outline points relative to the centroid.
func (s Shape) corners(buf *[4]fixed.Vec2) []fixed.Vec2 {
	switch s.Kind {
	case ShapeTriangle:
		buf[0], buf[1], buf[2] = s.Top, s.Left, s.Right
		return buf[:3]
	case ShapeRectangle:
		w, h := s.Width.Mul(fixed.Half), s.Height.Mul(fixed.Half)
		buf[0] = fixed.V(w.Neg(), h.Neg())
		buf[1] = fixed.V(w, h.Neg())
		buf[2] = fixed.V(w.Neg(), h)
		buf[3] = fixed.V(w, h)
		return buf[:4]
	}
	return buf[:0]
}

// Body is the simulated placement of an entity. Rotation is a unit direction.
type Body struct {
	Centroid fixed.Vec2
	Rotation fixed.Vec2
	Shape    Shape
	Color    render.Color
}

// Hitbox is the axis-aligned box containing the rotated shape.
func (b Body) Hitbox() Rect {
	var buf [4]fixed.Vec2
	corners := b.Shape.corners(&buf)
	if len(corners) == 0 {
		return Rect{X: b.Centroid.X, Y: b.Centroid.Y}
	}

	first := b.Centroid.Add(corners[0].RotatedV(b.Rotation))
	xmin, xmax := first.X, first.X
	ymin, ymax := first.Y, first.Y
	for _, c := range corners[1:] {
		p := b.Centroid.Add(c.RotatedV(b.Rotation))
		xmin, xmax = xmin.Min(p.X), xmax.Max(p.X)
		ymin, ymax = ymin.Min(p.Y), ymax.Max(p.Y)
	}
	return Rect{X: xmin, Y: ymin, Width: xmax.Sub(xmin), Height: ymax.Sub(ymin)}
}

// Motion drives a body's centroid and rotation. Speeds are per tick;
// rotation speeds are degrees per tick.
type Motion struct {
	Velocity             fixed.Vec2
	SpeedMaximum         fixed.Flint
	SpeedMinimum         fixed.Flint
	Acceleration         fixed.Flint
	RotationSpeed        fixed.Flint
	RotationSpeedMaximum fixed.Flint
	RotationSpeedMinimum fixed.Flint
	RotationAcceleration fixed.Flint
}

// Rect is an axis-aligned rectangle with X, Y at the top-left corner.
type Rect struct {
	X, Y, Width, Height fixed.Flint
}

func RectAt(x, y, width, height int16) Rect {
	return Rect{
		X:      fixed.FromInt16(x),
		Y:      fixed.FromInt16(y),
		Width:  fixed.FromInt16(width),
		Height: fixed.FromInt16(height),
	}
}

func (r Rect) Right() fixed.Flint  { return r.X.Add(r.Width) }
func (r Rect) Bottom() fixed.Flint { return r.Y.Add(r.Height) }

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X.Less(o.Right()) && o.X.Less(r.Right()) &&
		r.Y.Less(o.Bottom()) && o.Y.Less(r.Bottom())
}

// Union is the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	x, y := r.X.Min(o.X), r.Y.Min(o.Y)
	right, bottom := r.Right().Max(o.Right()), r.Bottom().Max(o.Bottom())
	return Rect{X: x, Y: y, Width: right.Sub(x), Height: bottom.Sub(y)}
}

func (r Rect) Render() render.Rectangle {
	return render.Rectangle{
		X:      r.X.Float32(),
		Y:      r.Y.Float32(),
		Width:  r.Width.Float32(),
		Height: r.Height.Float32(),
	}
}
