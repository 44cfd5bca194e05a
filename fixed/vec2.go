package fixed

import "fmt"

// Vec2 is a deterministic two dimensional vector.
type Vec2 struct {
	X, Y Flint
}

// V builds a Vec2.
func V(x, y Flint) Vec2 {
	return Vec2{X: x, Y: y}
}

// VInt builds a Vec2 from whole numbers.
func VInt(x, y int16) Vec2 {
	return Vec2{X: FromInt16(x), Y: FromInt16(y)}
}

// ZeroVec2 is the origin.
var ZeroVec2 = Vec2{}

func (v Vec2) String() string {
	return fmt.Sprintf("(%s, %s)", v.X, v.Y)
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X.Add(o.X), Y: v.Y.Add(o.Y)} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X.Sub(o.X), Y: v.Y.Sub(o.Y)} }

func (v Vec2) Neg() Vec2 { return Vec2{X: v.X.Neg(), Y: v.Y.Neg()} }

func (v Vec2) Scale(s Flint) Vec2 { return Vec2{X: v.X.Mul(s), Y: v.Y.Mul(s)} }

func (v Vec2) ScaleInt(s int16) Vec2 { return Vec2{X: v.X.MulInt(s), Y: v.Y.MulInt(s)} }

func (v Vec2) Dot(o Vec2) Flint { return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)) }

func (v Vec2) LenSqr() Flint { return v.Dot(v) }

// Len sums the squares in 64 bits so world scale vectors keep their length.
func (v Vec2) Len() Flint {
	x, y := int64(v.X.raw), int64(v.Y.raw)
	return Flint{raw: saturate(int64(isqrt(uint64(x*x) + uint64(y*y))))}
}

// Perp returns v rotated by 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{X: v.Y.Neg(), Y: v.X} }

func (v Vec2) IsZero() bool { return v.X.IsZero() && v.Y.IsZero() }

// Normalized returns the unit vector in the direction of v, or the zero
// vector when v has no length.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l.IsZero() {
		return ZeroVec2
	}
	return Vec2{X: v.X.Div(l), Y: v.Y.Div(l)}
}

// Rotated rotates v by the given angle in degrees.
func (v Vec2) Rotated(degrees Flint) Vec2 {
	sin, cos := degrees.ToRadians().SinCos()
	return Vec2{
		X: v.X.Mul(cos).Sub(v.Y.Mul(sin)),
		Y: v.X.Mul(sin).Add(v.Y.Mul(cos)),
	}
}

// RotatedV rotates v by the angle of the unit direction theta.
func (v Vec2) RotatedV(theta Vec2) Vec2 {
	return Vec2{
		X: v.X.Mul(theta.X).Sub(v.Y.Mul(theta.Y)),
		Y: v.X.Mul(theta.Y).Add(v.Y.Mul(theta.X)),
	}
}
