// Package vmath holds float32 vector helpers used on the presentation side.
// Simulation code must use package fixed instead.
package vmath

import (
	"math"

	"github.com/plus3/korp/fixed"
)

const (
	Pi  = math.Pi
	Tau = 2 * math.Pi
)

// Vec2 is a float32 two dimensional vector.
type Vec2 struct {
	X, Y float32
}

func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

// FromFixed converts a deterministic vector for rendering.
func FromFixed(v fixed.Vec2) Vec2 {
	return Vec2{X: v.X.Float32(), Y: v.Y.Float32()}
}

// FromAngle returns the unit direction of the angle in radians.
func FromAngle(radians float32) Vec2 {
	sin, cos := math.Sincos(float64(radians))
	return Vec2{X: float32(cos), Y: float32(sin)}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(s float32) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

func (v Vec2) Perp() Vec2 { return Vec2{X: -v.Y, Y: v.X} }

// Angle returns the direction of v in radians, in (-π, π].
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// Normalized returns the unit vector of v, or zero for a zero vector.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Rotated rotates v by the angle of the unit direction dir.
func (v Vec2) Rotated(dir Vec2) Vec2 {
	return Vec2{
		X: v.X*dir.X - v.Y*dir.Y,
		Y: v.X*dir.Y + v.Y*dir.X,
	}
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec2 interpolates both components linearly.
func LerpVec2(a, b Vec2, t float32) Vec2 {
	return Vec2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// LerpAngle interpolates between two angles in radians along the shortest
// arc. The difference is wrapped into (-π, π] before scaling, so angles that
// straddle the ±π seam do not swing the long way around.
func LerpAngle(a, b, t float32) float32 {
	delta := float64(b) - float64(a)
	for delta > Pi {
		delta -= Tau
	}
	for delta <= -Pi {
		delta += Tau
	}
	return float32(float64(a) + delta*float64(t))
}

// LerpDirection interpolates two unit directions by angle.
func LerpDirection(a, b Vec2, t float32) Vec2 {
	return FromAngle(LerpAngle(a.Angle(), b.Angle(), t))
}

// Radians converts degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * Pi / 180
}
