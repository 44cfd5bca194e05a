package render

import "github.com/plus3/korp/vmath"

// Line is a segment drawn as a one unit wide quad.
type Line struct {
	Start, End vmath.Vec2
}

type Triangle struct {
	Top, Left, Right vmath.Vec2
}

// Rectangle is axis aligned; X and Y address its top left corner.
type Rectangle struct {
	X, Y, Width, Height float32
}

// TriangleAt offsets corner offsets by centroid.
func TriangleAt(top, left, right, centroid vmath.Vec2) Triangle {
	return Triangle{
		Top:   centroid.Add(top),
		Left:  centroid.Add(left),
		Right: centroid.Add(right),
	}
}

// RectangleAt centers a width by height rectangle on centroid.
func RectangleAt(width, height float32, centroid vmath.Vec2) Rectangle {
	return Rectangle{
		X:      centroid.X - width*0.5,
		Y:      centroid.Y - height*0.5,
		Width:  width,
		Height: height,
	}
}

// Center returns the midpoint of r.
func (r Rectangle) Center() vmath.Vec2 {
	return vmath.V(r.X+r.Width*0.5, r.Y+r.Height*0.5)
}

// LerpRectangle interpolates position and extent.
func LerpRectangle(a, b Rectangle, t float32) Rectangle {
	return Rectangle{
		X:      vmath.Lerp(a.X, b.X, t),
		Y:      vmath.Lerp(a.Y, b.Y, t),
		Width:  vmath.Lerp(a.Width, b.Width, t),
		Height: vmath.Lerp(a.Height, b.Height, t),
	}
}
