package render

import "github.com/plus3/korp/vmath"

// lineHalfWidth is half the thickness of lines and outlines in world units.
const lineHalfWidth = 0.5

// DrawLine draws line as a quad of two triangles. rotation is a unit
// direction applied about origin.
func (f *Frame) DrawLine(line Line, rotation, origin vmath.Vec2, color Color) {
	norm := line.End.Sub(line.Start).Perp().Normalized().Scale(lineHalfWidth)

	c0 := line.Start.Add(norm)
	c1 := line.End.Add(norm)
	c2 := line.End.Sub(norm)
	c3 := line.Start.Sub(norm)

	f.quad(c0, c1, c2, c3, rotation, origin, color)
}

func (f *Frame) DrawTriangleFilled(triangle Triangle, rotation, origin vmath.Vec2, color Color) {
	packed := color.Packed()
	f.vertices = append(f.vertices,
		Vertex{Position: triangle.Top, Rotation: rotation, Origin: origin, Color: packed},
		Vertex{Position: triangle.Left, Rotation: rotation, Origin: origin, Color: packed},
		Vertex{Position: triangle.Right, Rotation: rotation, Origin: origin, Color: packed},
	)
}

func (f *Frame) DrawTriangleLines(triangle Triangle, rotation, origin vmath.Vec2, color Color) {
	corners := [3]vmath.Vec2{triangle.Top, triangle.Left, triangle.Right}
	for i := range corners {
		f.DrawLine(Line{Start: corners[i], End: corners[(i+1)%3]}, rotation, origin, color)
	}
}

func (f *Frame) DrawRectangleFilled(rect Rectangle, rotation, origin vmath.Vec2, color Color) {
	f.quad(
		vmath.V(rect.X, rect.Y),
		vmath.V(rect.X+rect.Width, rect.Y),
		vmath.V(rect.X+rect.Width, rect.Y+rect.Height),
		vmath.V(rect.X, rect.Y+rect.Height),
		rotation, origin, color,
	)
}

// DrawRectangleLines outlines rect with its edges inset by half a line width
// so the outline covers the same area as the filled rectangle.
func (f *Frame) DrawRectangleLines(rect Rectangle, rotation, origin vmath.Vec2, color Color) {
	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.Width, rect.Y+rect.Height
	const h = lineHalfWidth

	f.DrawLine(Line{Start: vmath.V(x0, y0+h), End: vmath.V(x1, y0+h)}, rotation, origin, color)
	f.DrawLine(Line{Start: vmath.V(x1-h, y0), End: vmath.V(x1-h, y1)}, rotation, origin, color)
	f.DrawLine(Line{Start: vmath.V(x1, y1-h), End: vmath.V(x0, y1-h)}, rotation, origin, color)
	f.DrawLine(Line{Start: vmath.V(x0+h, y1), End: vmath.V(x0+h, y0)}, rotation, origin, color)
}

// quad appends the corners c0..c3, given in winding order, as two triangles.
func (f *Frame) quad(c0, c1, c2, c3, rotation, origin vmath.Vec2, color Color) {
	packed := color.Packed()
	v := func(p vmath.Vec2) Vertex {
		return Vertex{Position: p, Rotation: rotation, Origin: origin, Color: packed}
	}
	f.vertices = append(f.vertices, v(c0), v(c1), v(c2), v(c2), v(c3), v(c0))
}
