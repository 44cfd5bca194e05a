package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/korp/vmath"
)

// Camera is an orthographic view centered on Position with y pointing down.
type Camera struct {
	halfWidth  float32
	halfHeight float32
	position   vmath.Vec2
}

func NewCamera(width, height float32) *Camera {
	return &Camera{halfWidth: width * 0.5, halfHeight: height * 0.5}
}

// NewScreenCamera maps world units to pixels with the origin at the top left.
func NewScreenCamera(width, height float32) *Camera {
	c := NewCamera(width, height)
	c.Reposition(vmath.V(width*0.5, height*0.5))
	return c
}

func (c *Camera) Reposition(position vmath.Vec2) {
	c.position = position
}

func (c *Camera) Resize(width, height float32) {
	c.halfWidth = width * 0.5
	c.halfHeight = height * 0.5
}

func (c *Camera) Position() vmath.Vec2 {
	return c.position
}

func (c *Camera) Size() (width, height float32) {
	return c.halfWidth * 2, c.halfHeight * 2
}

// ViewProjection maps the visible area to clip space. The top edge of the
// view maps to +1 so world y grows downward on screen.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	left := c.position.X - c.halfWidth
	right := c.position.X + c.halfWidth
	top := c.position.Y - c.halfHeight
	bottom := c.position.Y + c.halfHeight
	return mgl32.Ortho(left, right, bottom, top, -1, 1)
}

// ScreenToWorld converts a point given in pixels of a width by height
// surface into world coordinates.
func (c *Camera) ScreenToWorld(point vmath.Vec2, width, height float32) vmath.Vec2 {
	if width <= 0 || height <= 0 {
		return c.position
	}
	w, h := c.Size()
	return vmath.V(
		c.position.X-c.halfWidth+point.X/width*w,
		c.position.Y-c.halfHeight+point.Y/height*h,
	)
}
