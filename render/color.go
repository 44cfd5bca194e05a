package render

import "github.com/plus3/korp/vmath"

// Color is an 8-bit straight alpha RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	Black = RGBA(0, 0, 0, 255)
	White = RGBA(255, 255, 255, 255)
	Red   = RGBA(255, 0, 0, 255)
	Green = RGBA(0, 255, 0, 255)
	Blue  = RGBA(0, 0, 255, 255)
)

func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Unpack is the inverse of Packed.
func Unpack(packed uint32) Color {
	return Color{
		R: uint8(packed >> 24),
		G: uint8(packed >> 16),
		B: uint8(packed >> 8),
		A: uint8(packed),
	}
}

// Packed returns the vertex attribute encoding R<<24 | G<<16 | B<<8 | A.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// Floats returns the channels scaled to [0, 1].
func (c Color) Floats() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// LerpColor interpolates every channel, rounding to the nearest value.
func LerpColor(a, b Color, t float32) Color {
	ch := func(x, y uint8) uint8 {
		return uint8(vmath.Lerp(float32(x), float32(y), t) + 0.5)
	}
	return Color{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}
