package vmath_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/vmath"
	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-5

// angleDiff compares angles modulo a full turn.
func angleDiff(a, b float32) float64 {
	return math.Remainder(float64(a)-float64(b), vmath.Tau)
}

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(5), vmath.Lerp(0, 10, 0.5))
	assert.Equal(t, float32(0), vmath.Lerp(0, 10, 0))
	assert.Equal(t, float32(10), vmath.Lerp(0, 10, 1))
	assert.Equal(t, vmath.V(1, 2), vmath.LerpVec2(vmath.V(0, 0), vmath.V(2, 4), 0.5))
}

func TestLerpAngle(t *testing.T) {
	tests := []struct {
		a, b, t float32
		want    float32
	}{
		{350, 10, 0.5, 0},
		{10, 350, 0.5, 0},
		{0, 90, 0.5, 45},
		{170, -170, 0.5, 180},
		{-170, 170, 0.5, -180},
		{45, 45, 0.7, 45},
		{0, 170, 0.5, 85},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v->%v@%v", tt.a, tt.b, tt.t), func(t *testing.T) {
			got := vmath.LerpAngle(vmath.Radians(tt.a), vmath.Radians(tt.b), tt.t)
			assert.InDelta(t, 0, angleDiff(got, vmath.Radians(tt.want)), epsilon)
		})
	}
}

func TestLerpAngleAtSeam(t *testing.T) {
	a := float32(vmath.Pi - 0.1)
	b := float32(-vmath.Pi + 0.1)

	assert.InDelta(t, float64(a), vmath.LerpAngle(a, b, 0), epsilon)
	assert.InDelta(t, vmath.Pi, vmath.LerpAngle(a, b, 0.5), epsilon)
	assert.InDelta(t, float64(a)+0.2, vmath.LerpAngle(a, b, 1), epsilon)
}

func TestLerpDirection(t *testing.T) {
	from := vmath.FromAngle(vmath.Radians(350))
	to := vmath.FromAngle(vmath.Radians(10))

	mid := vmath.LerpDirection(from, to, 0.5)
	assert.InDelta(t, 1, mid.X, epsilon)
	assert.InDelta(t, 0, mid.Y, epsilon)
}

func TestVec2(t *testing.T) {
	v := vmath.V(3, 4)
	assert.Equal(t, float32(5), v.Len())
	assert.Equal(t, vmath.V(0.6, 0.8), v.Normalized())
	assert.Equal(t, vmath.Vec2{}, vmath.Vec2{}.Normalized())
	assert.Equal(t, vmath.V(-4, 3), v.Perp())
	assert.Equal(t, float32(25), v.Dot(v))

	r := vmath.V(0, -1).Rotated(vmath.V(0, 1))
	assert.InDelta(t, 1, r.X, epsilon)
	assert.InDelta(t, 0, r.Y, epsilon)

	assert.InDelta(t, vmath.Pi/2, vmath.V(0, 1).Angle(), epsilon)
}

func TestFromFixed(t *testing.T) {
	v := vmath.FromFixed(fixed.V(fixed.New(1, fixed.PointFive), fixed.NegOne))
	assert.Equal(t, vmath.V(1.5, -1), v)
}
