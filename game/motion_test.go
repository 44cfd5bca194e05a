package game

import (
	"testing"

	"github.com/plus3/korp/fixed"
	"github.com/stretchr/testify/assert"
)

func raw(v int32) fixed.Flint { return fixed.FromRaw(v) }

func TestStep(t *testing.T) {
	right := fixed.V(fixed.One, fixed.Zero)

	tests := []struct {
		name         string
		velocity     fixed.Vec2
		wantVelocity fixed.Vec2
	}{
		{"drag", fixed.VInt(5, 0), fixed.V(raw(5<<16-13106), fixed.Zero)},
		{"drag stops instead of reversing", fixed.V(fixed.New(0, fixed.PointOne), fixed.Zero), fixed.ZeroVec2},
		{"forward clamp", fixed.VInt(20, 0), fixed.VInt(15, 0)},
		{"reverse clamp", fixed.VInt(-12, 0), fixed.VInt(-10, 0)},
		{"at rest", fixed.ZeroVec2, fixed.ZeroVec2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := Body{Rotation: right}
			motion := shipMotion()
			motion.Velocity = tt.velocity

			step(&body, &motion)

			assert.Equal(t, tt.wantVelocity, motion.Velocity)
			assert.Equal(t, tt.wantVelocity, body.Centroid, "centroid moves by the new velocity")
			assert.Equal(t, right, body.Rotation)
		})
	}
}

func TestStepRotation(t *testing.T) {
	tests := []struct {
		name  string
		speed fixed.Flint
		want  fixed.Flint
	}{
		{"drag left", fixed.NegOne, raw(-(1<<16 - 13106))},
		{"drag right", fixed.One, raw(1<<16 - 13106)},
		{"drag to rest", raw(6553), fixed.Zero},
		{"clamp", fixed.FromInt16(40), raw(16<<16)},
		{"clamp negative", fixed.FromInt16(-40), raw(-16 << 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := Body{Rotation: fixed.V(fixed.One, fixed.Zero)}
			motion := shipMotion()
			motion.RotationSpeed = tt.speed

			step(&body, &motion)

			assert.Equal(t, tt.want, motion.RotationSpeed)
			if tt.want.IsZero() {
				assert.Equal(t, fixed.V(fixed.One, fixed.Zero), body.Rotation)
			} else {
				assert.NotEqual(t, fixed.V(fixed.One, fixed.Zero), body.Rotation)
			}
		})
	}
}

func TestCosmicDrag(t *testing.T) {
	assert.Equal(t, int32(13106), CosmicDrag.Raw())
}
