package game

import (
	"iter"

	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/engine"
	"github.com/plus3/korp/render"
	"github.com/plus3/korp/vmath"
)

// Snapshot is a copy of everything the cosmos renders. It can be drawn on
// another goroutine while the cosmos keeps ticking.
type Snapshot struct {
	Tick     uint64
	Target   engine.Morph[vmath.Vec2]
	Bounds   Rect
	Outlines bool

	Entities []ecs.Entity
	Bodies   []engine.Morph[Body]
	HitboxOf []ecs.Entity
	Hitboxes []engine.Morph[Rect]
}

// Snapshot copies the render state into dst, reusing its slices.
func (c *Cosmos) Snapshot(dst *Snapshot) {
	dst.Tick = c.scheduler.Tick()
	dst.Target = c.target
	dst.Bounds = c.scene.Get().Bounds
	dst.Outlines = c.toggle

	dst.Entities = dst.Entities[:0]
	dst.Bodies = dst.Bodies[:0]
	for e, body := range c.tables.Bodies.All() {
		dst.Entities = append(dst.Entities, e)
		dst.Bodies = append(dst.Bodies, *body)
	}

	dst.HitboxOf = dst.HitboxOf[:0]
	dst.Hitboxes = dst.Hitboxes[:0]
	for e, hitbox := range c.tables.Hitboxes.All() {
		dst.HitboxOf = append(dst.HitboxOf, e)
		dst.Hitboxes = append(dst.Hitboxes, *hitbox)
	}
}

// Render draws the snapshot exactly as Cosmos.Render would have at the time
// it was taken. camera must not be shared with a live cosmos.
func (s *Snapshot) Render(frame *render.Frame, camera *render.Camera, alpha float32) error {
	return renderScene(frame, camera, s.Target, s.Bounds, s.Outlines,
		pairs(s.Entities, s.Bodies), pairs(s.HitboxOf, s.Hitboxes), alpha)
}

// NewSnapshotCamera returns a camera with the cosmos world extent.
func NewSnapshotCamera() *render.Camera {
	return render.NewCamera(cameraWidth, cameraHeight)
}

func pairs[T any](keys []ecs.Entity, values []T) iter.Seq2[ecs.Entity, *T] {
	return func(yield func(ecs.Entity, *T) bool) {
		for i := range values {
			if !yield(keys[i], &values[i]) {
				return
			}
		}
	}
}
