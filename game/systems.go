package game

import (
	"github.com/plus3/korp/ecs"
	"github.com/plus3/korp/engine"
	"github.com/plus3/korp/fixed"
	"github.com/plus3/korp/vmath"
	"go.uber.org/zap"
)

// CosmicDrag slows every moving body by this much per tick, linearly and in
// rotation.
var CosmicDrag = fixed.New(0, fixed.PointOne*2)

// MorphSystem makes the state of the previous tick the old side of every
// morph before any system writes the new side.
type MorphSystem struct {
	Tables Tables
}

func (s *MorphSystem) Execute(*ecs.UpdateFrame) {
	for _, body := range s.Tables.Bodies.All() {
		body.Commit()
	}
	for _, hitbox := range s.Tables.Hitboxes.All() {
		hitbox.Commit()
	}
}

// CommandSystem applies the commands queued since the previous tick.
type CommandSystem struct {
	Tables Tables
	Forge  *Forge
	Queue  *[]Command
}

func (s *CommandSystem) Execute(frame *ecs.UpdateFrame) {
	for _, cmd := range *s.Queue {
		cmd.apply(frame, s.Tables, s.Forge)
	}
	*s.Queue = (*s.Queue)[:0]
}

// MotionSystem turns and moves every body that has a motion.
type MotionSystem struct {
	Tables Tables
}

func (s *MotionSystem) Execute(*ecs.UpdateFrame) {
	for e, motion := range s.Tables.Motions.All() {
		body, ok := s.Tables.Bodies.Get(e)
		if !ok {
			continue
		}
		step(&body.New, motion)
	}
}

func step(body *Body, motion *Motion) {
	rs := motion.RotationSpeed
	switch {
	case rs.Less(fixed.Zero):
		rs = rs.Add(CosmicDrag).Min(fixed.Zero)
	case fixed.Zero.Less(rs):
		rs = rs.Sub(CosmicDrag).Max(fixed.Zero)
	}
	rs = rs.Min(motion.RotationSpeedMaximum).Max(motion.RotationSpeedMinimum)
	motion.RotationSpeed = rs

	if !rs.IsZero() {
		body.Rotation = body.Rotation.Rotated(rs)
	}

	direction := motion.Velocity.Normalized()
	if direction.IsZero() {
		// below the resolution of Len
		motion.Velocity = fixed.ZeroVec2
	}
	motion.Velocity = motion.Velocity.Sub(direction.Scale(CosmicDrag))

	// Drag never reverses a body; it comes to a full stop instead.
	if direction.Dot(motion.Velocity.Normalized()).Less(fixed.Zero) {
		motion.Velocity = fixed.ZeroVec2
	}

	limit := motion.SpeedMaximum
	if motion.Velocity.Dot(body.Rotation).Less(fixed.Zero) {
		limit = motion.SpeedMinimum.Abs()
	}
	if limit.Mul(limit).Less(motion.Velocity.LenSqr()) {
		motion.Velocity = direction.Scale(limit)
	}

	body.Centroid = body.Centroid.Add(motion.Velocity)
}

// HitboxSystem recomputes hitboxes. A hitbox covers the body at both the
// previous and the current tick.
type HitboxSystem struct {
	Tables Tables
}

func (s *HitboxSystem) Execute(*ecs.UpdateFrame) {
	for e, body := range s.Tables.Bodies.All() {
		box := body.Old.Hitbox().Union(body.New.Hitbox())
		if hitbox, ok := s.Tables.Hitboxes.Get(e); ok {
			hitbox.New = box
			continue
		}
		// Bodies and hitboxes share the storage capacity so this cannot fail.
		_ = s.Tables.Hitboxes.Insert(e, engine.MorphOf(box))
	}
}

// OutOfBoundsSystem destroys entities whose hitbox left the bounds. The
// destruction is deferred to the end of the tick.
type OutOfBoundsSystem struct {
	Tables Tables
	Scene  *ecs.Singleton[Scene]
	Logger *zap.Logger
}

func (s *OutOfBoundsSystem) Execute(frame *ecs.UpdateFrame) {
	bounds := s.Scene.Get().Bounds
	for e, hitbox := range s.Tables.Hitboxes.All() {
		if bounds.Overlaps(hitbox.New) {
			continue
		}
		s.Logger.Debug("out of bounds", zap.Stringer("entity", e), zap.Uint64("tick", frame.Tick))
		frame.Commands.Destroy(e)
	}
}

// CameraSystem keeps the camera target on the player.
type CameraSystem struct {
	Tables Tables
	Player *ecs.Entity
	Target *engine.Morph[vmath.Vec2]
}

func (s *CameraSystem) Execute(*ecs.UpdateFrame) {
	s.Target.Commit()
	if body, ok := s.Tables.Bodies.Get(*s.Player); ok {
		s.Target.New = vmath.FromFixed(body.New.Centroid)
	}
}
